package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/repaso/internal/router"
	"github.com/abhisek/repaso/internal/screen/screentest"
	"github.com/abhisek/repaso/internal/screens/quiz"
	"github.com/abhisek/repaso/internal/screens/report"
)

func newTestHome() *HomeScreen {
	svc := screentest.Services([]string{"a", "b"}, map[string]int{"a": 5})
	return New(svc)
}

func TestMenuListsModules(t *testing.T) {
	h := newTestHome()
	if len(h.modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(h.modules))
	}
	view := h.View(80, 24)
	if !strings.Contains(view, "Module a") || !strings.Contains(view, "5 questions") {
		t.Errorf("expected module a with its count in view:\n%s", view)
	}
	if h.menu.Items[0].Disabled {
		t.Error("module with questions should be enabled")
	}
	if !h.menu.Items[1].Disabled {
		t.Error("empty module should be disabled")
	}
}

func TestEnterStartsQuiz(t *testing.T) {
	h := newTestHome()

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command from Enter")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*quiz.QuizScreen); !ok {
		t.Errorf("expected quiz screen, got %T", push.Screen)
	}
	if h.errMsg != "" {
		t.Errorf("unexpected error message %q", h.errMsg)
	}

	seen := h.svc.Ledger.Seen(h.svc.Context(), "a")
	if len(seen) != h.svc.DefaultCount {
		t.Errorf("expected %d questions marked seen, got %d", h.svc.DefaultCount, len(seen))
	}
}

func TestInvalidCountShowsError(t *testing.T) {
	h := newTestHome()
	h.count.SetValue("0")

	if cmd := h.start("a"); cmd != nil {
		t.Error("invalid count should not start a quiz")
	}
	if h.errMsg == "" {
		t.Error("expected an error message")
	}
	if !h.count.Invalid() {
		t.Error("count input should be marked invalid")
	}
}

func TestAllCountStartsFullQuiz(t *testing.T) {
	h := newTestHome()
	h.count.SetValue("all")

	cmd := h.start("a")
	if cmd == nil {
		t.Fatal("expected quiz to start")
	}
	if got := len(h.svc.Ledger.Seen(h.svc.Context(), "a")); got != 5 {
		t.Errorf("expected all 5 questions selected, got %d", got)
	}
}

func TestEmptyModuleShowsError(t *testing.T) {
	h := newTestHome()

	if cmd := h.start("b"); cmd != nil {
		t.Error("empty module should not start a quiz")
	}
	if !strings.Contains(h.errMsg, "No questions available") {
		t.Errorf("unexpected error message %q", h.errMsg)
	}
}

func TestStatsKeyOpensReport(t *testing.T) {
	h := newTestHome()

	_, cmd := h.Update(tea.KeyPressMsg{Code: 's', Text: "s"})
	if cmd == nil {
		t.Fatal("expected a command from s")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*report.ReportScreen); !ok {
		t.Errorf("expected report screen, got %T", push.Screen)
	}
}

func TestTabTogglesFocus(t *testing.T) {
	h := newTestHome()

	h.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if h.focus != focusCount {
		t.Fatal("tab should focus the count input")
	}
	before := h.count.Value()
	_, cmd := h.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd != nil {
		t.Error("q should be filtered out of the count input")
	}
	if h.count.Value() != before {
		t.Errorf("count changed to %q", h.count.Value())
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if h.focus != focusModules {
		t.Error("tab should return focus to the menu")
	}
}
