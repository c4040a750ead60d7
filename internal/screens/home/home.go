package home

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/repaso/internal/logging"
	"github.com/abhisek/repaso/internal/questionbank"
	"github.com/abhisek/repaso/internal/router"
	"github.com/abhisek/repaso/internal/screen"
	"github.com/abhisek/repaso/internal/screens/quiz"
	"github.com/abhisek/repaso/internal/screens/report"
	"github.com/abhisek/repaso/internal/selector"
	"github.com/abhisek/repaso/internal/session"
	"github.com/abhisek/repaso/internal/stats"
	"github.com/abhisek/repaso/internal/ui/components"
	"github.com/abhisek/repaso/internal/ui/layout"
	"github.com/abhisek/repaso/internal/ui/theme"
)

type focus int

const (
	focusModules focus = iota
	focusCount
)

// HomeScreen lists modules and starts a quiz on the chosen one.
type HomeScreen struct {
	svc     *screen.Services
	modules []questionbank.ModuleDescriptor
	menu    components.Menu
	count   components.TextInput
	focus   focus
	errMsg  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(svc *screen.Services) *HomeScreen {
	count := components.NewTextInput("number or all", 5)
	count.Accept = func(r rune) bool {
		return unicode.IsDigit(r) || strings.ContainsRune("alAL", r)
	}
	count.SetValue(fmt.Sprint(svc.DefaultCount))
	count.Model.Blur()

	h := &HomeScreen{svc: svc, count: count}
	h.refresh()
	return h
}

// refresh rebuilds the module menu, keeping the cursor where it was.
func (h *HomeScreen) refresh() {
	selected := h.menu.Selected
	h.modules = h.svc.Bank.Modules()

	items := make([]components.MenuItem, len(h.modules))
	for i, m := range h.modules {
		key := m.Key
		items[i] = components.MenuItem{
			Label:    m.Title,
			Detail:   h.moduleDetail(m),
			Disabled: m.Count == 0,
			Action:   func() tea.Cmd { return h.start(key) },
		}
	}
	h.menu = components.NewMenu(items)
	if selected < len(items) && !items[selected].Disabled {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) moduleDetail(m questionbank.ModuleDescriptor) string {
	detail := fmt.Sprintf("%d questions", m.Count)
	if rec, ok := h.svc.Ledger.LastSession(h.svc.Context(), m.Key); ok {
		overall := stats.Overall(rec.Entries)
		detail += fmt.Sprintf(" · last %d%%", overall.Percent)
	}
	return detail
}

func (h *HomeScreen) Init() tea.Cmd {
	h.refresh()
	h.errMsg = ""
	return nil
}

func (h *HomeScreen) Title() string {
	return "Modules"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.focus == focusCount {
		return []layout.KeyHint{
			{Key: "Tab", Description: "Modules"},
			{Key: "Enter", Description: "Start"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Tab", Description: "Question count"},
		{Key: "S", Description: "Stats"},
		{Key: "Q", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if h.focus == focusCount {
			var cmd tea.Cmd
			h.count, cmd = h.count.Update(msg)
			return h, cmd
		}
		return h, nil
	}

	switch kmsg.String() {
	case "tab", "shift+tab":
		return h, h.toggleFocus()
	}

	if h.focus == focusCount {
		if kmsg.String() == "enter" {
			if item, ok := h.menu.Current(); ok && !item.Disabled {
				return h, item.Action()
			}
			return h, nil
		}
		var cmd tea.Cmd
		h.count, cmd = h.count.Update(msg)
		return h, cmd
	}

	switch kmsg.String() {
	case "q":
		return h, tea.Quit
	case "s":
		if m, ok := h.selectedModule(); ok {
			return h, func() tea.Msg {
				return router.PushScreenMsg{Screen: report.New(h.svc, m)}
			}
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) toggleFocus() tea.Cmd {
	if h.focus == focusModules {
		h.focus = focusCount
		return h.count.Model.Focus()
	}
	h.focus = focusModules
	h.count.Model.Blur()
	return nil
}

func (h *HomeScreen) selectedModule() (questionbank.ModuleDescriptor, bool) {
	if h.menu.Selected < 0 || h.menu.Selected >= len(h.modules) {
		return questionbank.ModuleDescriptor{}, false
	}
	return h.modules[h.menu.Selected], true
}

// start selects a batch for module and opens the quiz screen.
func (h *HomeScreen) start(module string) tea.Cmd {
	ctx := h.svc.Context()
	log := logging.FromContext(ctx)

	size := selector.Size(h.svc.DefaultCount)
	if raw := strings.TrimSpace(h.count.Value()); raw != "" {
		parsed, err := selector.ParseSize(raw)
		if err != nil {
			h.count.MarkInvalid()
			h.errMsg = "Enter a positive number of questions or \"all\"."
			return nil
		}
		size = parsed
	}

	desc, err := h.svc.Bank.Module(module)
	if err != nil {
		h.errMsg = err.Error()
		return nil
	}

	batch, err := h.svc.Selector.SelectBatch(ctx, module, size)
	if err != nil {
		log.Error().Err(err).Str("module", module).Msg("select batch")
		h.errMsg = err.Error()
		return nil
	}

	sess, err := session.New(module, batch, session.Options{Recorder: h.svc.Ledger})
	if errors.Is(err, session.ErrEmptyBatch) {
		h.errMsg = fmt.Sprintf("No questions available for %s.", desc.Title)
		return nil
	}
	if err != nil {
		h.errMsg = err.Error()
		return nil
	}

	log.Info().Str("module", module).Str("session", sess.ID).Int("questions", len(batch)).Msg("session started")
	h.errMsg = ""
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: quiz.New(h.svc, desc, sess)}
	}
}

func (h *HomeScreen) View(width, height int) string {
	cw := min(max(width-8, 20), 72)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Choose a module"))
	b.WriteString("\n\n")

	if len(h.modules) == 0 {
		b.WriteString(theme.Dim.Render("No modules loaded."))
	} else {
		b.WriteString(h.menu.View())
	}
	b.WriteString("\n")

	label := theme.Dim.Render("Questions: ")
	if h.focus == focusCount {
		label = theme.Selected.Render("Questions: ")
	}
	b.WriteString(label + h.count.View())

	if h.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorText.Render(h.errMsg))
	}

	card := theme.Card.Width(cw).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
