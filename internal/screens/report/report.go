package report

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/repaso/internal/logging"
	"github.com/abhisek/repaso/internal/questionbank"
	"github.com/abhisek/repaso/internal/screen"
	"github.com/abhisek/repaso/internal/screens/results"
	"github.com/abhisek/repaso/internal/stats"
	"github.com/abhisek/repaso/internal/ui/components"
	"github.com/abhisek/repaso/internal/ui/layout"
	"github.com/abhisek/repaso/internal/ui/theme"
)

// ReportScreen shows a module's last session and recent answer window,
// and can clear its history.
type ReportScreen struct {
	svc    *screen.Services
	module questionbank.ModuleDescriptor
	report stats.Report

	confirmReset bool
	notice       string
}

var _ screen.Screen = (*ReportScreen)(nil)
var _ screen.KeyHintProvider = (*ReportScreen)(nil)

// New creates a new ReportScreen.
func New(svc *screen.Services, module questionbank.ModuleDescriptor) *ReportScreen {
	return &ReportScreen{svc: svc, module: module}
}

func (s *ReportScreen) Init() tea.Cmd {
	s.load()
	return nil
}

func (s *ReportScreen) load() {
	s.report = stats.ModuleReport(s.svc.Context(), s.svc.Ledger, s.module.Key)
}

func (s *ReportScreen) Title() string {
	return s.module.Title + " stats"
}

func (s *ReportScreen) KeyHints() []layout.KeyHint {
	if s.confirmReset {
		return []layout.KeyHint{
			{Key: "Y", Description: "Clear history"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "R", Description: "Reset history"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	key := kmsg.String()
	if s.confirmReset {
		switch key {
		case "y", "Y":
			s.confirmReset = false
			s.reset()
		case "n", "N":
			s.confirmReset = false
		}
		return s, nil
	}

	if key == "r" || key == "R" {
		s.confirmReset = true
		s.notice = ""
	}
	return s, nil
}

func (s *ReportScreen) reset() {
	ctx := s.svc.Context()
	if err := s.svc.Ledger.Reset(ctx, s.module.Key); err != nil {
		log := logging.FromContext(ctx)
		log.Error().Err(err).Str("module", s.module.Key).Msg("reset history")
		s.notice = "Could not clear history: " + err.Error()
		return
	}
	s.notice = "History cleared."
	s.load()
}

func (s *ReportScreen) View(width, height int) string {
	cw := min(max(width-8, 20), 72)
	r := s.report

	var b strings.Builder
	b.WriteString(theme.Title.Render(s.module.Title))
	if s.module.Description != "" {
		b.WriteString("\n")
		b.WriteString(theme.Dim.Render(s.module.Description))
	}
	b.WriteString("\n\n")

	b.WriteString(theme.TableHeader.Render("Last session"))
	if r.HasSession {
		o := r.LastSession.Overall
		b.WriteString(theme.Dim.Render(fmt.Sprintf("  %s · %d/%d · %d%%",
			r.Session.FinishedAt.Local().Format("2006-01-02 15:04"), o.Correct, o.Total, o.Percent)))
	}
	b.WriteString("\n")
	b.WriteString(components.StatTable(results.Rows(r.LastSession.Subtopics)))
	b.WriteString("\n")

	b.WriteString(theme.TableHeader.Render(fmt.Sprintf("Last %d answers", r.Recent.Overall.Total)))
	if r.Recent.HasEntries {
		b.WriteString(theme.Dim.Render(fmt.Sprintf("  %d%% · %s", r.Recent.Overall.Percent, r.Recent.Tier.Message())))
	}
	b.WriteString("\n")
	b.WriteString(components.StatTable(results.Rows(r.Recent.Subtopics)))

	if s.confirmReset {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render(fmt.Sprintf("Clear all history for %s? [y/N]", s.module.Title)))
	}
	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(s.notice))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(b.String()))
}
