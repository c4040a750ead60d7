package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/repaso/internal/questionbank"
	"github.com/abhisek/repaso/internal/router"
	"github.com/abhisek/repaso/internal/screen"
	"github.com/abhisek/repaso/internal/session"
	"github.com/abhisek/repaso/internal/stats"
	"github.com/abhisek/repaso/internal/ui/components"
	"github.com/abhisek/repaso/internal/ui/layout"
	"github.com/abhisek/repaso/internal/ui/theme"
)

// ResultsScreen shows how a finished session went, next to the module's
// recent answer window.
type ResultsScreen struct {
	svc     *screen.Services
	module  questionbank.ModuleDescriptor
	summary session.Summary
	recent  stats.View
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.BackInterceptor = (*ResultsScreen)(nil)

// New creates a new ResultsScreen.
func New(svc *screen.Services, module questionbank.ModuleDescriptor, summary session.Summary) *ResultsScreen {
	return &ResultsScreen{svc: svc, module: module, summary: summary}
}

func (s *ResultsScreen) Init() tea.Cmd {
	s.recent = stats.ModuleReport(s.svc.Context(), s.svc.Ledger, s.module.Key).Recent
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) InterceptsBack() bool { return true }

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Modules"},
		{Key: "Esc", Description: "Modules"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	sum := s.summary
	cw := min(max(width-8, 20), 72)

	var b strings.Builder
	b.WriteString(layout.Centered(cw, theme.Title, "Quiz complete!"))
	b.WriteString("\n\n")

	pct := lipgloss.NewStyle().Foreground(theme.PercentColor(sum.Percent)).Bold(true)
	b.WriteString(layout.Centered(cw, pct, fmt.Sprintf("%d%%", sum.Percent)))
	b.WriteString("\n")
	b.WriteString(layout.Centered(cw, theme.Body, sum.Tier.Message()))
	b.WriteString("\n")
	b.WriteString(layout.Centered(cw, theme.Dim,
		fmt.Sprintf("You answered %d of %d questions correctly.", sum.Correct, sum.Total)))
	b.WriteString("\n\n")

	b.WriteString(theme.TableHeader.Render("This session"))
	b.WriteString("\n")
	b.WriteString(components.StatTable(Rows(sum.Subtopics)))
	b.WriteString("\n")

	b.WriteString(theme.TableHeader.Render(fmt.Sprintf("Last %d answers", s.recent.Overall.Total)))
	b.WriteString("\n")
	b.WriteString(components.StatTable(Rows(s.recent.Subtopics)))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(b.String()))
}

// Rows converts subtopic stats to table rows.
func Rows(subtopics []stats.SubtopicStat) []components.StatRow {
	rows := make([]components.StatRow, len(subtopics))
	for i, st := range subtopics {
		rows[i] = components.StatRow{
			Label:   st.Subtopic,
			Correct: st.Correct,
			Total:   st.Total,
			Percent: st.Percent,
		}
	}
	return rows
}
