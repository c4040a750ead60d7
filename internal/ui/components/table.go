package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/repaso/internal/ui/theme"
)

// StatRow is one line of a StatTable.
type StatRow struct {
	Label   string
	Correct int
	Total   int
	Percent int
}

// StatTable renders rows as aligned "label  correct/total  pct%" lines,
// with the percentage colored by band.
func StatTable(rows []StatRow) string {
	if len(rows) == 0 {
		return theme.Dim.Render("  No answers yet.")
	}

	labelWidth := len("Subtopic")
	for _, r := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(r.Label))
	}

	var b strings.Builder
	b.WriteString(theme.TableHeader.Render(fmt.Sprintf("  %-*s  %7s  %5s", labelWidth, "Subtopic", "Score", "%")))
	b.WriteString("\n")
	for _, r := range rows {
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(r.Label))
		score := fmt.Sprintf("%d/%d", r.Correct, r.Total)
		pct := lipgloss.NewStyle().Foreground(theme.PercentColor(r.Percent)).Render(fmt.Sprintf("%4d%%", r.Percent))
		b.WriteString(fmt.Sprintf("  %s%s  %7s  %s\n", theme.Body.Render(r.Label), pad, score, pct))
	}
	return b.String()
}
