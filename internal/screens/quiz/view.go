package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/repaso/internal/ui/components"
	"github.com/abhisek/repaso/internal/ui/layout"
	"github.com/abhisek/repaso/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.showingQuitConfirm {
		return renderQuitConfirm(width)
	}

	cw := min(max(width-8, 20), 80)
	idx, total := s.sess.Position()
	q := s.question

	var b strings.Builder

	// Subtopic and progress.
	b.WriteString(theme.Subtopic.Render(q.Subtopic))
	if q.Difficulty != "" {
		b.WriteString(theme.Dim.Render("  ·  " + string(q.Difficulty)))
	}
	b.WriteString("\n")
	b.WriteString(components.StepProgress(idx+1, total, cw).View())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Bold(true).Render(q.Text))
	b.WriteString("\n\n")
	b.WriteString(s.mc.View())

	if s.result != nil {
		b.WriteString("\n")
		b.WriteString(s.renderFeedback(cw))
	}
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(s.errMsg))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(b.String()))
}

func (s *QuizScreen) renderFeedback(width int) string {
	var b strings.Builder
	if s.result.Correct {
		b.WriteString(theme.Correct.Render("Correct! Well done."))
	} else {
		b.WriteString(theme.Incorrect.Render("Incorrect."))
		b.WriteString(theme.Body.Render(fmt.Sprintf(" The correct answer is: %s", s.result.CorrectText)))
	}
	if s.result.Explanation != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Foreground(theme.TextDim).Render(s.result.Explanation))
	}

	next := "Press Enter for the next question"
	if s.sess.IsLast() {
		next = "Press Enter to see your results"
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render(next))
	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered(width, theme.Body.Bold(true), "End quiz early?"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, theme.Dim, "Answers so far are kept."))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Success), "[Y] Yes, end quiz"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Primary), "[N] No, keep going"))
	return b.String()
}
