package session

import (
	"time"

	"github.com/abhisek/repaso/internal/stats"
)

// Summary holds the data displayed on the results screen.
type Summary struct {
	SessionID string
	Module    string
	Correct   int
	Incorrect int
	Total     int
	Percent   int
	Tier      stats.Tier
	Subtopics []stats.SubtopicStat
	Duration  time.Duration
}

// Summary scores the session so far. Percent is over the batch size, so
// unanswered questions count against it.
func (s *Session) Summary() Summary {
	correct, incorrect := s.Score()
	end := s.finishedAt
	if end.IsZero() {
		end = s.now()
	}
	pct := stats.Percent(correct, len(s.questions))
	return Summary{
		SessionID: s.ID,
		Module:    s.Module,
		Correct:   correct,
		Incorrect: incorrect,
		Total:     len(s.questions),
		Percent:   pct,
		Tier:      stats.TierFor(pct),
		Subtopics: stats.BySubtopic(s.entries),
		Duration:  end.Sub(s.startedAt),
	}
}
