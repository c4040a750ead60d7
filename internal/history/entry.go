package history

import (
	"time"

	"github.com/abhisek/repaso/internal/questionbank"
)

// MaxEntries is the number of ledger entries retained per module.
const MaxEntries = 100

// Entry is one recorded answer outcome.
type Entry struct {
	QuestionID string                  `json:"questionId"`
	Subtopic   string                  `json:"subtopic"`
	Difficulty questionbank.Difficulty `json:"difficulty,omitempty"`
	Correct    bool                    `json:"correct"`
	Timestamp  time.Time               `json:"timestamp"`
}

// NewEntry builds an entry for an answer to q.
func NewEntry(q questionbank.Question, correct bool, at time.Time) Entry {
	return Entry{
		QuestionID: q.ID,
		Subtopic:   q.Subtopic,
		Difficulty: q.Difficulty,
		Correct:    correct,
		Timestamp:  at,
	}
}

// SubtopicOrDefault returns the entry's subtopic, or the bank default for
// entries written without one.
func (e Entry) SubtopicOrDefault() string {
	if e.Subtopic == "" {
		return questionbank.DefaultSubtopic
	}
	return e.Subtopic
}

// SessionRecord is the persisted outcome of the most recent finished
// session for a module. Entries are in answer order.
type SessionRecord struct {
	SessionID  string    `json:"sessionId"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Entries    []Entry   `json:"entries"`
}
