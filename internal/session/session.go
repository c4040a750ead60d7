// Package session runs one quiz over a selected batch of questions.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/repaso/internal/history"
	"github.com/abhisek/repaso/internal/questionbank"
)

// Recorder persists answers and finished sessions. *history.Ledger
// satisfies it.
type Recorder interface {
	RecordAnswer(ctx context.Context, module string, e history.Entry)
	SaveLastSession(ctx context.Context, module string, rec history.SessionRecord)
}

// Options configures a Session.
type Options struct {
	// Recorder receives every answer. Nil records nothing.
	Recorder Recorder

	// Now is the clock. Defaults to time.Now.
	Now func() time.Time

	// ID overrides the generated session id.
	ID string
}

// Result describes a scored answer.
type Result struct {
	Choice       int
	Correct      bool
	CorrectIndex int
	CorrectText  string
	Explanation  string
}

// Session walks a batch of questions in order. It is owned by a single
// goroutine and does no locking.
type Session struct {
	ID     string
	Module string

	questions []questionbank.Question
	index     int
	answered  bool
	entries   []history.Entry
	correct   int

	recorder   Recorder
	now        func() time.Time
	startedAt  time.Time
	finishedAt time.Time
}

// New starts a session over batch, which must not be empty.
func New(module string, batch []questionbank.Question, opts Options) (*Session, error) {
	if len(batch) == 0 {
		return nil, ErrEmptyBatch
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}
	return &Session{
		ID:        opts.ID,
		Module:    module,
		questions: batch,
		recorder:  opts.Recorder,
		now:       opts.Now,
		startedAt: opts.Now(),
	}, nil
}

// Current returns the question being asked. ok is false once the session
// has moved past the last question.
func (s *Session) Current() (questionbank.Question, bool) {
	if s.index >= len(s.questions) {
		return questionbank.Question{}, false
	}
	return s.questions[s.index], true
}

// Position returns the 0-based index of the current question and the
// batch size.
func (s *Session) Position() (index, total int) {
	return s.index, len(s.questions)
}

// Answered reports whether the current question has been answered.
func (s *Session) Answered() bool { return s.answered }

// Score returns the running correct and incorrect counts.
func (s *Session) Score() (correct, incorrect int) {
	return s.correct, len(s.entries) - s.correct
}

// Answer scores choice against the current question and records it.
// Out-of-range choices return *ErrInvalidSelection and leave the session
// unchanged.
func (s *Session) Answer(ctx context.Context, choice int) (Result, error) {
	q, ok := s.Current()
	if !ok {
		return Result{}, ErrFinished
	}
	if s.answered {
		return Result{}, ErrAlreadyAnswered
	}
	if choice < 0 || choice >= len(q.Options) {
		return Result{}, &ErrInvalidSelection{Choice: choice, Options: len(q.Options)}
	}

	correct := choice == q.CorrectIndex
	entry := history.NewEntry(q, correct, s.now())
	s.entries = append(s.entries, entry)
	s.answered = true
	if correct {
		s.correct++
	}
	if s.recorder != nil {
		s.recorder.RecordAnswer(ctx, s.Module, entry)
	}

	return Result{
		Choice:       choice,
		Correct:      correct,
		CorrectIndex: q.CorrectIndex,
		CorrectText:  q.CorrectOption(),
		Explanation:  q.Explanation,
	}, nil
}

// Next moves past the current question once it is answered and reports
// whether another question is now current. It does nothing and returns
// false while the current question is unanswered.
func (s *Session) Next() bool {
	if !s.answered || s.index >= len(s.questions) {
		return false
	}
	s.index++
	s.answered = false
	return s.index < len(s.questions)
}

// IsLast reports whether the current question is the final one.
func (s *Session) IsLast() bool {
	return s.index == len(s.questions)-1
}

// Finished reports whether every question has been answered.
func (s *Session) Finished() bool {
	return len(s.entries) == len(s.questions)
}

// Entries returns the answers recorded so far, in answer order.
func (s *Session) Entries() []history.Entry {
	return append([]history.Entry(nil), s.entries...)
}

// Finish ends the session and saves it as the module's last session. A
// session with no answers is not saved. Calling Finish again only
// returns the summary.
func (s *Session) Finish(ctx context.Context) Summary {
	if s.finishedAt.IsZero() {
		s.finishedAt = s.now()
		if s.recorder != nil && len(s.entries) > 0 {
			s.recorder.SaveLastSession(ctx, s.Module, history.SessionRecord{
				SessionID:  s.ID,
				StartedAt:  s.startedAt,
				FinishedAt: s.finishedAt,
				Entries:    s.Entries(),
			})
		}
	}
	return s.Summary()
}
