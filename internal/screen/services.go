package screen

import (
	"context"

	"github.com/abhisek/repaso/internal/history"
	"github.com/abhisek/repaso/internal/questionbank"
	"github.com/abhisek/repaso/internal/selector"
)

// Services holds what screens need to run quizzes. Ctx carries the
// logger and is used for ledger and selector calls.
type Services struct {
	Ctx          context.Context
	Bank         *questionbank.Bank
	Selector     *selector.Selector
	Ledger       *history.Ledger
	DefaultCount int
}

// Context returns s.Ctx, or context.Background if unset.
func (s *Services) Context() context.Context {
	if s.Ctx == nil {
		return context.Background()
	}
	return s.Ctx
}
