// Package screentest builds in-memory services for screen tests.
package screentest

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/abhisek/repaso/internal/history"
	"github.com/abhisek/repaso/internal/questionbank"
	"github.com/abhisek/repaso/internal/screen"
	"github.com/abhisek/repaso/internal/selector"
	"github.com/abhisek/repaso/internal/store"
)

// Questions builds n questions for module, alternating between two
// subtopics. Option 0 is always correct.
func Questions(module string, n int) []questionbank.Question {
	qs := make([]questionbank.Question, n)
	for i := range qs {
		sub := "Alpha"
		if i%2 == 1 {
			sub = "Beta"
		}
		qs[i] = questionbank.Question{
			ID:           fmt.Sprintf("%s-%d", module, i),
			Module:       module,
			Subtopic:     sub,
			Difficulty:   questionbank.DifficultyBasic,
			Text:         fmt.Sprintf("Question %d?", i),
			Options:      []string{"right", "wrong"},
			CorrectIndex: 0,
			Explanation:  "Because.",
		}
	}
	return qs
}

// Services returns services over an in-memory ledger. counts maps module
// keys to question counts; modules are listed in key order of mods.
func Services(mods []string, counts map[string]int) *screen.Services {
	descs := make([]questionbank.ModuleDescriptor, len(mods))
	questions := make(map[string][]questionbank.Question)
	for i, key := range mods {
		descs[i] = questionbank.ModuleDescriptor{Key: key, Title: "Module " + key}
		if counts[key] > 0 {
			questions[key] = Questions(key, counts[key])
		}
	}

	bank := questionbank.NewBank(descs, questions)
	ledger := history.New(store.NewMemoryKV(), zerolog.Nop())
	rng := rand.New(rand.NewPCG(1, 2))

	return &screen.Services{
		Ctx:          context.Background(),
		Bank:         bank,
		Selector:     selector.New(bank, ledger, rng, selector.DefaultConfig()),
		Ledger:       ledger,
		DefaultCount: 3,
	}
}
