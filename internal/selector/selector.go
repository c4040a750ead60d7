// Package selector builds question batches for a quiz session.
//
// A batch favours subtopics the learner gets wrong, never lets a single
// subtopic take more than half of the batch when others are available,
// and works through the whole pool before repeating a question.
package selector

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abhisek/repaso/internal/history"
	"github.com/abhisek/repaso/internal/logging"
	"github.com/abhisek/repaso/internal/questionbank"
)

// DefaultMaxDrawAttempts bounds the weighted draws made for one batch.
const DefaultMaxDrawAttempts = 5000

// ErrUnknownModule is returned for modules the question source does not have.
var ErrUnknownModule = questionbank.ErrUnknownModule

// Rand supplies uniform floats in [0, 1). *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// QuestionSource provides the question pool of each module.
type QuestionSource interface {
	Has(module string) bool
	Questions(module string) []questionbank.Question
}

// SeenTracker is the part of the history ledger the selector reads and
// updates.
type SeenTracker interface {
	Seen(ctx context.Context, module string) map[string]struct{}
	ResetSeen(ctx context.Context, module string)
	MarkSeen(ctx context.Context, module string, ids ...string)
	SubtopicWeights(ctx context.Context, module string) history.Weights
}

// Config tunes batch construction.
type Config struct {
	// MaxDrawAttempts is the total number of weighted draws allowed per
	// batch before the remaining slots are filled without the subtopic cap.
	MaxDrawAttempts int
}

// DefaultConfig returns the standard selector configuration.
func DefaultConfig() Config {
	return Config{MaxDrawAttempts: DefaultMaxDrawAttempts}
}

// Selector picks question batches. It is not safe for concurrent use.
type Selector struct {
	source QuestionSource
	ledger SeenTracker
	rng    Rand
	cfg    Config
}

// New creates a Selector. A nil rng uses a time-seeded PCG source.
func New(source QuestionSource, ledger SeenTracker, rng Rand, cfg Config) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
	}
	if cfg.MaxDrawAttempts <= 0 {
		cfg.MaxDrawAttempts = DefaultMaxDrawAttempts
	}
	return &Selector{source: source, ledger: ledger, rng: rng, cfg: cfg}
}

// SelectBatch returns up to size questions from module, in presentation
// order with options already shuffled. The chosen ids are added to the
// module's seen set once the batch is complete.
//
// A module with no questions yields an empty batch and no error.
func (s *Selector) SelectBatch(ctx context.Context, module string, size Size) ([]questionbank.Question, error) {
	if !s.source.Has(module) {
		return nil, fmt.Errorf("select batch for %q: %w", module, ErrUnknownModule)
	}
	if size < 0 && size != All {
		return nil, fmt.Errorf("select batch for %q: invalid size %d", module, size)
	}
	if size == 0 {
		return []questionbank.Question{}, nil
	}

	log := logging.FromContext(ctx).With().Str("module", module).Logger()

	pool := s.source.Questions(module)
	if len(pool) == 0 {
		log.Warn().Msg("module has no questions")
		return []questionbank.Question{}, nil
	}

	candidates := unseen(pool, s.ledger.Seen(ctx, module))
	if len(candidates) == 0 {
		log.Debug().Int("pool", len(pool)).Msg("pool exhausted; resetting seen set")
		s.ledger.ResetSeen(ctx, module)
		candidates = append([]questionbank.Question(nil), pool...)
	}

	n := len(candidates)
	if size != All && int(size) < n {
		n = int(size)
	}

	Shuffle(s.rng, candidates)
	weights := s.ledger.SubtopicWeights(ctx, module)

	chosen, attempts, fellBack := s.draw(candidates, n, weights)

	Shuffle(s.rng, chosen)
	ids := make([]string, len(chosen))
	for i := range chosen {
		chosen[i] = ShuffleOptions(chosen[i], s.rng)
		ids[i] = chosen[i].ID
	}
	s.ledger.MarkSeen(ctx, module, ids...)

	log.Debug().
		Stringer("requested", size).
		Int("candidates", len(candidates)).
		Int("selected", len(chosen)).
		Int("attempts", attempts).
		Bool("fallback", fellBack).
		Msg("batch selected")

	return chosen, nil
}

// draw picks n questions from candidates by weighted sampling without
// replacement. A subtopic holding ceil(n/2) picks is saturated and further
// draws landing on it are discarded. When the attempt budget runs out, or
// only saturated subtopics remain, the rest is filled from the remaining
// candidates in order, ignoring the cap.
func (s *Selector) draw(candidates []questionbank.Question, n int, weights history.Weights) (chosen []questionbank.Question, attempts int, fellBack bool) {
	limit := (n + 1) / 2
	remaining := append([]questionbank.Question(nil), candidates...)
	chosen = make([]questionbank.Question, 0, n)
	picks := make(map[string]int)

	for len(chosen) < n && len(remaining) > 0 && attempts < s.cfg.MaxDrawAttempts {
		attempts++
		idx := weightedIndex(s.rng, remaining, weights)
		sub := subtopicOf(remaining[idx])
		if picks[sub] >= limit {
			if allSaturated(remaining, picks, limit) {
				break
			}
			continue
		}
		chosen = append(chosen, remaining[idx])
		picks[sub]++
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}

	for len(chosen) < n && len(remaining) > 0 {
		fellBack = true
		chosen = append(chosen, remaining[0])
		remaining = remaining[1:]
	}
	return chosen, attempts, fellBack
}

// weightedIndex draws an index into qs with probability proportional to
// the weight of each question's subtopic.
func weightedIndex(r Rand, qs []questionbank.Question, weights history.Weights) int {
	var total float64
	for _, q := range qs {
		total += weights.Of(subtopicOf(q))
	}

	target := r.Float64() * total
	var cum float64
	for i, q := range qs {
		cum += weights.Of(subtopicOf(q))
		if cum > target {
			return i
		}
	}
	// Rounding can leave target at the very top of the range.
	return len(qs) - 1
}

func allSaturated(qs []questionbank.Question, picks map[string]int, limit int) bool {
	for _, q := range qs {
		if picks[subtopicOf(q)] < limit {
			return false
		}
	}
	return true
}

func unseen(pool []questionbank.Question, seen map[string]struct{}) []questionbank.Question {
	out := make([]questionbank.Question, 0, len(pool))
	for _, q := range pool {
		if _, ok := seen[q.ID]; !ok {
			out = append(out, q)
		}
	}
	return out
}

func subtopicOf(q questionbank.Question) string {
	if q.Subtopic == "" {
		return questionbank.DefaultSubtopic
	}
	return q.Subtopic
}
