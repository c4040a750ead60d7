package selector

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/repaso/internal/history"
	"github.com/abhisek/repaso/internal/questionbank"
	"github.com/abhisek/repaso/internal/store"
)

// constRand always returns the same value.
type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// makeQuestions builds count questions per subtopic in the given order.
func makeQuestions(module string, perSubtopic map[string]int) []questionbank.Question {
	subs := make([]string, 0, len(perSubtopic))
	for sub := range perSubtopic {
		subs = append(subs, sub)
	}
	sort.Strings(subs)

	var qs []questionbank.Question
	for _, sub := range subs {
		for i := 0; i < perSubtopic[sub]; i++ {
			qs = append(qs, questionbank.Question{
				ID:           fmt.Sprintf("%s-%d", sub, i),
				Module:       module,
				Subtopic:     sub,
				Difficulty:   questionbank.DifficultyBasic,
				Text:         fmt.Sprintf("%s question %d", sub, i),
				Options:      []string{"a", "b", "c", "d"},
				CorrectIndex: i % 4,
			})
		}
	}
	return qs
}

type fixture struct {
	bank   *questionbank.Bank
	ledger *history.Ledger
	sel    *Selector
}

func newFixture(t *testing.T, qs []questionbank.Question, seed uint64) *fixture {
	t.Helper()
	bank := questionbank.NewBank(
		[]questionbank.ModuleDescriptor{{Key: "m", Title: "M"}, {Key: "empty", Title: "Empty"}},
		map[string][]questionbank.Question{"m": qs},
	)
	ledger := history.New(store.NewMemoryKV(), zerolog.Nop())
	return &fixture{
		bank:   bank,
		ledger: ledger,
		sel:    New(bank, ledger, seeded(seed), DefaultConfig()),
	}
}

func ids(qs []questionbank.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func countBySubtopic(qs []questionbank.Question) map[string]int {
	out := make(map[string]int)
	for _, q := range qs {
		out[q.Subtopic]++
	}
	return out
}

func TestSelectBatch_FourQuestionScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, makeQuestions("m", map[string]int{"X": 4}), 1)

	first, err := f.sel.SelectBatch(ctx, "m", 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.ElementsMatch(t, ids(first), keys(f.ledger.Seen(ctx, "m")), "batch becomes the seen set")

	second, err := f.sel.SelectBatch(ctx, "m", 4)
	require.NoError(t, err)
	require.Len(t, second, 2, "only the unseen remainder is returned")
	assert.Empty(t, intersect(ids(first), ids(second)))
	assert.Len(t, f.ledger.Seen(ctx, "m"), 4)

	third, err := f.sel.SelectBatch(ctx, "m", 2)
	require.NoError(t, err)
	require.Len(t, third, 2)
	assert.ElementsMatch(t, ids(third), keys(f.ledger.Seen(ctx, "m")), "seen set restarted")
}

func TestSelectBatch_Coverage(t *testing.T) {
	ctx := context.Background()
	pool := makeQuestions("m", map[string]int{"A": 3, "B": 2, "C": 2})
	f := newFixture(t, pool, 7)
	all := ids(pool)

	// Whole-pool batches are full permutations, cycle after cycle.
	for cycle := 0; cycle < 3; cycle++ {
		batch, err := f.sel.SelectBatch(ctx, "m", Size(len(pool)))
		require.NoError(t, err)
		assert.ElementsMatch(t, all, ids(batch), "cycle %d", cycle)
	}

	// Partial batches never repeat an id until the pool is exhausted.
	require.NoError(t, f.ledger.Reset(ctx, "m"))
	got := map[string]int{}
	for _, size := range []Size{3, 3, 3} {
		batch, err := f.sel.SelectBatch(ctx, "m", size)
		require.NoError(t, err)
		for _, id := range ids(batch) {
			got[id]++
		}
	}
	assert.Len(t, got, len(pool))
	for id, n := range got {
		assert.Equal(t, 1, n, "id %s repeated before exhaustion", id)
	}

	// The third batch above only had one unseen question left.
	next, err := f.sel.SelectBatch(ctx, "m", All)
	require.NoError(t, err)
	assert.ElementsMatch(t, all, ids(next))
}

func TestSelectBatch_SaturationBound(t *testing.T) {
	ctx := context.Background()
	pool := makeQuestions("m", map[string]int{"A": 10, "B": 10, "C": 10})

	for n := 1; n <= 12; n++ {
		for seed := uint64(0); seed < 20; seed++ {
			f := newFixture(t, pool, seed)
			for i := 0; i < 10; i++ {
				f.ledger.RecordAnswer(ctx, "m", history.Entry{QuestionID: "a", Subtopic: "A", Correct: false})
				f.ledger.RecordAnswer(ctx, "m", history.Entry{QuestionID: "b", Subtopic: "B", Correct: true})
				f.ledger.RecordAnswer(ctx, "m", history.Entry{QuestionID: "c", Subtopic: "C", Correct: true})
			}

			batch, err := f.sel.SelectBatch(ctx, "m", Size(n))
			require.NoError(t, err)
			require.Len(t, batch, n)
			limit := (n + 1) / 2
			for sub, c := range countBySubtopic(batch) {
				assert.LessOrEqual(t, c, limit, "n=%d seed=%d subtopic=%s", n, seed, sub)
			}
		}
	}
}

func TestSelectBatch_SingleSubtopicFillsBeyondCap(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, makeQuestions("m", map[string]int{"Only": 6}), 3)

	batch, err := f.sel.SelectBatch(ctx, "m", 5)
	require.NoError(t, err)
	require.Len(t, batch, 5)
	assert.Equal(t, 5, countBySubtopic(batch)["Only"])
}

func TestSelectBatch_SkewsTowardWeakSubtopics(t *testing.T) {
	ctx := context.Background()
	pool := makeQuestions("m", map[string]int{"Tasas": 10, "Seguros": 10, "Riesgo": 10})
	f := newFixture(t, pool, 42)
	for i := 0; i < 10; i++ {
		f.ledger.RecordAnswer(ctx, "m", history.Entry{QuestionID: "t", Subtopic: "Tasas", Correct: true})
		f.ledger.RecordAnswer(ctx, "m", history.Entry{QuestionID: "s", Subtopic: "Seguros", Correct: false})
	}

	w := f.ledger.SubtopicWeights(ctx, "m")
	require.InDelta(t, 0.3, w.Of("Tasas"), 1e-9)
	require.InDelta(t, 1.0, w.Of("Seguros"), 1e-9)

	const trials = 300
	totals := map[string]int{}
	for i := 0; i < trials; i++ {
		f.ledger.ResetSeen(ctx, "m")
		batch, err := f.sel.SelectBatch(ctx, "m", 10)
		require.NoError(t, err)
		for sub, c := range countBySubtopic(batch) {
			totals[sub] += c
		}
	}

	// Expected per batch is roughly 4.5 Seguros, 3.5 Riesgo, 2 Tasas.
	assert.Greater(t, totals["Seguros"], totals["Riesgo"])
	assert.Greater(t, totals["Riesgo"], totals["Tasas"])
	assert.Greater(t, totals["Seguros"], 2*totals["Tasas"])
}

func TestSelectBatch_ZeroSize(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, makeQuestions("m", map[string]int{"X": 3}), 1)

	batch, err := f.sel.SelectBatch(ctx, "m", 0)
	require.NoError(t, err)
	assert.Empty(t, batch)
	assert.Empty(t, f.ledger.Seen(ctx, "m"))
}

func TestSelectBatch_EmptyPool(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, makeQuestions("m", map[string]int{"X": 3}), 1)

	batch, err := f.sel.SelectBatch(ctx, "empty", 10)
	require.NoError(t, err)
	assert.NotNil(t, batch)
	assert.Empty(t, batch)
}

func TestSelectBatch_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, makeQuestions("m", map[string]int{"X": 3}), 1)

	_, err := f.sel.SelectBatch(ctx, "nope", 5)
	assert.ErrorIs(t, err, ErrUnknownModule)
	assert.ErrorIs(t, err, questionbank.ErrUnknownModule)

	_, err = f.sel.SelectBatch(ctx, "m", -5)
	assert.Error(t, err)
	assert.Empty(t, f.ledger.Seen(ctx, "m"))
}

func TestSelectBatch_DeterministicForSeed(t *testing.T) {
	ctx := context.Background()
	pool := makeQuestions("m", map[string]int{"A": 5, "B": 5})

	a, err := newFixture(t, pool, 99).sel.SelectBatch(ctx, "m", 6)
	require.NoError(t, err)
	b, err := newFixture(t, pool, 99).sel.SelectBatch(ctx, "m", 6)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSelectBatch_OptionsShuffledConsistently(t *testing.T) {
	ctx := context.Background()
	pool := makeQuestions("m", map[string]int{"A": 8})
	byID := map[string]questionbank.Question{}
	for _, q := range pool {
		byID[q.ID] = q
	}
	f := newFixture(t, pool, 5)

	batch, err := f.sel.SelectBatch(ctx, "m", All)
	require.NoError(t, err)
	for _, q := range batch {
		orig := byID[q.ID]
		assert.Equal(t, orig.CorrectOption(), q.CorrectOption(), q.ID)
		assert.ElementsMatch(t, orig.Options, q.Options)
	}
}

func TestDraw_BudgetExhaustionFallsBack(t *testing.T) {
	pool := makeQuestions("m", map[string]int{"A": 4, "B": 1})
	s := New(nil, nil, constRand(0), Config{MaxDrawAttempts: 1})

	chosen, attempts, fellBack := s.draw(pool, 4, history.Weights{})
	assert.Equal(t, 1, attempts)
	assert.True(t, fellBack)
	assert.Equal(t, []string{"A-0", "A-1", "A-2", "A-3"}, ids(chosen))
}

func TestDraw_StopsWhenOnlySaturatedRemain(t *testing.T) {
	pool := makeQuestions("m", map[string]int{"X": 6})
	s := New(nil, nil, constRand(0), DefaultConfig())

	chosen, attempts, fellBack := s.draw(pool, 4, history.Weights{})
	assert.Len(t, chosen, 4)
	assert.True(t, fellBack)
	assert.Less(t, attempts, DefaultMaxDrawAttempts)
}

func TestWeightedIndex(t *testing.T) {
	qs := makeQuestions("m", map[string]int{"A": 1, "B": 1})
	w := history.Weights{"A": 0.3, "B": 1.0}

	assert.Equal(t, 0, weightedIndex(constRand(0), qs, w))
	assert.Equal(t, 0, weightedIndex(constRand(0.2), qs, w))
	assert.Equal(t, 1, weightedIndex(constRand(0.5), qs, w))
	assert.Equal(t, 1, weightedIndex(constRand(0.9999999), qs, w))
}

func TestNew_DefaultsRand(t *testing.T) {
	s := New(nil, nil, nil, Config{})
	assert.NotNil(t, s.rng)
	assert.Equal(t, DefaultMaxDrawAttempts, s.cfg.MaxDrawAttempts)
}

func keys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func intersect(a, b []string) []string {
	set := map[string]bool{}
	for _, x := range a {
		set[x] = true
	}
	var out []string
	for _, x := range b {
		if set[x] {
			out = append(out, x)
		}
	}
	return out
}
