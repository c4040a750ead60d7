package stats

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/repaso/internal/history"
	"github.com/abhisek/repaso/internal/store"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		correct, total int
		want           int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{1, 2, 50},
		{1, 1, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds up
		{3, 8, 38}, // 37.5 rounds up
		{7, 200, 4},
		{17, 20, 85},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Percent(tt.correct, tt.total), "%d/%d", tt.correct, tt.total)
	}
}

func TestBySubtopic(t *testing.T) {
	entries := []history.Entry{
		{Subtopic: "X", Correct: true},
		{Subtopic: "X", Correct: false},
		{Subtopic: "Y", Correct: true},
	}

	got := BySubtopic(entries)
	assert.Equal(t, []SubtopicStat{
		{Subtopic: "X", Correct: 1, Total: 2, Percent: 50},
		{Subtopic: "Y", Correct: 1, Total: 1, Percent: 100},
	}, got)
}

func TestBySubtopic_SortedAndDefaulted(t *testing.T) {
	entries := []history.Entry{
		{Subtopic: "Seguros"},
		{Subtopic: ""},
		{Subtopic: "Ahorro", Correct: true},
	}

	got := BySubtopic(entries)
	require.Len(t, got, 3)
	assert.Equal(t, "Ahorro", got[0].Subtopic)
	assert.Equal(t, "General", got[1].Subtopic)
	assert.Equal(t, "Seguros", got[2].Subtopic)
	assert.Empty(t, BySubtopic(nil))
}

func TestOverall(t *testing.T) {
	got := Overall([]history.Entry{{Correct: true}, {Correct: true}, {Correct: false}})
	assert.Equal(t, SubtopicStat{Correct: 2, Total: 3, Percent: 67}, got)
	assert.Equal(t, SubtopicStat{}, Overall(nil))
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		percent int
		want    Tier
	}{
		{100, TierExcellent},
		{90, TierExcellent},
		{89, TierGood},
		{70, TierGood},
		{69, TierNeedsImprovement},
		{0, TierNeedsImprovement},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.percent), "%d%%", tt.percent)
	}
	assert.NotEqual(t, TierGood.Message(), TierExcellent.Message())
	assert.Equal(t, "needs-improvement", TierNeedsImprovement.String())
}

func TestModuleReport(t *testing.T) {
	ctx := context.Background()
	l := history.New(store.NewMemoryKV(), zerolog.Nop())

	r := ModuleReport(ctx, l, "m")
	assert.False(t, r.HasSession)
	assert.False(t, r.Recent.HasEntries)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	old := history.Entry{QuestionID: "q0", Subtopic: "Y", Correct: false, Timestamp: now.Add(-time.Hour)}
	l.RecordAnswer(ctx, "m", old)

	session := []history.Entry{
		{QuestionID: "q1", Subtopic: "X", Correct: true, Timestamp: now},
		{QuestionID: "q2", Subtopic: "X", Correct: false, Timestamp: now},
		{QuestionID: "q3", Subtopic: "Y", Correct: true, Timestamp: now},
	}
	for _, e := range session {
		l.RecordAnswer(ctx, "m", e)
	}
	l.SaveLastSession(ctx, "m", history.SessionRecord{SessionID: "s1", Entries: session})

	r = ModuleReport(ctx, l, "m")
	require.True(t, r.HasSession)
	assert.Equal(t, "s1", r.Session.SessionID)
	assert.Equal(t, []SubtopicStat{
		{Subtopic: "X", Correct: 1, Total: 2, Percent: 50},
		{Subtopic: "Y", Correct: 1, Total: 1, Percent: 100},
	}, r.LastSession.Subtopics)
	assert.Equal(t, 67, r.LastSession.Overall.Percent)
	assert.Equal(t, TierNeedsImprovement, r.LastSession.Tier)

	assert.Equal(t, 4, r.Recent.Overall.Total)
	assert.Equal(t, 50, r.Recent.Overall.Percent)
}
