// Package stats aggregates answer history into per-subtopic results.
package stats

import (
	"context"
	"sort"

	"github.com/abhisek/repaso/internal/history"
)

// SubtopicStat is the tally for one subtopic.
type SubtopicStat struct {
	Subtopic string
	Correct  int
	Total    int
	Percent  int
}

// Percent returns correct/total as a whole percentage, rounding halves
// up. A zero total yields 0.
func Percent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*correct + total) / (2 * total)
}

// BySubtopic groups entries by subtopic, sorted by subtopic name.
func BySubtopic(entries []history.Entry) []SubtopicStat {
	idx := make(map[string]int)
	var out []SubtopicStat
	for _, e := range entries {
		sub := e.SubtopicOrDefault()
		i, ok := idx[sub]
		if !ok {
			i = len(out)
			idx[sub] = i
			out = append(out, SubtopicStat{Subtopic: sub})
		}
		out[i].Total++
		if e.Correct {
			out[i].Correct++
		}
	}
	for i := range out {
		out[i].Percent = Percent(out[i].Correct, out[i].Total)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Subtopic < out[j].Subtopic })
	return out
}

// Overall totals entries across all subtopics. Subtopic is left empty.
func Overall(entries []history.Entry) SubtopicStat {
	var s SubtopicStat
	for _, e := range entries {
		s.Total++
		if e.Correct {
			s.Correct++
		}
	}
	s.Percent = Percent(s.Correct, s.Total)
	return s
}

// HistorySource is the read side of the history ledger.
type HistorySource interface {
	Entries(ctx context.Context, module string) []history.Entry
	LastSession(ctx context.Context, module string) (history.SessionRecord, bool)
}

// View is an aggregation over one set of entries.
type View struct {
	Overall    SubtopicStat
	Subtopics  []SubtopicStat
	Tier       Tier
	HasEntries bool
}

// NewView aggregates entries.
func NewView(entries []history.Entry) View {
	overall := Overall(entries)
	return View{
		Overall:    overall,
		Subtopics:  BySubtopic(entries),
		Tier:       TierFor(overall.Percent),
		HasEntries: len(entries) > 0,
	}
}

// Report holds the two views shown for a module: the most recent finished
// session and the retained answer window.
type Report struct {
	Module      string
	LastSession View
	Recent      View

	// Session is the last-session record, zero if HasSession is false.
	Session    history.SessionRecord
	HasSession bool
}

// ModuleReport builds the report for module from its ledger.
func ModuleReport(ctx context.Context, src HistorySource, module string) Report {
	r := Report{
		Module: module,
		Recent: NewView(src.Entries(ctx, module)),
	}
	if rec, ok := src.LastSession(ctx, module); ok {
		r.Session = rec
		r.HasSession = true
		r.LastSession = NewView(rec.Entries)
	}
	return r
}
