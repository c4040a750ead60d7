package history

const (
	// DefaultWeight applies to subtopics with no recorded answers.
	DefaultWeight = 0.6

	// MinWeight is the weight of a subtopic answered perfectly.
	MinWeight = 0.3

	// weightSpan scales the error rate onto [MinWeight, 1.0].
	weightSpan = 0.7
)

// Weights maps subtopic to selection weight in [MinWeight, 1.0].
type Weights map[string]float64

// Of returns the weight for subtopic, or DefaultWeight if it has no history.
func (w Weights) Of(subtopic string) float64 {
	if v, ok := w[subtopic]; ok {
		return v
	}
	return DefaultWeight
}

// ComputeWeights derives per-subtopic weights from ledger entries
// (most-recent-first). Only the newest MaxEntries entries count.
//
//	weight = 0.3 + (1 - accuracy) * 0.7
func ComputeWeights(entries []Entry) Weights {
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}

	type tally struct{ correct, total int }
	tallies := make(map[string]*tally)
	for _, e := range entries {
		sub := e.SubtopicOrDefault()
		t := tallies[sub]
		if t == nil {
			t = &tally{}
			tallies[sub] = t
		}
		t.total++
		if e.Correct {
			t.correct++
		}
	}

	w := make(Weights, len(tallies))
	for sub, t := range tallies {
		accuracy := float64(t.correct) / float64(t.total)
		w[sub] = MinWeight + (1.0-accuracy)*weightSpan
	}
	return w
}
