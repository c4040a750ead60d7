package selector

import "github.com/abhisek/repaso/internal/questionbank"

// Shuffle permutes s in place with an unbiased Fisher-Yates shuffle.
func Shuffle[T any](r Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := intN(r, i+1)
		s[i], s[j] = s[j], s[i]
	}
}

// ShuffleOptions returns a copy of q with its options in random order and
// CorrectIndex pointing at the same option it did before. q is not
// modified.
func ShuffleOptions(q questionbank.Question, r Rand) questionbank.Question {
	perm := make([]int, len(q.Options))
	for i := range perm {
		perm[i] = i
	}
	Shuffle(r, perm)

	out := q.Clone()
	for newIdx, oldIdx := range perm {
		out.Options[newIdx] = q.Options[oldIdx]
		if oldIdx == q.CorrectIndex {
			out.CorrectIndex = newIdx
		}
	}
	return out
}

// intN returns a uniform int in [0, n).
func intN(r Rand, n int) int {
	j := int(r.Float64() * float64(n))
	if j >= n {
		j = n - 1
	}
	return j
}
