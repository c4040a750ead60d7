package stats

// Tier is a coarse performance band.
type Tier int

const (
	TierNeedsImprovement Tier = iota
	TierGood
	TierExcellent
)

// Band lower bounds, in percent.
const (
	ExcellentThreshold = 90
	GoodThreshold      = 70
)

// TierFor returns the band for a percentage.
func TierFor(percent int) Tier {
	switch {
	case percent >= ExcellentThreshold:
		return TierExcellent
	case percent >= GoodThreshold:
		return TierGood
	default:
		return TierNeedsImprovement
	}
}

func (t Tier) String() string {
	switch t {
	case TierExcellent:
		return "excellent"
	case TierGood:
		return "good"
	default:
		return "needs-improvement"
	}
}

// Message is the encouragement shown with a result.
func (t Tier) Message() string {
	switch t {
	case TierExcellent:
		return "Excellent! You have a strong command of this topic."
	case TierGood:
		return "Good work! You have solid knowledge."
	default:
		return "Keep reviewing. Practice makes progress!"
	}
}
