package questionbank

// DefaultSubtopic is assigned to questions that do not name a subtopic.
const DefaultSubtopic = "General"

// Difficulty is the declared difficulty of a question.
type Difficulty string

const (
	DifficultyBasic        Difficulty = "basic"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Valid reports whether d is one of the known levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBasic, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Question is a single multiple-choice question.
type Question struct {
	// ID is unique within a module.
	ID string

	// Module is the key of the module this question belongs to.
	Module string

	// Subtopic classifies the question within its module. Never empty
	// after loading; defaults to DefaultSubtopic.
	Subtopic string

	// Difficulty defaults to DifficultyBasic.
	Difficulty Difficulty

	// Text is the question prompt.
	Text string

	// Options holds at least two answer choices.
	Options []string

	// CorrectIndex indexes into Options. Any reordering of Options must
	// carry it forward.
	CorrectIndex int

	// Explanation is shown after answering. Optional.
	Explanation string
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// Clone returns a copy of q that shares no slices with it.
func (q Question) Clone() Question {
	q.Options = append([]string(nil), q.Options...)
	return q
}

// ModuleDescriptor is read-only metadata about a module.
type ModuleDescriptor struct {
	Key              string
	Title            string
	Description      string
	Count            int
	SubtopicCounts   map[string]int
	DifficultyCounts map[Difficulty]int
}
