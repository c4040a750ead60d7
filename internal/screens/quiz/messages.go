package quiz

// finishMsg ends the quiz and shows results.
type finishMsg struct{}
