package session

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyBatch is returned when a session would start with no questions.
	ErrEmptyBatch = errors.New("no questions available for this session")

	// ErrAlreadyAnswered is returned when the current question was answered.
	ErrAlreadyAnswered = errors.New("question already answered")

	// ErrFinished is returned when answering after the last question.
	ErrFinished = errors.New("session finished")
)

// ErrInvalidSelection is returned for an option index outside the current
// question's options. Nothing is recorded.
type ErrInvalidSelection struct {
	Choice  int
	Options int
}

func (e *ErrInvalidSelection) Error() string {
	return fmt.Sprintf("invalid selection %d: question has %d options", e.Choice, e.Options)
}
