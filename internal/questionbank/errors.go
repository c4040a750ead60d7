package questionbank

import (
	"errors"
	"fmt"
)

// Dataset names used in ErrDataUnavailable.
const (
	DatasetQuestions = "questions"
	DatasetModules   = "modules"
)

// ErrUnknownModule is returned when a module key is not in the bank.
var ErrUnknownModule = errors.New("unknown module")

// ErrDataUnavailable indicates a dataset could not be fetched or failed
// validation. The bank cannot be used; no session may start.
type ErrDataUnavailable struct {
	Dataset string
	Err     error
}

func (e *ErrDataUnavailable) Error() string {
	if e.Dataset == "" {
		return fmt.Sprintf("question data unavailable: %v", e.Err)
	}
	return fmt.Sprintf("%s dataset unavailable: %v", e.Dataset, e.Err)
}

func (e *ErrDataUnavailable) Unwrap() error { return e.Err }
