package submission

import (
	"errors"
	"fmt"
)

var (
	// ErrInFlight rejects commands issued while a submission is awaiting the processing service.
	ErrInFlight = errors.New("submission already in flight")
	// ErrInvalidState rejects commands that are not valid in the current phase.
	ErrInvalidState = errors.New("command not valid in current phase")
)

// ValidationError means the video link failed the link rule. No request was sent.
type ValidationError struct {
	Link string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid video link %q", e.Link)
}

// SubmissionError means the processing service could not be reached or refused the link.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("processing request failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

func invalidState(command string, phase Phase) error {
	return fmt.Errorf("%w: %s while %s", ErrInvalidState, command, phase)
}
