package questiongen

import "fmt"

// DuplicateError reports a question whose text matches one already
// accepted in the same pack.
type DuplicateError struct {
	Pregunta string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate question: %.60q", e.Pregunta)
}

// SlotError is a pack slot that failed after all its attempts.
type SlotError struct {
	Index    int
	Attempts int
	Err      error
}

func (e SlotError) Error() string {
	return fmt.Sprintf("slot %d failed after %d attempt(s): %v", e.Index, e.Attempts, e.Err)
}

func (e SlotError) Unwrap() error { return e.Err }
