package registry

import (
	"errors"
	"fmt"
)

// ErrChangeOnUnopen is returned when a change targets a document that was
// never opened, or has been deleted.
var ErrChangeOnUnopen = errors.New("tried to change a document that has not been opened")

// ChangeError is returned when the events of a change request could not be
// applied. Err is the *document.Error from the failing event.
type ChangeError struct {
	ID      string
	Version int
	Err     error
}

func (e *ChangeError) Error() string {
	return fmt.Sprintf("failed to apply change to %q at version %d: %v", e.ID, e.Version, e.Err)
}

func (e *ChangeError) Unwrap() error {
	return e.Err
}
