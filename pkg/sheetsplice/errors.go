package sheetsplice

import (
	"errors"
	"fmt"

	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
)

// ErrInvalidEdit indicates an edit whose positions or count fall outside
// the worksheet bounds. The worksheet is never touched.
var ErrInvalidEdit = errors.New("invalid edit")

// EditError describes why an edit was rejected.
type EditError struct {
	Edit   models.Edit
	Reason string
}

func (e *EditError) Error() string {
	return fmt.Sprintf("invalid edit (%s): %s", e.Edit, e.Reason)
}

func (e *EditError) Unwrap() error {
	return ErrInvalidEdit
}

// NewEditError creates a new EditError.
func NewEditError(edit models.Edit, format string, args ...any) *EditError {
	return &EditError{
		Edit:   edit,
		Reason: fmt.Sprintf(format, args...),
	}
}

// PhaseError represents an internal failure during one phase of an edit.
// The worksheet is left as it was before the edit.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("structural edit failed while %s: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}
