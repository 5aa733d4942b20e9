package anatomy

import (
	"fmt"

	"github.com/pkg/errors"
)

// MissingDataError is returned when a landmark, probe or tracker series needed to
// build a frame is absent. It is an expected outcome, callers usually skip the
// sample or test rather than abort.
type MissingDataError struct {
	What string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("missing data: %s", e.What)
}

// NewMissingDataError returns a MissingDataError describing what is absent.
func NewMissingDataError(format string, args ...interface{}) error {
	return &MissingDataError{What: fmt.Sprintf(format, args...)}
}

// IsMissingData reports whether err, or any error it wraps, is a MissingDataError.
func IsMissingData(err error) bool {
	var m *MissingDataError
	return errors.As(err, &m)
}
