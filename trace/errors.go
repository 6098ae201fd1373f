package trace

import (
	"errors"
	"fmt"
)

// FormatError describes malformed trace input: a missing signal column,
// an unparsable sample value, or a non-monotonic time column.
type FormatError struct {
	// Line is the 1-based line number in the input, 0 if the error
	// concerns the file as a whole
	Line int

	// Column is the column name involved, empty if not applicable
	Column string

	// Msg describes what was wrong
	Msg string
}

func (e *FormatError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("line %d: column %q: %s", e.Line, e.Column, e.Msg)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	case e.Column != "":
		return fmt.Sprintf("column %q: %s", e.Column, e.Msg)
	default:
		return e.Msg
	}
}

// IsFormatError returns true if the error is (or wraps) a *FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
