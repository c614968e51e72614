package mfield

import (
	"fmt"
)

type (
	// ErrSizeMismatch is returned when a payload is shorter than the
	// chosen encoding requires.
	ErrSizeMismatch struct {
		What string
		Need int
		Have int
	}
)

func (e ErrSizeMismatch) Error() string {
	return fmt.Sprintf("%s: need %d bytes, have %d", e.What, e.Need, e.Have)
}
