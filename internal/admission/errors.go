package admission

import (
	"errors"
	"fmt"
)

// ValidationError is a fail-fast parameter error raised before any I/O.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ErrNoValidResults means every supplied result file failed to load.
var ErrNoValidResults = errors.New("no valid results")
