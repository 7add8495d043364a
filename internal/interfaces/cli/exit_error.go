package cli

import "fmt"

// ExitError signals a specific process exit code without forcing os.Exit in
// RunE handlers. The collector's own exit code travels through cobra this way
// so the launcher can propagate it verbatim.
type ExitError struct {
	Code int
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
