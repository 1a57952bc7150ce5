package card

import "fmt"

// StateError reports builder misuse: a column operation without an open
// column set, or finalizing with one still open. These are deterministic,
// caller-fixable programming errors, never transient failures.
type StateError struct {
	Op     string
	Reason string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("card builder: %s: %s", e.Op, e.Reason)
}
