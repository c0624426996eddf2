package poller

import "fmt"

// panicError carries a recovered panic out of a pass as an ordinary error.
type panicError struct {
	value any
}

func (e *panicError) Error() string {
	return fmt.Sprintf("pass panicked: %v", e.value)
}
