package session

import "fmt"

// StateError reports an operation invoked while the tracker's state
// forbids it. The tracker is left unchanged; callers must acknowledge
// the failure explicitly instead of having session data silently
// discarded or overwritten.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s: session is %s", e.Op, e.State)
}

// PauseIndexError reports a pause lookup outside the recorded pairs.
type PauseIndexError struct {
	Index int
	Count int
}

func (e *PauseIndexError) Error() string {
	return fmt.Sprintf("pause index %d out of range: %d pause(s) recorded", e.Index, e.Count)
}
