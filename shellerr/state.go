package shellerr

import "fmt"

// NoParentState is returned on an attempt to exit the root state. The
// current state is left unchanged; the error is user-visible and non-fatal.
func NoParentState(state string) *Error {
	return &Error{
		Kind:    KindNoParentState,
		Message: fmt.Sprintf("already at top level, cannot exit '%s'", state),
	}
}

// UnknownState is returned when a transition names a state that was never
// registered.
func UnknownState(name string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("no such state '%s'", name),
	}
}
