package shell

import "errors"

// Sentinel returns from handlers. Any other return value, error or not, is
// the handler's own business: errors are reported to the user, nil is
// ignored.
var (
	// ErrQuit instructs the driver to leave the input loop entirely.
	ErrQuit = errors.New("quit shell")

	// ErrLeaveState instructs the driver to return to the parent state. At
	// the root it quits the shell.
	ErrLeaveState = errors.New("leave state")
)

// Enter returns a sentinel instructing the driver to transition into the
// named state after the handler returns.
func Enter(name string) error {
	return &enterSignal{target: name}
}

type enterSignal struct {
	target string
}

func (e *enterSignal) Error() string {
	return "enter state " + e.target
}
