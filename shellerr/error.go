package shellerr

// Kind classifies a shell error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindAmbiguous
	KindIncompleteArguments
	KindTooManyArguments
	KindMalformedInput
	KindRegistrationConflict
	KindNoParentState
)

// Error is a user-facing shell error with semantic type information.
// Resolution-time errors are recovered at the driver boundary and reported
// to the user; only registration conflicts are fatal, and those surface
// while the command tree is being built, never during the input loop.
type Error struct {
	Kind    Kind
	Message string

	// Candidates carries the matching names for ambiguous input and the
	// did-you-mean suggestions for unknown commands.
	Candidates []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is a shellerr.Error of the same kind, so that
// callers can match with errors.Is against the exported sentinel makers.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Verify Error implements the error interface.
var _ error = (*Error)(nil)
