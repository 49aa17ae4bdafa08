package shellerr

import "fmt"

// RegistrationConflict is returned when a registration collides with an
// existing name: a command treated as a group, a group replaced by a
// command, a duplicate state, or an argument shadowing a reserved context
// key. It is a programmer error and fatal to startup.
func RegistrationConflict(format string, args ...any) *Error {
	return &Error{
		Kind:    KindRegistrationConflict,
		Message: fmt.Sprintf(format, args...),
	}
}
