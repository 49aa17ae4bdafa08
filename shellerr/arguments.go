package shellerr

import "fmt"

// IncompleteArguments is returned when a resolved command received fewer
// tokens than its required arguments. missing names the first absent one.
func IncompleteArguments(command, missing string) *Error {
	return &Error{
		Kind:    KindIncompleteArguments,
		Message: fmt.Sprintf("'%s' requires argument '%s'", command, missing),
	}
}

// TooManyArguments is returned when tokens remain after every declared
// argument is bound and the last argument is not variadic.
func TooManyArguments(command string) *Error {
	return &Error{
		Kind:    KindTooManyArguments,
		Message: fmt.Sprintf("too many arguments for '%s'", command),
	}
}
