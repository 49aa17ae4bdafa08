package shellerr

import (
	"fmt"
	"strings"
)

// NotFound is returned when no command or group matches a token.
func NotFound(token string, suggestions ...string) *Error {
	msg := fmt.Sprintf("no such command '%s'", token)
	if len(suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(suggestions, ", "))
	}
	return &Error{
		Kind:       KindNotFound,
		Message:    msg,
		Candidates: suggestions,
	}
}

// IncompleteCommand is returned when input stops at a group that has no
// handler of its own.
func IncompleteCommand(name string, subcommands ...string) *Error {
	msg := fmt.Sprintf("incomplete command '%s'", name)
	if len(subcommands) > 0 {
		msg += fmt.Sprintf(", expected one of: %s", strings.Join(subcommands, ", "))
	}
	return &Error{
		Kind:       KindNotFound,
		Message:    msg,
		Candidates: subcommands,
	}
}
