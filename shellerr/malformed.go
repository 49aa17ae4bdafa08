package shellerr

import "fmt"

// MalformedInput is returned for lines that cannot be tokenized, such as an
// unterminated quote.
func MalformedInput(reason string) *Error {
	return &Error{
		Kind:    KindMalformedInput,
		Message: fmt.Sprintf("parse error: %s", reason),
	}
}
