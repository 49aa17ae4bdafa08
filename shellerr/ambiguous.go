package shellerr

import (
	"fmt"
	"strings"
)

// Ambiguous is returned when a token matches more than one sibling name.
// The command is never executed; candidates list every matching name.
func Ambiguous(token string, candidates []string) *Error {
	return &Error{
		Kind: KindAmbiguous,
		Message: fmt.Sprintf(
			"ambiguous command '%s': matches %s", token, strings.Join(candidates, ", "),
		),
		Candidates: candidates,
	}
}
