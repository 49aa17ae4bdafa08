package dispatch

import "github.com/promptr-tools/promptr/shellerr"

// ResultKind tags a Resolution.
type ResultKind int

const (
	// KindResolved carries a command and the raw tokens bound to it.
	KindResolved ResultKind = iota

	// KindCompletions carries the ordered candidate set for a completion
	// request.
	KindCompletions

	// KindAmbiguous reports a token matching more than one sibling name.
	KindAmbiguous

	// KindNotFound reports a token matching nothing at its level, or input
	// stopping at a group with no handler.
	KindNotFound

	// KindIncompleteArguments reports fewer tokens than required arguments.
	KindIncompleteArguments

	// KindTooManyArguments reports leftover tokens with no variadic tail.
	KindTooManyArguments

	// KindMalformedInput reports a line that could not be tokenized.
	KindMalformedInput
)

// Resolution is the tagged result of resolving a line. Exactly the fields
// relevant to Kind are populated.
type Resolution struct {
	Kind ResultKind

	// Command and Args are set for KindResolved: the resolved node and the
	// raw tokens left over for positional binding.
	Command *Node
	Args    []string

	// CalledName is the full name the command was invoked under, including
	// any optional prefix.
	CalledName string

	// Candidates holds completion candidates (KindCompletions), the set of
	// matching sibling names (KindAmbiguous), or subcommand/did-you-mean
	// suggestions (KindNotFound).
	Candidates []string

	// Token is the input token the resolution failed on.
	Token string

	// Missing names the first absent required argument
	// (KindIncompleteArguments).
	Missing string
}

// Err renders a non-Resolved, non-Completions resolution as a structured
// error for display at the driver boundary. It returns nil for resolutions
// that are not failures.
func (r Resolution) Err() error {
	switch r.Kind {
	case KindAmbiguous:
		return shellerr.Ambiguous(r.Token, r.Candidates)
	case KindNotFound:
		if r.Command != nil {
			return shellerr.IncompleteCommand(r.Command.Name, r.Candidates...)
		}
		return shellerr.NotFound(r.Token, r.Candidates...)
	case KindIncompleteArguments:
		name := r.Token
		if r.Command != nil {
			name = r.Command.Name
		}
		return shellerr.IncompleteArguments(name, r.Missing)
	case KindTooManyArguments:
		name := r.Token
		if r.Command != nil {
			name = r.Command.Name
		}
		return shellerr.TooManyArguments(name)
	case KindMalformedInput:
		return shellerr.MalformedInput(r.Token)
	default:
		return nil
	}
}
