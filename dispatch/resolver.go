package dispatch

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Resolve consumes a raw line in execution mode: tokens are matched against
// the scope's command trees until a command is reached, then the remaining
// tokens are checked against the command's argument model. Any ambiguity on
// the command path is a hard failure; the resolver never silently picks the
// first match.
func Resolve(scope Scope, line string) Resolution {
	tokens, err := Tokenize(line)
	if err != nil {
		return Resolution{Kind: KindMalformedInput, Token: "unterminated quote"}
	}
	if len(tokens) == 0 {
		return Resolution{Kind: KindNotFound}
	}

	node, consumed, res := walk(scope, tokens)
	if res != nil {
		return *res
	}

	args := tokens[consumed:]
	if node.Handler == nil {
		// A bare group is not executable.
		return Resolution{
			Kind:       KindNotFound,
			Command:    node,
			Candidates: node.ChildNames(),
		}
	}

	if missing, ok := firstMissingArg(node.Args, args); !ok {
		return Resolution{Kind: KindIncompleteArguments, Command: node, Missing: missing}
	}
	if len(args) > len(node.Args) && !variadicTail(node.Args) {
		return Resolution{Kind: KindTooManyArguments, Command: node}
	}

	return Resolution{
		Kind:       KindResolved,
		Command:    node,
		Args:       args,
		CalledName: node.CalledName(),
	}
}

// Complete resolves a line for suggestion purposes only. The cursor position
// decides whether the partial token under it belongs to the command path or
// to an argument; candidates come from the registry or from the argument's
// suggestion provider accordingly. Completion never invokes a handler and
// never mutates registry state.
func Complete(scope Scope, line string, cursor int) Resolution {
	complete, partial := SplitForCompletion(line, cursor)

	if len(complete) == 0 {
		return Resolution{Kind: KindCompletions, Candidates: levelCandidates(scope, partial)}
	}

	node, consumed, res := walk(scope, complete)
	if res != nil {
		// Internal ambiguity or an unknown token: no useful candidates.
		return *res
	}

	if consumed < len(complete) {
		// The cursor sits in the argument region.
		return completions(argCandidates(node, complete[consumed:], partial))
	}

	// The cursor starts the token right after the resolved node: child names
	// are candidates, plus the first argument of a node that is itself
	// executable.
	candidates := childCandidates(node, partial)
	if node.Handler != nil {
		candidates = append(candidates, argCandidates(node, nil, partial)...)
	}
	return completions(candidates)
}

func completions(candidates []string) Resolution {
	candidates = lo.Uniq(candidates)
	sort.Strings(candidates)
	return Resolution{Kind: KindCompletions, Candidates: candidates}
}

// walk matches tokens against the scope level by level. It stops at the
// first node carrying a handler, or fails on an ambiguous or unknown token.
// Internal tokens must fully resolve: exact match first, then unique prefix.
func walk(scope Scope, tokens []string) (node *Node, consumed int, fail *Resolution) {
	var current *Node

	for i, tok := range tokens {
		var m levelMatch
		if current == nil {
			m = matchLevel(scope, tok)
		} else {
			m = matchChild(current, tok)
		}

		if len(m.ambiguous) > 0 {
			return nil, 0, &Resolution{Kind: KindAmbiguous, Token: tok, Candidates: m.ambiguous}
		}
		if m.node == nil {
			if current == nil {
				// Unknown top-level token: attach did-you-mean suggestions.
				return nil, 0, &Resolution{
					Kind:       KindNotFound,
					Token:      tok,
					Candidates: SuggestSimilar(tok, siblingNames(scope)),
				}
			}
			if current.Handler != nil {
				// The remaining tokens are arguments.
				return current, i, nil
			}
			return nil, 0, &Resolution{
				Kind:       KindNotFound,
				Token:      strings.Join(append(append([]string{}, current.Path...), tok), " "),
				Candidates: SuggestSimilar(tok, current.ChildNames()),
			}
		}

		current = m.node
		if current.Handler != nil && len(current.Children) == 0 {
			return current, i + 1, nil
		}
	}

	return current, len(tokens), nil
}

// argCandidates asks the suggestion provider of the argument the cursor sits
// on, handing it every previously bound value. A panicking provider yields
// an empty set.
func argCandidates(cmd *Node, boundTokens []string, partial string) (out []string) {
	if cmd.Handler == nil || len(cmd.Args) == 0 {
		return nil
	}

	idx := len(boundTokens)
	if idx >= len(cmd.Args) {
		last := cmd.Args[len(cmd.Args)-1]
		if !last.Variadic {
			return nil
		}
		idx = len(cmd.Args) - 1
	}

	spec := cmd.Args[idx]
	if spec.Suggest == nil {
		return nil
	}

	bound := make(map[string]string, idx)
	for i := 0; i < idx && i < len(cmd.Args); i++ {
		bound[cmd.Args[i].Name] = boundTokens[i]
	}

	defer func() {
		if recover() != nil {
			out = nil
		}
	}()

	for _, c := range spec.Suggest(partial, bound) {
		if strings.HasPrefix(c, partial) {
			out = append(out, c)
		}
	}
	return out
}

// firstMissingArg reports the name of the first required argument that has
// no token bound, or ok when every required argument is covered.
func firstMissingArg(specs []ArgSpec, args []string) (string, bool) {
	for i := len(args); i < len(specs); i++ {
		if specs[i].Required {
			return specs[i].Name, false
		}
	}
	return "", true
}

func variadicTail(specs []ArgSpec) bool {
	return len(specs) > 0 && specs[len(specs)-1].Variadic
}
