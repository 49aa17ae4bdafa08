// Package dispatch implements the command resolution and completion engine:
// the command tree, the positional argument model, the tokenizer, and the
// resolver that turns a raw input line into a resolved invocation, a
// completion candidate set, or a structured failure.
package dispatch

import "sort"

// HandlerFunc is the signature of a command handler. A handler receives
// exactly one Context. Returning one of the shell package's sentinel errors
// asks the driver to exit the loop or change state; any other non-nil error
// is reported to the user and the loop continues.
type HandlerFunc func(ctx *Context) error

// SuggestFunc produces completion candidates for a partially typed argument
// value. bound holds every argument value bound earlier on the same line, so
// providers can narrow their candidates. Providers must not mutate registry
// state; a panicking provider degrades completion to an empty candidate set.
type SuggestFunc func(partial string, bound map[string]string) []string

// StaticSuggestions adapts a fixed candidate list to a SuggestFunc.
func StaticSuggestions(values ...string) SuggestFunc {
	return func(string, map[string]string) []string {
		return values
	}
}

// ArgSpec describes one positional argument of a command. Order is
// significant: raw tokens bind to ArgSpecs by position.
type ArgSpec struct {
	Name     string
	Summary  string
	Required bool

	// Variadic marks an argument that absorbs all trailing tokens. Only the
	// last argument of a command may be variadic.
	Variadic bool

	// Suggest, when set, supplies completion candidates for this argument.
	Suggest SuggestFunc

	// Validate, when set, is run against the bound value while the Context
	// is built. A non-nil error aborts the invocation before the handler.
	Validate func(value string) error
}

// CommandSpec carries everything needed to register a command.
type CommandSpec struct {
	Summary string
	Args    []ArgSpec
	Handler HandlerFunc

	// OptionalPrefixes lists leading words under which the command is also
	// reachable, e.g. "no" for a command "shutdown" that can be invoked as
	// "no shutdown". Each prefix materializes an alias path in the tree.
	OptionalPrefixes []string

	// PassName asks the resolver to record the full name the command was
	// invoked under (alias prefix included). The name is delivered through
	// the Context, never as a user argument.
	PassName bool
}

// Node is one entry in a command tree. A node with a nil Handler is a pure
// group; a node with a Handler is a command.
type Node struct {
	Name     string
	Path     []string
	Summary  string
	Args     []ArgSpec
	Handler  HandlerFunc
	Children map[string]*Node

	// PassName mirrors CommandSpec.PassName.
	PassName bool

	// calledAs is the full invocation name recorded on alias mounts, e.g.
	// "no shutdown". Empty on canonical nodes.
	calledAs string

	// leaf marks nodes registered as commands; registering children under a
	// leaf is a conflict.
	leaf bool
}

// IsGroup reports whether the node acts as a namespace.
func (n *Node) IsGroup() bool {
	return !n.leaf
}

// CalledName returns the name an invocation of this node is reported under.
func (n *Node) CalledName() string {
	if n.calledAs != "" {
		return n.calledAs
	}
	return n.Name
}

// ChildNames returns the node's child names in sorted order.
func (n *Node) ChildNames() []string {
	names := make([]string, 0, len(n.Children))
	for name := range n.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
