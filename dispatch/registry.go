package dispatch

import (
	"sort"
	"strings"

	"github.com/promptr-tools/promptr/shellerr"
	"github.com/samber/lo"
)

// Registry stores one scope's commands and groups as a tree rooted at an
// unnamed node. Registries are built before the input loop starts and are
// treated as read-only afterwards.
type Registry struct {
	root *Node
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		root: &Node{Children: make(map[string]*Node)},
	}
}

// Root exposes the tree root. Completion and help walk it directly.
func (r *Registry) Root() *Node {
	return r.root
}

// RegisterGroup creates the group at path, reusing existing groups along the
// way. Registering a group over an existing command is a conflict.
func (r *Registry) RegisterGroup(path []string, summary string) (*Node, error) {
	if len(path) == 0 {
		return nil, shellerr.RegistrationConflict("group path must not be empty")
	}
	node, err := r.mkdir(path)
	if err != nil {
		return nil, err
	}
	if node.Summary == "" {
		node.Summary = summary
	}
	return node, nil
}

// Register stores a command at path. Every segment except the last
// creates or reuses a group. Re-registering an identical path replaces the
// prior command; registering below an existing command is a conflict, as is
// an argument named after a reserved context key.
func (r *Registry) Register(path []string, spec CommandSpec) (*Node, error) {
	if len(path) == 0 {
		return nil, shellerr.RegistrationConflict("command path must not be empty")
	}
	if err := validateArgSpecs(path, spec.Args); err != nil {
		return nil, err
	}

	node, err := r.mount(path, spec, "")
	if err != nil {
		return nil, err
	}

	for _, prefix := range spec.OptionalPrefixes {
		aliasPath := append([]string{prefix}, path...)
		if _, err := r.mount(aliasPath, spec, strings.Join(aliasPath, " ")); err != nil {
			return nil, err
		}
	}

	return node, nil
}

func (r *Registry) mount(path []string, spec CommandSpec, calledAs string) (*Node, error) {
	parent := r.root
	if len(path) > 1 {
		var err error
		parent, err = r.mkdir(path[:len(path)-1])
		if err != nil {
			return nil, err
		}
	}

	name := path[len(path)-1]
	if existing, ok := parent.Children[name]; ok {
		// Last write wins for commands, but a group with children cannot be
		// silently flattened into a command.
		if existing.IsGroup() && len(existing.Children) > 0 {
			return nil, shellerr.RegistrationConflict(
				"cannot register command '%s': a group with that name already exists",
				strings.Join(path, " "),
			)
		}
	}

	node := &Node{
		Name:     name,
		Path:     append(append([]string{}, parent.Path...), name),
		Summary:  spec.Summary,
		Args:     spec.Args,
		Handler:  spec.Handler,
		Children: make(map[string]*Node),
		PassName: spec.PassName,
		calledAs: calledAs,
		leaf:     true,
	}
	parent.Children[name] = node
	return node, nil
}

// mkdir walks path creating or reusing group nodes.
func (r *Registry) mkdir(path []string) (*Node, error) {
	current := r.root
	for _, seg := range path {
		child, ok := current.Children[seg]
		if !ok {
			child = &Node{
				Name:     seg,
				Path:     append(append([]string{}, current.Path...), seg),
				Children: make(map[string]*Node),
			}
			current.Children[seg] = child
		} else if child.leaf {
			return nil, shellerr.RegistrationConflict(
				"cannot register under '%s': it is a command, not a group",
				strings.Join(child.Path, " "),
			)
		}
		current = child
	}
	return current, nil
}

func validateArgSpecs(path []string, args []ArgSpec) error {
	seen := make(map[string]bool, len(args))
	for i, a := range args {
		if a.Name == "" {
			return shellerr.RegistrationConflict(
				"command '%s': argument %d has no name", strings.Join(path, " "), i,
			)
		}
		if ReservedKey(a.Name) {
			return shellerr.RegistrationConflict(
				"command '%s': argument '%s' collides with a reserved context key",
				strings.Join(path, " "), a.Name,
			)
		}
		if seen[a.Name] {
			return shellerr.RegistrationConflict(
				"command '%s': duplicate argument '%s'", strings.Join(path, " "), a.Name,
			)
		}
		seen[a.Name] = true
		if a.Variadic && i != len(args)-1 {
			return shellerr.RegistrationConflict(
				"command '%s': variadic argument '%s' must be last",
				strings.Join(path, " "), a.Name,
			)
		}
	}
	return nil
}

// Scope is the ordered registry chain consulted during resolution: the
// state-local registry first, then each inherited ancestor outwards. Local
// names shadow inherited ones.
type Scope []*Registry

// levelMatch is the outcome of matching one token against one level of the
// scope chain.
type levelMatch struct {
	node      *Node
	ambiguous []string // set when multiple siblings share the prefix
}

// matchLevel applies the fixed precedence order to the top level of a scope:
// local exact, local unique prefix, inherited exact, inherited unique prefix.
// A prefix shared by several siblings of the same scope is ambiguous and
// stops the search; deeper scopes are never consulted past a match.
func matchLevel(scope Scope, token string) levelMatch {
	shadowed := make(map[string]bool)
	for _, reg := range scope {
		level := reg.root.Children

		if child, ok := level[token]; ok && !shadowed[token] {
			return levelMatch{node: child}
		}

		var matches []string
		for name := range level {
			if shadowed[name] {
				continue
			}
			if strings.HasPrefix(name, token) {
				matches = append(matches, name)
			}
		}
		if len(matches) == 1 {
			return levelMatch{node: level[matches[0]]}
		}
		if len(matches) > 1 {
			sort.Strings(matches)
			return levelMatch{ambiguous: matches}
		}

		for name := range level {
			shadowed[name] = true
		}
	}
	return levelMatch{}
}

// matchChild applies exact-then-unique-prefix matching among the children of
// a single node. Below the top level only one registry's subtree is in play.
func matchChild(node *Node, token string) levelMatch {
	if child, ok := node.Children[token]; ok {
		return levelMatch{node: child}
	}
	var matches []string
	for name := range node.Children {
		if strings.HasPrefix(name, token) {
			matches = append(matches, name)
		}
	}
	if len(matches) == 1 {
		return levelMatch{node: node.Children[matches[0]]}
	}
	if len(matches) > 1 {
		sort.Strings(matches)
		return levelMatch{ambiguous: matches}
	}
	return levelMatch{}
}

// levelCandidates returns every sibling name at the top level of the scope
// that starts with partial, shadow-aware, sorted and deduplicated.
func levelCandidates(scope Scope, partial string) []string {
	shadowed := make(map[string]bool)
	var out []string
	for _, reg := range scope {
		for name := range reg.root.Children {
			if shadowed[name] {
				continue
			}
			if strings.HasPrefix(name, partial) {
				out = append(out, name)
			}
		}
		for name := range reg.root.Children {
			shadowed[name] = true
		}
	}
	out = lo.Uniq(out)
	sort.Strings(out)
	return out
}

// childCandidates returns the child names of node starting with partial.
func childCandidates(node *Node, partial string) []string {
	var out []string
	for name := range node.Children {
		if strings.HasPrefix(name, partial) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// siblingNames returns every visible name at the top level of the scope,
// used for did-you-mean suggestions.
func siblingNames(scope Scope) []string {
	shadowed := make(map[string]bool)
	var out []string
	for _, reg := range scope {
		for name := range reg.root.Children {
			if !shadowed[name] {
				out = append(out, name)
			}
		}
		for name := range reg.root.Children {
			shadowed[name] = true
		}
	}
	out = lo.Uniq(out)
	sort.Strings(out)
	return out
}
