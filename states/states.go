// Package states models the shell's named states and the transitions
// between them. Each state owns one command registry; a state may inherit
// its parent's commands as a fallback scope, with local names taking
// precedence.
package states

import (
	"github.com/promptr-tools/promptr/dispatch"
	"github.com/promptr-tools/promptr/shellerr"
)

// HookFunc runs on state entry or exit. An on_exit hook returning a non-nil
// error vetoes the transition; this is the only control flow a hook can
// influence. on_enter errors are reported but do not undo the transition.
type HookFunc func(ctx *dispatch.Context) error

// StateSpec carries everything needed to register a state.
type StateSpec struct {
	// Parent names the parent state; empty means the root.
	Parent string

	// NoInherit cuts the fallback to the parent's commands. The parent link
	// still defines where "exit" leads.
	NoInherit bool

	OnEnter HookFunc
	OnExit  HookFunc

	// Prompt is a label template rendered into the shell prompt while the
	// state is active, e.g. "config" or "{intf}". Placeholders in braces are
	// filled from the entering invocation's bound arguments.
	Prompt string
}

// State is a named node in the graph with its own command registry.
type State struct {
	name     string
	parent   *State
	registry *dispatch.Registry
	inherit  bool
	onEnter  HookFunc
	onExit   HookFunc
	prompt   string
}

// Name returns the state's name.
func (s *State) Name() string { return s.name }

// Parent returns the parent state, nil for the root.
func (s *State) Parent() *State { return s.parent }

// Registry returns the state-local command registry.
func (s *State) Registry() *dispatch.Registry { return s.registry }

// PromptLabel returns the raw prompt label template.
func (s *State) PromptLabel() string { return s.prompt }

// Scope returns the registry chain consulted when resolving in this state:
// the local registry first, then each inheriting ancestor outwards.
func (s *State) Scope() dispatch.Scope {
	scope := dispatch.Scope{s.registry}
	for cur := s; cur.inherit && cur.parent != nil; cur = cur.parent {
		scope = append(scope, cur.parent.registry)
	}
	return scope
}

var _ dispatch.StateRef = (*State)(nil)

// Graph is the set of registered states. The root always exists and has no
// parent. Registration happens before the input loop starts; the graph is
// not safe for concurrent mutation.
type Graph struct {
	root    *State
	states  map[string]*State
	current *State

	// Hooks may trigger re-entrant transitions; each hook runs at most once
	// per transition attempt to break on_exit/on_enter cycles. The guards
	// are cleared when the outermost attempt unwinds.
	runningExit  map[*State]bool
	runningEnter map[*State]bool
	depth        int
}

// NewGraph creates a graph holding only the root state, which is current.
func NewGraph(rootName string) *Graph {
	root := &State{
		name:     rootName,
		registry: dispatch.NewRegistry(),
		inherit:  true,
	}
	return &Graph{
		root:         root,
		states:       map[string]*State{rootName: root},
		current:      root,
		runningExit:  map[*State]bool{},
		runningEnter: map[*State]bool{},
	}
}

// Root returns the root state.
func (g *Graph) Root() *State { return g.root }

// Current returns the active state.
func (g *Graph) Current() *State { return g.current }

// Lookup returns the named state, if registered.
func (g *Graph) Lookup(name string) (*State, bool) {
	s, ok := g.states[name]
	return s, ok
}

// Register adds a state under the named parent (the root when empty). State
// names are global: registering a name twice is a conflict.
func (g *Graph) Register(name string, spec StateSpec) (*State, error) {
	if name == "" {
		return nil, shellerr.RegistrationConflict("state name must not be empty")
	}
	if _, exists := g.states[name]; exists {
		return nil, shellerr.RegistrationConflict("state '%s' is already registered", name)
	}

	parent := g.root
	if spec.Parent != "" {
		p, ok := g.states[spec.Parent]
		if !ok {
			return nil, shellerr.RegistrationConflict(
				"state '%s': unknown parent state '%s'", name, spec.Parent,
			)
		}
		parent = p
	}

	s := &State{
		name:     name,
		parent:   parent,
		registry: dispatch.NewRegistry(),
		inherit:  !spec.NoInherit,
		onEnter:  spec.OnEnter,
		onExit:   spec.OnExit,
		prompt:   spec.Prompt,
	}
	g.states[name] = s
	return s, nil
}

// Transition moves to the named state. The current state's on_exit hook runs
// first and may veto by returning an error, leaving the state unchanged; the
// target's on_enter hook runs after the target became current. ctx may be
// nil for hook delivery purposes.
func (g *Graph) Transition(name string, ctx *dispatch.Context) error {
	target, ok := g.states[name]
	if !ok {
		return shellerr.UnknownState(name)
	}
	return g.transition(target, ctx)
}

// Exit moves to the current state's parent. Exiting the root is a
// NoParentState error and leaves the state unchanged.
func (g *Graph) Exit(ctx *dispatch.Context) error {
	if g.current.parent == nil {
		return shellerr.NoParentState(g.current.name)
	}
	return g.transition(g.current.parent, ctx)
}

func (g *Graph) transition(target *State, ctx *dispatch.Context) error {
	g.depth++
	defer func() {
		g.depth--
		if g.depth == 0 {
			clear(g.runningExit)
			clear(g.runningEnter)
		}
	}()

	from := g.current

	if from.onExit != nil && !g.runningExit[from] {
		g.runningExit[from] = true
		if err := from.onExit(ctx); err != nil {
			// Veto: the transition is aborted, state unchanged, and the
			// target's on_enter never fires.
			return err
		}
	}

	g.current = target

	if target.onEnter != nil && !g.runningEnter[target] {
		g.runningEnter[target] = true
		if err := target.onEnter(ctx); err != nil {
			return err
		}
	}

	return nil
}
