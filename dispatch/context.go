package dispatch

import (
	"fmt"

	"github.com/google/uuid"
)

// Reserved context keys. These live in a separate namespace from user
// arguments: a command argument may never be named after one, which is
// enforced at registration time.
const (
	KeyState      = "state"
	KeyShell      = "shell"
	KeyCalledName = "called-name"
)

// ReservedKey reports whether name belongs to the auto-injected context
// namespace.
func ReservedKey(name string) bool {
	switch name {
	case KeyState, KeyShell, KeyCalledName:
		return true
	}
	return false
}

// StateRef is the minimal view of the active state a Context carries.
type StateRef interface {
	Name() string
}

// Driver is the shell handle injected into every Context. Handlers use it to
// write output, request transitions, and read or publish frame-scoped
// values.
type Driver interface {
	Write(text string)
	Transition(name string) error
	ExitState() error
	SetValue(key string, value any)
	Value(key string) (any, bool)
}

// Context is the per-invocation bundle passed to a handler: bound argument
// values, the active state, and the shell handle. It is built once per
// resolved invocation and discarded after the handler returns.
type Context struct {
	// ID correlates log lines belonging to one invocation.
	ID uuid.UUID

	Command *Node
	State   StateRef
	Shell   Driver

	// CalledName is the name the command was invoked under, including any
	// optional prefix ("no shutdown" vs "shutdown"). Populated only for
	// commands registered with PassName.
	CalledName string

	values map[string][]string
	raw    []string
}

// BuildContext binds raw tokens to the command's arguments positionally,
// runs validators, and assembles the Context. Token counts are already
// checked by the resolver; the variadic tail absorbs any extras.
func BuildContext(cmd *Node, called string, args []string, state StateRef, driver Driver) (*Context, error) {
	values := make(map[string][]string, len(cmd.Args))

	for i, spec := range cmd.Args {
		if i >= len(args) {
			break
		}
		if spec.Variadic {
			values[spec.Name] = args[i:]
			break
		}
		values[spec.Name] = []string{args[i]}
	}

	for _, spec := range cmd.Args {
		if spec.Validate == nil {
			continue
		}
		for _, v := range values[spec.Name] {
			if err := spec.Validate(v); err != nil {
				return nil, fmt.Errorf("invalid value for '%s': %w", spec.Name, err)
			}
		}
	}

	ctx := &Context{
		ID:      uuid.New(),
		Command: cmd,
		State:   state,
		Shell:   driver,
		values:  values,
		raw:     args,
	}
	if cmd.PassName {
		ctx.CalledName = called
	}
	return ctx, nil
}

// HookContext assembles a minimal Context for state hooks that fire outside
// a command invocation, such as a transition requested directly on the
// driver.
func HookContext(state StateRef, driver Driver) *Context {
	return &Context{
		ID:     uuid.New(),
		State:  state,
		Shell:  driver,
		values: map[string][]string{},
	}
}

// Arg returns the value bound to the named argument, or "" when absent.
func (c *Context) Arg(name string) string {
	if vs := c.values[name]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// ArgValues returns every value bound to the named argument. Only a variadic
// argument can hold more than one.
func (c *Context) ArgValues(name string) []string {
	return c.values[name]
}

// HasArg reports whether the named argument received a value.
func (c *Context) HasArg(name string) bool {
	_, ok := c.values[name]
	return ok
}

// Args returns the raw tokens bound to the command, in input order.
func (c *Context) Args() []string {
	return c.raw
}

// Bound returns a name-to-first-value snapshot of the bound arguments, in
// the shape suggestion providers receive.
func (c *Context) Bound() map[string]string {
	out := make(map[string]string, len(c.values))
	for name, vs := range c.values {
		if len(vs) > 0 {
			out[name] = vs[0]
		}
	}
	return out
}
