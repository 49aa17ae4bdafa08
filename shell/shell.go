// Package shell ties the resolver, the state graph, and an I/O layer into an
// interactive command loop. A Shell is constructed once by the embedding
// application, populated through the Add* registration surface, and then
// driven with Run or RunScript.
package shell

import (
	"os"
	"strings"

	"github.com/promptr-tools/promptr/dispatch"
	"github.com/promptr-tools/promptr/shellerr"
	"github.com/promptr-tools/promptr/states"
)

// CompleteFunc asks the resolver for completion candidates at a cursor
// position. It is handed to the line reader and must stay side-effect-free.
type CompleteFunc func(line string, cursor int) []string

// LineReader is the terminal I/O contract the driver consumes. The core
// never performs raw terminal control; readers own line editing, rendering
// of completion menus, and keystroke handling. ReadLine returns io.EOF to
// end the loop.
type LineReader interface {
	ReadLine(prompt string, complete CompleteFunc) (string, error)
	Write(text string)
}

// Shell owns the state graph and drives the input loop. Registration must
// finish before Run starts; the loop itself is single-threaded and fully
// resolves one line before reading the next.
type Shell struct {
	graph  *states.Graph
	reader LineReader
	log    Logger

	promptFmt string
	delim     string
	parenL    string
	parenR    string
	host      string

	frames    []*frame
	activeCtx *dispatch.Context
	quit      bool
}

// frame is one level of the active state chain, carrying the rendered
// prompt label and values published while the state was active.
type frame struct {
	state  *states.State
	label  string
	values map[string]any
}

// Option configures a Shell.
type Option func(*Shell)

// WithReader sets the line reader. The default reads os.Stdin with no
// completion support.
func WithReader(r LineReader) Option {
	return func(s *Shell) { s.reader = r }
}

// WithLogger sets the logger used for resolution and transition tracing.
func WithLogger(l Logger) Option {
	return func(s *Shell) { s.log = l }
}

// WithPromptFormat sets the prompt format string. {host} and {state} are
// substituted; the default is "{host}{state}# ".
func WithPromptFormat(format string) Option {
	return func(s *Shell) { s.promptFmt = format }
}

// WithStateDecoration sets the delimiter and parentheses used to render the
// active state labels inside the prompt. Defaults: "-", "(", ")".
func WithStateDecoration(delim, left, right string) Option {
	return func(s *Shell) { s.delim, s.parenL, s.parenR = delim, left, right }
}

// New creates a shell whose root state carries the built-in exit and help
// commands.
func New(opts ...Option) *Shell {
	host, _ := os.Hostname()
	if i := strings.IndexByte(host, '.'); i > 0 {
		host = host[:i]
	}

	s := &Shell{
		graph:     states.NewGraph("root"),
		log:       NopLogger{},
		promptFmt: "{host}{state}# ",
		delim:     "-",
		parenL:    "(",
		parenR:    ")",
		host:      host,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.reader == nil {
		s.reader = newBasicReader()
	}

	root := s.graph.Root()
	s.frames = []*frame{{state: root, values: map[string]any{}}}
	// The root registry is empty here, so the builtin names cannot conflict.
	_ = s.installBuiltins(root)
	return s
}

// StateSpec describes a state registered through AddState. Unless NoCommand
// is set, an entry command named after the state is registered in the parent
// scope; invoking it runs Handler (if any) and then transitions into the
// state.
type StateSpec struct {
	Parent  string
	Summary string

	// Args and Handler belong to the entry command.
	Args    []dispatch.ArgSpec
	Handler dispatch.HandlerFunc

	OnEnter states.HookFunc
	OnExit  states.HookFunc

	// Prompt is the label template shown while the state is active.
	// Placeholders in braces are filled from the entering invocation's
	// bound arguments, e.g. "{intf}".
	Prompt string

	// NoInherit cuts the fallback to the parent state's commands.
	NoInherit bool

	// NoCommand suppresses the auto-registered entry command.
	NoCommand bool

	// PassName and OptionalPrefixes apply to the entry command.
	PassName         bool
	OptionalPrefixes []string
}

// AddState registers a state, its built-in commands, and (by default) its
// entry command in the parent scope.
func (s *Shell) AddState(name string, spec StateSpec) error {
	st, err := s.graph.Register(name, states.StateSpec{
		Parent:    spec.Parent,
		NoInherit: spec.NoInherit,
		OnEnter:   spec.OnEnter,
		OnExit:    spec.OnExit,
		Prompt:    spec.Prompt,
	})
	if err != nil {
		return err
	}
	if err := s.installBuiltins(st); err != nil {
		return err
	}

	if spec.NoCommand {
		return nil
	}

	parent := s.graph.Root()
	if spec.Parent != "" {
		parent, _ = s.graph.Lookup(spec.Parent)
	}

	handler := spec.Handler
	_, err = parent.Registry().Register([]string{name}, dispatch.CommandSpec{
		Summary: spec.Summary,
		Args:    spec.Args,
		Handler: func(ctx *dispatch.Context) error {
			if handler != nil {
				if err := handler(ctx); err != nil {
					return err
				}
			}
			return Enter(name)
		},
		PassName:         spec.PassName,
		OptionalPrefixes: spec.OptionalPrefixes,
	})
	return err
}

// AddCommand registers a command in the root state. path is the
// space-separated command path; intermediate segments become groups.
func (s *Shell) AddCommand(path string, spec dispatch.CommandSpec) error {
	return s.AddStateCommand("", path, spec)
}

// AddStateCommand registers a command in the named state ("" for root).
func (s *Shell) AddStateCommand(state, path string, spec dispatch.CommandSpec) error {
	st, err := s.lookupState(state)
	if err != nil {
		return err
	}
	_, err = st.Registry().Register(strings.Fields(path), spec)
	return err
}

// AddGroup registers a group in the root state.
func (s *Shell) AddGroup(path, summary string) error {
	return s.AddStateGroup("", path, summary)
}

// AddStateGroup registers a group in the named state ("" for root).
func (s *Shell) AddStateGroup(state, path, summary string) error {
	st, err := s.lookupState(state)
	if err != nil {
		return err
	}
	_, err = st.Registry().RegisterGroup(strings.Fields(path), summary)
	return err
}

func (s *Shell) lookupState(name string) (*states.State, error) {
	if name == "" {
		return s.graph.Root(), nil
	}
	st, ok := s.graph.Lookup(name)
	if !ok {
		return nil, shellerr.UnknownState(name)
	}
	return st, nil
}

// CurrentState returns the name of the active state.
func (s *Shell) CurrentState() string {
	return s.graph.Current().Name()
}
