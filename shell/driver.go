package shell

import (
	"errors"
	"io"
	"strings"

	"github.com/promptr-tools/promptr/dispatch"
	"github.com/promptr-tools/promptr/states"
	"github.com/promptr-tools/promptr/ui/style"
)

// Run reads lines until the reader reports io.EOF or a handler returns the
// quit sentinel. Every resolution failure is reported to the user and the
// loop continues; nothing short of a reader error is fatal.
func (s *Shell) Run() error {
	for !s.quit {
		line, err := s.reader.ReadLine(s.Prompt(), s.Completions)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		s.Execute(line)
	}
	return nil
}

// RunScript feeds newline-separated input through the same resolution path
// with no terminal attached. It stops early when a line quits the shell.
func (s *Shell) RunScript(text string) {
	for _, line := range strings.Split(text, "\n") {
		if s.quit {
			return
		}
		s.Execute(line)
	}
}

// Execute resolves and runs a single line against the current state. Empty
// lines are skipped silently.
func (s *Shell) Execute(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}

	current := s.graph.Current()
	res := dispatch.Resolve(current.Scope(), line)
	if res.Kind != dispatch.KindResolved {
		if err := res.Err(); err != nil {
			s.report(err)
		}
		return
	}

	ctx, err := dispatch.BuildContext(res.Command, res.CalledName, res.Args, current, s)
	if err != nil {
		s.report(err)
		return
	}

	s.log.Debug("resolved '%s' in state '%s' (invocation %s)",
		strings.Join(res.Command.Path, " "), current.Name(), ctx.ID)

	s.activeCtx = ctx
	handlerErr := res.Command.Handler(ctx)
	s.activeCtx = nil

	s.settle(ctx, handlerErr)
}

// settle acts on the handler's return value: sentinels drive the state
// graph, anything else non-nil is reported.
func (s *Shell) settle(ctx *dispatch.Context, err error) {
	switch {
	case err == nil:
		return

	case errors.Is(err, ErrQuit):
		s.quit = true

	case errors.Is(err, ErrLeaveState):
		if err := s.ExitState(); err != nil {
			s.report(err)
		}

	default:
		var enter *enterSignal
		if errors.As(err, &enter) {
			if err := s.transitionWith(enter.target, ctx); err != nil {
				s.report(err)
			}
			return
		}
		s.report(err)
	}
}

// Completions implements the completion side of the loop: side-effect-free,
// never invokes a handler, and degrades to no candidates on any resolution
// failure.
func (s *Shell) Completions(line string, cursor int) []string {
	res := dispatch.Complete(s.graph.Current().Scope(), line, cursor)
	if res.Kind != dispatch.KindCompletions {
		return nil
	}
	return res.Candidates
}

// Write sends text to the user through the I/O layer.
func (s *Shell) Write(text string) {
	s.reader.Write(text)
}

// Transition moves to the named state, running hooks. Part of the Driver
// handle handlers receive.
func (s *Shell) Transition(name string) error {
	return s.transitionWith(name, s.hookCtx())
}

// ExitState returns to the parent state. At the root there is nothing to
// return to and the shell quits instead.
func (s *Shell) ExitState() error {
	if s.graph.Current().Parent() == nil {
		s.quit = true
		return nil
	}
	before := s.graph.Current()
	err := s.graph.Exit(s.hookCtx())
	s.settleFrames(before, nil)
	return err
}

func (s *Shell) transitionWith(name string, ctx *dispatch.Context) error {
	before := s.graph.Current()
	err := s.graph.Transition(name, ctx)
	s.settleFrames(before, ctx)
	return err
}

// settleFrames realigns the frame stack after a transition attempt. An
// on_enter error does not undo the transition, so the frames must follow the
// graph even when the attempt returned an error; a vetoed attempt leaves the
// current state, and therefore the frames, untouched.
func (s *Shell) settleFrames(before *states.State, ctx *dispatch.Context) {
	if s.graph.Current() == before {
		return
	}
	s.log.Debug("state is now '%s'", s.graph.Current().Name())
	s.syncFrames(ctx)
}

// SetValue publishes a value into the innermost state frame; it disappears
// when that state is exited.
func (s *Shell) SetValue(key string, value any) {
	s.frames[len(s.frames)-1].values[key] = value
}

// Value looks a key up through the state frames, innermost first.
func (s *Shell) Value(key string) (any, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i].values[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// hookCtx supplies a minimal context for hooks fired outside a handler.
func (s *Shell) hookCtx() *dispatch.Context {
	if s.activeCtx != nil {
		return s.activeCtx
	}
	return dispatch.HookContext(s.graph.Current(), s)
}

// syncFrames realigns the frame stack with the parent chain of the current
// state, keeping frames (and their values) for the unchanged prefix.
func (s *Shell) syncFrames(ctx *dispatch.Context) {
	var chain []*states.State
	for st := s.graph.Current(); st != nil; st = st.Parent() {
		chain = append([]*states.State{st}, chain...)
	}

	keep := 0
	for keep < len(s.frames) && keep < len(chain) && s.frames[keep].state == chain[keep] {
		keep++
	}
	s.frames = s.frames[:keep]

	for _, st := range chain[keep:] {
		s.frames = append(s.frames, &frame{
			state:  st,
			label:  renderLabel(st.PromptLabel(), ctx),
			values: map[string]any{},
		})
	}
}

func (s *Shell) report(err error) {
	s.reader.Write(style.Error(err.Error()) + "\n")
}

// Verify the shell satisfies the handle handlers receive.
var _ dispatch.Driver = (*Shell)(nil)
