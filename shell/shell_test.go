package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/promptr-tools/promptr/dispatch"
)

// scriptedReader feeds canned lines to Run and records everything the shell
// writes back.
type scriptedReader struct {
	lines []string
	out   strings.Builder
}

func (r *scriptedReader) ReadLine(prompt string, _ CompleteFunc) (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptedReader) Write(text string) {
	r.out.WriteString(text)
}

func newTestShell(t *testing.T, opts ...Option) (*Shell, *scriptedReader) {
	t.Helper()
	reader := &scriptedReader{}
	s := New(append([]Option{WithReader(reader)}, opts...)...)
	return s, reader
}

func TestExecute_RunsHandler(t *testing.T) {
	s, reader := newTestShell(t)

	require.NoError(t, s.AddCommand("ping", dispatch.CommandSpec{
		Args: []dispatch.ArgSpec{{Name: "host", Required: true}},
		Handler: func(ctx *dispatch.Context) error {
			ctx.Shell.Write("pinging " + ctx.Arg("host") + "\n")
			return nil
		},
	}))

	s.Execute("ping sw1")
	require.Equal(t, "pinging sw1\n", reader.out.String())
}

func TestExecute_SkipsBlankLines(t *testing.T) {
	s, reader := newTestShell(t)

	s.Execute("")
	s.Execute("   ")
	require.Empty(t, reader.out.String())
}

func TestExecute_ReportsUnknownCommand(t *testing.T) {
	s, reader := newTestShell(t)

	s.Execute("reboot")
	require.Contains(t, reader.out.String(), "no such command 'reboot'")
}

func TestExecute_ReportsAmbiguity(t *testing.T) {
	s, reader := newTestShell(t)

	nop := func(*dispatch.Context) error { return nil }
	require.NoError(t, s.AddCommand("show version", dispatch.CommandSpec{Handler: nop}))
	require.NoError(t, s.AddCommand("shutdown", dispatch.CommandSpec{Handler: nop}))

	s.Execute("sh")
	require.Contains(t, reader.out.String(), "ambiguous command 'sh'")
	require.Contains(t, reader.out.String(), "show")
	require.Contains(t, reader.out.String(), "shutdown")
}

func TestExecute_ReportsMissingArgument(t *testing.T) {
	s, reader := newTestShell(t)

	require.NoError(t, s.AddCommand("set", dispatch.CommandSpec{
		Args: []dispatch.ArgSpec{
			{Name: "key", Required: true},
			{Name: "value", Required: true},
		},
		Handler: func(*dispatch.Context) error { return nil },
	}))

	s.Execute("set mtu")
	require.Contains(t, reader.out.String(), "requires argument 'value'")
}

func TestStateEntryAndExit(t *testing.T) {
	s, _ := newTestShell(t)

	require.NoError(t, s.AddState("enable", StateSpec{}))

	s.Execute("enable")
	require.Equal(t, "enable", s.CurrentState())

	s.Execute("exit")
	require.Equal(t, "root", s.CurrentState())
}

func TestExitAtRootQuits(t *testing.T) {
	s, _ := newTestShell(t)
	executed := false

	require.NoError(t, s.AddCommand("ping", dispatch.CommandSpec{
		Handler: func(*dispatch.Context) error {
			executed = true
			return nil
		},
	}))

	s.RunScript("exit\nping")
	require.False(t, executed, "lines after a quitting exit must not run")
}

func TestEntryHandlerErrorBlocksTransition(t *testing.T) {
	s, reader := newTestShell(t)
	gateErr := errors.New("not authorized")

	require.NoError(t, s.AddState("enable", StateSpec{
		Handler: func(*dispatch.Context) error { return gateErr },
	}))

	s.Execute("enable")
	require.Equal(t, "root", s.CurrentState())
	require.Contains(t, reader.out.String(), "not authorized")
}

func TestOnExitVetoKeepsStateAndReports(t *testing.T) {
	s, reader := newTestShell(t)

	require.NoError(t, s.AddState("configure", StateSpec{
		OnExit: func(*dispatch.Context) error {
			return errors.New("commit your changes first")
		},
	}))

	s.Execute("configure")
	require.Equal(t, "configure", s.CurrentState())

	s.Execute("exit")
	require.Equal(t, "configure", s.CurrentState())
	require.Contains(t, reader.out.String(), "commit your changes first")
}

func TestOnEnterErrorStillSyncsFrames(t *testing.T) {
	s, reader := newTestShell(t, WithPromptFormat("sw1{state}# "))

	require.NoError(t, s.AddState("configure", StateSpec{
		Prompt: "conf",
		OnEnter: func(*dispatch.Context) error {
			return errors.New("init failed")
		},
	}))

	s.Execute("configure")

	// Only on_exit may veto; the failed on_enter leaves the target current,
	// so the prompt and frame stack must follow it.
	require.Equal(t, "configure", s.CurrentState())
	require.Equal(t, "sw1(conf)# ", s.Prompt())
	require.Contains(t, reader.out.String(), "init failed")

	s.SetValue("k", "v")
	s.Execute("exit")
	_, ok := s.Value("k")
	require.False(t, ok, "values written after the failed on_enter belong to the new frame")
}

func TestFrameValuesScopedToState(t *testing.T) {
	s, _ := newTestShell(t)

	require.NoError(t, s.AddState("configure", StateSpec{}))
	require.NoError(t, s.AddStateCommand("configure", "mark", dispatch.CommandSpec{
		Handler: func(ctx *dispatch.Context) error {
			ctx.Shell.SetValue("marker", "set")
			return nil
		},
	}))

	s.Execute("configure")
	s.Execute("mark")

	v, ok := s.Value("marker")
	require.True(t, ok)
	require.Equal(t, "set", v)

	s.Execute("exit")
	_, ok = s.Value("marker")
	require.False(t, ok, "frame values must not survive leaving the state")
}

func TestPromptRendering(t *testing.T) {
	s, _ := newTestShell(t, WithPromptFormat("sw1{state}# "))

	require.NoError(t, s.AddState("configure", StateSpec{Prompt: "conf"}))
	require.NoError(t, s.AddState("interface", StateSpec{
		Parent: "configure",
		Prompt: "{intf}",
		Args:   []dispatch.ArgSpec{{Name: "intf", Required: true}},
	}))

	require.Equal(t, "sw1# ", s.Prompt())

	s.Execute("configure")
	require.Equal(t, "sw1(conf)# ", s.Prompt())

	s.Execute("interface g0")
	require.Equal(t, "sw1(conf-g0)# ", s.Prompt())

	s.Execute("exit")
	require.Equal(t, "sw1(conf)# ", s.Prompt())
}

func TestPromptDecoration(t *testing.T) {
	s, _ := newTestShell(t,
		WithPromptFormat("{state}> "),
		WithStateDecoration("/", "[", "]"),
	)

	require.NoError(t, s.AddState("a", StateSpec{Prompt: "a"}))
	require.NoError(t, s.AddState("b", StateSpec{Parent: "a", Prompt: "b"}))

	s.Execute("a")
	s.Execute("b")
	require.Equal(t, "[a/b]> ", s.Prompt())
}

func TestHelpListsCommands(t *testing.T) {
	s, reader := newTestShell(t)

	require.NoError(t, s.AddCommand("ping", dispatch.CommandSpec{
		Summary: "Send an echo request",
		Handler: func(*dispatch.Context) error { return nil },
	}))

	s.Execute("help")
	out := reader.out.String()
	require.Contains(t, out, "Commands in root:")
	require.Contains(t, out, "ping")
	require.Contains(t, out, "Send an echo request")
	require.Contains(t, out, "exit")
	require.Contains(t, out, "help")
}

func TestHelpMarksInherited(t *testing.T) {
	s, reader := newTestShell(t)

	require.NoError(t, s.AddCommand("ping", dispatch.CommandSpec{
		Summary: "Send an echo request",
		Handler: func(*dispatch.Context) error { return nil },
	}))
	require.NoError(t, s.AddState("enable", StateSpec{}))

	s.Execute("enable")
	s.Execute("help")
	require.Contains(t, reader.out.String(), "(inherited)")
}

func TestCompletions(t *testing.T) {
	s, _ := newTestShell(t)

	require.NoError(t, s.AddCommand("ping", dispatch.CommandSpec{
		Handler: func(*dispatch.Context) error { return nil },
	}))

	got := s.Completions("", 0)
	require.Equal(t, []string{"exit", "help", "ping"}, got)

	got = s.Completions("pi", 2)
	require.Equal(t, []string{"ping"}, got)

	// Completion on a failing line degrades to no candidates and never
	// changes shell state.
	require.Nil(t, s.Completions("bogus sub", 9))
	require.Equal(t, "root", s.CurrentState())
}

func TestRun_QuitSentinel(t *testing.T) {
	reader := &scriptedReader{lines: []string{"quit", "ping"}}
	s := New(WithReader(reader))
	executed := false

	require.NoError(t, s.AddCommand("quit", dispatch.CommandSpec{
		Handler: func(*dispatch.Context) error { return ErrQuit },
	}))
	require.NoError(t, s.AddCommand("ping", dispatch.CommandSpec{
		Handler: func(*dispatch.Context) error {
			executed = true
			return nil
		},
	}))

	require.NoError(t, s.Run())
	require.False(t, executed)
}

func TestRun_EndsOnEOF(t *testing.T) {
	s, _ := newTestShell(t)
	require.NoError(t, s.Run())
}

func TestOptionalPrefixCalledName(t *testing.T) {
	s, reader := newTestShell(t)

	require.NoError(t, s.AddCommand("shutdown", dispatch.CommandSpec{
		OptionalPrefixes: []string{"no"},
		PassName:         true,
		Handler: func(ctx *dispatch.Context) error {
			ctx.Shell.Write(ctx.CalledName + "\n")
			return nil
		},
	}))

	s.Execute("shutdown")
	s.Execute("no shutdown")
	require.Equal(t, "shutdown\nno shutdown\n", reader.out.String())
}

func TestDriverTransition(t *testing.T) {
	s, _ := newTestShell(t)

	require.NoError(t, s.AddState("enable", StateSpec{}))
	require.NoError(t, s.AddState("configure", StateSpec{Parent: "enable", NoCommand: true}))

	require.NoError(t, s.AddCommand("jump", dispatch.CommandSpec{
		Handler: func(ctx *dispatch.Context) error {
			return ctx.Shell.Transition("configure")
		},
	}))

	s.Execute("jump")
	require.Equal(t, "configure", s.CurrentState())
	// The frame stack follows the parent chain, not the path taken.
	require.Len(t, s.frames, 3)
}

func TestStateEntryCommandPassesArguments(t *testing.T) {
	s, reader := newTestShell(t)

	require.NoError(t, s.AddState("interface", StateSpec{
		Args: []dispatch.ArgSpec{{Name: "intf", Required: true}},
		Handler: func(ctx *dispatch.Context) error {
			fmt.Fprintf(&reader.out, "selected %s\n", ctx.Arg("intf"))
			return nil
		},
	}))

	s.Execute("interface g0")
	require.Equal(t, "interface", s.CurrentState())
	require.Equal(t, "selected g0\n", reader.out.String())
}

func TestRunScript_SkipsBlankAndContinuesOnErrors(t *testing.T) {
	s, reader := newTestShell(t)
	var pings int

	require.NoError(t, s.AddCommand("ping", dispatch.CommandSpec{
		Handler: func(*dispatch.Context) error {
			pings++
			return nil
		},
	}))

	s.RunScript("ping\n\nbogus\nping\n")
	require.Equal(t, 2, pings)
	require.Contains(t, reader.out.String(), "no such command 'bogus'")
}
