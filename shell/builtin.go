package shell

import (
	"fmt"
	"sort"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/promptr-tools/promptr/dispatch"
	"github.com/promptr-tools/promptr/states"
	"github.com/promptr-tools/promptr/ui/style"
)

const helpWidth = 80

// installBuiltins registers the exit and help commands every state carries,
// inherited or not.
func (s *Shell) installBuiltins(st *states.State) error {
	if _, err := st.Registry().Register([]string{"exit"}, dispatch.CommandSpec{
		Summary: "Leave the current state, or the shell at the top level",
		Handler: func(*dispatch.Context) error { return ErrLeaveState },
	}); err != nil {
		return err
	}

	if _, err := st.Registry().Register([]string{"help"}, dispatch.CommandSpec{
		Summary: "List the commands available here",
		Handler: func(ctx *dispatch.Context) error {
			ctx.Shell.Write(s.helpText())
			return nil
		},
	}); err != nil {
		return err
	}

	return nil
}

// helpText lists every command and group visible in the current state, one
// level deep, local scope first with inherited entries marked.
func (s *Shell) helpText() string {
	type entry struct {
		name, summary string
		group         bool
		inherited     bool
	}

	var entries []entry
	seen := make(map[string]bool)
	scope := s.graph.Current().Scope()

	for depth, reg := range scope {
		for name, node := range reg.Root().Children {
			if seen[name] {
				continue
			}
			seen[name] = true
			entries = append(entries, entry{
				name:      name,
				summary:   node.Summary,
				group:     node.IsGroup(),
				inherited: depth > 0,
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	width := 0
	for _, e := range entries {
		if len(e.name) > width {
			width = len(e.name)
		}
	}

	var b strings.Builder
	b.WriteString(style.Header(fmt.Sprintf("Commands in %s:", s.graph.Current().Name())))
	b.WriteString("\n")
	for _, e := range entries {
		name := e.name
		if e.group {
			name += " ..."
		}
		line := fmt.Sprintf("  %-*s  %s", width+4, name, e.summary)
		if e.inherited {
			line += style.Muted(" (inherited)")
		}
		b.WriteString(wordwrap.String(line, helpWidth))
		b.WriteString("\n")
	}
	return b.String()
}
