package shell

import (
	"strings"

	"github.com/promptr-tools/promptr/dispatch"
)

// Prompt renders the current prompt: the format string with {host} and
// {state} substituted. The state part strings every active frame label
// together, wrapped in the configured parentheses, e.g. "(conf-g0)".
func (s *Shell) Prompt() string {
	var labels []string
	for _, f := range s.frames {
		if f.label != "" {
			labels = append(labels, f.label)
		}
	}

	state := ""
	if len(labels) > 0 {
		state = s.parenL + strings.Join(labels, s.delim) + s.parenR
	}

	out := strings.ReplaceAll(s.promptFmt, "{host}", s.host)
	out = strings.ReplaceAll(out, "{state}", state)
	return out
}

// renderLabel fills {arg} placeholders in a state's prompt label template
// from the entering invocation's bound arguments. With no context, the
// template is returned with placeholders blanked.
func renderLabel(tmpl string, ctx *dispatch.Context) string {
	if tmpl == "" || !strings.Contains(tmpl, "{") {
		return tmpl
	}

	var b strings.Builder
	rest := tmpl
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:open])
		name := rest[open+1 : open+end]
		if ctx != nil {
			b.WriteString(ctx.Arg(name))
		}
		rest = rest[open+end+1:]
	}
	return b.String()
}
