// Package ui provides line readers implementing the shell's I/O contract:
// an interactive bubbletea reader with tab completion and a plain reader for
// scripted or piped input.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/promptr-tools/promptr/dispatch"
	"github.com/promptr-tools/promptr/shell"
	"github.com/promptr-tools/promptr/ui/style"
)

// Terminal reads lines interactively. Each ReadLine runs one bubbletea
// program: Tab asks the shell for completion candidates at the cursor, a
// unique candidate is spliced into the line, several are listed below it.
type Terminal struct {
	out io.Writer
}

// NewTerminal returns an interactive reader on stdout.
func NewTerminal() *Terminal {
	return &Terminal{out: os.Stdout}
}

// ReadLine implements shell.LineReader.
func (t *Terminal) ReadLine(prompt string, complete shell.CompleteFunc) (string, error) {
	input := textinput.New()
	input.Prompt = prompt
	input.Focus()

	m := lineModel{input: input, complete: complete, width: 80}
	final, err := tea.NewProgram(m, tea.WithOutput(t.out)).Run()
	if err != nil {
		return "", err
	}

	fm := final.(lineModel)
	if fm.eof {
		return "", io.EOF
	}
	if fm.canceled {
		return "", nil
	}
	return fm.input.Value(), nil
}

// Write implements shell.LineReader.
func (t *Terminal) Write(text string) {
	fmt.Fprint(t.out, text)
}

var _ shell.LineReader = (*Terminal)(nil)

type lineModel struct {
	input      textinput.Model
	complete   shell.CompleteFunc
	candidates []string
	width      int
	done       bool
	eof        bool
	canceled   bool
}

func (m lineModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m lineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit

		case tea.KeyCtrlD:
			if m.input.Value() == "" {
				m.eof = true
				return m, tea.Quit
			}

		case tea.KeyCtrlC:
			m.canceled = true
			return m, tea.Quit

		case tea.KeyTab:
			m.requestCompletion()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.candidates = nil
	return m, cmd
}

// requestCompletion asks the shell for candidates at the cursor. A single
// candidate replaces the partial token; several are shown for the user to
// disambiguate.
func (m *lineModel) requestCompletion() {
	if m.complete == nil {
		return
	}

	line := m.input.Value()
	cursor := byteCursor(line, m.input.Position())

	cands := m.complete(line, cursor)
	switch len(cands) {
	case 0:
		m.candidates = nil
	case 1:
		start := dispatch.PartialStart(line, cursor)
		rest := line[cursor:]
		value := line[:start] + cands[0]
		if rest == "" {
			value += " "
		}
		m.input.SetValue(value + rest)
		m.input.SetCursor(len([]rune(value)))
		m.candidates = nil
	default:
		m.candidates = cands
	}
}

func (m lineModel) View() string {
	view := m.input.View()
	if m.done || m.eof || m.canceled {
		// Leave only the submitted line behind when the program exits.
		return view + "\n"
	}
	if len(m.candidates) > 0 {
		row := style.Candidate(strings.Join(m.candidates, "  "))
		view += "\n" + wordwrap.String(row, m.width)
	}
	return view
}

// byteCursor converts the textinput's rune-based cursor position into the
// byte offset the tokenizer works with.
func byteCursor(line string, runePos int) int {
	runes := []rune(line)
	if runePos > len(runes) {
		runePos = len(runes)
	}
	return len(string(runes[:runePos]))
}
