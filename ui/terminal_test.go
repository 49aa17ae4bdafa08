package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func newLineModel(value string, complete func(string, int) []string) lineModel {
	input := textinput.New()
	input.Focus()
	input.SetValue(value)
	input.SetCursor(len([]rune(value)))
	return lineModel{input: input, complete: complete, width: 80}
}

func TestLineModel_TabSplicesUniqueCandidate(t *testing.T) {
	m := newLineModel("show int", func(line string, cursor int) []string {
		require.Equal(t, "show int", line)
		require.Equal(t, 8, cursor)
		return []string{"interface"}
	})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	got := next.(lineModel)
	require.Equal(t, "show interface ", got.input.Value())
	require.Empty(t, got.candidates)
}

func TestLineModel_TabListsMultipleCandidates(t *testing.T) {
	m := newLineModel("sh", func(string, int) []string {
		return []string{"show", "shutdown"}
	})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	got := next.(lineModel)
	require.Equal(t, "sh", got.input.Value())
	require.Equal(t, []string{"show", "shutdown"}, got.candidates)
	require.Contains(t, got.View(), "show  shutdown")
}

func TestLineModel_TabWithNoCandidates(t *testing.T) {
	m := newLineModel("bogus", func(string, int) []string { return nil })

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	got := next.(lineModel)
	require.Equal(t, "bogus", got.input.Value())
	require.Empty(t, got.candidates)
}

func TestLineModel_SpliceKeepsTextRightOfCursor(t *testing.T) {
	m := newLineModel("show int status", nil)
	m.complete = func(string, int) []string { return []string{"interface"} }
	m.input.SetCursor(8) // cursor after "show int"

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	got := next.(lineModel)
	require.Equal(t, "show interface status", got.input.Value())
}

func TestLineModel_EnterFinishes(t *testing.T) {
	m := newLineModel("ping", nil)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := next.(lineModel)
	require.True(t, got.done)
	require.NotNil(t, cmd)
}

func TestLineModel_CtrlDOnEmptyIsEOF(t *testing.T) {
	m := newLineModel("", nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	require.True(t, next.(lineModel).eof)

	m = newLineModel("pending", nil)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	require.False(t, next.(lineModel).eof)
}

func TestLineModel_CtrlCCancelsLine(t *testing.T) {
	m := newLineModel("half-typed", nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.True(t, next.(lineModel).canceled)
}

func TestByteCursor(t *testing.T) {
	require.Equal(t, 0, byteCursor("abc", 0))
	require.Equal(t, 3, byteCursor("abc", 3))
	require.Equal(t, 3, byteCursor("abc", 10))
	// Multibyte runes: two runes of three bytes each.
	require.Equal(t, 3, byteCursor("日本", 1))
	require.Equal(t, 6, byteCursor("日本", 2))
}
