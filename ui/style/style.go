// Package style provides semantic terminal styling using lipgloss.
//
// This package is the only place lipgloss colors are defined. All styling is
// semantic (Error, Header, ...) rather than visual. When disabled, every
// helper returns its input unchanged with no ANSI codes.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	enabled bool

	errorStyle     lipgloss.Style
	warningStyle   lipgloss.Style
	successStyle   lipgloss.Style
	headerStyle    lipgloss.Style
	mutedStyle     lipgloss.Style
	candidateStyle lipgloss.Style
)

// Init sets the enabled state. The NO_COLOR convention wins over the enable
// parameter. Call once from main before any output.
func Init(enable bool) {
	if os.Getenv("NO_COLOR") != "" {
		enabled = false
		return
	}
	enabled = enable

	if enabled {
		// Force ANSI256 regardless of TTY detection so styles survive pipes
		// the caller explicitly opted into.
		lipgloss.SetColorProfile(termenv.ANSI256)
		errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
		successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
		headerStyle = lipgloss.NewStyle().Bold(true)
		mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		candidateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	}
}

// Enabled reports whether styling is active.
func Enabled() bool {
	return enabled
}

// Error styles text for error messages.
func Error(text string) string {
	if !enabled {
		return text
	}
	return errorStyle.Render(text)
}

// Warning styles text for warnings.
func Warning(text string) string {
	if !enabled {
		return text
	}
	return warningStyle.Render(text)
}

// Success styles text for successful operations.
func Success(text string) string {
	if !enabled {
		return text
	}
	return successStyle.Render(text)
}

// Header styles section headers.
func Header(text string) string {
	if !enabled {
		return text
	}
	return headerStyle.Render(text)
}

// Muted styles secondary information.
func Muted(text string) string {
	if !enabled {
		return text
	}
	return mutedStyle.Render(text)
}

// Candidate styles completion candidates.
func Candidate(text string) string {
	if !enabled {
		return text
	}
	return candidateStyle.Render(text)
}
