package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Box drawing characters
const (
	TopLeft     = "╭"
	TopRight    = "╮"
	BottomLeft  = "╰"
	BottomRight = "╯"
	Horizontal  = "─"
	Vertical    = "│"
	LeftT       = "├"
	RightT      = "┤"
	TopT        = "┬"
	BottomT     = "┴"
	Cross       = "┼"
)

// Color palette
const (
	ColorBorder  = "240"
	ColorHeader  = "252"
	ColorID      = "214"
	ColorName    = "81"
	ColorValue   = "252"
	ColorCLI     = "81"
	ColorAPI     = "214"
	ColorRunning = "82"
	ColorStopped = "245"
	ColorPending = "214"
	ColorError   = "196"
	ColorMuted   = "240"
	ColorHint    = "245"
)

// Shared styles
var (
	BorderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder))
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorHeader))
	IDStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorID))
	NameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorName))
	ValueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorValue))
	CLIStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorCLI))
	APIStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAPI))
	RunningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRunning))
	StoppedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorStopped))
	PendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPending))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
	MutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
	HintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHint))
)

// padRight pads or truncates s to a display width
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "...")
	}
	return s + strings.Repeat(" ", width-sw)
}

// stateStyle picks the style and indicator for a resource state
func stateStyle(state string) (string, lipgloss.Style) {
	switch state {
	case "READY", "COMPLETED":
		return "●", RunningStyle
	case "CREATING", "RESIZING", "PENDING_DELETE", "MAINTENANCE", "QUEUED", "STARTED":
		return "◐", PendingStyle
	case "ERROR":
		return "✗", ErrorStyle
	default:
		return "○", StoppedStyle
	}
}
