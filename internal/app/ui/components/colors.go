package components

import "github.com/charmbracelet/lipgloss"

// Color palette for the shell chrome; log lines carry their own colors
const (
	FgPrimary = lipgloss.Color("#7D56F4") // Purple - title and focus
	FgMuted   = lipgloss.Color("7")       // Light gray - secondary text
	FgBorder  = lipgloss.Color("8")       // Gray - separators and help

	FgStatePassed  = lipgloss.Color("10") // Green - passed run
	FgStateRunning = lipgloss.Color("11") // Yellow - running
	FgStateFailed  = lipgloss.Color("9")  // Red - failed or aborted run
)
