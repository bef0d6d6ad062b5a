package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type entry struct {
	usage string
	desc  string
}

var commands = []entry{
	{usage: "tlog [pipe]", desc: "Read lines from stdin (default when input is piped)"},
	{usage: "tlog run [plan.toml]", desc: "Run a test plan"},
	{usage: "tlog tail <file>", desc: "Follow a file"},
	{usage: "tlog listen [address]", desc: "Accept lines from other processes over a websocket"},
	{usage: "tlog send <url> [text]", desc: "Send one line to a listening tlog"},
	{usage: "tlog init", desc: "Generate tlog.yaml"},
	{usage: "tlog version", desc: "Show version"},
}

var flags = []entry{
	{usage: "--no-ui", desc: "Print lines to stdout instead of the TUI"},
	{usage: "--color, -c", desc: "send: line color, a name or #rrggbb"},
	{usage: "--important, -i", desc: "send: emphasize the line"},
	{usage: "--clear", desc: "send: clear the remote log"},
	{usage: "--plan", desc: "init: also write a sample plan.toml"},
	{usage: "--force, --dry-run", desc: "init: overwrite, or print instead of writing"},
}

var examples = []entry{
	{usage: "go test ./... | tlog", desc: "View test output"},
	{usage: "tlog tail build.log", desc: "Follow a log file"},
	{usage: "tlog send ws://127.0.0.1:7777/lines 'PASS: door' -c green", desc: "Push a line"},
}

// renderHelp renders the usage screen
func renderHelp() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		RenderTitle(),
		sectionHeader.Render("Usage:"),
		renderEntries(commands, commandNameStyle),
		sectionHeader.Render("Flags:"),
		renderEntries(flags, commandNameStyle),
		sectionHeader.Render("Examples:"),
		renderEntries(examples, exampleCode),
	) + "\n"
}

func renderEntries(entries []entry, style lipgloss.Style) string {
	width := 0
	for _, e := range entries {
		width = max(width, len(e.usage))
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		usage := style.Render(fmt.Sprintf("%-*s", width, e.usage))
		lines = append(lines, "  "+usage+"  "+label.Render(e.desc))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
