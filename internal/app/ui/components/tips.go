package components

import (
	"math/rand/v2"

	"github.com/charmbracelet/lipgloss"
)

var (
	tipKeyStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"})
	tipDescStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B2B2B2", Dark: "#4A4A4A"})
)

func tipKey(k string) string  { return tipKeyStyle.Render(k) }
func tipDesc(d string) string { return tipDescStyle.Render(d) }

// Tips are hints shown in the footer next to the key help
var Tips = []string{
	tipDesc("Pipe any command into ") + tipKey("tlog") + tipDesc(" to view its output"),
	tipDesc("Follow a file with ") + tipKey("tlog tail app.log"),
	tipDesc("Run a test plan with ") + tipKey("tlog run plan.toml"),
	tipDesc("Stream lines from other processes with ") + tipKey("tlog listen"),
	tipDesc("Press ") + tipKey("f") + tipDesc(" to stop following new lines"),
	tipDesc("Press ") + tipKey("g/G") + tipDesc(" to jump to the top or bottom"),
	tipDesc("Run without TUI using ") + tipKey("tlog --no-ui"),
}

// RandomTip picks a tip to show for this session
func RandomTip() string {
	//nolint:gosec // weak random is fine for picking a hint
	return Tips[rand.IntN(len(Tips))]
}
