package printer

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/tidwall/sjson"

	"tlog/internal/app/errors"
	"tlog/internal/app/logview"
	"tlog/internal/config"
	"tlog/internal/config/logger"
)

const ruleGlyph = "─"

// Printer is a logview.Sink that writes lines to a stream instead of a view
type Printer struct {
	mu        sync.Mutex
	out       io.Writer
	format    string
	width     int
	renderer  *lipgloss.Renderer
	ruleStyle lipgloss.Style
}

// New creates a Printer writing to out in the configured log format
func New(cfg *config.Config, out io.Writer) *Printer {
	renderer := lipgloss.NewRenderer(out)

	return &Printer{
		out:       out,
		format:    cfg.Logging.Format,
		width:     terminalWidth(out),
		renderer:  renderer,
		ruleStyle: renderer.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// AppendLine prints text in the default color
func (p *Printer) AppendLine(text string) {
	p.AppendStyledLine(text, logview.Black, false)
}

// AppendStyledLine prints one styled line
func (p *Printer) AppendStyledLine(text string, color logview.Color, important bool) {
	line := logview.NewLine(text, color, important)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.format == logger.JSONFormat {
		if err := p.writeJSON(line); err == nil {
			return
		}
	}

	p.writeConsole(line)
}

// writeConsole renders the line with the writer's own color profile
func (p *Printer) writeConsole(line logview.Line) {
	style := p.renderer.NewStyle().Inherit(line.Style())

	marker := line.Gutter()
	if line.Important {
		marker = p.renderer.NewStyle().Inherit(line.Style()).UnsetBold().Render(marker)
	}

	fmt.Fprintln(p.out, marker+style.Render(strings.ReplaceAll(line.Text, "\t", "    ")))
}

// Clear prints a rule across the terminal, since printed lines cannot be taken back
func (p *Printer) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.format == logger.JSONFormat {
		fmt.Fprintln(p.out, `{"clear":true}`)
		return
	}

	fmt.Fprintln(p.out, p.ruleStyle.Render(strings.Repeat(ruleGlyph, p.width)))
}

// Width returns the width used for rules
func (p *Printer) Width() int {
	return p.width
}

// writeJSON writes the line as one JSON object; on an encoding error nothing is written and the caller prints it as text
func (p *Printer) writeJSON(line logview.Line) error {
	data := []byte(`{}`)

	fields := []struct {
		path  string
		value interface{}
	}{
		{path: "text", value: line.Text},
		{path: "color", value: line.Color.String()},
		{path: "important", value: line.Important},
	}

	for _, f := range fields {
		var err error
		if data, err = sjson.SetBytes(data, f.path, f.value); err != nil {
			return fmt.Errorf("%w: %w", errors.ErrFailedToBuildPayload, err)
		}
	}

	fmt.Fprintf(p.out, "%s\n", data)

	return nil
}

// terminalWidth returns the column count of out when it is a terminal
func terminalWidth(out io.Writer) int {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(f.Fd()) {
		return config.DefaultViewWidth
	}

	width, _, err := term.GetSize(f.Fd())
	if err != nil || width <= 0 {
		return config.DefaultViewWidth
	}

	return width
}
