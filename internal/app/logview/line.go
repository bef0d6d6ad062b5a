package logview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tlog/internal/app/errors"
)

// Font sizes a line is styled with
const (
	NormalSize    = 12
	ImportantSize = 14
)

// Color is an RGB text color
type Color struct {
	R, G, B uint8
}

// Named colors
var (
	Black  = Color{0, 0, 0}
	White  = Color{255, 255, 255}
	Red    = Color{220, 38, 38}
	Green  = Color{22, 163, 74}
	Yellow = Color{202, 138, 4}
	Blue   = Color{37, 99, 235}
	Gray   = Color{115, 115, 115}
)

var namedColors = map[string]Color{
	"black":  Black,
	"white":  White,
	"red":    Red,
	"green":  Green,
	"yellow": Yellow,
	"blue":   Blue,
	"gray":   Gray,
	"grey":   Gray,
}

// ParseColor accepts a color name, "#rrggbb" or "rrggbb"
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	if c, ok := namedColors[s]; ok {
		return c, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("%w: '%s'", errors.ErrInvalidColor, s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: '%s'", errors.ErrInvalidColor, s)
	}

	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex returns the color as "#rrggbb"
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer
func (c Color) String() string {
	for name, named := range namedColors {
		if named == c && name != "grey" {
			return name
		}
	}

	return c.Hex()
}

// terminalColor maps black to the terminal's default foreground so default lines stay readable on dark themes
func (c Color) terminalColor() lipgloss.TerminalColor {
	if c == Black {
		return lipgloss.NoColor{}
	}

	return lipgloss.Color(c.Hex())
}

// Line is one logged message; it is never mutated after creation
type Line struct {
	Text      string
	Color     Color
	Important bool
}

// NewLine creates a line with the given style
func NewLine(text string, color Color, important bool) Line {
	return Line{
		Text:      text,
		Color:     color,
		Important: important,
	}
}

// Size returns the font size the line is styled with
func (l Line) Size() int {
	if l.Important {
		return ImportantSize
	}

	return NormalSize
}

// Bold reports whether the line renders with bold weight
func (l Line) Bold() bool {
	return l.Important
}
