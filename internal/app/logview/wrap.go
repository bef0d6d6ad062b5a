package logview

import (
	"strings"

	"github.com/muesli/ansi"
)

// wrapText splits plain text into rows no wider than maxWidth display cells,
// breaking at spaces where possible and inside words otherwise
func wrapText(text string, maxWidth int) []string {
	text = strings.ReplaceAll(text, "\t", "    ")

	if maxWidth <= 0 || ansi.PrintableRuneWidth(text) <= maxWidth {
		return []string{text}
	}

	var (
		rows    []string
		current strings.Builder
		width   int
	)

	flush := func() {
		rows = append(rows, strings.TrimRight(current.String(), " "))
		current.Reset()
		width = 0
	}

	for _, word := range strings.SplitAfter(text, " ") {
		wordWidth := ansi.PrintableRuneWidth(word)
		trimmedWidth := ansi.PrintableRuneWidth(strings.TrimRight(word, " "))

		if width > 0 && width+trimmedWidth > maxWidth {
			flush()
		}

		if trimmedWidth <= maxWidth {
			current.WriteString(word)
			width += wordWidth

			continue
		}

		for _, r := range word {
			rw := ansi.PrintableRuneWidth(string(r))
			if width > 0 && width+rw > maxWidth {
				flush()
			}

			if r == ' ' && width == 0 {
				continue
			}

			current.WriteRune(r)
			width += rw
		}
	}

	if current.Len() > 0 {
		flush()
	}

	return rows
}
