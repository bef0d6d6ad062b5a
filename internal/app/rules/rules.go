package rules

import (
	"fmt"

	"github.com/gobwas/glob"

	"tlog/internal/app/errors"
	"tlog/internal/app/logview"
	"tlog/internal/config"
)

// Style is the color and emphasis chosen for a line
type Style struct {
	Color     logview.Color
	Important bool
}

// Classifier picks a style for a line of text
type Classifier interface {
	Classify(text string) Style
}

type rule struct {
	pattern glob.Glob
	style   Style
}

// classifier applies rules in order; the first match wins
type classifier struct {
	rules []rule
}

// New compiles config rules into a Classifier
func New(rules []config.Rule) (Classifier, error) {
	c := &classifier{rules: make([]rule, 0, len(rules))}

	for i, r := range rules {
		g, err := glob.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w: %w", i, errors.ErrInvalidRulePattern, err)
		}

		style := Style{Color: logview.Black, Important: r.Important}

		if r.Color != "" {
			color, err := logview.ParseColor(r.Color)
			if err != nil {
				return nil, fmt.Errorf("rule %d: %w", i, err)
			}

			style.Color = color
		}

		c.rules = append(c.rules, rule{pattern: g, style: style})
	}

	return c, nil
}

// NewFromConfig compiles the rules of cfg
func NewFromConfig(cfg *config.Config) (Classifier, error) {
	return New(cfg.Rules)
}

// Classify returns the style of the first matching rule, or the default style
func (c *classifier) Classify(text string) Style {
	for _, r := range c.rules {
		if r.pattern.Match(text) {
			return r.style
		}
	}

	return Style{Color: logview.Black}
}

// Apply classifies text and appends it to sink
func Apply(c Classifier, sink logview.Sink, text string) {
	style := c.Classify(text)
	sink.AppendStyledLine(text, style.Color, style.Important)
}
