package components

import (
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

const (
	pulseIdle = "◯"
	pulseBeat = "◉"

	pulseFPS              = UITicksPerSecond
	pulseAngularFrequency = 8.0
	pulseDampingRatio     = 0.7

	// Ticks the indicator stays lit after a line arrives
	pulseHoldTicks = 2

	pulseFrameThreshold = 0.3
)

// Pulse is an activity indicator that lights up when lines arrive and eases back with spring physics
type Pulse struct {
	spring   harmonica.Spring
	position float64
	velocity float64
	hold     int
}

// NewPulse creates an idle pulse
func NewPulse() *Pulse {
	return &Pulse{
		spring: harmonica.NewSpring(harmonica.FPS(pulseFPS), pulseAngularFrequency, pulseDampingRatio),
	}
}

// Beat signals activity
func (p *Pulse) Beat() {
	p.hold = pulseHoldTicks
}

// Active reports whether a recent beat still holds the indicator lit
func (p *Pulse) Active() bool {
	return p.hold > 0
}

// Update advances the animation by one UI tick
func (p *Pulse) Update() {
	target := 0.0
	if p.hold > 0 {
		target = 1.0
		p.hold--
	}

	p.position, p.velocity = p.spring.Update(p.position, p.velocity, target)
}

// Frame returns the glyph for the current spring position
func (p *Pulse) Frame() string {
	if p.position < pulseFrameThreshold {
		return pulseIdle
	}

	return pulseBeat
}

// Render returns the styled frame
func (p *Pulse) Render(style lipgloss.Style) string {
	return style.Render(p.Frame())
}
