package components

import "time"

// UI timing
const (
	// UITickInterval drives animations
	UITickInterval = 100 * time.Millisecond

	UITicksPerSecond = int(time.Second / UITickInterval)
)

// Header layout constants
const (
	HeaderSeparatorMinWidth = 4
	HeaderFixedChars        = 10
)

// Footer layout constants
const (
	FooterSeparatorMinWidth = 4
	FooterFixedChars        = 5
)
