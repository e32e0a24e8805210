package ui

import "time"

// Terminal size thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the width below which the header drops the
	// backend URL.
	LayoutCompactWidth = 90

	// LayoutMinTableHeight is the smallest table body that is still drawn.
	LayoutMinTableHeight = 3
)

// Log overlay limits.
const (
	// LogTailLines is how many lines of the client log the overlay keeps.
	LogTailLines = 500
)

// Timing constants.
const (
	// DefaultNoticeTTL is how long a transient notice stays visible.
	DefaultNoticeTTL = 4 * time.Second
)
