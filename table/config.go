package table

import (
	"io"
	"log"
)

// Config holds the engine's tuning constants. The pixel thresholds are
// in the units of the host's Geometry: pixels for a graphical host,
// cells for a terminal one.
type Config struct {
	// DragThreshold is the pointer travel that turns a press on a
	// structural handle into a drag.
	DragThreshold int

	// EdgeHoverSnap is how close to a row or column boundary the pointer
	// must be, in a handle strip or a cell, for the insert affordance to
	// appear. It is capped at a fifth of the row or column size.
	EdgeHoverSnap int

	// OutsideClickSnap is how far above or below a table a click still
	// counts as a click in its margin.
	OutsideClickSnap int

	// HandleSize is the depth of the row and column handle strips. It
	// must match the gutter the layout reserves around each table.
	HandleSize int

	// ProbeStep and ProbeSpan control the horizontal walk used to place
	// the caret on a neighbouring visual line.
	ProbeStep int
	ProbeSpan int

	// EmacsKeys maps Ctrl+B, Ctrl+F, Ctrl+P and Ctrl+N onto left, right,
	// up and down.
	EmacsKeys bool

	// WordKeys maps Alt or Ctrl with Left and Right onto cell
	// navigation when the caret sits at a cell boundary.
	WordKeys bool
}

// DefaultConfig returns the configuration for a pixel based host.
func DefaultConfig() Config {
	return Config{
		DragThreshold:    4,
		EdgeHoverSnap:    6,
		OutsideClickSnap: 24,
		HandleSize:       12,
		ProbeStep:        2,
		ProbeSpan:        64,
		EmacsKeys:        true,
		WordKeys:         true,
	}
}

// Option is a functional option for configuring an Engine.
type Option func(*Engine)

// WithConfig replaces the engine's tuning constants.
func WithConfig(c Config) Option {
	return func(e *Engine) {
		if c.ProbeStep <= 0 {
			c.ProbeStep = 1
		}
		e.cfg = c
	}
}

// WithLogger sets where the engine reports recovery from stale state.
// By default nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithClipboard connects the engine to the system clipboard.
func WithClipboard(c Clipboard) Option {
	return func(e *Engine) { e.clip = c }
}

// WithSource subscribes the engine to window level signals from src.
// The subscription ends with Close.
func WithSource(src Source) Option {
	return func(e *Engine) { e.sources = append(e.sources, src) }
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
