// Package buttons delivers edge events from the shield's push buttons.
// The real implementation uses Linux GPIO character device edge detection.
// The fake implementation allows testing without hardware.
package buttons

import "time"

// Button identifies one of the shield's push buttons.
type Button int

const (
	// ButtonReset (S1) zeroes the stopwatch. Its wiring produces a rising
	// edge on press.
	ButtonReset Button = iota

	// ButtonMode (S3) holds the voltage display mode. Pressing produces a
	// falling edge, releasing a rising edge.
	ButtonMode
)

// String returns the button name for logging.
func (b Button) String() string {
	switch b {
	case ButtonReset:
		return "RESET"
	case ButtonMode:
		return "MODE"
	}
	return "UNKNOWN"
}

// Event is a single observed edge.
type Event struct {
	Button Button
	Rising bool
	Time   time.Time
}

// Watcher delivers button edges as they occur.
type Watcher interface {
	// Events returns the channel edges are delivered on. Edges that arrive
	// while the channel is full are dropped.
	Events() <-chan Event

	// Close releases GPIO resources and stops delivery.
	Close() error
}

// Pin definitions (BCM numbering)
const (
	DefaultPinReset = 23 // S1
	DefaultPinMode  = 24 // S3
)
