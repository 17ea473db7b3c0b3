//go:build linux

package buttons

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// RealWatcher watches the buttons on actual hardware using Linux GPIO
// character device edge detection.
type RealWatcher struct {
	chip      *gpiocdev.Chip
	resetLine *gpiocdev.Line
	modeLine  *gpiocdev.Line
	events    chan Event
}

// NewRealWatcher requests both button lines with pull-ups and both-edge
// detection. Edges are delivered on the Events channel from the kernel's
// event handler goroutine.
func NewRealWatcher(pinReset, pinMode int) (*RealWatcher, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	w := &RealWatcher{
		chip:   chip,
		events: make(chan Event, 16),
	}

	resetLine, err := chip.RequestLine(pinReset,
		gpiocdev.WithPullUp,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(w.handler(ButtonReset)))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request reset pin %d: %w", pinReset, err)
	}
	w.resetLine = resetLine

	modeLine, err := chip.RequestLine(pinMode,
		gpiocdev.WithPullUp,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(w.handler(ButtonMode)))
	if err != nil {
		resetLine.Close()
		chip.Close()
		return nil, fmt.Errorf("request mode pin %d: %w", pinMode, err)
	}
	w.modeLine = modeLine

	return w, nil
}

// handler adapts a gpiocdev line event into a button Event. The send is
// non-blocking: if the run loop has fallen behind, the edge is dropped
// rather than stalling the kernel event goroutine.
func (w *RealWatcher) handler(b Button) func(gpiocdev.LineEvent) {
	return func(evt gpiocdev.LineEvent) {
		e := Event{
			Button: b,
			Rising: evt.Type == gpiocdev.LineEventRisingEdge,
			Time:   time.Now(),
		}
		select {
		case w.events <- e:
		default:
		}
	}
}

// Events returns the edge delivery channel.
func (w *RealWatcher) Events() <-chan Event {
	return w.events
}

// Close releases GPIO resources.
func (w *RealWatcher) Close() error {
	var errs []error

	if w.resetLine != nil {
		if err := w.resetLine.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close reset line: %w", err))
		}
	}
	if w.modeLine != nil {
		if err := w.modeLine.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close mode line: %w", err))
		}
	}
	if w.chip != nil {
		if err := w.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
