//go:build linux

package shiftreg

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealWriter bit-bangs the 74HC595 pair on actual hardware using the Linux
// GPIO character device.
type RealWriter struct {
	chip  *gpiocdev.Chip
	data  *gpiocdev.Line
	clock *gpiocdev.Line
	latch *gpiocdev.Line
}

// NewRealWriter requests the data, clock and latch lines as outputs,
// initially low.
func NewRealWriter(pinData, pinClock, pinLatch int) (*RealWriter, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	dataLine, err := chip.RequestLine(pinData, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request data pin %d: %w", pinData, err)
	}

	clockLine, err := chip.RequestLine(pinClock, gpiocdev.AsOutput(0))
	if err != nil {
		dataLine.Close()
		chip.Close()
		return nil, fmt.Errorf("request clock pin %d: %w", pinClock, err)
	}

	latchLine, err := chip.RequestLine(pinLatch, gpiocdev.AsOutput(0))
	if err != nil {
		clockLine.Close()
		dataLine.Close()
		chip.Close()
		return nil, fmt.Errorf("request latch pin %d: %w", pinLatch, err)
	}

	return &RealWriter{
		chip:  chip,
		data:  dataLine,
		clock: clockLine,
		latch: latchLine,
	}, nil
}

// Write shifts out the segment byte then the digit-select byte and strobes
// the latch. The latch is held low while the bits are in flight so the
// outputs only change on the final strobe.
func (w *RealWriter) Write(bits, sel byte) error {
	if err := w.latch.SetValue(0); err != nil {
		return fmt.Errorf("latch low: %w", err)
	}
	if err := w.shiftOut(bits); err != nil {
		return fmt.Errorf("shift segment byte: %w", err)
	}
	if err := w.shiftOut(sel); err != nil {
		return fmt.Errorf("shift select byte: %w", err)
	}
	if err := w.latch.SetValue(1); err != nil {
		return fmt.Errorf("latch high: %w", err)
	}
	return nil
}

// shiftOut clocks one byte into the register chain, MSB first.
func (w *RealWriter) shiftOut(value byte) error {
	for _, bit := range bitSequence(value) {
		if err := w.data.SetValue(bit); err != nil {
			return fmt.Errorf("data pin: %w", err)
		}
		if err := w.clock.SetValue(1); err != nil {
			return fmt.Errorf("clock high: %w", err)
		}
		if err := w.clock.SetValue(0); err != nil {
			return fmt.Errorf("clock low: %w", err)
		}
	}
	return nil
}

// Close releases GPIO resources.
// Reconfigures pins to input (matching Pi boot defaults) before closing to
// ensure clean state for system shutdown/reboot.
func (w *RealWriter) Close() error {
	var errs []error

	for _, line := range []*gpiocdev.Line{w.data, w.clock, w.latch} {
		if line == nil {
			continue
		}
		if err := line.Reconfigure(gpiocdev.AsInput); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure line: %w", err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close line: %w", err))
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
