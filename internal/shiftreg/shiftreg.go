// Package shiftreg drives the shield's 74HC595 shift-register pair over
// three GPIO lines (data, clock, latch).
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package shiftreg

// Writer commits one multiplex frame to the display.
type Writer interface {
	// Write shifts out the segment byte followed by the digit-select byte,
	// both MSB first, then strobes the latch to commit them to the outputs.
	Write(bits, sel byte) error

	// Close releases GPIO resources.
	Close() error
}

// Pin definitions (BCM numbering)
const (
	DefaultPinData  = 17
	DefaultPinClock = 27
	DefaultPinLatch = 22
)

// bitSequence expands a byte into the individual bit values to shift out,
// most significant bit first.
func bitSequence(value byte) [8]int {
	var seq [8]int
	for i := 7; i >= 0; i-- {
		seq[7-i] = int(value>>i) & 1
	}
	return seq
}
