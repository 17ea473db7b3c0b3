//go:build !linux

package shiftreg

import "errors"

// RealWriter is not available on non-Linux platforms.
type RealWriter struct{}

// NewRealWriter returns an error on non-Linux platforms.
func NewRealWriter(pinData, pinClock, pinLatch int) (*RealWriter, error) {
	return nil, errors.New("shiftreg: not supported on this platform (requires Linux)")
}

// Write is not implemented on non-Linux platforms.
func (w *RealWriter) Write(bits, sel byte) error {
	return errors.New("shiftreg: not supported")
}

// Close is not implemented on non-Linux platforms.
func (w *RealWriter) Close() error {
	return nil
}
