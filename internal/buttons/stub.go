//go:build !linux

package buttons

import "errors"

// RealWatcher is not available on non-Linux platforms.
type RealWatcher struct{}

// NewRealWatcher returns an error on non-Linux platforms.
func NewRealWatcher(pinReset, pinMode int) (*RealWatcher, error) {
	return nil, errors.New("buttons: not supported on this platform (requires Linux)")
}

// Events is not implemented on non-Linux platforms.
func (w *RealWatcher) Events() <-chan Event {
	return nil
}

// Close is not implemented on non-Linux platforms.
func (w *RealWatcher) Close() error {
	return nil
}
