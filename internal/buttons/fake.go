package buttons

// FakeWatcher is a test double that delivers scripted edges.
type FakeWatcher struct {
	events chan Event

	// Closed tracks if Close was called
	Closed bool
}

// NewFakeWatcher creates a FakeWatcher with room for buffered edges.
func NewFakeWatcher() *FakeWatcher {
	return &FakeWatcher{events: make(chan Event, 16)}
}

// Push injects an edge as if the hardware had produced it.
func (f *FakeWatcher) Push(e Event) {
	f.events <- e
}

// Events returns the edge delivery channel.
func (f *FakeWatcher) Events() <-chan Event {
	return f.events
}

// Close marks the watcher as closed.
func (f *FakeWatcher) Close() error {
	f.Closed = true
	return nil
}
