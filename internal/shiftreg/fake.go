package shiftreg

// Frame is one committed (segment, select) pair.
type Frame struct {
	Bits byte
	Sel  byte
}

// FakeWriter records committed frames for test assertions.
type FakeWriter struct {
	// Frames contains every frame written, in order.
	Frames []Frame

	// WriteError, if set, will be returned by Write()
	WriteError error

	// Closed tracks if Close was called
	Closed bool
}

// NewFakeWriter creates an empty FakeWriter.
func NewFakeWriter() *FakeWriter {
	return &FakeWriter{}
}

// Write records the frame.
func (f *FakeWriter) Write(bits, sel byte) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	f.Frames = append(f.Frames, Frame{Bits: bits, Sel: sel})
	return nil
}

// Close marks the writer as closed.
func (f *FakeWriter) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded frames.
func (f *FakeWriter) Reset() {
	f.Frames = nil
	f.Closed = false
	f.WriteError = nil
}
