package event

import "sync"

// Frame is one outbound event shared by every recipient of a delivery. The
// wire form is encoded on first use and reused afterwards.
type Frame struct {
	Event Outbound

	once sync.Once
	data []byte
	err  error
}

// NewFrame wraps o for delivery.
func NewFrame(o Outbound) *Frame {
	return &Frame{Event: o}
}

// Bytes returns the encoded frame. Callers must not modify the slice.
func (f *Frame) Bytes() ([]byte, error) {
	f.once.Do(func() {
		f.data, f.err = Encode(f.Event)
	})
	return f.data, f.err
}
