package device

import (
	"errors"
	"io"
	"sync/atomic"

	"github.com/google/uuid"
)

var ErrHandleClosed = errors.New("handle closed")

// Handle is one opener's view of a device, like an open file. It implements
// io.Reader and io.Writer. Every read and write runs under the device lock,
// so a handle may be shared between goroutines.
type Handle struct {
	id         uuid.UUID
	dev        *Device
	readOffset int64
	closed     atomic.Bool
}

func newHandle(d *Device) *Handle {
	return &Handle{id: uuid.New(), dev: d}
}

func (h *Handle) ID() string {
	return h.id.String()
}

// Write hands p to the device as one command write. Each write starts at
// offset zero; writes never advance a position.
func (h *Handle) Write(p []byte) (int, error) {
	if h.closed.Load() {
		return 0, ErrHandleClosed
	}
	return h.dev.write(h, p)
}

// Read drains pending response bytes. When nothing is left it returns io.EOF.
// The read offset keeps advancing across reads.
func (h *Handle) Read(p []byte) (int, error) {
	if h.closed.Load() {
		return 0, ErrHandleClosed
	}
	if len(p) == 0 {
		return 0, nil
	}

	n, err := h.dev.read(h, p)
	if err != nil {
		return n, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// ReadOffset returns the total number of bytes read through the handle.
func (h *Handle) ReadOffset() int64 {
	h.dev.mu.Lock()
	defer h.dev.mu.Unlock()
	return h.readOffset
}

func (h *Handle) Close() error {
	if h.closed.Swap(true) {
		return nil
	}
	h.dev.release(h)
	return nil
}
