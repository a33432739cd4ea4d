package device

import (
	"fmt"
	"io"
	"sync"
	"testing"

	"phonedb/internal/channel"
	"phonedb/internal/command"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingObserver struct {
	mu     sync.Mutex
	counts map[Event]int
}

func (o *countingObserver) Observe(ev Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.counts == nil {
		o.counts = map[Event]int{}
	}
	o.counts[ev]++
}

func (o *countingObserver) get(ev Event) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.counts[ev]
}

func writeString(t *testing.T, h *Handle, s string) {
	t.Helper()
	n, err := io.WriteString(h, s)
	require.NoError(t, err)
	require.Equal(t, len(s), n)
}

func TestDevice_WriteThenReadAll(t *testing.T) {
	d := New(Config{}, nil)
	defer d.Close()

	h := d.Open()
	defer h.Close()

	writeString(t, h, "a ivanov 123\n")
	writeString(t, h, "g ivanov\n")

	out, err := io.ReadAll(h)
	require.NoError(t, err)
	assert.Equal(t, "123", string(out))

	n, err := h.Read(make([]byte, 8))
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestDevice_Offsets(t *testing.T) {
	d := New(Config{}, nil)
	defer d.Close()
	h := d.Open()

	writeString(t, h, "a x 12345")
	writeString(t, h, "g x")

	assert.Equal(t, int64(0), h.ReadOffset())

	p := make([]byte, 2)
	_, err := h.Read(p)
	require.NoError(t, err)
	_, err = h.Read(p)
	require.NoError(t, err)

	assert.Equal(t, int64(4), h.ReadOffset())

	writeString(t, h, "g nobody")
	_, err = io.ReadAll(h)
	require.NoError(t, err)

	assert.Equal(t, int64(5+len(command.NotFoundResponse)), h.ReadOffset())
}

func TestDevice_StackModeForcesOneShot(t *testing.T) {
	d := New(Config{Mode: Stack, Channel: channel.Config{Delivery: channel.Cursor}}, nil)
	defer d.Close()
	h := d.Open()

	writeString(t, h, "first\n")
	writeString(t, h, "second\n")

	out, err := io.ReadAll(h)
	require.NoError(t, err)
	assert.Equal(t, "second", string(out))

	st := d.Stats()
	assert.Equal(t, channel.OneShot, st.Channel.Delivery)
	assert.Equal(t, 1, st.Messages)
}

func TestDevice_WriteReportsBufferFull(t *testing.T) {
	d := New(Config{Channel: channel.Config{InboundCapacity: 4}}, nil)
	defer d.Close()
	h := d.Open()

	n, err := h.Write([]byte("a x 1"))
	require.ErrorIs(t, err, channel.ErrBufferFull)
	assert.Equal(t, 4, n)
	assert.Equal(t, 0, d.Stats().Records)
}

func TestDevice_ConcurrentWriters(t *testing.T) {
	d := New(Config{}, nil)
	defer d.Close()

	const writers, perWriter = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			h := d.Open()
			defer h.Close()
			for i := 0; i < perWriter; i++ {
				_, err := fmt.Fprintf(h, "a w%02di%03d %d", w, i, i)
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()

	st := d.Stats()
	assert.Equal(t, writers*perWriter, st.Records)
	assert.Equal(t, 0, st.OpenHandles)
}

func TestDevice_ObserverAndHandleLifecycle(t *testing.T) {
	obs := &countingObserver{}
	d := New(Config{}, obs)
	defer d.Close()

	h := d.Open()
	assert.NotEmpty(t, h.ID())
	assert.Equal(t, 1, d.Stats().OpenHandles)

	writeString(t, h, "g x")
	_, _ = io.ReadAll(h)

	require.NoError(t, h.Close())
	require.NoError(t, h.Close())

	assert.Equal(t, 1, obs.get(EventOpen))
	assert.Equal(t, 1, obs.get(EventClose))
	assert.Equal(t, 1, obs.get(EventWrite))
	assert.Equal(t, 2, obs.get(EventRead))
	assert.Equal(t, 0, d.Stats().OpenHandles)

	_, err := h.Write([]byte("g x"))
	assert.ErrorIs(t, err, ErrHandleClosed)
	_, err = h.Read(make([]byte, 1))
	assert.ErrorIs(t, err, ErrHandleClosed)
}

func TestDevice_CloseTearsDown(t *testing.T) {
	d := New(Config{}, nil)
	h := d.Open()
	writeString(t, h, "a x 1")
	require.Equal(t, 1, d.Stats().Records)

	require.NoError(t, d.Close())
	require.NoError(t, d.Close())

	assert.Equal(t, 0, d.Stats().Records)
	_, err := h.Write([]byte("g x"))
	assert.ErrorIs(t, err, channel.ErrClosed)
}

func TestDevice_StackMode(t *testing.T) {
	d := New(Config{Mode: Stack, Channel: channel.Config{Delivery: channel.OneShot}}, nil)
	defer d.Close()
	h := d.Open()

	writeString(t, h, "hello\n")
	writeString(t, h, "world\n")
	assert.Equal(t, 2, d.Stats().Messages)

	out, err := io.ReadAll(h)
	require.NoError(t, err)
	assert.Equal(t, "world", string(out))

	out, err = io.ReadAll(h)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))

	assert.Equal(t, 0, d.Stats().Messages)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, Phonebook, m)

	m, err = ParseMode("STACK")
	require.NoError(t, err)
	assert.Equal(t, Stack, m)
	assert.Equal(t, "stack", m.String())

	_, err = ParseMode("fifo")
	assert.Error(t, err)
}
