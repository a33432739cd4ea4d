package channel

import (
	"strings"
	"testing"

	"phonedb/internal/command"
	"phonedb/internal/record"
	"phonedb/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChannel(cfg Config) (*Channel, *storage.Service) {
	store := storage.NewService(record.DefaultLimits)
	return New(cfg, command.NewProcessor(store)), store
}

func write(t *testing.T, c *Channel, text string) {
	t.Helper()
	n, err := c.OnWrite([]byte(text))
	require.NoError(t, err)
	require.Equal(t, len(text), n)
}

func readAll(c *Channel, chunk int) string {
	var sb strings.Builder
	p := make([]byte, chunk)
	for {
		n, err := c.OnRead(p)
		if err != nil || n == 0 {
			return sb.String()
		}
		sb.Write(p[:n])
	}
}

func TestChannel_AddThenGet(t *testing.T) {
	c, _ := newTestChannel(DefaultConfig)

	write(t, c, "a ivanov 123")
	write(t, c, "g ivanov")

	assert.Equal(t, "123", readAll(c, 64))
}

func TestChannel_GetUnknown(t *testing.T) {
	c, _ := newTestChannel(DefaultConfig)

	write(t, c, "g nobody")
	assert.Equal(t, command.NotFoundResponse, readAll(c, 64))
}

func TestChannel_ReadAfterDrainReturnsZero(t *testing.T) {
	c, _ := newTestChannel(DefaultConfig)
	write(t, c, "a x 42")
	write(t, c, "g x")

	p := make([]byte, 64)
	n, err := c.OnRead(p)
	require.NoError(t, err)
	assert.Equal(t, "42", string(p[:n]))

	for i := 0; i < 3; i++ {
		n, err = c.OnRead(p)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	}
}

func TestChannel_ReadInChunks(t *testing.T) {
	c, _ := newTestChannel(DefaultConfig)
	write(t, c, "g nobody")

	assert.Equal(t, command.NotFoundResponse, readAll(c, 3))
}

func TestChannel_OutboundNotResetAfterRead(t *testing.T) {
	c, _ := newTestChannel(DefaultConfig)
	write(t, c, "a x 12345")
	write(t, c, "g x")

	p := make([]byte, 2)
	n, err := c.OnRead(p)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	st := c.Stats()
	assert.Equal(t, 2, st.ReadStart)
	assert.Equal(t, 5, st.ReadEnd)

	readAll(c, 64)
	st = c.Stats()
	assert.Equal(t, 5, st.ReadStart)
	assert.Equal(t, 5, st.ReadEnd)

	write(t, c, "g x")
	assert.Equal(t, 10, c.Stats().ReadEnd)
	assert.Equal(t, "12345", readAll(c, 64))
}

func TestChannel_ResponsesAccumulateUntilRead(t *testing.T) {
	c, _ := newTestChannel(DefaultConfig)
	write(t, c, "a x 1")
	write(t, c, "g x")
	write(t, c, "g y")

	assert.Equal(t, "1"+command.NotFoundResponse, readAll(c, 64))
}

func TestChannel_InboundClearedAfterWrite(t *testing.T) {
	c, _ := newTestChannel(DefaultConfig)
	write(t, c, "a longsurname 1")

	assert.Equal(t, 0, c.inbound.Start())
	assert.Equal(t, 0, c.inbound.End())
	assert.True(t, c.inbound.Zeroed())

	write(t, c, "g lo")
	assert.Equal(t, command.NotFoundResponse, readAll(c, 64))
}

func TestChannel_WriteOverflowTruncatesAtTokenBoundary(t *testing.T) {
	c, store := newTestChannel(Config{InboundCapacity: 10})

	n, err := c.OnWrite([]byte("a x 1 g x g yy"))
	require.ErrorIs(t, err, ErrBufferFull)
	assert.Equal(t, 10, n)

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, "1", readAll(c, 64))
}

func TestChannel_WriteOverflowBeforeCommandComplete(t *testing.T) {
	c, store := newTestChannel(Config{InboundCapacity: 16})

	n, err := c.OnWrite([]byte("a ivanov 1234567890"))
	require.ErrorIs(t, err, ErrBufferFull)
	require.ErrorIs(t, err, command.ErrMalformedCommand)
	assert.Equal(t, 16, n)
	assert.Equal(t, 0, store.Len())

	write(t, c, "a ivanov 1")
	assert.Equal(t, 1, store.Len())
}

func TestChannel_WriteOverflowAtSeparatorKeepsLastToken(t *testing.T) {
	c, store := newTestChannel(Config{InboundCapacity: 8})

	n, err := c.OnWrite([]byte("a xy 123 g xy"))
	require.ErrorIs(t, err, ErrBufferFull)
	assert.Equal(t, 8, n)
	assert.Equal(t, 1, store.Len())

	write(t, c, "g xy")
	assert.Equal(t, "123", readAll(c, 64))
}

func TestChannel_OutboundOverflow(t *testing.T) {
	c, _ := newTestChannel(Config{OutboundCapacity: 8})
	write(t, c, "a x 12345")
	write(t, c, "g x")

	_, err := c.OnWrite([]byte("g x"))
	require.ErrorIs(t, err, ErrBufferFull)

	assert.Equal(t, "12345123", readAll(c, 64))

	write(t, c, "g x")
	assert.Equal(t, "12345", readAll(c, 64))
}

func TestChannel_OutboundRecyclesConsumedBytes(t *testing.T) {
	c, _ := newTestChannel(Config{OutboundCapacity: 8})
	write(t, c, "a x 12345")
	write(t, c, "g x")

	p := make([]byte, 4)
	n, _ := c.OnRead(p)
	require.Equal(t, 4, n)

	write(t, c, "g x")
	assert.Equal(t, "512345", readAll(c, 64))
}

func TestChannel_OneShotDelivery(t *testing.T) {
	c, _ := newTestChannel(Config{Delivery: OneShot})
	write(t, c, "a x 12345")
	write(t, c, "g x")

	p := make([]byte, 3)
	n, err := c.OnRead(p)
	require.NoError(t, err)
	assert.Equal(t, "123", string(p[:n]))

	n, err = c.OnRead(p)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = c.OnRead(p)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	write(t, c, "g x")
	n, err = c.OnRead(make([]byte, 64))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestChannel_Closed(t *testing.T) {
	c, _ := newTestChannel(DefaultConfig)
	c.Close()
	c.Close()

	_, err := c.OnWrite([]byte("g x"))
	require.ErrorIs(t, err, ErrClosed)
	_, err = c.OnRead(make([]byte, 1))
	require.ErrorIs(t, err, ErrClosed)
}

func TestConfig_CombineWith(t *testing.T) {
	cfg := Config{OutboundCapacity: 16, Delivery: OneShot}.CombineWith(DefaultConfig)

	assert.Equal(t, DefaultCapacity, cfg.InboundCapacity)
	assert.Equal(t, 16, cfg.OutboundCapacity)
	assert.Equal(t, OneShot, cfg.Delivery)
}

func TestParseDelivery(t *testing.T) {
	d, err := ParseDelivery("")
	require.NoError(t, err)
	assert.Equal(t, Cursor, d)

	d, err = ParseDelivery("One-Shot")
	require.NoError(t, err)
	assert.Equal(t, OneShot, d)
	assert.Equal(t, "one-shot", d.String())

	_, err = ParseDelivery("fifo")
	require.Error(t, err)
}
