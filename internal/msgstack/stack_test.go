package msgstack

import (
	"strings"
	"testing"

	"phonedb/internal/channel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStack_PushPop(t *testing.T) {
	s := New(0)
	s.Push([]byte("one"))
	s.Push([]byte("two"))

	msg, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, "two", string(msg))

	msg, ok = s.Pop()
	require.True(t, ok)
	assert.Equal(t, "one", string(msg))

	_, ok = s.Pop()
	assert.False(t, ok)
}

func TestStack_PushCopies(t *testing.T) {
	s := New(0)
	buf := []byte("abc")
	s.Push(buf)
	buf[0] = 'x'

	msg, _ := s.Pop()
	assert.Equal(t, "abc", string(msg))
}

func newStackChannel(maxSize int) (*channel.Channel, *Stack) {
	s := New(maxSize)
	return channel.New(channel.Config{Delivery: channel.OneShot}, s), s
}

func read(t *testing.T, c *channel.Channel, size int) string {
	t.Helper()
	p := make([]byte, size)
	n, err := c.OnRead(p)
	require.NoError(t, err)
	return string(p[:n])
}

func TestStack_OverChannel_LastInFirstOut(t *testing.T) {
	c, s := newStackChannel(0)

	for _, msg := range []string{"first\n", "second\r\n", "third"} {
		_, err := c.OnWrite([]byte(msg))
		require.NoError(t, err)
	}
	assert.Equal(t, 3, s.Len())

	assert.Equal(t, "third", read(t, c, 64))
	assert.Equal(t, "", read(t, c, 64))
	assert.Equal(t, "second", read(t, c, 64))
	assert.Equal(t, "", read(t, c, 64))
	assert.Equal(t, "first", read(t, c, 64))
	assert.Equal(t, "", read(t, c, 64))
	assert.Equal(t, "", read(t, c, 64))
	assert.Equal(t, 0, s.Len())
}

func TestStack_OverChannel_ReadTruncatesAndDiscards(t *testing.T) {
	c, s := newStackChannel(0)

	_, err := c.OnWrite([]byte("hello world"))
	require.NoError(t, err)

	assert.Equal(t, "hell", read(t, c, 4))
	assert.Equal(t, "", read(t, c, 64))
	assert.Equal(t, 0, s.Len())
}

func TestStack_OverChannel_MessageTooLong(t *testing.T) {
	c, s := newStackChannel(8)

	_, err := c.OnWrite([]byte(strings.Repeat("x", 8)))
	require.ErrorIs(t, err, ErrMessageTooLong)
	assert.Equal(t, 0, s.Len())

	_, err = c.OnWrite([]byte(strings.Repeat("x", 7)))
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestStack_Teardown(t *testing.T) {
	s := New(0)
	s.Teardown()
	s.Push([]byte("a"))
	s.Teardown()
	assert.Equal(t, 0, s.Len())
}
