package msgstack

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"phonedb/internal/buffer"
	"phonedb/internal/metrics"
)

const DefaultMaxMessageSize = 256

var ErrMessageTooLong = errors.New("message too long")

// Stack is a last-in-first-out message queue. Every write pushes one message
// and every refill pops the most recent one. Not safe for concurrent use.
type Stack struct {
	messages [][]byte
	maxSize  int
}

func New(maxMessageSize int) *Stack {
	if maxMessageSize <= 0 {
		maxMessageSize = DefaultMaxMessageSize
	}
	return &Stack{maxSize: maxMessageSize}
}

// Process pushes the inbound text up to its first line break as one message.
func (s *Stack) Process(in *buffer.Span, _ io.Writer) error {
	data := in.Bytes()
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		data = data[:i]
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	in.Consume(in.Len())

	if len(data) >= s.maxSize {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrMessageTooLong, len(data), s.maxSize-1)
	}

	s.Push(data)
	return nil
}

// Refill pops the most recent message into out. An empty stack writes nothing.
func (s *Stack) Refill(out io.Writer) error {
	msg, ok := s.Pop()
	if !ok {
		return nil
	}
	_, err := out.Write(msg)
	return err
}

func (s *Stack) Push(msg []byte) {
	s.messages = append(s.messages, bytes.Clone(msg))
	metrics.StackMessagesTotal.Set(float64(len(s.messages)))
	slog.Debug("message pushed", "length", len(msg), "depth", len(s.messages))
}

func (s *Stack) Pop() ([]byte, bool) {
	if len(s.messages) == 0 {
		return nil, false
	}
	last := len(s.messages) - 1
	msg := s.messages[last]
	s.messages[last] = nil
	s.messages = s.messages[:last]
	metrics.StackMessagesTotal.Set(float64(len(s.messages)))
	return msg, true
}

func (s *Stack) Len() int {
	return len(s.messages)
}

func (s *Stack) Teardown() {
	clear(s.messages)
	s.messages = nil
	metrics.StackMessagesTotal.Set(0)
}
