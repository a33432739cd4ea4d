package channel

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"phonedb/internal/buffer"
	"phonedb/internal/domain"
	"phonedb/internal/metrics"
)

// DefaultCapacity is ten 4 KiB pages.
const DefaultCapacity = 10 * 4096

var (
	ErrBufferFull = buffer.ErrBufferFull
	ErrClosed     = errors.New("channel closed")
)

type Config struct {
	InboundCapacity  int
	OutboundCapacity int
	Delivery         Delivery
}

var DefaultConfig = Config{
	InboundCapacity:  DefaultCapacity,
	OutboundCapacity: DefaultCapacity,
	Delivery:         Cursor,
}

func (cfg Config) CombineWith(other Config) Config {
	if cfg.InboundCapacity <= 0 {
		cfg.InboundCapacity = other.InboundCapacity
	}
	if cfg.OutboundCapacity <= 0 {
		cfg.OutboundCapacity = other.OutboundCapacity
	}
	return cfg
}

// Stats is a point-in-time view of the channel cursors.
type Stats struct {
	InboundCapacity  int
	OutboundCapacity int
	ReadStart        int
	ReadEnd          int
	Delivery         Delivery
}

// Channel mediates between raw byte writes/reads and a Processor through an
// inbound and an outbound buffer. A Channel is not safe for concurrent use.
type Channel struct {
	inbound   *buffer.Span
	outbound  *buffer.Span
	processor domain.Processor
	delivery  Delivery
	delivered bool
	closed    bool
}

func New(cfg Config, p domain.Processor) *Channel {
	cfg = cfg.CombineWith(DefaultConfig)
	slog.Debug("channel allocated",
		"inbound", cfg.InboundCapacity,
		"outbound", cfg.OutboundCapacity,
		"delivery", cfg.Delivery,
	)
	return &Channel{
		inbound:   buffer.NewSpan(cfg.InboundCapacity),
		outbound:  buffer.NewSpan(cfg.OutboundCapacity),
		processor: p,
		delivery:  cfg.Delivery,
	}
}

// OnWrite copies p into the inbound buffer, runs the processor over it and
// clears the buffer. It returns the number of bytes accepted. If p did not
// fit, the partial token cut by the truncation is dropped before parsing and
// the error wraps ErrBufferFull; processor errors are joined to it. A write
// re-arms one-shot delivery.
func (c *Channel) OnWrite(p []byte) (int, error) {
	if c.closed {
		return 0, ErrClosed
	}
	c.delivered = false

	n, fullErr := c.inbound.Append(p)
	if fullErr != nil {
		metrics.ChannelBufferFullTotal.WithLabelValues("inbound").Inc()
		slog.Warn("write truncated", "requested", len(p), "accepted", n)
		fullErr = fmt.Errorf("inbound: accepted %d of %d bytes: %w", n, len(p), fullErr)
		if !buffer.IsSeparator(p[n]) {
			c.inbound.Truncate(lastSeparator(c.inbound.Bytes()))
		}
	}
	metrics.ChannelBytesTotal.WithLabelValues("in").Add(float64(n))
	slog.Debug("write", "nbytes", n)

	procErr := c.processor.Process(c.inbound, outboundWriter{c})
	c.inbound.Clear()
	metrics.ChannelPendingBytes.Set(float64(c.outbound.Len()))

	return n, errors.Join(fullErr, procErr)
}

// OnRead copies pending response bytes into p according to the delivery
// policy. Zero bytes with a nil error means there is nothing to deliver.
func (c *Channel) OnRead(p []byte) (int, error) {
	if c.closed {
		return 0, ErrClosed
	}

	var n int
	var err error
	switch c.delivery {
	case OneShot:
		n, err = c.readOnce(p)
	default:
		n, err = c.readCursor(p)
	}

	metrics.ChannelBytesTotal.WithLabelValues("out").Add(float64(n))
	metrics.ChannelPendingBytes.Set(float64(c.outbound.Len()))
	slog.Debug("read", "nbytes", n, "readStart", c.outbound.Start(), "readEnd", c.outbound.End())
	return n, err
}

func (c *Channel) readCursor(p []byte) (int, error) {
	if c.outbound.Len() == 0 {
		if err := c.refill(); err != nil {
			return 0, err
		}
	}
	return c.outbound.Read(p), nil
}

func (c *Channel) readOnce(p []byte) (int, error) {
	if c.delivered {
		c.delivered = false
		return 0, nil
	}
	c.delivered = true

	if c.outbound.Len() == 0 {
		if err := c.refill(); err != nil {
			return 0, err
		}
	}
	n := c.outbound.Read(p)
	c.outbound.Reset()
	return n, nil
}

func (c *Channel) refill() error {
	r, ok := c.processor.(domain.Refiller)
	if !ok {
		return nil
	}
	return r.Refill(outboundWriter{c})
}

func (c *Channel) Stats() Stats {
	return Stats{
		InboundCapacity:  c.inbound.Cap(),
		OutboundCapacity: c.outbound.Cap(),
		ReadStart:        c.outbound.Start(),
		ReadEnd:          c.outbound.End(),
		Delivery:         c.delivery,
	}
}

// Close releases both buffers. Further writes and reads fail with ErrClosed.
func (c *Channel) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.inbound = buffer.NewSpan(0)
	c.outbound = buffer.NewSpan(0)
	metrics.ChannelPendingBytes.Set(0)
}

// outboundWriter appends responses to the outbound buffer. Consumed bytes are
// recycled before a response is truncated.
type outboundWriter struct {
	c *Channel
}

func (w outboundWriter) Write(p []byte) (int, error) {
	out := w.c.outbound
	if len(p) > out.Free() {
		out.Compact()
	}

	n, err := out.Append(p)
	if err != nil {
		metrics.ChannelBufferFullTotal.WithLabelValues("outbound").Inc()
		slog.Warn("response truncated", "requested", len(p), "accepted", n)
		return n, fmt.Errorf("outbound: accepted %d of %d bytes: %w", n, len(p), err)
	}
	return n, nil
}

var _ io.Writer = outboundWriter{}

// lastSeparator returns the length of data up to and including its last
// separator byte, or 0 when there is none.
func lastSeparator(data []byte) int {
	for i := len(data) - 1; i >= 0; i-- {
		if buffer.IsSeparator(data[i]) {
			return i + 1
		}
	}
	return 0
}
