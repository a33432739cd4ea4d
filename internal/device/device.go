package device

import (
	"log/slog"
	"sync"

	"phonedb/internal/channel"
	"phonedb/internal/command"
	"phonedb/internal/domain"
	"phonedb/internal/metrics"
	"phonedb/internal/msgstack"
	"phonedb/internal/storage"
)

type Event string

const (
	EventOpen  Event = "open"
	EventClose Event = "close"
	EventWrite Event = "write"
	EventRead  Event = "read"
)

// Observer is notified of every device event.
type Observer interface {
	Observe(ev Event)
}

type teardowner interface {
	Teardown()
}

// Stats describes the device state at one instant.
type Stats struct {
	Name        string
	Mode        Mode
	Records     int
	Messages    int
	OpenHandles int
	Channel     channel.Stats
}

// Device is the serialized unit formed by a command channel and its backing
// store. Each write or read holds the device lock for its whole duration and
// never longer.
type Device struct {
	mu       sync.Mutex
	name     string
	mode     Mode
	channel  *channel.Channel
	store    *storage.Service
	stack    *msgstack.Stack
	backend  teardowner
	observer Observer
	open     int
	closed   bool
}

func New(cfg Config, observer Observer) *Device {
	cfg = cfg.CombineWith(DefaultConfig)
	if cfg.Mode == Stack {
		cfg.Channel.Delivery = channel.OneShot
	}

	d := &Device{
		name:     cfg.Name,
		mode:     cfg.Mode,
		observer: observer,
	}

	var processor domain.Processor
	switch cfg.Mode {
	case Stack:
		d.stack = msgstack.New(cfg.MaxMessageSize)
		d.backend = d.stack
		processor = d.stack
	default:
		d.store = storage.NewService(cfg.Limits)
		d.backend = d.store
		processor = command.NewProcessor(d.store)
	}
	d.channel = channel.New(cfg.Channel, processor)

	slog.Info("device created",
		"name", d.name,
		"mode", d.mode,
		"delivery", cfg.Channel.Delivery,
		"inbound", cfg.Channel.InboundCapacity,
		"outbound", cfg.Channel.OutboundCapacity,
	)
	return d
}

func (d *Device) Name() string { return d.name }
func (d *Device) Mode() Mode   { return d.mode }

// Open returns a new handle on the device.
func (d *Device) Open() *Handle {
	h := newHandle(d)

	d.mu.Lock()
	d.open++
	d.mu.Unlock()

	metrics.DeviceHandlesOpen.Inc()
	d.notify(EventOpen)
	slog.Debug("device open", "device", d.name, "handle", h.ID())
	return h
}

func (d *Device) release(h *Handle) {
	d.mu.Lock()
	d.open--
	d.mu.Unlock()

	metrics.DeviceHandlesOpen.Dec()
	d.notify(EventClose)
	slog.Debug("device close", "device", d.name, "handle", h.ID())
}

func (d *Device) write(h *Handle, p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.channel.OnWrite(p)
	slog.Debug("write", "handle", h.ID(), "nbytes", n)

	metrics.DeviceEventsTotal.WithLabelValues(string(EventWrite)).Inc()
	d.notify(EventWrite)
	return n, err
}

func (d *Device) read(h *Handle, p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.channel.OnRead(p)
	h.readOffset += int64(n)
	slog.Debug("read", "handle", h.ID(), "nbytes", n, "offset", h.readOffset)

	metrics.DeviceEventsTotal.WithLabelValues(string(EventRead)).Inc()
	d.notify(EventRead)
	return n, err
}

func (d *Device) notify(ev Event) {
	if d.observer != nil {
		d.observer.Observe(ev)
	}
}

func (d *Device) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()

	st := Stats{
		Name:        d.name,
		Mode:        d.mode,
		OpenHandles: d.open,
		Channel:     d.channel.Stats(),
	}
	if d.store != nil {
		st.Records = d.store.Len()
	}
	if d.stack != nil {
		st.Messages = d.stack.Len()
	}
	return st
}

// Close tears down the store and releases the channel buffers. It is safe to
// call more than once.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	d.backend.Teardown()
	d.channel.Close()
	slog.Info("device closed", "name", d.name)
	return nil
}
