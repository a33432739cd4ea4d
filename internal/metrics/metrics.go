package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "phonedb",
		Subsystem: "command",
		Name:      "total",
		Help:      "Total commands processed",
	}, []string{"verb", "status"})

	CommandDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "phonedb",
		Subsystem: "command",
		Name:      "duration_seconds",
		Help:      "Command processing duration",
		Buckets:   prometheus.ExponentialBuckets(0.000001, 2, 20),
	}, []string{"verb"})

	CommandsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "phonedb",
		Subsystem: "command",
		Name:      "in_flight",
		Help:      "Commands currently being processed",
	})

	StorageRecordsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "phonedb",
		Subsystem: "storage",
		Name:      "records_total",
		Help:      "Records currently linked in the store",
	})

	StorageOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "phonedb",
		Subsystem: "storage",
		Name:      "operations_total",
		Help:      "Total storage operations",
	}, []string{"operation", "result"})

	ChannelBytesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "phonedb",
		Subsystem: "channel",
		Name:      "bytes_total",
		Help:      "Bytes accepted by writes and delivered by reads",
	}, []string{"direction"})

	ChannelBufferFullTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "phonedb",
		Subsystem: "channel",
		Name:      "buffer_full_total",
		Help:      "Writes or responses truncated because a buffer was full",
	}, []string{"buffer"})

	ChannelPendingBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "phonedb",
		Subsystem: "channel",
		Name:      "pending_bytes",
		Help:      "Unread bytes in the outbound buffer",
	})

	DeviceHandlesOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "phonedb",
		Subsystem: "device",
		Name:      "handles_open",
		Help:      "Open device handles",
	})

	DeviceEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "phonedb",
		Subsystem: "device",
		Name:      "events_total",
		Help:      "Device writes and reads",
	}, []string{"event"})

	StackMessagesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "phonedb",
		Subsystem: "stack",
		Name:      "messages_total",
		Help:      "Messages waiting in the stack queue",
	})

	GRPCRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "phonedb",
		Subsystem: "grpc",
		Name:      "requests_total",
		Help:      "Total gRPC requests",
	}, []string{"service", "method", "code"})

	GRPCRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "phonedb",
		Subsystem: "grpc",
		Name:      "request_duration_seconds",
		Help:      "gRPC request duration",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 20),
	}, []string{"service", "method"})
)
