package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"phonedb/internal/channel"
	"phonedb/internal/command"
	"phonedb/internal/device"
	"phonedb/internal/msgstack"
	"phonedb/internal/record"
	"phonedb/internal/stats"
	"phonedb/internal/transport/endpoint"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	DefaultReadSize = 4096
	MaxReadSize     = 1 << 20
)

// DeviceHandler serves the Device service over one handle on the device.
// Every RPC is one device write or read, so RPCs from different clients are
// serialized by the device lock.
type DeviceHandler struct {
	dev      *device.Device
	handle   *device.Handle
	reporter *stats.Reporter
}

var _ endpoint.DeviceServer = (*DeviceHandler)(nil)

func NewDeviceHandler(dev *device.Device, reporter *stats.Reporter) *DeviceHandler {
	return &DeviceHandler{
		dev:      dev,
		handle:   dev.Open(),
		reporter: reporter,
	}
}

func (h *DeviceHandler) Write(ctx context.Context, req *wrapperspb.BytesValue) (*wrapperspb.UInt64Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, toGRPCError(err, 0)
	}

	n, err := h.handle.Write(req.GetValue())
	if err != nil {
		slog.Warn("write failed", "accepted", n, "requested", len(req.GetValue()), "error", err)
		return nil, toGRPCError(err, n)
	}
	return wrapperspb.UInt64(uint64(n)), nil
}

func (h *DeviceHandler) Read(ctx context.Context, req *wrapperspb.UInt32Value) (*wrapperspb.BytesValue, error) {
	if err := ctx.Err(); err != nil {
		return nil, toGRPCError(err, 0)
	}

	size := int(req.GetValue())
	if size == 0 {
		size = DefaultReadSize
	}
	if size > MaxReadSize {
		size = MaxReadSize
	}

	buf := make([]byte, size)
	n, err := h.handle.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, toGRPCError(err, n)
	}
	return wrapperspb.Bytes(buf[:n]), nil
}

func (h *DeviceHandler) Stats(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	st := h.dev.Stats()

	fields := map[string]interface{}{
		"name":             st.Name,
		"mode":             st.Mode.String(),
		"records":          st.Records,
		"messages":         st.Messages,
		"openHandles":      st.OpenHandles,
		"delivery":         st.Channel.Delivery.String(),
		"inboundCapacity":  st.Channel.InboundCapacity,
		"outboundCapacity": st.Channel.OutboundCapacity,
		"readStart":        st.Channel.ReadStart,
		"readEnd":          st.Channel.ReadEnd,
	}
	if h.reporter != nil {
		snap := h.reporter.Snapshot()
		fields["events"] = snap.Total
		fields["writes"] = snap.Writes
		fields["reads"] = snap.Reads
	}

	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "internal error: %v", err)
	}
	return out, nil
}

func (h *DeviceHandler) Close() error {
	return h.handle.Close()
}

// toGRPCError maps device errors to status codes. A truncated write carries
// the accepted byte count as a UInt64Value detail.
func toGRPCError(err error, accepted int) error {
	switch {
	case errors.Is(err, channel.ErrBufferFull):
		st := status.New(codes.ResourceExhausted, err.Error())
		ds, detailErr := st.WithDetails(wrapperspb.UInt64(uint64(accepted)))
		if detailErr != nil {
			return st.Err()
		}
		return ds.Err()
	case errors.Is(err, command.ErrMalformedCommand),
		errors.Is(err, record.ErrFieldTooLong),
		errors.Is(err, msgstack.ErrMessageTooLong):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, channel.ErrClosed), errors.Is(err, device.ErrHandleClosed):
		return status.Error(codes.Unavailable, "device is closed")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request timed out")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	default:
		return status.Errorf(codes.Internal, "internal error: %v", err)
	}
}
