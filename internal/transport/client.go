package transport

import (
	"bytes"
	"context"

	"phonedb/internal/transport/endpoint"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// DeviceClient is the client side of the Device service.
type DeviceClient struct {
	cc grpc.ClientConnInterface
}

func NewDeviceClient(cc grpc.ClientConnInterface) *DeviceClient {
	return &DeviceClient{cc: cc}
}

// Write sends p as one device write and returns the accepted byte count.
// On a truncated write the count is still returned next to the error.
func (c *DeviceClient) Write(ctx context.Context, p []byte) (int, error) {
	out := new(wrapperspb.UInt64Value)
	if err := c.cc.Invoke(ctx, endpoint.WriteMethod, wrapperspb.Bytes(p), out); err != nil {
		return AcceptedBytes(err), err
	}
	return int(out.GetValue()), nil
}

// Read returns up to max response bytes. Zero lets the server pick the size.
func (c *DeviceClient) Read(ctx context.Context, max uint32) ([]byte, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, endpoint.ReadMethod, wrapperspb.UInt32(max), out); err != nil {
		return nil, err
	}
	return out.GetValue(), nil
}

// Drain reads until the device has nothing left to return.
func (c *DeviceClient) Drain(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	for {
		chunk, err := c.Read(ctx, 0)
		if err != nil {
			return buf.Bytes(), err
		}
		if len(chunk) == 0 {
			return buf.Bytes(), nil
		}
		buf.Write(chunk)
	}
}

func (c *DeviceClient) Stats(ctx context.Context) (map[string]interface{}, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, endpoint.StatsMethod, &emptypb.Empty{}, out); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}

// AcceptedBytes extracts the accepted byte count from a ResourceExhausted
// status. Any other error yields zero.
func AcceptedBytes(err error) int {
	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.ResourceExhausted {
		return 0
	}
	for _, d := range st.Details() {
		if v, ok := d.(*wrapperspb.UInt64Value); ok {
			return int(v.GetValue())
		}
	}
	return 0
}
