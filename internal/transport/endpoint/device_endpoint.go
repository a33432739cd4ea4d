package endpoint

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The Device service carries its messages in protobuf well-known types, so it
// is described by hand instead of generated from a .proto file:
//
//	service phonedb.v1.Device {
//	  rpc Write(google.protobuf.BytesValue)  returns (google.protobuf.UInt64Value);
//	  rpc Read(google.protobuf.UInt32Value)  returns (google.protobuf.BytesValue);
//	  rpc Stats(google.protobuf.Empty)       returns (google.protobuf.Struct);
//	}
const (
	DeviceServiceName = "phonedb.v1.Device"

	WriteMethod = "/" + DeviceServiceName + "/Write"
	ReadMethod  = "/" + DeviceServiceName + "/Read"
	StatsMethod = "/" + DeviceServiceName + "/Stats"
)

// DeviceServer is the server side of the Device service.
//
// Write sends one command write and returns the number of bytes accepted.
// Read returns up to the requested number of response bytes; an empty value
// means there is nothing left to read.
type DeviceServer interface {
	Write(ctx context.Context, req *wrapperspb.BytesValue) (*wrapperspb.UInt64Value, error)
	Read(ctx context.Context, req *wrapperspb.UInt32Value) (*wrapperspb.BytesValue, error)
	Stats(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

func RegisterDeviceServer(s grpc.ServiceRegistrar, srv DeviceServer) {
	s.RegisterService(&DeviceServiceDesc, srv)
}

var DeviceServiceDesc = grpc.ServiceDesc{
	ServiceName: DeviceServiceName,
	HandlerType: (*DeviceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Write", Handler: writeHandler},
		{MethodName: "Read", Handler: readHandler},
		{MethodName: "Stats", Handler: statsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "phonedb/v1/device.proto",
}

func writeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DeviceServer).Write(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: WriteMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DeviceServer).Write(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func readHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.UInt32Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DeviceServer).Read(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ReadMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DeviceServer).Read(ctx, req.(*wrapperspb.UInt32Value))
	}
	return interceptor(ctx, in, info, handler)
}

func statsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DeviceServer).Stats(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: StatsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DeviceServer).Stats(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}
