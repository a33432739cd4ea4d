package transport

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	"phonedb/internal/configuration"
	"phonedb/internal/configuration/properties"
	"phonedb/internal/metrics"
	"phonedb/internal/transport/endpoint"

	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

type Service struct {
	network              string
	addr                 string
	timeout              time.Duration
	maxConcurrentStreams uint32
	Server               *grpc.Server
}

func NewTransportService(transportConfig *properties.TransportConfigProperties, deviceServer endpoint.DeviceServer) *Service {
	timeout := configuration.TransportTimeout(transportConfig)

	ts := &Service{
		network:              transportConfig.Network,
		addr:                 transportConfig.Addr(),
		timeout:              timeout,
		maxConcurrentStreams: transportConfig.MaxConcurrentStreams,
	}

	var opts []grpc.ServerOption
	if ts.maxConcurrentStreams > 0 {
		opts = append(opts, grpc.MaxConcurrentStreams(ts.maxConcurrentStreams))
	}
	opts = append(opts, grpc.ChainUnaryInterceptor(
		metrics.UnaryServerInterceptor(),
		timeoutInterceptor(ts.timeout),
	))

	ts.Server = grpc.NewServer(opts...)
	endpoint.RegisterDeviceServer(ts.Server, deviceServer)
	reflection.Register(ts.Server)

	return ts
}

func (ts *Service) Listen() (net.Listener, error) {
	return net.Listen(ts.network, ts.addr)
}

// Serve blocks until the server stops. A graceful stop is not an error.
func (ts *Service) Serve(lis net.Listener) error {
	slog.Info("transport listening", "addr", lis.Addr().String(), "timeout", ts.timeout)
	if err := ts.Server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

func (ts *Service) Stop() {
	ts.Server.GracefulStop()
}

func timeoutInterceptor(d time.Duration) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {

		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		return handler(ctx, req)
	}
}
