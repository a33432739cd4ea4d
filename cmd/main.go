package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"phonedb/internal/configuration"
	"phonedb/internal/device"
	"phonedb/internal/logging"
	"phonedb/internal/metrics"
	"phonedb/internal/stats"
	"phonedb/internal/transport"
	"phonedb/internal/transport/handler"

	"golang.org/x/sync/errgroup"
)

func main() {
	configDir := flag.String("config", "", "directory holding application.yml (default $"+configuration.ConfigDirEnv+" or "+configuration.DefaultDir+")")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	config, err := configuration.Load(*configDir)
	if err != nil {
		slog.Error("Failed to initialize application context", "error", err)
		os.Exit(1)
	}

	logging.Init(config.Application.LogLevel)
	slog.Info("Starting device...", "profile", config.Application.Profile)

	deviceConfig, err := configuration.DeviceConfig(&config.Device)
	if err != nil {
		slog.Error("Invalid device configuration", "error", err)
		os.Exit(1)
	}

	reporter := stats.NewReporter(configuration.StatsInterval(&config.Stats))
	dev := device.New(deviceConfig, reporter)
	deviceHandler := handler.NewDeviceHandler(dev, reporter)

	transportService := transport.NewTransportService(&config.Transport, deviceHandler)
	lis, err := transportService.Listen()
	if err != nil {
		slog.Error("Failed to start transport server", "error", err)
		_ = dev.Close()
		os.Exit(1)
	}

	var metricsServer *metrics.Server
	if config.Metrics.Enabled {
		metricsServer = metrics.NewServer(config.Metrics.Address)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return transportService.Serve(lis)
	})
	if metricsServer != nil {
		g.Go(metricsServer.ListenAndServe)
	}
	g.Go(func() error {
		return reporter.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down device...")
		transportService.Stop()
		if metricsServer != nil {
			metricsServer.Stop()
		}
		return nil
	})

	slog.Info("Device ready", "name", dev.Name(), "mode", dev.Mode(), "addr", lis.Addr().String())

	if err := g.Wait(); err != nil {
		slog.Error("Device stopped with error", "error", err)
	}

	_ = deviceHandler.Close()
	_ = dev.Close()
	reporter.Tick()
}
