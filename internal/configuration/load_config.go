package configuration

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"phonedb/internal/channel"
	"phonedb/internal/configuration/properties"
	"phonedb/internal/configuration/util"
	"phonedb/internal/device"
	"phonedb/internal/record"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDir   = "internal/static"
	ConfigDirEnv = "PHONEDB_CONFIG_DIR"
)

var (
	ErrMissingProfile  = errors.New("app.profile is not set")
	ErrInvalidDelivery = errors.New("stack mode requires one-shot delivery")
)

// Load reads application.yml from dir and overlays application-<profile>.yml
// on it. An empty dir falls back to $PHONEDB_CONFIG_DIR, then DefaultDir.
func Load(dir string) (*properties.Config, error) {
	if dir == "" {
		dir = os.Getenv(ConfigDirEnv)
	}
	if dir == "" {
		dir = DefaultDir
	}

	cfg, err := loadBaseConfig(dir)
	if err != nil {
		return nil, err
	}

	if err := loadProfileConfig(dir, cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)
	return cfg, nil
}

func loadBaseConfig(dir string) (*properties.Config, error) {
	raw, err := util.LoadAndExpandYaml(dir, "application")
	if err != nil {
		slog.Error("Error loading base config", "error", err)
		return nil, err
	}

	cfg := properties.Config{}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		slog.Error("Error parsing base config", "error", err)
		return nil, fmt.Errorf("parse application.yml: %w", err)
	}

	if cfg.Application.Profile == "" {
		return nil, ErrMissingProfile
	}
	return &cfg, nil
}

func loadProfileConfig(dir string, cfg *properties.Config) error {
	name := "application-" + cfg.Application.Profile

	raw, err := util.LoadAndExpandYaml(dir, name)
	if err != nil {
		slog.Error("Error loading profile config", "error", err)
		return err
	}

	if err := yaml.Unmarshal(raw, cfg); err != nil {
		slog.Error("Error parsing profile config", "error", err)
		return fmt.Errorf("parse %s.yml: %w", name, err)
	}
	return nil
}

func applyDefaults(cfg *properties.Config) {
	if cfg.Application.LogLevel == "" {
		cfg.Application.LogLevel = "info"
	}
	if cfg.Transport.Network == "" {
		cfg.Transport.Network = "tcp"
	}
	if cfg.Transport.Port == "" {
		cfg.Transport.Port = "7070"
	}
	if cfg.Transport.Timeout == 0 {
		slog.Warn("Timeout can't be less than 1 second. Setting transport timeout to 1 second.")
		cfg.Transport.Timeout = 1
	}
	if cfg.Transport.MaxConcurrentStreams == 0 {
		cfg.Transport.MaxConcurrentStreams = 100
	}
	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = ":9090"
	}
}

// DeviceConfig converts the device properties into a device.Config. The stack
// mode only runs with one-shot delivery, the phonebook mode defaults to cursor.
func DeviceConfig(p *properties.DeviceConfigProperties) (device.Config, error) {
	mode, err := device.ParseMode(p.Mode)
	if err != nil {
		return device.Config{}, err
	}

	delivery, err := channel.ParseDelivery(p.Delivery)
	if err != nil {
		return device.Config{}, err
	}
	if mode == device.Stack {
		if p.Delivery != "" && delivery != channel.OneShot {
			return device.Config{}, fmt.Errorf("%w: got %q", ErrInvalidDelivery, p.Delivery)
		}
		delivery = channel.OneShot
	}

	cfg := device.Config{
		Name: p.Name,
		Mode: mode,
		Channel: channel.Config{
			InboundCapacity:  p.InboundCapacity,
			OutboundCapacity: p.OutboundCapacity,
			Delivery:         delivery,
		},
		Limits: record.Limits{
			MaxSurnameSize: p.MaxSurnameSize,
			MaxPhoneSize:   p.MaxPhoneSize,
		},
		MaxMessageSize: p.MaxMessageSize,
	}
	return cfg.CombineWith(device.DefaultConfig), nil
}

func StatsInterval(p *properties.StatsConfigProperties) time.Duration {
	return time.Duration(p.ReportInterval) * time.Second
}

// TransportTimeout is the per-request deadline. Anything under a second is
// raised to one second.
func TransportTimeout(p *properties.TransportConfigProperties) time.Duration {
	if p.Timeout == 0 {
		slog.Warn("Timeout can't be less than 1 second. Setting transport timeout to 1 second.")
		return time.Second
	}
	return time.Duration(p.Timeout) * time.Second
}
