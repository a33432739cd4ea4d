package device

import (
	"fmt"
	"strings"

	"phonedb/internal/channel"
	"phonedb/internal/msgstack"
	"phonedb/internal/record"
)

type Mode int

const (
	// Phonebook serves the surname/phone record store.
	Phonebook Mode = iota
	// Stack serves the last-in-first-out message queue.
	Stack
)

func (m Mode) String() string {
	switch m {
	case Phonebook:
		return "phonebook"
	case Stack:
		return "stack"
	default:
		return "unknown"
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "phonebook":
		return Phonebook, nil
	case "stack":
		return Stack, nil
	default:
		return Phonebook, fmt.Errorf("unknown device mode %q", s)
	}
}

type Config struct {
	Name           string
	Mode           Mode
	Channel        channel.Config
	Limits         record.Limits
	MaxMessageSize int
}

var DefaultConfig = Config{
	Name:           "phonedb-0",
	Mode:           Phonebook,
	Channel:        channel.DefaultConfig,
	Limits:         record.DefaultLimits,
	MaxMessageSize: msgstack.DefaultMaxMessageSize,
}

func (cfg Config) CombineWith(other Config) Config {
	if cfg.Name == "" {
		cfg.Name = other.Name
	}
	cfg.Channel = cfg.Channel.CombineWith(other.Channel)
	cfg.Limits = cfg.Limits.CombineWith(other.Limits)
	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = other.MaxMessageSize
	}
	return cfg
}
