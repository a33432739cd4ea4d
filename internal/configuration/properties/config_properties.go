package properties

import "net"

type ApplicationConfigProperties struct {
	Profile  string `yaml:"profile"`
	LogLevel string `yaml:"log-level"`
}

type DeviceConfigProperties struct {
	Name             string `yaml:"name"`
	Mode             string `yaml:"mode"`
	Delivery         string `yaml:"delivery"`
	InboundCapacity  int    `yaml:"inbound-capacity"`
	OutboundCapacity int    `yaml:"outbound-capacity"`
	MaxSurnameSize   int    `yaml:"max-surname-size"`
	MaxPhoneSize     int    `yaml:"max-phone-size"`
	MaxMessageSize   int    `yaml:"max-message-size"`
}

type TransportConfigProperties struct {
	Network              string `yaml:"network"`
	Address              string `yaml:"address"`
	Port                 string `yaml:"port"`
	Timeout              uint64 `yaml:"timeout"`
	MaxConcurrentStreams uint32 `yaml:"max-concurrent-streams"`
}

type MetricsConfigProperties struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
}

type StatsConfigProperties struct {
	ReportInterval uint64 `yaml:"report-interval"`
}

type Config struct {
	Application ApplicationConfigProperties `yaml:"app"`
	Device      DeviceConfigProperties      `yaml:"device"`
	Transport   TransportConfigProperties   `yaml:"transport"`
	Metrics     MetricsConfigProperties     `yaml:"metrics"`
	Stats       StatsConfigProperties       `yaml:"stats"`
}

func (c *TransportConfigProperties) Addr() string {
	return net.JoinHostPort(c.Address, c.Port)
}
