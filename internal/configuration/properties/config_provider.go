package properties

type ConfigProvider interface {
	GetApplication() *ApplicationConfigProperties
	GetDevice() *DeviceConfigProperties
	GetTransport() *TransportConfigProperties
	GetMetrics() *MetricsConfigProperties
	GetStats() *StatsConfigProperties
}

type AppConfigProvider struct {
	config *Config
}

func NewProvider(cfg *Config) *AppConfigProvider {
	return &AppConfigProvider{config: cfg}
}

func (c *AppConfigProvider) GetApplication() *ApplicationConfigProperties {
	return &c.config.Application
}

func (c *AppConfigProvider) GetDevice() *DeviceConfigProperties {
	return &c.config.Device
}

func (c *AppConfigProvider) GetTransport() *TransportConfigProperties {
	return &c.config.Transport
}

func (c *AppConfigProvider) GetMetrics() *MetricsConfigProperties {
	return &c.config.Metrics
}

func (c *AppConfigProvider) GetStats() *StatsConfigProperties {
	return &c.config.Stats
}
