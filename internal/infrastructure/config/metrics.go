package config

// MetricsConfig controls Prometheus instrumentation. Recording into the
// default registry is toggled by Enabled; the address fields describe where a
// scrape endpoint would be served when one is run.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`

	// Exposition path, /metrics by convention
	Path string `mapstructure:"path"`
}
