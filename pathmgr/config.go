package pathmgr

import (
	"encoding/json"
	"fmt"
	"os"
)

// MetricsConfig controls the optional Prometheus HTTP endpoint.
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr"`
}

// AppConfig aggregates every configuration section the CLI needs to start a
// Manager and its surrounding transport, logging, and metrics.
type AppConfig struct {
	Hz        float64         `json:"hz"`
	Engine    Config          `json:"engine"`
	Transport TransportConfig `json:"transport"`
	Log       LogConfig       `json:"log"`
	Metrics   MetricsConfig   `json:"metrics"`
}

// LoadConfig reads and validates the JSON config at path.
func LoadConfig(path string) (AppConfig, error) {
	var cfg AppConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c AppConfig) validate() error {
	if c.Hz <= 0 {
		return fmt.Errorf("hz must be > 0")
	}
	if c.Engine.RMin <= 0 {
		return fmt.Errorf("engine.r_min must be > 0")
	}
	if c.Transport.PoseAddr == "" {
		return fmt.Errorf("transport.pose_addr must be set")
	}
	return nil
}
