package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Server struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Backend struct {
	BaseURL  string        `mapstructure:"base_url" validate:"required"`
	Timeout  time.Duration `mapstructure:"timeout"`
	GateCode string        `mapstructure:"gate_code"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type Analytics struct {
	CollectorURL string `mapstructure:"collector_url"`
	QueueSize    int    `mapstructure:"queue_size"`
}

type Payment struct {
	// Opaque pass-through values for the third-party payment widget.
	ScriptURL string `mapstructure:"script_url"`
	ClientKey string `mapstructure:"client_key"`
}

type Config struct {
	Server     Server        `mapstructure:"server"`
	Backend    Backend       `mapstructure:"backend"`
	Redis      Redis         `mapstructure:"redis"`
	Analytics  Analytics     `mapstructure:"analytics"`
	Payment    Payment       `mapstructure:"payment"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
	Locale     string        `mapstructure:"locale"`
}

// Load reads the service configuration file, with RELASI_-prefixed env vars
// overriding individual keys.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("RELASI")
	v.AutomaticEnv()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("backend.timeout", 10*time.Second)
	v.SetDefault("backend.gate_code", "relasi4")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("analytics.queue_size", 256)
	v.SetDefault("session_ttl", 24*time.Hour)
	v.SetDefault("locale", "id")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("backend.base_url is required")
	}
	return &cfg, nil
}
