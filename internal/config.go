package internal

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
)

type Config struct {
	LogLevel             string        `env:"LOG_LEVEL,default=INFO"`
	Host                 string        `env:"HOST,default=localhost"`
	HTTPPort             int           `env:"HTTP_PORT,default=3000"`
	GRPCPort             int           `env:"GRPC_PORT,default=50051"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=64"`
	DeliveryTimeout      time.Duration `env:"DELIVERY_TIMEOUT,default=2s"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	ReportInterval       time.Duration `env:"REPORT_INTERVAL,default=30s"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT,default=5s"`
	MaxMessageSize       int64         `env:"MAX_MESSAGE_SIZE,default=4096"`
	PingInterval         time.Duration `env:"PING_INTERVAL,default=25s"`
	CharReplacement      string        `env:"CHARACTER_REPLACEMENT,default=*"`
	// Empty means the embedded dictionaries
	CensoredDir string `env:"CENSORED_DIR"`
}

// LoadConfig reads the process environment.
func LoadConfig() (Config, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, err
	}
	if config.ConnectionBufferSize <= 0 {
		return Config{}, fmt.Errorf("CONNECTION_BUFFER_SIZE must be positive, got %d", config.ConnectionBufferSize)
	}
	durations := map[string]time.Duration{
		"DELIVERY_TIMEOUT": config.DeliveryTimeout,
		"RESTART_INTERVAL": config.RestartInterval,
		"REPORT_INTERVAL":  config.ReportInterval,
		"SHUTDOWN_TIMEOUT": config.ShutdownTimeout,
		"PING_INTERVAL":    config.PingInterval,
	}
	for key, d := range durations {
		if d <= 0 {
			return Config{}, fmt.Errorf("%s must be positive, got %s", key, d)
		}
	}
	if config.MaxMessageSize <= 0 {
		return Config{}, fmt.Errorf("MAX_MESSAGE_SIZE must be positive, got %d", config.MaxMessageSize)
	}
	if _, err := config.CharacterRune(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) CharacterRune() (rune, error) {
	r := []rune(c.CharReplacement)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			c.CharReplacement,
		)
	}
	return r[0], nil
}

func (c Config) HTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.HTTPPort)
}

func (c Config) GRPCAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.GRPCPort)
}
