package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

// Config points the suites at a running chat server. Suites are skipped
// when the addresses are not set.
type Config struct {
	GRPCAddr string `envconfig:"E2E_GRPC_ADDR"`
	HTTPAddr string `envconfig:"E2E_HTTP_ADDR"`
	// E2E_DEBUG_JSON dumps every frame received
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
