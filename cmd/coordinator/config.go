package main

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// cliConfig holds the demo binary's environment-driven settings. Unlike the
// library's functional Options, this is parsed once at process start with
// caarlos0/env, the same way roee-hersh-kraft's util/config package loads
// its node settings.
type cliConfig struct {
	ListenAddr     string        `env:"RCOORD_LISTEN_ADDR" envDefault:":8090"`
	Seeds          []string      `env:"RCOORD_SEEDS" envSeparator:"," envDefault:"127.0.0.1:7000"`
	UpdateSlotWait time.Duration `env:"RCOORD_UPDATE_SLOT_WAIT" envDefault:"500ms"`
	MinReplicas    int           `env:"RCOORD_MIN_REPLICAS" envDefault:"1"`
	CloseWait      time.Duration `env:"RCOORD_CLOSE_WAIT" envDefault:"10s"`
	LogLevel       string        `env:"RCOORD_LOG_LEVEL" envDefault:"info"`
	MetricsNS      string        `env:"RCOORD_METRICS_NAMESPACE" envDefault:"rcoord"`
}

func loadConfig() (*cliConfig, error) {
	// Missing .env is normal outside local development; only a malformed
	// file is worth surfacing.
	if err := godotenv.Load(); err != nil && !strings.Contains(err.Error(), "no such file") {
		return nil, err
	}
	c := &cliConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	return c, nil
}
