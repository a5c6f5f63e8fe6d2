package config

import (
	"time"

	"dsc/core"
)

const (
	defaultStaleAfter     = 3 * time.Hour
	defaultOracleInterval = 30 * time.Second
	defaultHealthInterval = 15 * time.Second
	defaultPort           = 9000
)

func defaultConfig(cfg *core.Config) {
	if cfg.App.EngineAddress == "" {
		cfg.App.EngineAddress = "dsc-engine"
	}

	if cfg.App.SyntheticToken == "" {
		cfg.App.SyntheticToken = "DSC"
	}

	if cfg.App.Faucet == "" {
		cfg.App.Faucet = "dsc-faucet"
	}

	if cfg.App.Location == "" {
		cfg.App.Location = "UTC"
	}

	if cfg.DB.Dialect == "" {
		cfg.DB.Dialect = "sqlite"
	}

	if cfg.DB.DSN == "" && cfg.DB.Dialect == "sqlite" {
		cfg.DB.DSN = "dsc.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	if cfg.PriceOracle.StaleAfter == 0 {
		cfg.PriceOracle.StaleAfter = defaultStaleAfter
	}

	if cfg.PriceOracle.Interval <= 0 {
		cfg.PriceOracle.Interval = defaultOracleInterval
	}

	if cfg.Health.Interval <= 0 {
		cfg.Health.Interval = defaultHealthInterval
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
}
