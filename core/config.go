package core

import "time"

// Config dsc config
type Config struct {
	App         App         `json:"app"`
	DB          DB          `json:"db"`
	PriceOracle PriceOracle `json:"price_oracle"`
	Health      Health      `json:"health"`
	Server      Server      `json:"server"`
}

// App app config
type App struct {
	// custody identity of the engine
	EngineAddress string `json:"engine_address" valid:"required"`
	// synthetic token handle
	SyntheticToken string `json:"synthetic_token" valid:"required"`
	// owner of the reference collateral tokens, source of `token faucet`
	Faucet string `json:"faucet" valid:"required"`
	// collateral asset handles, paired by position with PriceFeeds
	CollateralTokens []string `json:"collateral_tokens"`
	PriceFeeds       []string `json:"price_feeds"`
	Location         string   `json:"location"`
}

// Registry build the immutable collateral registry
func (a App) Registry() (*AssetRegistry, error) {
	return NewAssetRegistry(a.CollateralTokens, a.PriceFeeds)
}

// DB database config
type DB struct {
	// sqlite or postgres
	Dialect string `json:"dialect" valid:"in(sqlite|postgres)"`
	DSN     string `json:"dsn" valid:"required"`
	Debug   bool   `json:"debug"`
}

// PriceOracle price oracle config
type PriceOracle struct {
	EndPoint string `json:"end_point"`
	// rounds older than this are rejected, negative disables the check
	StaleAfter time.Duration `json:"stale_after"`
	Interval   time.Duration `json:"interval"`
}

// Health health monitor config
type Health struct {
	Interval time.Duration `json:"interval"`
}

// Server api server config
type Server struct {
	Port int `json:"port"`
}
