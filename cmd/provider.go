package cmd

import (
	"database/sql"

	"dsc/core"
	"dsc/service/engine"
	"dsc/service/oracle"
	"dsc/service/token"
	"dsc/store"
	"dsc/store/price"
	"dsc/store/state"

	"gorm.io/gorm"
)

func provideDatabase() *gorm.DB {
	db, err := store.Open(cfg.DB)
	if err != nil {
		panic(err)
	}

	return db
}

func provideSQLDB(db *gorm.DB) *sql.DB {
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}

	return sqlDB
}

func provideRegistry() *core.AssetRegistry {
	registry, err := cfg.App.Registry()
	if err != nil {
		panic(err)
	}

	return registry
}

func provideStateStore(db *gorm.DB) core.IStateStore {
	return state.New(db)
}

func providePriceStore(db *gorm.DB) core.IPriceStore {
	return price.New(db)
}

func providePriceFeed(prices core.IPriceStore) core.IPriceFeed {
	return oracle.NewFeed(prices, cfg.PriceOracle.StaleAfter)
}

func provideTickerService() core.IPriceTickerService {
	return oracle.NewTickerService(cfg.PriceOracle.EndPoint)
}

// synthetic token is owned by the engine, collateral tokens by the faucet
func provideSyntheticToken() *token.Token {
	return token.New(cfg.App.SyntheticToken, cfg.App.EngineAddress)
}

func provideCollateralTokens(registry *core.AssetRegistry) map[string]*token.Token {
	tokens := make(map[string]*token.Token, registry.Len())
	for _, asset := range registry.Assets() {
		tokens[asset] = token.New(asset, cfg.App.Faucet)
	}

	return tokens
}

func provideTokenRegistry(tokens map[string]*token.Token) *token.Registry {
	list := make([]core.IToken, 0, len(tokens))
	for _, t := range tokens {
		list = append(list, t)
	}

	return token.NewRegistry(list...)
}

func provideEngine(db *gorm.DB) *engine.Engine {
	registry := provideRegistry()
	tokens := provideCollateralTokens(registry)

	e, err := engine.New(engine.Config{
		Address:   cfg.App.EngineAddress,
		Registry:  registry,
		Synthetic: provideSyntheticToken(),
		Tokens:    provideTokenRegistry(tokens),
		Feed:      providePriceFeed(providePriceStore(db)),
		Store:     provideStateStore(db),
	})
	if err != nil {
		panic(err)
	}

	return e
}
