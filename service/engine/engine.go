package engine

import (
	"context"
	"sync"

	"dsc/core"
	"dsc/pkg/id"
	"dsc/pkg/logger"
	"dsc/service/ledger"
	"dsc/service/liquidation"
	"dsc/service/oracle"

	"github.com/sirupsen/logrus"
)

// Config engine collaborators, fixed for the engine's lifetime
type Config struct {
	// custody identity holding collateral and synthetic tokens
	Address   string
	Registry  *core.AssetRegistry
	Synthetic core.ISyntheticToken
	Tokens    core.ITokenResolver
	Feed      core.IPriceFeed
	Store     core.IStateStore
}

// Engine the synthetic dollar engine. Every mutating operation runs as one
// store transaction under a non blocking guard, views read committed state.
type Engine struct {
	address    string
	registry   *core.AssetRegistry
	synthetic  core.ISyntheticToken
	tokens     core.ITokenResolver
	store      core.IStateStore
	oracle     *oracle.Adapter
	ledger     *ledger.Ledger
	liquidator *liquidation.Liquidator

	guard sync.Mutex
}

// New new engine
func New(cfg Config) (*Engine, error) {
	if cfg.Address == "" {
		return nil, core.ErrInvalidAddress
	}

	if cfg.Registry == nil || cfg.Registry.Len() == 0 {
		return nil, core.ErrConfigMismatch
	}

	if cfg.Synthetic == nil || cfg.Tokens == nil || cfg.Feed == nil || cfg.Store == nil {
		return nil, core.ErrConfigMismatch
	}

	for _, asset := range cfg.Registry.Assets() {
		if _, err := cfg.Tokens.Token(asset); err != nil {
			return nil, err
		}
	}

	adapter := oracle.NewAdapter(cfg.Registry, cfg.Feed)
	l := ledger.New(cfg.Address, cfg.Registry, cfg.Tokens, cfg.Synthetic, adapter)

	return &Engine{
		address:    cfg.Address,
		registry:   cfg.Registry,
		synthetic:  cfg.Synthetic,
		tokens:     cfg.Tokens,
		store:      cfg.Store,
		oracle:     adapter,
		ledger:     l,
		liquidator: liquidation.New(cfg.Registry, l, adapter),
	}, nil
}

// exec run fn as one guarded store transaction
func (e *Engine) exec(ctx context.Context, op string, fields logrus.Fields, fn func(ctx context.Context, tx core.StateWriter) error) error {
	if !e.guard.TryLock() {
		OperationsTotal.WithLabelValues(op, "reentrant").Inc()
		return core.ErrReentrantCall
	}
	defer e.guard.Unlock()

	traceID := id.GenTraceID()
	ctx = id.WithTraceID(ctx, traceID)
	log := logger.FromContext(ctx).WithField("op", op).WithField("trace_id", traceID).WithFields(fields)
	ctx = logger.WithContext(ctx, log)

	err := e.store.Update(ctx, func(tx core.StateWriter) error {
		return fn(ctx, tx)
	})
	if err != nil {
		OperationsTotal.WithLabelValues(op, "rejected").Inc()
		log.WithError(err).WithField("kind", core.KindOf(err).String()).Infoln("rejected")
		return err
	}

	OperationsTotal.WithLabelValues(op, "ok").Inc()
	log.Debugln("committed")
	return nil
}

// Address custody identity of the engine
func (e *Engine) Address() string {
	return e.address
}

// SyntheticToken handle of the synthetic token
func (e *Engine) SyntheticToken() string {
	return e.synthetic.Address()
}

// SupportedAssets collateral assets in configuration order
func (e *Engine) SupportedAssets() []string {
	return e.registry.Assets()
}

// Pairs collateral assets with their price feeds
func (e *Engine) Pairs() []core.SupportedAsset {
	return e.registry.Pairs()
}

// PriceFeedOf price feed of asset
func (e *Engine) PriceFeedOf(asset string) (string, error) {
	feed, ok := e.registry.PriceFeed(asset)
	if !ok {
		return "", core.ErrUnsupportedAsset
	}

	return feed, nil
}
