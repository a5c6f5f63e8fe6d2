package liquidity

import (
	"context"
	"sort"
	"sync"
	"time"

	"dsc/core"
	"dsc/internal/health"
	"dsc/pkg/concurrency"
	"dsc/pkg/logger"
	"dsc/pkg/number"
	"dsc/service/engine"
	"dsc/worker"

	"github.com/bluele/gcache"
	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	liquidatableAccounts = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "dsc",
		Subsystem: "liquidity",
		Name:      "liquidatable_accounts",
		Help:      "Accounts below the minimum health factor",
	})

	collateralUSD = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "dsc",
		Subsystem: "liquidity",
		Name:      "custody_value_usd",
		Help:      "USD value of all collateral held by the engine",
	})

	syntheticSupply = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "dsc",
		Subsystem: "liquidity",
		Name:      "synthetic_supply",
		Help:      "Total synthetic token supply",
	})

	solvent = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "dsc",
		Subsystem: "liquidity",
		Name:      "solvent",
		Help:      "1 when custody value covers the synthetic supply",
	})
)

// alerts for the same account are repeated at most this often
const alertTTL = 10 * time.Minute

// Monitor read only engine surface the worker scans
type Monitor interface {
	Accounts(ctx context.Context) ([]string, error)
	HealthFactorOf(ctx context.Context, user string) (*uint256.Int, error)
	ProtocolSolvency(ctx context.Context) (*engine.Solvency, error)
}

// Report outcome of one scan
type Report struct {
	Liquidatable map[string]*uint256.Int
	Solvency     *engine.Solvency
}

// Worker scans every account for liquidation candidates and checks protocol solvency
type Worker struct {
	worker.BaseJob
	Monitor Monitor
	alerted gcache.Cache
}

// New new health worker
func New(cfg *core.Config, monitor Monitor) (*Worker, error) {
	job := Worker{
		Monitor: monitor,
		alerted: gcache.New(4096).LRU().Expiration(alertTTL).Build(),
	}

	if err := job.Schedule(cfg.App.Location, cfg.Health.Interval, func() error {
		_, err := job.scan(context.Background())
		return err
	}); err != nil {
		return nil, err
	}

	return &job, nil
}

func (w *Worker) scan(ctx context.Context) (*Report, error) {
	log := logger.FromContext(ctx).WithField("worker", "liquidity")

	accounts, err := w.Monitor.Accounts(ctx)
	if err != nil {
		log.WithError(err).Errorln("list accounts failed")
		return nil, err
	}

	report := &Report{Liquidatable: map[string]*uint256.Int{}}
	var mu sync.Mutex

	limit := concurrency.NewGoLimit(0)
	for _, account := range accounts {
		user := account
		limit.Go(func() {
			hf, err := w.Monitor.HealthFactorOf(ctx, user)
			if err != nil {
				log.WithError(err).WithField("user", user).Errorln("health factor failed")
				return
			}

			if health.IsHealthy(hf) {
				w.alerted.Remove(user)
				return
			}

			mu.Lock()
			report.Liquidatable[user] = hf
			mu.Unlock()
		})
	}
	limit.Wait()

	users := make([]string, 0, len(report.Liquidatable))
	for user := range report.Liquidatable {
		users = append(users, user)
	}
	sort.Strings(users)

	for _, user := range users {
		if w.alerted.Has(user) {
			continue
		}

		_ = w.alerted.Set(user, struct{}{})
		log.WithField("user", user).
			WithField("health_factor", number.FromWad(report.Liquidatable[user], number.WadDecimals).String()).
			Warnln("account is liquidatable")
	}
	liquidatableAccounts.Set(float64(len(users)))

	s, err := w.Monitor.ProtocolSolvency(ctx)
	if err != nil {
		log.WithError(err).Errorln("protocol solvency failed")
		return report, err
	}
	report.Solvency = s

	usd, _ := number.FromWad(s.CollateralUSD, number.WadDecimals).Float64()
	supply, _ := number.FromWad(s.SyntheticSupply, number.WadDecimals).Float64()
	collateralUSD.Set(usd)
	syntheticSupply.Set(supply)
	if s.Solvent {
		solvent.Set(1)
	} else {
		solvent.Set(0)
		log.WithField("custody_usd", usd).WithField("supply", supply).Errorln("protocol is undercollateralized")
	}

	return report, nil
}
