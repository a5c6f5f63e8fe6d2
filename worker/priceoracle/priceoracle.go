package priceoracle

import (
	"context"
	"fmt"
	"time"

	"dsc/core"
	"dsc/pkg/concurrency"
	"dsc/pkg/id"
	"dsc/pkg/logger"
	"dsc/pkg/number"
	"dsc/worker"
)

// Worker pulls a ticker for every price feed and saves it as the feed's next round
type Worker struct {
	worker.BaseJob
	Registry      *core.AssetRegistry
	PriceStore    core.IPriceStore
	TickerService core.IPriceTickerService
}

// New new price oracle worker
func New(cfg *core.Config, registry *core.AssetRegistry, priceStore core.IPriceStore, tickerSrv core.IPriceTickerService) (*Worker, error) {
	job := Worker{
		Registry:      registry,
		PriceStore:    priceStore,
		TickerService: tickerSrv,
	}

	if err := job.Schedule(cfg.App.Location, cfg.PriceOracle.Interval, func() error {
		return job.onWork(context.Background())
	}); err != nil {
		return nil, err
	}

	return &job, nil
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "priceoracle")

	limit := concurrency.NewGoLimit(0)
	for _, pair := range w.Registry.Pairs() {
		feed := pair.PriceFeed
		limit.Go(func() {
			if err := w.pull(ctx, feed); err != nil {
				log.WithError(err).WithField("feed", feed).Errorln("pull price failed")
			}
		})
	}
	limit.Wait()

	return nil
}

func (w *Worker) pull(ctx context.Context, feed string) error {
	// one request id per feed and second
	ctx = id.WithTraceID(ctx, id.TraceIDFrom(fmt.Sprintf("price-%s-%d", feed, time.Now().Unix())))

	ticker, err := w.TickerService.PullPriceTicker(ctx, feed)
	if err != nil {
		return err
	}

	if !ticker.Price.IsPositive() {
		return core.ErrInvalidPrice
	}

	round, err := w.PriceStore.Save(ctx, feed, number.ToSigned(ticker.Price, core.FeedDecimals), time.Now())
	if err != nil {
		return err
	}

	logger.FromContext(ctx).WithField("worker", "priceoracle").
		WithField("feed", feed).
		WithField("round", round.RoundID).
		Debugln("price saved:", ticker.Price)
	return nil
}
