package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"dsc/pkg/logger"
	"dsc/worker"
	"dsc/worker/liquidity"
	"dsc/worker/priceoracle"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "dsc job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		db := provideDatabase()
		e := provideEngine(db)

		var jobs []worker.IJob

		if cfg.PriceOracle.EndPoint != "" {
			oracleJob, err := priceoracle.New(&cfg, provideRegistry(), providePriceStore(db), provideTickerService())
			if err != nil {
				panic(err)
			}

			jobs = append(jobs, oracleJob)
		} else {
			log.Warnln("price_oracle.end_point not set, prices must be set by hand")
		}

		liquidityJob, err := liquidity.New(&cfg, e)
		if err != nil {
			panic(err)
		}
		jobs = append(jobs, liquidityJob)

		g, ctx := errgroup.WithContext(ctx)
		for _, job := range jobs {
			job := job
			g.Go(func() error {
				return worker.Serve(ctx, job)
			})
		}

		if err := g.Wait(); err != nil {
			log.WithError(err).Errorln("worker aborted")
		}
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
