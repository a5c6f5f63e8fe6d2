package cmd

import (
	"time"

	"dsc/core"
	"dsc/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "manage price feed rounds",
}

var priceSetCmd = &cobra.Command{
	Use:   "set <feed> <usd>",
	Short: "save a new round for a price feed, e.g. set ETH/USD 2000.5",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		price, err := decimal.NewFromString(args[1])
		if err != nil || !price.IsPositive() {
			cmd.PrintErrln("invalid price", args[1])
			return
		}

		prices := providePriceStore(provideDatabase())
		round, err := prices.Save(ctx, args[0], number.ToSigned(price, core.FeedDecimals), time.Now())
		if err != nil {
			cmd.PrintErrln("save price failed:", err)
			return
		}

		cmd.Printf("%s round %d answer %s\n", round.Feed, round.RoundID, round.Answer)
	},
}

var priceListCmd = &cobra.Command{
	Use:   "list",
	Short: "list the latest round of every price feed",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		rounds, err := providePriceStore(provideDatabase()).All(ctx)
		if err != nil {
			cmd.PrintErrln("list prices failed:", err)
			return
		}

		for _, r := range rounds {
			answer := number.Decimal(r.Answer).Shift(-core.FeedDecimals)
			cmd.Printf("%-12s round %-6d %s  %s\n", r.Feed, r.RoundID, answer, r.UpdatedAt.Format(time.RFC3339))
		}
	},
}

func init() {
	rootCmd.AddCommand(priceCmd)
	priceCmd.AddCommand(priceSetCmd)
	priceCmd.AddCommand(priceListCmd)
}
