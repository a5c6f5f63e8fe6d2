package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"dsc/core"
	"dsc/handler/views"
	"dsc/pkg/number"
	"dsc/service/engine"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"
)

// amounts on the command line are whole tokens with 18 decimals, e.g. 1.5
func parseWhole(v string) (*uint256.Int, error) {
	amount, ok := number.ParseAmount(v, true)
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidAmount, v)
	}

	return amount, nil
}

func parseWholes(vs ...string) ([]*uint256.Int, error) {
	amounts := make([]*uint256.Int, len(vs))
	for idx, v := range vs {
		amount, err := parseWhole(v)
		if err != nil {
			return nil, err
		}

		amounts[idx] = amount
	}

	return amounts, nil
}

type actionFunc func(ctx context.Context, e *engine.Engine, args []string) (interface{}, error)

func newActionCmd(use, short string, nargs int, fn actionFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			e := provideEngine(provideDatabase())

			result, err := fn(ctx, e, args)
			if err != nil {
				cmd.PrintErrf("%s failed: %v (code %d)\n", cmd.Name(), err, core.CodeOf(err))
				return
			}

			if result == nil {
				cmd.Println("ok")
				return
			}

			data, _ := json.MarshalIndent(result, "", "  ")
			cmd.Println(string(data))
		},
	}
}

var actionCmd = &cobra.Command{
	Use:   "action",
	Short: "run engine operations, amounts in whole tokens",
}

func init() {
	rootCmd.AddCommand(actionCmd)

	actionCmd.AddCommand(
		newActionCmd("deposit <user> <asset> <amount>", "deposit collateral", 3,
			func(ctx context.Context, e *engine.Engine, args []string) (interface{}, error) {
				amount, err := parseWhole(args[2])
				if err != nil {
					return nil, err
				}

				return nil, e.DepositCollateral(ctx, args[0], args[1], amount)
			}),
		newActionCmd("redeem <user> <asset> <amount>", "redeem collateral", 3,
			func(ctx context.Context, e *engine.Engine, args []string) (interface{}, error) {
				amount, err := parseWhole(args[2])
				if err != nil {
					return nil, err
				}

				return nil, e.RedeemCollateral(ctx, args[0], args[1], amount)
			}),
		newActionCmd("mint <user> <amount>", "mint synthetic debt", 2,
			func(ctx context.Context, e *engine.Engine, args []string) (interface{}, error) {
				amount, err := parseWhole(args[1])
				if err != nil {
					return nil, err
				}

				return nil, e.MintDebt(ctx, args[0], amount)
			}),
		newActionCmd("burn <user> <amount>", "burn synthetic debt", 2,
			func(ctx context.Context, e *engine.Engine, args []string) (interface{}, error) {
				amount, err := parseWhole(args[1])
				if err != nil {
					return nil, err
				}

				return nil, e.BurnDebt(ctx, args[0], amount)
			}),
		newActionCmd("deposit-mint <user> <asset> <amount> <debt>", "deposit collateral and mint in one operation", 4,
			func(ctx context.Context, e *engine.Engine, args []string) (interface{}, error) {
				amounts, err := parseWholes(args[2], args[3])
				if err != nil {
					return nil, err
				}

				return nil, e.DepositCollateralAndMint(ctx, args[0], args[1], amounts[0], amounts[1])
			}),
		newActionCmd("redeem-burn <user> <asset> <amount> <debt>", "burn and redeem collateral in one operation", 4,
			func(ctx context.Context, e *engine.Engine, args []string) (interface{}, error) {
				amounts, err := parseWholes(args[2], args[3])
				if err != nil {
					return nil, err
				}

				return nil, e.RedeemCollateralAndBurn(ctx, args[0], args[1], amounts[0], amounts[1])
			}),
		newActionCmd("liquidate <liquidator> <asset> <target> <debt>", "cover debt of target and seize its collateral", 4,
			func(ctx context.Context, e *engine.Engine, args []string) (interface{}, error) {
				debt, err := parseWhole(args[3])
				if err != nil {
					return nil, err
				}

				result, err := e.Liquidate(ctx, args[0], args[1], args[2], debt)
				if err != nil {
					return nil, err
				}

				return views.NewLiquidation(result), nil
			}),
	)
}
