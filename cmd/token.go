package cmd

import (
	"context"

	"dsc/core"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "reference token ledger helpers",
}

var tokenFaucetCmd = &cobra.Command{
	Use:   "faucet <user> <asset> <amount>",
	Short: "mint collateral tokens to user from the faucet",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		user, asset := args[0], args[1]

		amount, err := parseWhole(args[2])
		if err != nil {
			cmd.PrintErrln(err)
			return
		}

		tok, ok := provideCollateralTokens(provideRegistry())[asset]
		if !ok {
			cmd.PrintErrln(core.ErrUnsupportedAsset, asset)
			return
		}

		states := provideStateStore(provideDatabase())
		if err := states.Update(ctx, func(tx core.StateWriter) error {
			ok, err := tok.Mint(ctx, tx, cfg.App.Faucet, user, amount)
			if err == nil && !ok {
				err = core.ErrMintFailed
			}

			return err
		}); err != nil {
			cmd.PrintErrln("faucet failed:", err)
			return
		}

		cmd.Println("ok")
	},
}

var tokenApproveCmd = &cobra.Command{
	Use:   "approve <user> <token> [amount]",
	Short: "let the engine pull user's tokens, unlimited without amount",
	Args:  cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		user, address := args[0], args[1]

		amount := new(uint256.Int).SetAllOne()
		if len(args) == 3 {
			v, err := parseWhole(args[2])
			if err != nil {
				cmd.PrintErrln(err)
				return
			}

			amount = v
		}

		var tok core.IToken
		if address == cfg.App.SyntheticToken {
			tok = provideSyntheticToken()
		} else if t, ok := provideCollateralTokens(provideRegistry())[address]; ok {
			tok = t
		} else {
			cmd.PrintErrln(core.ErrUnsupportedAsset, address)
			return
		}

		states := provideStateStore(provideDatabase())
		if err := states.Update(ctx, func(tx core.StateWriter) error {
			return approve(ctx, tx, tok, user, amount)
		}); err != nil {
			cmd.PrintErrln("approve failed:", err)
			return
		}

		cmd.Println("ok")
	},
}

func approve(ctx context.Context, tx core.StateWriter, tok core.IToken, user string, amount *uint256.Int) error {
	ok, err := tok.Approve(ctx, tx, user, cfg.App.EngineAddress, amount)
	if err != nil {
		return err
	}

	if !ok {
		return core.ErrTransferFailed
	}

	return nil
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenFaucetCmd)
	tokenCmd.AddCommand(tokenApproveCmd)
}
