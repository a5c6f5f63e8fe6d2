package cmd

import (
	"encoding/json"

	"dsc/handler/views"

	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "inspect accounts",
}

var accountShowCmd = &cobra.Command{
	Use:   "show <user>",
	Short: "show collateral, debt and health factor of user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		e := provideEngine(provideDatabase())
		view, err := views.NewAccount(ctx, e, args[0])
		if err != nil {
			cmd.PrintErrln("read account failed:", err)
			return
		}

		data, _ := json.MarshalIndent(view, "", "  ")
		cmd.Println(string(data))
	},
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "list accounts with collateral or debt",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		e := provideEngine(provideDatabase())

		accounts, err := e.Accounts(ctx)
		if err != nil {
			cmd.PrintErrln("list accounts failed:", err)
			return
		}

		for _, user := range accounts {
			hf, err := e.HealthFactorOf(ctx, user)
			if err != nil {
				cmd.PrintErrln(user, err)
				continue
			}

			cmd.Println(user, views.NewHealthFactor(hf).Decimal)
		}
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountShowCmd)
	accountCmd.AddCommand(accountListCmd)
}
