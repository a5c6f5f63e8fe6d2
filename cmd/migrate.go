package cmd

import (
	"dsc/store"

	"github.com/spf13/cobra"
)

// command for migrating database
var migrateCmd = &cobra.Command{
	Use:     "migrate",
	Aliases: []string{"setdb"},
	Short:   "migrate database tables",
	Run: func(cmd *cobra.Command, args []string) {
		db := provideDatabase()
		defer provideSQLDB(db).Close()

		if err := store.Migrate(db); err != nil {
			cmd.PrintErrln("migrate database error:", err)
			return
		}

		cmd.Println("migrate database done")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
