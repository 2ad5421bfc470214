package commands

import (
	"github.com/mytheresa/go-storefront/app/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, db, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer database.Close(db)

		logger.Info("database schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
