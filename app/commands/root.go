package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront API - catalog, cart and checkout backend",
	Long: `Storefront serves the REST API behind the shop: product catalog
administration, anonymous shopping carts keyed by session id, and order
placement.

Configuration is read from the environment (optionally through a .env file)
and can be overridden with flags.`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (text, json)")
	flags.String("db-driver", "", "database driver (postgres, mysql, sqlite)")
	flags.String("db-url", "", "database connection url")
	flags.Bool("db-create", false, "create the postgres database if it does not exist")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
