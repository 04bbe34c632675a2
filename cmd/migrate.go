package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	config "task-market.com/task-market/internal/configs"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		database, err := config.NewDatabase(cfg.DatabaseDriver, cfg.DatabaseDSN)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		if err := config.Migrate(database); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

		log.Println("schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
