package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	config "task-market.com/task-market/internal/configs"
	model "task-market.com/task-market/internal/models"
	repository "task-market.com/task-market/internal/repositories"
)

var (
	profileDisplayName string
	profileVerified    bool
)

// profileCmd mirrors a profile from the identity provider, mostly for local
// development where no provider is running.
var profileCmd = &cobra.Command{
	Use:   "profile <user-id>",
	Short: "Create or update a user profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		privileged, err := config.NewDatabase(cfg.DatabaseDriver, cfg.PrivilegedDatabaseDSN)
		if err != nil {
			return fmt.Errorf("open privileged database: %w", err)
		}
		if err := config.Migrate(privileged); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

		profile := &model.Profile{
			ID:          args[0],
			DisplayName: profileDisplayName,
			Verified:    profileVerified,
		}
		if err := repository.NewProfileRepository(privileged).Upsert(cmd.Context(), profile); err != nil {
			return err
		}

		log.Printf("profile %s saved (verified=%t)", profile.ID, profile.Verified)
		return nil
	},
}

func init() {
	profileCmd.Flags().StringVar(&profileDisplayName, "name", "", "display name")
	profileCmd.Flags().BoolVar(&profileVerified, "verified", false, "mark the profile as verified")
	rootCmd.AddCommand(profileCmd)
}
