package cmd

import (
	"fmt"

	"inventory-sync/feature/course/models"

	"github.com/spf13/cobra"
)

// migrateCmd creates or updates the warehouse tables.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the warehouse and bookkeeping tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.db.WithContext(cmd.Context()).AutoMigrate(&models.Course{}); err != nil {
			return fmt.Errorf("failed to migrate course table: %w", err)
		}
		if err := a.runs.Migrate(cmd.Context()); err != nil {
			return err
		}
		a.log.Info("Migration complete")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
