package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// planCmd computes what a sync would change without writing.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what a sync would change (dry-run)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		job, err := a.courseJob(false)
		if err != nil {
			return err
		}

		plan, err := job.Plan(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(plan)
		}
		s := plan.Summary
		a.log.Info("Reconciliation plan",
			zap.String("table", plan.Table),
			zap.Int("incoming", s.Incoming),
			zap.Int("persisted", s.Persisted),
			zap.Int("updates", s.Updates),
			zap.Int("inserts", s.Inserts),
			zap.Int("deletes", s.Deletes),
		)
		if s.FullWipe {
			a.log.Warn("Plan deletes every persisted record")
		}
		return nil
	},
}

func init() {
	planCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the plan as JSON")
	RootCmd.AddCommand(planCmd)
}
