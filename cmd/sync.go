package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"inventory-sync/core/pipeline"
	"inventory-sync/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var jsonOutput bool

// syncCmd runs one sync of the course job.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch the upstream records and reconcile the warehouse table",
	Long: `Fetches every page from the upstream API, normalizes the records and
reconciles the course table: updates first, then inserts, then deletes.
When snapshots are enabled the table is saved to object storage before any write.

A run that would delete records asks for confirmation first.

Examples:
  # Sync, prompting before deletes
  sync

  # Sync without prompting (cron, CI)
  sync --yes`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run result as JSON")
	syncCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	job, err := a.courseJob(false)
	if err != nil {
		return err
	}

	res, err := syncJob(cmd.Context(), job, a.log, os.Stdin)
	if errors.Is(err, pipeline.ErrRunDeclined) {
		a.log.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}
	if err != nil {
		if res != nil {
			a.log.Warn("Partial result",
				zap.String("failed_phase", string(res.Report.FailedPhase)),
				zap.Int("updated", res.Report.Updated),
				zap.Int("inserted", res.Report.Inserted),
				zap.Int("deleted", res.Report.Deleted),
			)
		}
		return fmt.Errorf("sync failed: %w", err)
	}

	if jsonOutput {
		return printJSON(res)
	}
	a.log.Info("Sync report",
		zap.String("run_id", res.RunID),
		zap.Int("pages", res.Pages),
		zap.Int("fetched", res.Fetched),
		zap.Int("updated", res.Report.Updated),
		zap.Int("inserted", res.Report.Inserted),
		zap.Int("deleted", res.Report.Deleted),
		zap.String("snapshot", res.SnapshotKey),
	)
	return nil
}

// syncJob runs job, confirming on in before a plan that deletes records.
func syncJob(ctx context.Context, job *pipeline.Job, l *zap.Logger, in io.Reader) (*pipeline.RunResult, error) {
	return job.RunWithApproval(ctx, func(plan *reconcile.Plan) bool {
		s := plan.Summary
		if s.Deletes == 0 {
			return true
		}
		fields := []zap.Field{
			zap.String("table", plan.Table),
			zap.Int("persisted", s.Persisted),
			zap.Int("incoming", s.Incoming),
			zap.Int("deletes", s.Deletes),
		}
		if s.FullWipe {
			l.Warn("Plan deletes EVERY persisted record; check the source and the term id", fields...)
		} else {
			l.Warn("Plan deletes records", fields...)
		}
		return confirmDestructiveAction(in)
	})
}
