package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var yesConfirm bool

// restoreCmd reconciles the table back to a snapshot.
var restoreCmd = &cobra.Command{
	Use:   "restore [snapshot-key]",
	Short: "Restore the course table from a snapshot",
	Long: `Reconciles the course table against a snapshot in object storage.
Without a key the newest snapshot of the table is used.

Examples:
  # Restore the latest snapshot (with interactive confirmation)
  restore

  # Restore a specific snapshot without prompting
  restore snapshots/course/20260101T000000.000000000Z.json --yes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRestore,
}

func init() {
	restoreCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	RootCmd.AddCommand(restoreCmd)
}

func runRestore(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	job, err := a.courseJob(true)
	if err != nil {
		return err
	}

	key := ""
	if len(args) == 1 {
		key = args[0]
	}
	if key == "" {
		latest, err := a.snapshots.Latest(cmd.Context(), job.Reconciler.Spec().Table)
		if err != nil {
			return err
		}
		key = latest
	}
	a.log.Info("Restoring snapshot", zap.String("key", key))

	if !confirmDestructiveAction(os.Stdin) {
		a.log.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	res, err := job.Restore(cmd.Context(), key)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	a.log.Info("Restore report",
		zap.Int("records", res.Fetched),
		zap.Int("updated", res.Report.Updated),
		zap.Int("inserted", res.Report.Inserted),
		zap.Int("deleted", res.Report.Deleted),
	)
	return nil
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction(in io.Reader) bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm destructive actions: ")
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
