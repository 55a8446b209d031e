package cmd

import (
	"fmt"

	"inventory-sync/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd runs every check.
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the warehouse schema and the snapshot storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, done, err := integrityService()
		if err != nil {
			return err
		}
		defer done()
		return printJSON(svc.CheckAll(cmd.Context()))
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check that the warehouse tables match the models",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, done, err := integrityService()
		if err != nil {
			return err
		}
		defer done()

		report, err := svc.CheckSchema()
		if err != nil {
			return err
		}
		if err := printJSON(report); err != nil {
			return err
		}
		if !report.Matched {
			return fmt.Errorf("warehouse schema does not match")
		}
		return nil
	},
}

// snapshotsCmd represents the integrity snapshots command
var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Check the snapshot bucket (use --fix to create it)",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, done, err := integrityService()
		if err != nil {
			return err
		}
		defer done()

		if fixFlag {
			if err := svc.FixSnapshots(cmd.Context()); err != nil {
				return err
			}
		}
		report, err := svc.CheckSnapshots(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(report)
	},
}

func integrityService() (*integrity.Service, func(), error) {
	a, err := bootstrap()
	if err != nil {
		return nil, nil, err
	}
	a.log.Debug("Running integrity checks", zap.String("bucket", a.cfg.Storage.Bucket))
	svc := integrity.NewService(a.client, a.cfg.Storage.Bucket, a.cfg.Storage.Region, a.snapshots, a.db, a.log)
	return svc, a.close, nil
}

func init() {
	snapshotsCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the bucket when it is missing")
	integrityCmd.AddCommand(schemaCmd)
	integrityCmd.AddCommand(snapshotsCmd)
	RootCmd.AddCommand(integrityCmd)
}
