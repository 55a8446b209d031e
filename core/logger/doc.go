// Package logger builds the zap loggers used across inventory-sync.
//
// Level selects the minimum enabled level (debug, info, warn, error). Format
// selects json output for collectors or console output for terminals.
//
// Two helpers scope a logger: WithRayID attaches the request id set by the
// rayid middleware, and WithRun attaches the job name and run id so all lines
// of one sync run can be correlated.
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "json"})
//	l := logger.WithRun(log, "course", runID)
//	l.Info("Reconciled", zap.Int("inserted", report.Inserted))
package logger
