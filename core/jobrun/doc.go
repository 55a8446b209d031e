// Package jobrun records when each sync job ran and how fresh its data is.
//
// Every finished run writes a JobRun row. Successful runs also write one
// DataSourceStatus row per data source the run consumed, so consumers of the
// warehouse can tell how current each table is.
package jobrun
