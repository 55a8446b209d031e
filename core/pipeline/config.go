package pipeline

// Config holds the sync settings shared by all jobs.
type Config struct {
	// BatchSize caps the records per store statement.
	BatchSize int `mapstructure:"batch_size" default:"500"`
	// UpdateWorkers caps concurrent update chunks.
	UpdateWorkers int `mapstructure:"update_workers" default:"4"`
	// StoreTimeoutSeconds bounds each store call. Zero disables the timeout.
	StoreTimeoutSeconds int `mapstructure:"store_timeout_seconds" default:"0"`
	// SnapshotEnabled saves the persisted set to object storage before each run.
	SnapshotEnabled bool `mapstructure:"snapshot_enabled" default:"false"`
	// SnapshotPrefix is the key prefix of snapshots in the bucket.
	SnapshotPrefix string `mapstructure:"snapshot_prefix" default:"snapshots"`
	// SnapshotKeep is the number of snapshots kept per table. Zero keeps all.
	SnapshotKeep int `mapstructure:"snapshot_keep" default:"10"`
	// WarehouseIncrement offsets source ids into warehouse ids.
	WarehouseIncrement int64 `mapstructure:"warehouse_increment" default:"17700000000000000"`
}
