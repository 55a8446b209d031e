package cmd

import (
	"fmt"
	"os"

	"inventory-sync/core/config"
	"inventory-sync/core/database"
	"inventory-sync/core/jobrun"
	"inventory-sync/core/logger"
	"inventory-sync/core/pipeline"
	"inventory-sync/core/snapshot"
	"inventory-sync/core/storage"
	"inventory-sync/feature/course"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds the shared dependencies of the commands.
type app struct {
	cfg       *config.Config
	log       *zap.Logger
	db        *gorm.DB
	client    storage.Client
	snapshots *snapshot.Store
	runs      *jobrun.Recorder
}

// bootstrap loads configuration and connects the warehouse and the snapshot
// storage. Storage is not contacted until first use.
func bootstrap() (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	l.Info("Connected to warehouse database", zap.String("driver", cfg.Database.Driver), zap.String("name", cfg.Database.Name))

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &app{
		cfg:       cfg,
		log:       l,
		db:        db,
		client:    client,
		snapshots: snapshot.New(client, cfg.Storage.Bucket, cfg.Sync.SnapshotPrefix, l),
		runs:      jobrun.NewRecorder(db, l),
	}, nil
}

// courseJob builds the course job. forceSnapshots attaches the snapshot store
// even when snapshots are disabled for regular runs.
func (a *app) courseJob(forceSnapshots bool) (*pipeline.Job, error) {
	syncCfg := a.cfg.Sync
	if forceSnapshots {
		syncCfg.SnapshotEnabled = true
	}
	return course.NewJob(a.db, a.cfg.Source, syncCfg, course.Deps{
		Snapshots: a.snapshots,
		Runs:      a.runs,
		Logger:    a.log,
	})
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.log.Sync()
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(os.Stdout, string(out))
	return err
}
