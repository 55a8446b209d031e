package course

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"inventory-sync/core/database"
	"inventory-sync/core/fetch"
	"inventory-sync/core/normalize"
	"inventory-sync/core/pipeline"
	"inventory-sync/core/reconcile"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the optional collaborators of the course job.
type Deps struct {
	Snapshots pipeline.Snapshotter
	Runs      pipeline.RunRecorder
	Client    *http.Client
	Logger    *zap.Logger
}

// NewJob wires the course job: GraphQL source, normalizer, reconciler and the
// course table store.
func NewJob(db *gorm.DB, source fetch.SourceConfig, sync pipeline.Config, deps Deps) (*pipeline.Job, error) {
	if source.TermID <= 0 {
		return nil, fmt.Errorf("course job: source term id is required")
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	schema, err := Schema(int64(source.TermID), sync.WarehouseIncrement)
	if err != nil {
		return nil, fmt.Errorf("course job: %w", err)
	}

	store, err := database.NewTableStore(db, Table(), schema, database.StoreOptions{
		BatchSize:     sync.BatchSize,
		UpdateWorkers: sync.UpdateWorkers,
		Timeout:       time.Duration(sync.StoreTimeoutSeconds) * time.Second,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("course job: %w", err)
	}

	reconciler, err := reconcile.NewReconciler(reconcile.Spec{Table: Table(), Schema: schema}, log)
	if err != nil {
		return nil, fmt.Errorf("course job: %w", err)
	}

	gql := fetch.NewGraphQLSource(fetch.GraphQLConfig{
		Endpoint:       source.Endpoint,
		AccessToken:    source.AccessToken,
		Query:          Query,
		Variables:      map[string]any{"termID": strconv.Itoa(source.TermID)},
		ConnectionPath: ConnectionPath,
		Timeout:        source.Timeout(),
	}, deps.Client)

	job := &pipeline.Job{
		Name:       JobName,
		SourceName: SourceName,
		Fetcher:    fetch.New(gql, source.FetchConfig(), log.With(zap.String("job", JobName))),
		Normalizer: normalize.New(schema),
		Reconciler: reconciler,
		Store:      store,
		Runs:       deps.Runs,
		Logger:     log,
	}
	if deps.Snapshots != nil && sync.SnapshotEnabled {
		job.Snapshots = deps.Snapshots
		job.SnapshotKeep = sync.SnapshotKeep
	}
	return job, nil
}
