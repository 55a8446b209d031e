package reconcile

import (
	"context"
	"errors"
	"fmt"

	"inventory-sync/core/normalize"

	"go.uber.org/zap"
)

// Reconciler computes and applies the update/insert/delete partitions for one table.
// It is safe to reuse across runs but runs against the same store must not overlap.
type Reconciler struct {
	spec     Spec
	identity normalize.Field
	logger   *zap.Logger
}

// NewReconciler validates the spec and creates a reconciler.
// It fails with SchemaMismatch if the identity field cannot key records.
func NewReconciler(spec Spec, logger *zap.Logger) (*Reconciler, error) {
	if spec.Schema == nil {
		return nil, fmt.Errorf("reconcile %s: schema is required", spec.Table)
	}
	if spec.Table == "" {
		return nil, fmt.Errorf("reconcile: table name is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	identity := spec.Schema.IdentityField()
	if identity.Type != normalize.TypeInt && identity.Type != normalize.TypeString {
		return nil, &normalize.SchemaMismatchError{
			Field:  identity.Name,
			Reason: fmt.Sprintf("identity type %s is not supported", identity.Type),
		}
	}

	return &Reconciler{
		spec:     spec,
		identity: identity,
		logger:   logger.With(zap.String("table", spec.Table)),
	}, nil
}

// Spec returns the reconciler configuration.
func (r *Reconciler) Spec() Spec {
	return r.spec
}

// Reconcile plans and applies a run. On failure it returns the partially completed
// report; already committed phases are not undone.
func (r *Reconciler) Reconcile(ctx context.Context, incoming []Record, store Store) (Report, error) {
	plan, err := r.Plan(ctx, incoming, store)
	if err != nil {
		report := Report{Table: r.spec.Table}
		var pe *PhaseError
		if errors.As(err, &pe) {
			report.FailedPhase = pe.Phase
		}
		return report, err
	}
	return r.Apply(ctx, plan, store, ApplyOptions{})
}

// Plan validates the incoming set, snapshots the persisted identities and computes
// the partitions. It does NOT write; use Apply for that.
//
// Duplicate or null incoming identities are rejected before the store is touched.
func (r *Reconciler) Plan(ctx context.Context, incoming []Record, store Store) (*Plan, error) {
	incomingIDs, keys, err := r.incomingIdentities(incoming)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Incoming identities", zap.Int("count", incomingIDs.Len()))

	raw, err := store.LoadAllIdentities(ctx)
	if err != nil {
		return nil, &PhaseError{Table: r.spec.Table, Phase: PhaseLoad, Err: ensureKind(err, ErrStoreUnavailable)}
	}
	persisted := make(IdentitySet, len(raw))
	for id := range raw {
		c, err := CanonicalIdentity(r.identity, id)
		if err != nil {
			return nil, &PhaseError{Table: r.spec.Table, Phase: PhaseLoad, Err: ensureKind(err, ErrStoreUnavailable)}
		}
		persisted.Add(c)
	}
	r.logger.Debug("Persisted identities", zap.Int("count", persisted.Len()))

	plan := &Plan{
		Table:    r.spec.Table,
		ToDelete: persisted.Difference(incomingIDs),
	}
	for i, rec := range incoming {
		if persisted.Has(keys[i]) {
			plan.ToUpdate = append(plan.ToUpdate, rec)
		} else {
			plan.ToInsert = append(plan.ToInsert, rec)
		}
	}

	plan.Summary = PlanSummary{
		Incoming:  len(incoming),
		Persisted: persisted.Len(),
		Updates:   len(plan.ToUpdate),
		Inserts:   len(plan.ToInsert),
		Deletes:   plan.ToDelete.Len(),
		FullWipe:  persisted.Len() > 0 && plan.ToDelete.Len() == persisted.Len(),
	}
	return plan, nil
}

// Apply executes a plan: update, then insert, then delete.
//
// A context cancelled while a phase runs lets that phase finish; later phases are
// skipped and the context error is returned with the partial report.
func (r *Reconciler) Apply(ctx context.Context, plan *Plan, store Store, opts ApplyOptions) (Report, error) {
	report := Report{Table: r.spec.Table}
	if opts.DryRun {
		r.logger.Info("Dry-run mode: no changes were made",
			zap.Int("updates", plan.Summary.Updates),
			zap.Int("inserts", plan.Summary.Inserts),
			zap.Int("deletes", plan.Summary.Deletes),
		)
		return report, nil
	}

	phases := []struct {
		phase Phase
		size  int
		run   func(context.Context) (int, error)
		count *int
	}{
		{PhaseUpdate, len(plan.ToUpdate), func(c context.Context) (int, error) { return store.BulkUpdate(c, plan.ToUpdate) }, &report.Updated},
		{PhaseInsert, len(plan.ToInsert), func(c context.Context) (int, error) { return store.BulkInsert(c, plan.ToInsert) }, &report.Inserted},
		{PhaseDelete, plan.ToDelete.Len(), func(c context.Context) (int, error) { return store.BulkDelete(c, plan.ToDelete) }, &report.Deleted},
	}

	for _, p := range phases {
		l := r.logger.With(zap.String("phase", string(p.phase)))

		if p.size == 0 {
			l.Debug("There are no records for this phase; phase will be skipped")
			continue
		}
		if err := ctx.Err(); err != nil {
			report.FailedPhase = p.phase
			l.Warn("Run cancelled before phase started", zap.Error(err))
			return report, &PhaseError{Table: r.spec.Table, Phase: p.phase, Err: err}
		}

		l.Info("Applying phase", zap.Int("count", p.size))
		n, err := p.run(context.WithoutCancel(ctx))
		if err != nil {
			report.FailedPhase = p.phase
			l.Error("Phase failed", zap.Error(err))
			return report, &PhaseError{Table: r.spec.Table, Phase: p.phase, Err: ensureKind(err, ErrStoreWriteFailed)}
		}
		*p.count = n
		l.Info("Phase complete", zap.Int("count", n))
	}

	return report, nil
}

// incomingIdentities canonicalizes every incoming identity and rejects duplicates.
// keys[i] is the canonical identity of incoming[i].
func (r *Reconciler) incomingIdentities(incoming []Record) (IdentitySet, []Identity, error) {
	ids := make(IdentitySet, len(incoming))
	keys := make([]Identity, len(incoming))
	for i, rec := range incoming {
		id, err := CanonicalIdentity(r.identity, rec[r.identity.Name])
		if err != nil {
			return nil, nil, fmt.Errorf("incoming record %d: %w", i, err)
		}
		if ids.Has(id) {
			return nil, nil, &DuplicateIdentityError{Value: id}
		}
		ids.Add(id)
		keys[i] = id
	}
	return ids, keys, nil
}
