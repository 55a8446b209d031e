package reconcile

import (
	"inventory-sync/core/normalize"
)

// Record is a normalized record keyed by field name.
type Record = map[string]any

// Phase names a step of a reconciliation run.
type Phase string

const (
	// PhaseLoad reads the persisted identity snapshot.
	PhaseLoad Phase = "load"
	// PhaseUpdate replaces records present in both sets.
	PhaseUpdate Phase = "update"
	// PhaseInsert creates records only present in the incoming set.
	PhaseInsert Phase = "insert"
	// PhaseDelete removes records only present in the persisted set.
	PhaseDelete Phase = "delete"
)

// Spec defines the configuration for a reconciler.
// It is supplied once per Reconciler instantiation.
type Spec struct {
	// Table names the persisted table or collection (used for logging and reports).
	Table string

	// Schema declares the record fields and the identity field.
	Schema *normalize.Schema
}

// Report is the caller-visible outcome of a run.
type Report struct {
	// Table is the reconciled table.
	Table string `json:"table"`

	// Updated counts records replaced in the update phase.
	Updated int `json:"updated"`

	// Inserted counts records created in the insert phase.
	Inserted int `json:"inserted"`

	// Deleted counts records removed in the delete phase.
	Deleted int `json:"deleted"`

	// FailedPhase is set when the run aborted; counts of that phase are zero.
	FailedPhase Phase `json:"failed_phase,omitempty"`
}

// Plan holds the partitions computed for one run. It is produced by
// Reconciler.Plan and consumed once by Reconciler.Apply.
type Plan struct {
	// Table is the reconciled table.
	Table string `json:"table"`

	// ToUpdate holds incoming records whose identity is persisted, in incoming order.
	ToUpdate []Record `json:"-"`

	// ToInsert holds incoming records whose identity is not persisted, in incoming order.
	ToInsert []Record `json:"-"`

	// ToDelete holds persisted identities absent from the incoming set.
	ToDelete IdentitySet `json:"-"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// Incoming is the number of incoming records.
	Incoming int `json:"incoming"`

	// Persisted is the number of persisted identities in the snapshot.
	Persisted int `json:"persisted"`

	// Updates counts planned updates.
	Updates int `json:"updates"`

	// Inserts counts planned inserts.
	Inserts int `json:"inserts"`

	// Deletes counts planned deletes.
	Deletes int `json:"deletes"`

	// FullWipe is true when the plan deletes every persisted record.
	FullWipe bool `json:"full_wipe"`
}

// ApplyOptions controls plan execution.
type ApplyOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool
}
