// Package reconcile mirrors an incoming record set onto a persisted record set keyed
// by an application-managed identity field.
//
// After a successful run the persisted identity set equals the incoming identity set
// and every surviving record carries the incoming field values.
//
// # Algorithm
//
// A run partitions identities with plain set arithmetic over a snapshot of the
// persisted identities taken once at the start of the run:
//
//   - update: incoming ∩ persisted (full-record replacement)
//   - insert: incoming − persisted
//   - delete: persisted − incoming
//
// Phases always execute in that order. Delete is computed from the original snapshot,
// never re-queried after update or insert. An empty phase makes no store call.
//
// # Consistency
//
// Each phase commits independently. A failure in a later phase does not roll back an
// earlier one; the caller receives the partial Report together with a *PhaseError
// naming the failed phase. Re-running is safe: every run recomputes its partitions
// from a fresh snapshot. An empty incoming set deletes every persisted record.
//
// Cancellation is honoured between phases only. A phase that has started runs to
// completion, because a torn bulk operation is not guaranteed safe.
//
// # Components
//
//   - Store: the persistence collaborator (see core/database.TableStore).
//   - Reconciler: validates input, builds a Plan, applies it.
//   - IdentitySet: canonical identity values with set operations.
//
// # Usage
//
//	r, err := reconcile.NewReconciler(reconcile.Spec{Table: "course", Schema: schema}, logger)
//	report, err := r.Reconcile(ctx, records, store)
//
//	// Dry run
//	plan, err := r.Plan(ctx, records, store)
//	fmt.Println(plan.Summary)
package reconcile
