// Package services provides domain services that implement business logic
// spanning multiple orders, which therefore does not belong to a single
// aggregate root.
//
// The package includes:
//   - SlotPlanner: A domain service computing free rental slots for a SKU
//     from the buffered intervals its occupying orders cover
//
// Domain services here are pure: they receive every input explicitly
// (including the current time) and touch no storage, which keeps the
// scheduling arithmetic directly testable.
package services
