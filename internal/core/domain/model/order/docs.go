// Package order provides domain entities and business logic for rental order
// management. It implements the Order aggregate root with lifecycle
// management and status classification.
//
// The package includes:
//   - Order: The aggregate root managing identity, rental period, buffer and lifecycle
//   - Status: The six-state lifecycle with occupying/terminal classification
//
// Key business rules:
//   - Orders must have a unique external identifier, customer contact and SKU
//   - The rental period always satisfies start_at < end_at
//   - Terminal orders (successful, canceled) reject every further mutation
//   - Shipping requires a locker code set in the same mutation
//   - Occupying orders pad their period by buffer_hours for exclusivity checks
//
// Interval exclusivity across orders of one SKU is owned by the storage
// layer's exclusion constraint, not by this package; OccupiedRange exposes
// the interval that constraint guards.
package order
