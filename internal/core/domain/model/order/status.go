package order

import (
	"fmt"

	"rental/internal/pkg/errs"
)

// Status represents the lifecycle state of a rental order.
//
// The lifecycle is deliberately permissive: any non-terminal status may move
// to any other valid status through a patch, because human operators
// legitimately revert states (an overdue order can go back to paid once the
// customer settles). Only two rules constrain transitions:
//   - terminal statuses (successful, canceled) accept no further mutation
//   - shipped requires a locker code, enforced by the storage layer
//
// Statuses also classify for scheduling: occupying statuses count toward
// interval exclusivity on their SKU, terminal ones do not.
//
//	| status     | occupying | terminal |
//	|------------|-----------|----------|
//	| reserved   | yes       | no       |
//	| paid       | yes       | no       |
//	| shipped    | yes       | no       |
//	| overdue    | yes       | no       |
//	| successful | no        | yes      |
//	| canceled   | no        | yes      |
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Reserved is the default status for newly created orders.
	Reserved

	// Paid indicates the customer has paid for the rental.
	Paid

	// Shipped indicates the item has been handed over, typically via a
	// locker; a shipped order always carries a locker code.
	Shipped

	// Overdue indicates a shipped item that was not returned by the end
	// of its rental period.
	Overdue

	// Successful indicates the rental completed and the item returned.
	// This is a terminal status.
	Successful

	// Canceled indicates the order was called off. This is a terminal
	// status; the row is retained unless hard-deleted.
	Canceled
)

// getStatusStrings returns a map of Status values to their storage names.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Reserved:   "reserved",
		Paid:       "paid",
		Shipped:    "shipped",
		Overdue:    "overdue",
		Successful: "successful",
		Canceled:   "canceled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Unknown is excluded to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Reserved:   "reserved",
		Paid:       "paid",
		Shipped:    "shipped",
		Overdue:    "overdue",
		Successful: "successful",
		Canceled:   "canceled",
	}
}

// StatusFromString parses a storage or API status name into a Status.
// Returns a ValidationError for names outside the six valid statuses.
func StatusFromString(value string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == value {
			return status, nil
		}
	}
	return Unknown, errs.NewValidationErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", value),
	)
}

// Validate checks if the Status value is one of the six valid statuses.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValidationErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the storage name of the status, e.g. "reserved".
// Invalid values render as "unknown". Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further mutation.
func (s Status) IsTerminal() bool {
	return s == Successful || s == Canceled
}

// IsOccupying reports whether orders in this status count toward interval
// exclusivity for their SKU.
func (s Status) IsOccupying() bool {
	switch s {
	case Reserved, Paid, Shipped, Overdue:
		return true
	default:
		return false
	}
}

// OccupyingStatusNames returns the storage names of all occupying statuses,
// in lifecycle order. Used to build status filters for scheduling reads.
func OccupyingStatusNames() []string {
	return []string{
		Reserved.String(),
		Paid.String(),
		Shipped.String(),
		Overdue.String(),
	}
}
