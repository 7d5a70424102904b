package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/pkg/errs"
)

// DefaultBufferHours is the occupancy padding applied to new orders when the
// caller does not specify one. It models turnaround time between rentals,
// such as cleaning and transit.
const DefaultBufferHours = 3

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory methods. This ensures all
// orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// NormalizeSKU canonicalizes a SKU to its uppercase-trimmed storage form.
// All SKU input entering the domain goes through this, so interval
// exclusivity compares like with like.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

// Order represents a time-bounded rental of one SKU. It is the aggregate root
// that manages the order lifecycle from reservation through payment, shipment
// and return.
//
// Order follows these invariants:
//   - order_id, user_name, user_wechat and sku are non-empty
//   - the SKU is stored in normalized (uppercase-trimmed) form
//   - the rental period always satisfies start_at < end_at
//   - buffer_hours is non-negative
//   - a terminal order rejects every mutation with TerminalOrderError
//   - can only be created through NewOrder or RestoreOrder
//
// Overlap exclusivity between orders of the same SKU is NOT enforced here:
// the aggregate cannot see its siblings, and checking client-side would race
// under concurrent writers. The storage layer's exclusion constraint is the
// single authority for that invariant; OccupiedRange exposes the interval it
// guards.
type Order struct {
	// id is the externally assigned unique identifier for the order
	id string

	// userName and userWeChat identify the renting customer
	userName   string
	userWeChat string

	// sku is the rented item, normalized to uppercase-trimmed form
	sku string

	// period is the rental interval [start_at, end_at)
	period kernel.TimeRange

	// bufferHours pads the period on both ends for occupancy checks
	bufferHours int

	// status represents the current state in the order lifecycle
	status Status

	// lockerCode is the pickup code, required once status is Shipped
	lockerCode string

	// createdAt and updatedAt are server-assigned persistence timestamps,
	// zero until the order has been stored
	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order instance with validation. This is the only way
// to create a valid order for insertion, ensuring all business invariants
// hold before the storage layer is touched.
//
// Parameters:
//   - id: externally assigned unique order identifier
//   - userName, userWeChat: customer contact, both required
//   - sku: rented item, normalized to uppercase-trimmed form
//   - period: rental interval, must satisfy start < end
//   - bufferHours: occupancy padding, must be non-negative
//   - status: initial status, any of the six valid statuses
//   - lockerCode: pickup code, may be empty unless status is Shipped
//
// All validation failures are joined, so a caller sees every invalid field
// at once rather than one per attempt.
//
// Example:
//
//	period := kernel.NewTimeRange(start, end)
//	o, err := order.NewOrder("ORD-1", "Alice", "alice_w", "white_s",
//	    period, order.DefaultBufferHours, order.Reserved, "")
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	id string,
	userName string,
	userWeChat string,
	sku string,
	period kernel.TimeRange,
	bufferHours int,
	status Status,
	lockerCode string,
) (*Order, error) {
	order := &Order{
		lockerCode:    lockerCode,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setUserName(userName),
		order.setUserWeChat(userWeChat),
		order.setSKU(sku),
		order.setPeriod(period),
		order.setBufferHours(bufferHours),
		order.setStatus(status),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder rehydrates an Order from persistence, including the
// server-assigned timestamps. It applies the same field validation as
// NewOrder, so corrupted rows are caught at the storage boundary instead of
// leaking into the domain.
func RestoreOrder(
	id string,
	userName string,
	userWeChat string,
	sku string,
	period kernel.TimeRange,
	bufferHours int,
	status Status,
	lockerCode string,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	order, err := NewOrder(id, userName, userWeChat, sku, period, bufferHours, status, lockerCode)
	if err != nil {
		return nil, err
	}

	order.createdAt = createdAt.UTC()
	order.updatedAt = updatedAt.UTC()
	return order, nil
}

// Validate ensures the Order instance was properly constructed.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

// ID returns the order's externally assigned identifier.
func (o *Order) ID() string {
	return o.id
}

// UserName returns the renting customer's name.
func (o *Order) UserName() string {
	return o.userName
}

// UserWeChat returns the renting customer's WeChat contact.
func (o *Order) UserWeChat() string {
	return o.userWeChat
}

// SKU returns the rented item in normalized form.
func (o *Order) SKU() string {
	return o.sku
}

// Period returns the rental interval [start_at, end_at).
func (o *Order) Period() kernel.TimeRange {
	return o.period
}

// BufferHours returns the occupancy padding in hours.
func (o *Order) BufferHours() int {
	return o.bufferHours
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// LockerCode returns the pickup code, empty if none was assigned yet.
func (o *Order) LockerCode() string {
	return o.lockerCode
}

// CreatedAt returns the server-assigned creation timestamp,
// zero until the order has been persisted.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the server-assigned last-modification timestamp,
// zero until the order has been persisted.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsTerminal reports whether the order reached a terminal status.
func (o *Order) IsTerminal() bool {
	return o.status.IsTerminal()
}

// OccupiedRange returns the interval this order occupies for exclusivity
// checks: the rental period inflated by the buffer on both ends.
func (o *Order) OccupiedRange() kernel.TimeRange {
	return o.period.Inflate(time.Duration(o.bufferHours) * time.Hour)
}

// Rename changes the customer name. Rejected on terminal orders.
func (o *Order) Rename(userName string) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	return o.setUserName(userName)
}

// ChangeContact changes the customer's WeChat contact. Rejected on terminal orders.
func (o *Order) ChangeContact(userWeChat string) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	return o.setUserWeChat(userWeChat)
}

// ChangeSKU moves the order to a different item. The new SKU is normalized
// like on creation. Rejected on terminal orders.
func (o *Order) ChangeSKU(sku string) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	return o.setSKU(sku)
}

// Reschedule replaces the rental interval. The new endpoints are validated
// the same way as on creation; whether the new interval collides with other
// occupying orders is decided by the storage layer when the change is
// persisted. Rejected on terminal orders.
func (o *Order) Reschedule(start time.Time, end time.Time) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	return o.setPeriod(kernel.NewTimeRange(start, end))
}

// ChangeBuffer replaces the occupancy padding. Rejected on terminal orders.
func (o *Order) ChangeBuffer(hours int) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	return o.setBufferHours(hours)
}

// ChangeStatus moves the order to the given status. Any valid status is
// accepted from a non-terminal origin; the lifecycle is permissive because
// operators legitimately move orders backwards (overdue back to paid, for
// example). The shipped-requires-locker rule is enforced by the storage
// layer's check constraint on persist. Rejected on terminal orders.
func (o *Order) ChangeStatus(next Status) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	return o.setStatus(next)
}

// SetLockerCode assigns or clears the pickup code. Rejected on terminal orders.
func (o *Order) SetLockerCode(code string) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	o.lockerCode = code
	return nil
}

// Deliver hands the order over: it requires a non-empty locker code and sets
// it together with the Shipped status, so the storage check constraint is
// satisfied within one mutation.
//
// Returns:
//   - ValidationError if lockerCode is empty
//   - TerminalOrderError if the order is terminal
func (o *Order) Deliver(lockerCode string) error {
	if lockerCode == "" {
		return errs.NewValidationError("locker_code is required")
	}
	if err := o.ensureMutable(); err != nil {
		return err
	}

	o.lockerCode = lockerCode
	o.status = Shipped
	return nil
}

// MarkPaid records payment for the order.
func (o *Order) MarkPaid() error {
	return o.ChangeStatus(Paid)
}

// Finish completes the rental successfully. The order becomes terminal.
func (o *Order) Finish() error {
	return o.ChangeStatus(Successful)
}

// Cancel calls the order off without deleting it. The order becomes terminal
// and stops occupying its SKU's timeline.
func (o *Order) Cancel() error {
	return o.ChangeStatus(Canceled)
}

// MarkOverdue flags a shipped order whose rental period has passed.
func (o *Order) MarkOverdue() error {
	return o.ChangeStatus(Overdue)
}

// ensureMutable rejects mutation once the order reached a terminal status.
func (o *Order) ensureMutable() error {
	if o.status.IsTerminal() {
		return errs.NewTerminalOrderError(o.id, o.status.String())
	}
	return nil
}

// setID validates and sets the order's identifier.
// This is a private method used only during construction.
func (o *Order) setID(id string) error {
	if id == "" {
		return errs.NewValidationError("order_id is required")
	}
	o.id = id
	return nil
}

// setUserName validates and sets the customer name.
func (o *Order) setUserName(userName string) error {
	if userName == "" {
		return errs.NewValidationError("user_name is required")
	}
	o.userName = userName
	return nil
}

// setUserWeChat validates and sets the customer contact.
func (o *Order) setUserWeChat(userWeChat string) error {
	if userWeChat == "" {
		return errs.NewValidationError("user_wechat is required")
	}
	o.userWeChat = userWeChat
	return nil
}

// setSKU normalizes and sets the SKU, rejecting blank values.
func (o *Order) setSKU(sku string) error {
	normalized := NormalizeSKU(sku)
	if normalized == "" {
		return errs.NewValidationError("sku is required")
	}
	o.sku = normalized
	return nil
}

// setPeriod validates interval ordering and sets the rental period.
func (o *Order) setPeriod(period kernel.TimeRange) error {
	if err := kernel.ValidateTimeRange(period.Start(), period.End()); err != nil {
		return err
	}
	o.period = period
	return nil
}

// setBufferHours validates and sets the occupancy padding.
func (o *Order) setBufferHours(hours int) error {
	if hours < 0 {
		return errs.NewValidationErrorWithCause(
			"buffer_hours is invalid",
			fmt.Errorf("%d is negative", hours),
		)
	}
	o.bufferHours = hours
	return nil
}

// setStatus validates and sets the status.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
