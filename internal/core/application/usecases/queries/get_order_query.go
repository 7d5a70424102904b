// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rental/internal/pkg/errs"
	"rental/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order by its identifier.
//
// Example:
//
//	query, err := NewGetOrderQuery("ORD-1001")
//	if err != nil {
//	    return fmt.Errorf("invalid lookup: %w", err)
//	}
//
//	handler := NewGetOrderQueryHandler(db)
//	details, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//	fmt.Println(details.Text(time.UTC))
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID string

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to look up one order.
// Requires a non empty order identifier.
func NewGetOrderQuery(orderID string) (GetOrderQuery, error) {
	query := GetOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return GetOrderQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to look up.
func (q GetOrderQuery) OrderID() string {
	return q.orderID
}

func (q *GetOrderQuery) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValidationError("order_id is required")
	}

	q.orderID = orderID
	return nil
}

// GetOrderQueryResponse is the read model of one stored order.
// Field values come straight from the database row, including the
// server-assigned timestamps.
type GetOrderQueryResponse struct {
	OrderID     string
	UserName    string
	UserWeChat  string
	SKU         string
	StartAt     time.Time
	EndAt       time.Time
	BufferHours int
	Status      string
	LockerCode  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Text renders the order as a labeled line per field, with timestamps in the
// given display timezone. Empty locker codes and zero timestamps render as
// "N/A" so the output stays aligned for every order.
func (r GetOrderQueryResponse) Text(loc *time.Location) string {
	lockerCode := r.LockerCode
	if lockerCode == "" {
		lockerCode = "N/A"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Order ID: %s\n", r.OrderID)
	fmt.Fprintf(&b, "User Name: %s\n", r.UserName)
	fmt.Fprintf(&b, "User WeChat: %s\n", r.UserWeChat)
	fmt.Fprintf(&b, "SKU: %s\n", r.SKU)
	fmt.Fprintf(&b, "Start At: %s\n", formatInZone(r.StartAt, loc))
	fmt.Fprintf(&b, "End At: %s\n", formatInZone(r.EndAt, loc))
	fmt.Fprintf(&b, "Buffer Hours: %d\n", r.BufferHours)
	fmt.Fprintf(&b, "Status: %s\n", r.Status)
	fmt.Fprintf(&b, "Locker Code: %s\n", lockerCode)
	fmt.Fprintf(&b, "Created At: %s\n", formatInZone(r.CreatedAt, loc))
	fmt.Fprintf(&b, "Updated At: %s", formatInZone(r.UpdatedAt, loc))
	return b.String()
}

func formatInZone(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "N/A"
	}

	return t.In(loc).Format(time.RFC3339)
}
