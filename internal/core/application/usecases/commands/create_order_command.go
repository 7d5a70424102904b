package commands

import (
	"errors"
	"time"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/model/order"
	"rental/internal/pkg/errs"
	"rental/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new rental order.
// Encapsulates the renter details, the equipment SKU and the rental period.
// Optional fields fall back to their defaults: buffer hours to
// order.DefaultBufferHours and status to "reserved".
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    "ORD-1001", "Zhang Wei", "zw_2024", "kayak-01",
//	    startAt, endAt, nil, nil, "",
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s occupies %s", created.ID(), created.OccupiedRange())
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     string
	userName    string
	userWeChat  string
	sku         string
	period      kernel.TimeRange
	bufferHours int
	status      order.Status
	lockerCode  string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new rental order.
// Validates that all identifying fields are present, that the period is
// well formed and that buffer hours are not negative. A nil bufferHours or
// status selects the default value.
// Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID, userName, userWeChat, sku string,
	startAt, endAt time.Time,
	bufferHours *int,
	status *order.Status,
	lockerCode string,
) (CreateOrderCommand, error) {
	buffer := order.DefaultBufferHours
	if bufferHours != nil {
		buffer = *bufferHours
	}

	initialStatus := order.Reserved
	if status != nil {
		initialStatus = *status
	}

	orderCommand := CreateOrderCommand{
		lockerCode: lockerCode,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setUserName(userName),
		orderCommand.setUserWeChat(userWeChat),
		orderCommand.setSKU(sku),
		orderCommand.setPeriod(startAt, endAt),
		orderCommand.setBufferHours(buffer),
		orderCommand.setStatus(initialStatus),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the client supplied order identifier.
func (c CreateOrderCommand) OrderID() string {
	return c.orderID
}

// UserName returns the renter's display name.
func (c CreateOrderCommand) UserName() string {
	return c.userName
}

// UserWeChat returns the renter's WeChat contact.
func (c CreateOrderCommand) UserWeChat() string {
	return c.userWeChat
}

// SKU returns the normalized equipment identifier.
func (c CreateOrderCommand) SKU() string {
	return c.sku
}

// Period returns the requested rental period.
func (c CreateOrderCommand) Period() kernel.TimeRange {
	return c.period
}

// BufferHours returns the preparation buffer in hours.
func (c CreateOrderCommand) BufferHours() int {
	return c.bufferHours
}

// Status returns the initial order status.
func (c CreateOrderCommand) Status() order.Status {
	return c.status
}

// LockerCode returns the pickup locker code, empty when not yet assigned.
func (c CreateOrderCommand) LockerCode() string {
	return c.lockerCode
}

func (c *CreateOrderCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValidationError("order_id is required")
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setUserName(userName string) error {
	if userName == "" {
		return errs.NewValidationError("user_name is required")
	}

	c.userName = userName
	return nil
}

func (c *CreateOrderCommand) setUserWeChat(userWeChat string) error {
	if userWeChat == "" {
		return errs.NewValidationError("user_wechat is required")
	}

	c.userWeChat = userWeChat
	return nil
}

func (c *CreateOrderCommand) setSKU(sku string) error {
	normalized := order.NormalizeSKU(sku)
	if normalized == "" {
		return errs.NewValidationError("sku is required")
	}

	c.sku = normalized
	return nil
}

func (c *CreateOrderCommand) setPeriod(startAt, endAt time.Time) error {
	if err := kernel.ValidateTimeRange(startAt, endAt); err != nil {
		return err
	}

	c.period = kernel.NewTimeRange(startAt, endAt)
	return nil
}

func (c *CreateOrderCommand) setBufferHours(bufferHours int) error {
	if bufferHours < 0 {
		return errs.NewValidationError("buffer_hours must not be negative")
	}

	c.bufferHours = bufferHours
	return nil
}

func (c *CreateOrderCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
