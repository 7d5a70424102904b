package commands

import (
	"errors"
	"time"

	"rental/internal/core/domain/model/order"
	"rental/internal/pkg/errs"
	"rental/internal/pkg/guard"
)

var ErrEditOrderCommandIsNotConstructed = errors.New(
	"EditOrderCommand must be created via NewEditOrderCommand constructor",
)

// OrderPatch describes a partial update of an order. Nil fields keep their
// current value. Rescheduling may change either boundary alone: the missing
// boundary falls back to the stored one and the combined period is validated.
type OrderPatch struct {
	UserName    *string
	UserWeChat  *string
	SKU         *string
	StartAt     *time.Time
	EndAt       *time.Time
	BufferHours *int
	Status      *order.Status
	LockerCode  *string
}

// IsEmpty reports whether the patch changes nothing.
func (p OrderPatch) IsEmpty() bool {
	return p.UserName == nil &&
		p.UserWeChat == nil &&
		p.SKU == nil &&
		p.StartAt == nil &&
		p.EndAt == nil &&
		p.BufferHours == nil &&
		p.Status == nil &&
		p.LockerCode == nil
}

// ApplyTo mutates the order according to the patch. The period is applied
// first so that a reschedule rejected by validation leaves no partial state
// behind it, and the locker code is applied before the status so a transition
// to "shipped" sees the code it was submitted with.
func (p OrderPatch) ApplyTo(o *order.Order) error {
	if p.StartAt != nil || p.EndAt != nil {
		startAt := o.Period().Start()
		if p.StartAt != nil {
			startAt = *p.StartAt
		}

		endAt := o.Period().End()
		if p.EndAt != nil {
			endAt = *p.EndAt
		}

		if err := o.Reschedule(startAt, endAt); err != nil {
			return err
		}
	}

	if p.UserName != nil {
		if err := o.Rename(*p.UserName); err != nil {
			return err
		}
	}

	if p.UserWeChat != nil {
		if err := o.ChangeContact(*p.UserWeChat); err != nil {
			return err
		}
	}

	if p.SKU != nil {
		if err := o.ChangeSKU(*p.SKU); err != nil {
			return err
		}
	}

	if p.BufferHours != nil {
		if err := o.ChangeBuffer(*p.BufferHours); err != nil {
			return err
		}
	}

	if p.LockerCode != nil {
		if err := o.SetLockerCode(*p.LockerCode); err != nil {
			return err
		}
	}

	if p.Status != nil {
		if err := o.ChangeStatus(*p.Status); err != nil {
			return err
		}
	}

	return nil
}

// EditOrderCommand represents a request to partially update an existing order.
// Only the fields set in the patch are changed; everything else keeps its
// stored value.
//
// Example:
//
//	newEnd := endAt.Add(24 * time.Hour)
//	cmd, err := NewEditOrderCommand("ORD-1001", OrderPatch{EndAt: &newEnd})
//	if err != nil {
//	    return fmt.Errorf("invalid edit: %w", err)
//	}
//
//	handler := NewEditOrderCommandHandler(uowFactory)
//	updated, err := handler.Handle(ctx, cmd)
type EditOrderCommand struct { //nolint:recvcheck //using for validation
	orderID string
	patch   OrderPatch

	guard guard.ConstructorGuard
}

// NewEditOrderCommand creates a command to update selected order fields.
// Requires a non empty order identifier and a patch that changes at least
// one field. Field values are validated later by the order aggregate when
// the patch is applied.
func NewEditOrderCommand(orderID string, patch OrderPatch) (EditOrderCommand, error) {
	orderCommand := EditOrderCommand{
		patch: patch,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.checkPatch(patch),
	); err != nil {
		return EditOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrEditOrderCommandIsNotConstructed if validation fails.
func (c EditOrderCommand) Validate() error {
	return c.guard.Validate(ErrEditOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to update.
func (c EditOrderCommand) OrderID() string {
	return c.orderID
}

// Patch returns the requested field changes.
func (c EditOrderCommand) Patch() OrderPatch {
	return c.patch
}

func (c *EditOrderCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValidationError("order_id is required")
	}

	c.orderID = orderID
	return nil
}

func (c *EditOrderCommand) checkPatch(patch OrderPatch) error {
	if patch.IsEmpty() {
		return errs.NewValidationError("at least one field must be provided")
	}

	return nil
}
