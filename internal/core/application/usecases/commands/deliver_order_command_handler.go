package commands

import (
	"context"

	"rental/internal/core/domain/model/order"
)

// DeliverOrderCommandHandler hands an order over to the renter.
// Delegates to the edit handler with a patch that sets the locker code and
// the "shipped" status together.
type DeliverOrderCommandHandler struct {
	editHandler EditOrderCommandHandler
}

// NewDeliverOrderCommandHandler creates a handler for order delivery.
// Requires an OrderUoWFactory for transactional persistence.
func NewDeliverOrderCommandHandler(uowFactory OrderUoWFactory) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		editHandler: NewEditOrderCommandHandler(uowFactory),
	}
}

// Handle processes the delivery command and returns the shipped order.
func (h *DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	shipped := order.Shipped
	lockerCode := cmd.LockerCode()
	editCmd, err := NewEditOrderCommand(cmd.OrderID(), OrderPatch{
		Status:     &shipped,
		LockerCode: &lockerCode,
	})
	if err != nil {
		return nil, err
	}

	return h.editHandler.Handle(ctx, editCmd)
}
