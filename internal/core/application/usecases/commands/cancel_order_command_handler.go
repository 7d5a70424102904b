package commands

import (
	"context"

	"rental/internal/core/domain/model/order"
)

// CancelOrderCommandHandler handles order cancellation.
// Soft cancels are status transitions and go through the edit handler, so
// they obey the terminal order rules. Hard deletes remove the row and work
// on terminal orders too.
//
// Example:
//
//	handler := NewCancelOrderCommandHandler(uowFactory)
//	cmd, _ := NewCancelOrderCommand("ORD-1001", true)
//	removed, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("cancellation failed: %w", err)
//	}
//	// removed is the last persisted snapshot of the deleted order
type CancelOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	editHandler EditOrderCommandHandler
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
// Requires an OrderUoWFactory for transactional persistence.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory:  uowFactory,
		editHandler: NewEditOrderCommandHandler(uowFactory),
	}
}

// Handle processes the cancellation command.
// Returns the canceled order snapshot, or the last stored snapshot when the
// row was hard deleted.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if !cmd.HardDelete() {
		canceled := order.Canceled
		editCmd, err := NewEditOrderCommand(cmd.OrderID(), OrderPatch{Status: &canceled})
		if err != nil {
			return nil, err
		}

		return h.editHandler.Handle(ctx, editCmd)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	existing, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Delete(ctx, cmd.OrderID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return existing, nil
}
