package commands

import (
	"context"

	"rental/internal/core/domain/model/order"
	"rental/internal/pkg/errs"
)

// EditOrderCommandHandler handles partial updates of existing orders.
// Loads the aggregate, applies the patch through its mutators and persists
// the result in one transaction. Status wrappers such as MarkOrderPaid and
// CancelOrder reuse this handler with a fixed patch.
//
// Example:
//
//	handler := NewEditOrderCommandHandler(uowFactory)
//	cmd, _ := NewEditOrderCommand("ORD-1001", OrderPatch{BufferHours: &six})
//	updated, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("edit failed: %w", err)
//	}
type EditOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewEditOrderCommandHandler creates a handler for order update operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewEditOrderCommandHandler(uowFactory OrderUoWFactory) EditOrderCommandHandler {
	return EditOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order update command.
// Terminal orders reject every change, including edits that touch no
// scheduling fields. Rescheduling or changing the SKU may collide with
// another occupying order, which surfaces as an errs.ConflictError from
// the repository.
func (h *EditOrderCommandHandler) Handle(ctx context.Context, cmd EditOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
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

	if existing.IsTerminal() {
		return nil, errs.NewTerminalOrderError(existing.ID(), existing.Status().String())
	}

	if err = cmd.Patch().ApplyTo(existing); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	updated, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return updated, nil
}
