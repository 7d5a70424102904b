package commands

import (
	"context"

	"rental/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Builds the order aggregate from the command and persists it transactionally.
// Overlap protection is enforced by the storage layer, so a conflicting period
// surfaces here as an errs.ConflictError from the repository.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	cmd, _ := NewCreateOrderCommand("ORD-1001", "Zhang Wei", "zw_2024", "kayak-01",
//	    startAt, endAt, nil, nil, "")
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// created carries the storage assigned timestamps
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
// Persists the new order and reads it back within the same transaction so the
// returned aggregate carries the timestamps assigned by the storage layer.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.UserName(),
		cmd.UserWeChat(),
		cmd.SKU(),
		cmd.Period(),
		cmd.BufferHours(),
		cmd.Status(),
		cmd.LockerCode(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return nil, err
	}

	created, err := orderRepo.Get(ctx, newOrder.ID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
