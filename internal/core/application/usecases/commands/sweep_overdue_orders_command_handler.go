package commands

import (
	"context"

	"rental/internal/core/ports"
)

// SweepOverdueOrdersCommandHandler flags shipped orders whose rental period
// has ended. Runs periodically from the job scheduler, but can also be
// invoked directly. All transitions happen in a single transaction.
//
// Example:
//
//	handler := NewSweepOverdueOrdersCommandHandler(uowFactory, ports.SystemClock{})
//	flagged, err := handler.Handle(ctx, NewSweepOverdueOrdersCommand())
//	if err != nil {
//	    log.Printf("Sweep failed: %v", err)
//	} else if flagged > 0 {
//	    log.Printf("%d orders are now overdue", flagged)
//	}
type SweepOverdueOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

// NewSweepOverdueOrdersCommandHandler creates a handler for the overdue sweep.
// Requires an OrderUoWFactory for transactional persistence and a clock that
// supplies the cutoff instant.
func NewSweepOverdueOrdersCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) SweepOverdueOrdersCommandHandler {
	return SweepOverdueOrdersCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the sweep command.
// Returns how many orders were moved into the "overdue" status.
func (h *SweepOverdueOrdersCommandHandler) Handle(ctx context.Context, cmd SweepOverdueOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	expired, err := orderRepo.GetAllShippedEndingBefore(ctx, h.clock.Now())
	if err != nil {
		return 0, err
	}

	for _, expiredOrder := range expired {
		if err = expiredOrder.MarkOverdue(); err != nil {
			return 0, err
		}

		if err = orderRepo.Update(ctx, expiredOrder); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(expired), nil
}
