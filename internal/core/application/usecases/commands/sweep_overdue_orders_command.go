package commands

import (
	"errors"

	"rental/internal/pkg/guard"
)

var ErrSweepOverdueOrdersCommandIsNotConstructed = errors.New(
	"SweepOverdueOrdersCommand must be created via NewSweepOverdueOrdersCommand constructor",
)

// SweepOverdueOrdersCommand triggers the overdue sweep.
// Every shipped order whose rental period already ended is moved into the
// "overdue" status so it keeps occupying its slot until the equipment is
// actually returned.
//
// Example:
//
//	cmd := NewSweepOverdueOrdersCommand()
//	handler := NewSweepOverdueOrdersCommandHandler(uowFactory, clock)
//	flagged, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("Sweep failed: %v", err)
//	}
type SweepOverdueOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewSweepOverdueOrdersCommand creates a command to flag overdue orders.
// This is a parameterless command, usually issued by the scheduled job.
func NewSweepOverdueOrdersCommand() SweepOverdueOrdersCommand {
	return SweepOverdueOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrSweepOverdueOrdersCommandIsNotConstructed if validation fails.
func (c SweepOverdueOrdersCommand) Validate() error {
	return c.guard.Validate(ErrSweepOverdueOrdersCommandIsNotConstructed)
}
