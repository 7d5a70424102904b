package commands_test

import (
	"testing"

	"rental/internal/core/application/usecases/commands"
	"rental/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFinishOrderCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewFinishOrderCommand("ORD-1001")

	require.NoError(t, err)
	assert.Equal(t, "ORD-1001", cmd.OrderID())
	assert.NoError(t, cmd.Validate())
}

func TestNewFinishOrderCommand_EmptyOrderID(t *testing.T) {
	_, err := commands.NewFinishOrderCommand("")

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidationFailed)
}

func TestFinishOrderCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.FinishOrderCommand
	err := cmd.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrFinishOrderCommandIsNotConstructed)
}
