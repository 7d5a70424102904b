package commands_test

import (
	"testing"
	"time"

	"rental/internal/core/application/usecases/commands"
	"rental/internal/core/domain/model/order"
	"rental/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testStartAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	testEndAt   = testStartAt.Add(5 * time.Hour)
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(
		"ORD-1001", "Zhang Wei", "zw_2024", "kayak-01",
		testStartAt, testEndAt, nil, nil, "",
	)
	require.NoError(t, err)
	assert.Equal(t, "ORD-1001", cmd.OrderID())
	assert.Equal(t, "Zhang Wei", cmd.UserName())
	assert.Equal(t, "zw_2024", cmd.UserWeChat())
	assert.Equal(t, "KAYAK-01", cmd.SKU())
	assert.Equal(t, testStartAt, cmd.Period().Start())
	assert.Equal(t, testEndAt, cmd.Period().End())
	assert.Equal(t, order.DefaultBufferHours, cmd.BufferHours())
	assert.Equal(t, order.Reserved, cmd.Status())
	assert.Empty(t, cmd.LockerCode())
}

func TestNewCreateOrderCommand_ExplicitOptionalFields(t *testing.T) {
	bufferHours := 0
	status := order.Paid
	cmd, err := commands.NewCreateOrderCommand(
		"ORD-1001", "Zhang Wei", "zw_2024", "kayak-01",
		testStartAt, testEndAt, &bufferHours, &status, "A-17",
	)
	require.NoError(t, err)
	assert.Equal(t, 0, cmd.BufferHours())
	assert.Equal(t, order.Paid, cmd.Status())
	assert.Equal(t, "A-17", cmd.LockerCode())
}

func TestNewCreateOrderCommand_NormalizesSKU(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(
		"ORD-1001", "Zhang Wei", "zw_2024", "  tent-02 ",
		testStartAt, testEndAt, nil, nil, "",
	)
	require.NoError(t, err)
	assert.Equal(t, "TENT-02", cmd.SKU())
}

func TestNewCreateOrderCommand_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name       string
		orderID    string
		userName   string
		userWeChat string
		sku        string
	}{
		{"empty order_id", "", "Zhang Wei", "zw_2024", "kayak-01"},
		{"empty user_name", "ORD-1001", "", "zw_2024", "kayak-01"},
		{"empty user_wechat", "ORD-1001", "Zhang Wei", "", "kayak-01"},
		{"empty sku", "ORD-1001", "Zhang Wei", "zw_2024", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewCreateOrderCommand(
				tt.orderID, tt.userName, tt.userWeChat, tt.sku,
				testStartAt, testEndAt, nil, nil, "",
			)
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValidationFailed)
		})
	}
}

func TestNewCreateOrderCommand_InvalidPeriod(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		"ORD-1001", "Zhang Wei", "zw_2024", "kayak-01",
		testEndAt, testStartAt, nil, nil, "",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidationFailed)
}

func TestNewCreateOrderCommand_NegativeBufferHours(t *testing.T) {
	bufferHours := -1
	_, err := commands.NewCreateOrderCommand(
		"ORD-1001", "Zhang Wei", "zw_2024", "kayak-01",
		testStartAt, testEndAt, &bufferHours, nil, "",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidationFailed)
}

func TestNewCreateOrderCommand_InvalidStatus(t *testing.T) {
	status := order.Status(42)
	_, err := commands.NewCreateOrderCommand(
		"ORD-1001", "Zhang Wei", "zw_2024", "kayak-01",
		testStartAt, testEndAt, nil, &status, "",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidationFailed)
}

func TestNewCreateOrderCommand_JoinsAllFailures(t *testing.T) {
	bufferHours := -5
	_, err := commands.NewCreateOrderCommand(
		"", "", "zw_2024", "kayak-01",
		testStartAt, testEndAt, &bufferHours, nil, "",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order_id is required")
	assert.Contains(t, err.Error(), "user_name is required")
	assert.Contains(t, err.Error(), "buffer_hours must not be negative")
}

func TestCreateOrderCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.CreateOrderCommand
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}
