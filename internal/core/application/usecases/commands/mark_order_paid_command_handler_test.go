package commands_test

import (
	"testing"

	"rental/internal/core/application/usecases/commands"
	"rental/internal/core/domain/model/order"
	"rental/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkOrderPaidCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewMarkOrderPaidCommand("ORD-1001")
	require.NoError(t, err)

	stored := storedOrder(t, "ORD-1001", order.Reserved)
	paid := storedOrder(t, "ORD-1001", order.Paid)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, "ORD-1001").Return(stored, nil).Once(),
		repo.On("Update", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			return o.Status() == order.Paid
		})).Return(nil).Once(),
		repo.On("Get", mock.Anything, "ORD-1001").Return(paid, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkOrderPaidCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Paid, result.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestMarkOrderPaidCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewMarkOrderPaidCommand("ORD-404")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, "ORD-404").Return(nil, errs.NewNotFoundError("ORD-404")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkOrderPaidCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrOrderNotFound)
}
