package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "rental/internal/adapters/out/postgres"
	"rental/internal/core/application/usecases/queries"
	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/model/order"
	"rental/internal/core/ports"
	"rental/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// GetOrderQueryHandlerTestSuite verifies the read model against a real
// PostgreSQL database populated through the write side.
type GetOrderQueryHandlerTestSuite struct {
	suite.Suite
	container  *tcpostgres.PostgresContainer
	db         *gorm.DB
	uowFactory ports.UnitOfWorkFactory
	handler    queries.GetOrderQueryHandler
}

func (suite *GetOrderQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(ctx, db))

	suite.uowFactory = postgres_adapter.NewGormUnitOfWorkFactory(db)
	suite.handler = queries.NewGetOrderQueryHandler(db)
}

func (suite *GetOrderQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders RESTART IDENTITY").Error)
}

func (suite *GetOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetOrderQueryHandlerTestSuite) addOrder(o *order.Order) {
	ctx := context.Background()
	uow := suite.uowFactory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_ReturnsStoredOrder() {
	ctx := context.Background()
	startAt := time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC)

	stored, err := order.NewOrder(
		"ORD-3001", "Li Na", "ln_official", "tent-02",
		kernel.NewTimeRange(startAt, startAt.Add(6*time.Hour)),
		2, order.Reserved, "",
	)
	suite.Require().NoError(err)
	suite.addOrder(stored)

	query, err := queries.NewGetOrderQuery("ORD-3001")
	suite.Require().NoError(err)

	resp, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal("ORD-3001", resp.OrderID)
	suite.Equal("Li Na", resp.UserName)
	suite.Equal("ln_official", resp.UserWeChat)
	suite.Equal("TENT-02", resp.SKU)
	suite.True(startAt.Equal(resp.StartAt))
	suite.True(startAt.Add(6 * time.Hour).Equal(resp.EndAt))
	suite.Equal(2, resp.BufferHours)
	suite.Equal("reserved", resp.Status)
	suite.Empty(resp.LockerCode)
	suite.False(resp.CreatedAt.IsZero())
	suite.False(resp.UpdatedAt.IsZero())
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_UnknownOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	query, err := queries.NewGetOrderQuery("ORD-404")
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(ctx, query)
	suite.Require().Error(err)

	var notFoundErr *errs.NotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.Equal("ORD-404", notFoundErr.OrderID)
}

func TestGetOrderQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderQueryHandlerTestSuite))
}
