package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"rental/internal/adapters/out/postgres"
	"rental/internal/adapters/out/postgres/orderrepo"
	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/model/order"
	"rental/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id string, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers. The real migration runs in SetupSuite because the
// overlap behavior under test lives in the trigger and the exclusion constraint.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *tcpostgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
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

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Run the real migration, including trigger and exclusion constraint
	suite.Require().NoError(postgres.Migrate(ctx, db))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders RESTART IDENTITY").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

var rentalStart = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

// createTestOrder builds a reserved order with the default three hour buffer.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(
	orderID, sku string,
	startAt, endAt time.Time,
) *order.Order {
	testOrder, err := order.NewOrder(
		orderID, "Zhang Wei", "zw_2024", sku,
		kernel.NewTimeRange(startAt, endAt),
		order.DefaultBufferHours, order.Reserved, "",
	)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) mustAdd(o *order.Order) {
	suite.Require().NoError(suite.repository.Add(context.Background(), o))
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("ORD-1001", "KAYAK-01", rentalStart, rentalStart.Add(5*time.Hour))

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_TriggerComputesOccupiedRange() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("ORD-1001", "KAYAK-01", rentalStart, rentalStart.Add(5*time.Hour))
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// The trigger must inflate the stored period by buffer_hours on each side
	var lower, upper time.Time
	row := suite.db.Raw(
		`SELECT lower(occupied), upper(occupied) FROM orders WHERE order_id = ?`,
		"ORD-1001",
	).Row()
	suite.Require().NoError(row.Scan(&lower, &upper))

	suite.True(rentalStart.Add(-3*time.Hour).Equal(lower))
	suite.True(rentalStart.Add(5*time.Hour).Add(3*time.Hour).Equal(upper))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_OverlappingSameSKU_ReturnsConflictError() {
	ctx := context.Background()

	first := suite.createTestOrder("ORD-1001", "KAYAK-01", rentalStart, rentalStart.Add(5*time.Hour))
	suite.mustAdd(first)

	// One hour gap between periods, but the buffers make the occupied ranges touch
	second := suite.createTestOrder("ORD-1002", "KAYAK-01", rentalStart.Add(6*time.Hour), rentalStart.Add(8*time.Hour))
	err := suite.repository.Add(ctx, second)
	suite.Require().Error(err)

	var conflictErr *errs.ConflictError
	suite.Require().ErrorAs(err, &conflictErr)
	suite.Equal("KAYAK-01", conflictErr.SKU)
	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_OverlappingDifferentSKU_Succeeds() {
	ctx := context.Background()

	first := suite.createTestOrder("ORD-1001", "KAYAK-01", rentalStart, rentalStart.Add(5*time.Hour))
	suite.mustAdd(first)

	second := suite.createTestOrder("ORD-1002", "TENT-02", rentalStart, rentalStart.Add(5*time.Hour))
	err := suite.repository.Add(ctx, second)
	suite.Require().NoError(err)

	suite.assertOrderCount(2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_TouchingBufferedRanges_Succeeds() {
	ctx := context.Background()

	// First occupies [09:00, 20:00), second [20:00, 29:00): half open ranges
	// that share a boundary do not overlap
	first := suite.createTestOrder("ORD-1001", "KAYAK-01", rentalStart, rentalStart.Add(5*time.Hour))
	suite.mustAdd(first)

	second := suite.createTestOrder("ORD-1002", "KAYAK-01", rentalStart.Add(11*time.Hour), rentalStart.Add(14*time.Hour))
	err := suite.repository.Add(ctx, second)
	suite.Require().NoError(err)

	suite.assertOrderCount(2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_OverlapWithTerminalOrder_Succeeds() {
	ctx := context.Background()

	first := suite.createTestOrder("ORD-1001", "KAYAK-01", rentalStart, rentalStart.Add(5*time.Hour))
	suite.mustAdd(first)
	suite.Require().NoError(first.Cancel())
	suite.Require().NoError(suite.repository.Update(ctx, first))

	// Canceled orders stop occupying their slot
	second := suite.createTestOrder("ORD-1002", "KAYAK-01", rentalStart, rentalStart.Add(5*time.Hour))
	err := suite.repository.Add(ctx, second)
	suite.Require().NoError(err)

	suite.assertOrderCount(2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateOrderID_ReturnsConflictError() {
	ctx := context.Background()

	first := suite.createTestOrder("ORD-1001", "KAYAK-01", rentalStart, rentalStart.Add(5*time.Hour))
	suite.mustAdd(first)

	duplicate := suite.createTestOrder("ORD-1001", "TENT-02", rentalStart.Add(48*time.Hour), rentalStart.Add(50*time.Hour))
	err := suite.repository.Add(ctx, duplicate)
	suite.Require().Error(err)

	var conflictErr *errs.ConflictError
	suite.Require().ErrorAs(err, &conflictErr)
	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTrip() {
	ctx := context.Background()

	original, err := order.NewOrder(
		"ORD-1001", "Zhang Wei", "zw_2024", "kayak-01",
		kernel.NewTimeRange(rentalStart, rentalStart.Add(5*time.Hour)),
		6, order.Paid, "",
	)
	suite.Require().NoError(err)
	suite.mustAdd(original)

	retrieved, err := suite.repository.Get(ctx, "ORD-1001")
	suite.Require().NoError(err)

	suite.Equal("ORD-1001", retrieved.ID())
	suite.Equal("Zhang Wei", retrieved.UserName())
	suite.Equal("zw_2024", retrieved.UserWeChat())
	suite.Equal("KAYAK-01", retrieved.SKU())
	suite.True(rentalStart.Equal(retrieved.Period().Start()))
	suite.True(rentalStart.Add(5 * time.Hour).Equal(retrieved.Period().End()))
	suite.Equal(6, retrieved.BufferHours())
	suite.Equal(order.Paid, retrieved.Status())
	suite.Empty(retrieved.LockerCode())
	suite.False(retrieved.CreatedAt().IsZero())
	suite.False(retrieved.UpdatedAt().IsZero())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, "ORD-404")

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.NotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.Equal("ORD-404", notFoundErr.OrderID)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsZeroValues() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("ORD-1001", "KAYAK-01", rentalStart, rentalStart.Add(5*time.Hour))
	suite.mustAdd(testOrder)

	// Zero values must survive the explicit column list update
	suite.Require().NoError(testOrder.ChangeBuffer(0))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, "ORD-1001")
	suite.Require().NoError(err)
	suite.Equal(0, retrieved.BufferHours())

	// The trigger must recompute the occupied range without the buffer
	var lower, upper time.Time
	row := suite.db.Raw(
		`SELECT lower(occupied), upper(occupied) FROM orders WHERE order_id = ?`,
		"ORD-1001",
	).Row()
	suite.Require().NoError(row.Scan(&lower, &upper))
	suite.True(rentalStart.Equal(lower))
	suite.True(rentalStart.Add(5 * time.Hour).Equal(upper))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_RescheduleIntoOccupiedSlot_ReturnsConflictError() {
	ctx := context.Background()

	first := suite.createTestOrder("ORD-1001", "KAYAK-01", rentalStart, rentalStart.Add(5*time.Hour))
	suite.mustAdd(first)

	second := suite.createTestOrder("ORD-1002", "KAYAK-01", rentalStart.Add(48*time.Hour), rentalStart.Add(50*time.Hour))
	suite.mustAdd(second)

	// Reschedule the second order onto the first one
	suite.Require().NoError(second.Reschedule(rentalStart.Add(time.Hour), rentalStart.Add(3*time.Hour)))
	err := suite.repository.Update(ctx, second)
	suite.Require().Error(err)

	var conflictErr *errs.ConflictError
	suite.Require().ErrorAs(err, &conflictErr)
	suite.Equal("KAYAK-01", conflictErr.SKU)

	// The stored row keeps its previous period
	retrieved, err := suite.repository.Get(ctx, "ORD-1002")
	suite.Require().NoError(err)
	suite.True(rentalStart.Add(48 * time.Hour).Equal(retrieved.Period().Start()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_TerminalStatus_ReleasesSlot() {
	ctx := context.Background()

	first := suite.createTestOrder("ORD-1001", "KAYAK-01", rentalStart, rentalStart.Add(5*time.Hour))
	suite.mustAdd(first)

	suite.Require().NoError(first.Finish())
	suite.Require().NoError(suite.repository.Update(ctx, first))

	second := suite.createTestOrder("ORD-1002", "KAYAK-01", rentalStart.Add(time.Hour), rentalStart.Add(4*time.Hour))
	suite.Require().NoError(suite.repository.Add(ctx, second))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ShippedWithoutLocker_ReturnsConstraintError() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("ORD-1001", "KAYAK-01", rentalStart, rentalStart.Add(5*time.Hour))
	suite.mustAdd(testOrder)

	// ChangeStatus skips the locker requirement that Deliver enforces, so the
	// check constraint is the last line of defense
	suite.Require().NoError(testOrder.ChangeStatus(order.Shipped))
	err := suite.repository.Update(ctx, testOrder)
	suite.Require().Error(err)

	var constraintErr *errs.ConstraintError
	suite.Require().ErrorAs(err, &constraintErr)

	retrieved, getErr := suite.repository.Get(ctx, "ORD-1001")
	suite.Require().NoError(getErr)
	suite.Equal(order.Reserved, retrieved.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	ghost := suite.createTestOrder("ORD-404", "KAYAK-01", rentalStart, rentalStart.Add(5*time.Hour))
	err := suite.repository.Update(ctx, ghost)

	suite.Require().Error(err)

	var notFoundErr *errs.NotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AdvancesUpdatedAt() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("ORD-1001", "KAYAK-01", rentalStart, rentalStart.Add(5*time.Hour))
	suite.mustAdd(testOrder)

	created, err := suite.repository.Get(ctx, "ORD-1001")
	suite.Require().NoError(err)

	time.Sleep(10 * time.Millisecond)
	suite.Require().NoError(testOrder.Rename("Li Na"))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	updated, err := suite.repository.Get(ctx, "ORD-1001")
	suite.Require().NoError(err)
	suite.Equal("Li Na", updated.UserName())
	suite.True(updated.UpdatedAt().After(created.UpdatedAt()))
	suite.True(created.CreatedAt().Equal(updated.CreatedAt()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete_RemovesRow() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("ORD-1001", "KAYAK-01", rentalStart, rentalStart.Add(5*time.Hour))
	suite.mustAdd(testOrder)

	suite.Require().NoError(suite.repository.Delete(ctx, "ORD-1001"))
	suite.assertOrderCount(0)

	_, err := suite.repository.Get(ctx, "ORD-1001")
	var notFoundErr *errs.NotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	err := suite.repository.Delete(ctx, "ORD-404")
	suite.Require().Error(err)

	var notFoundErr *errs.NotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllShippedEndingBefore() {
	ctx := context.Background()
	cutoff := rentalStart.Add(24 * time.Hour)

	expiredFirst := suite.createTestOrder("ORD-1001", "KAYAK-01", rentalStart, rentalStart.Add(5*time.Hour))
	suite.Require().NoError(expiredFirst.Deliver("A-17"))
	suite.mustAdd(expiredFirst)

	expiredSecond := suite.createTestOrder("ORD-1002", "TENT-02", rentalStart.Add(2*time.Hour), rentalStart.Add(6*time.Hour))
	suite.Require().NoError(expiredSecond.Deliver("A-18"))
	suite.mustAdd(expiredSecond)

	// Shipped but still running at the cutoff
	active := suite.createTestOrder("ORD-1003", "PADDLE-07", cutoff.Add(time.Hour), cutoff.Add(4*time.Hour))
	suite.Require().NoError(active.Deliver("A-19"))
	suite.mustAdd(active)

	// Ended but never shipped
	unshipped := suite.createTestOrder("ORD-1004", "SUP-11", rentalStart, rentalStart.Add(3*time.Hour))
	suite.mustAdd(unshipped)

	expired, err := suite.repository.GetAllShippedEndingBefore(ctx, cutoff)
	suite.Require().NoError(err)
	suite.Len(expired, 2)

	ids := []string{expired[0].ID(), expired[1].ID()}
	suite.ElementsMatch([]string{"ORD-1001", "ORD-1002"}, ids)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
