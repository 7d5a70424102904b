package orderrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"rental/internal/core/domain/model/order"
	"rental/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres error codes that the overlap and integrity constraints raise.
const (
	pgCodeUniqueViolation    = "23505"
	pgCodeExclusionViolation = "23P01"
)

// updateColumns is the explicit column list for updates. Listing the columns
// keeps zero values such as buffer_hours = 0 or a cleared locker code from
// being skipped by GORM's struct update.
var updateColumns = []string{
	"user_name",
	"user_wechat",
	"sku",
	"start_at",
	"end_at",
	"buffer_hours",
	"status",
	"locker_code",
	"updated_at",
}

// GormOrderRepository implements OrderRepository using GORM.
// Constraint violations raised by Postgres are translated into domain error
// kinds here, so callers never see raw driver errors.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
// An order whose buffered period overlaps an occupying order of the same SKU
// is rejected by the exclusion constraint and reported as errs.ConflictError.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return translateError(err, aggregate.SKU())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database.
// Returns errs.NotFoundError when no row matches the order identifier.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("order_id = ?", dto.OrderID).
		Select(updateColumns).
		Updates(&dto)
	if result.Error != nil {
		return translateError(result.Error, aggregate.SKU())
	}

	if result.RowsAffected == 0 {
		return errs.NewNotFoundError(aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by its public identifier.
func (r *GormOrderRepository) Get(ctx context.Context, orderID string) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError(orderID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes an order row entirely.
// Returns errs.NotFoundError when no row matches the order identifier.
func (r *GormOrderRepository) Delete(ctx context.Context, orderID string) error {
	result := r.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&OrderDTO{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewNotFoundError(orderID)
	}

	return nil
}

// GetAllShippedEndingBefore retrieves shipped orders whose rental period ended
// before the cutoff. Used by the overdue sweep.
func (r *GormOrderRepository) GetAllShippedEndingBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND end_at < ?", order.Shipped.String(), cutoff).
		Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// translateError maps Postgres constraint violations onto domain error kinds.
// The exclusion constraint and the order_id uniqueness both mean the request
// collides with existing state; every other integrity violation, such as the
// locker code check, is a constraint error.
func translateError(err error, sku string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch {
	case pgErr.Code == pgCodeExclusionViolation:
		return errs.NewConflictErrorWithCause(sku, "requested period overlaps an existing order", err)
	case pgErr.Code == pgCodeUniqueViolation:
		return errs.NewConflictErrorWithCause(sku, "order with this order_id already exists", err)
	case strings.HasPrefix(pgErr.Code, "23"):
		return errs.NewConstraintErrorWithCause(pgErr.Message, err)
	default:
		return err
	}
}
