package queries

import (
	"context"
	"database/sql"
	"errors"

	"rental/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order row from the database.
// Bypasses the aggregate and scans directly into the read model.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery("ORD-1001")
//
//	details, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get order: %v", err)
//	    return err
//	}
//	fmt.Println(details.Text(time.UTC))
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the lookup.
// Returns errs.NotFoundError when no order matches the identifier.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			user_name,
			user_wechat,
			sku,
			start_at,
			end_at,
			buffer_hours,
			status,
			locker_code,
			created_at,
			updated_at
		FROM orders
		WHERE order_id = ?
	`, query.OrderID()).Row()

	var resp GetOrderQueryResponse
	err := row.Scan(
		&resp.OrderID,
		&resp.UserName,
		&resp.UserWeChat,
		&resp.SKU,
		&resp.StartAt,
		&resp.EndAt,
		&resp.BufferHours,
		&resp.Status,
		&resp.LockerCode,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewNotFoundError(query.OrderID())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.StartAt = resp.StartAt.UTC()
	resp.EndAt = resp.EndAt.UTC()
	resp.CreatedAt = resp.CreatedAt.UTC()
	resp.UpdatedAt = resp.UpdatedAt.UTC()
	return resp, nil
}
