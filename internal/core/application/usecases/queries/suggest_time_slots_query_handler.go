package queries

import (
	"context"
	"time"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/model/order"
	"rental/internal/core/domain/services"
	"rental/internal/core/ports"

	"gorm.io/gorm"
)

// SuggestTimeSlotsQueryHandler finds free rental slots for a SKU.
// Loads the occupying reservations that touch the search window, inflates
// each by its preparation buffer and lets the slot planner compute the gaps.
//
// Example:
//
//	handler := NewSuggestTimeSlotsQueryHandler(db, ports.SystemClock{})
//	query, _ := NewSuggestTimeSlotsQuery("kayak-01", expectedStart, nil, 2)
//
//	suggestion, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to suggest slots: %v", err)
//	    return err
//	}
//	fmt.Println(suggestion.Text(time.UTC))
type SuggestTimeSlotsQueryHandler struct {
	db      *gorm.DB
	planner services.SlotPlanner
	clock   ports.Clock
}

// NewSuggestTimeSlotsQueryHandler creates a handler for slot suggestions.
// Requires a GORM database connection and a clock that supplies the lower
// bound of the search window.
func NewSuggestTimeSlotsQueryHandler(db *gorm.DB, clock ports.Clock) SuggestTimeSlotsQueryHandler {
	return SuggestTimeSlotsQueryHandler{
		db:      db,
		planner: services.NewSlotPlanner(),
		clock:   clock,
	}
}

// Handle executes the suggestion query.
// A desired period that lies entirely in the past yields an empty window and
// no slots, without touching the database.
func (h SuggestTimeSlotsQueryHandler) Handle(
	ctx context.Context,
	query SuggestTimeSlotsQuery,
) (SuggestTimeSlotsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return SuggestTimeSlotsQueryResponse{}, err
	}

	window := h.planner.PlanWindow(
		h.clock.Now(),
		query.ExpectedStart(),
		query.ExpectedEnd(),
		query.WindowDays(),
	)

	resp := SuggestTimeSlotsQueryResponse{
		SKU:    query.SKU(),
		Window: window,
	}
	if window.IsEmpty() {
		return resp, nil
	}

	occupied, err := h.occupiedRanges(ctx, query.SKU(), window)
	if err != nil {
		return SuggestTimeSlotsQueryResponse{}, err
	}

	resp.Slots = h.planner.FindFreeSlots(occupied, window, query.Duration())
	return resp, nil
}

// occupiedRanges loads the buffered periods of every occupying order for the
// SKU that touches the window.
func (h SuggestTimeSlotsQueryHandler) occupiedRanges(
	ctx context.Context,
	sku string,
	window kernel.TimeRange,
) ([]kernel.TimeRange, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			start_at,
			end_at,
			buffer_hours
		FROM orders
		WHERE sku = ?
		  AND status IN ?
		  AND occupied && tstzrange(?, ?)
		ORDER BY start_at
	`, sku, order.OccupyingStatusNames(), window.Start(), window.End()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	occupied := make([]kernel.TimeRange, 0)
	for rows.Next() {
		var startAt, endAt time.Time
		var bufferHours int

		if err = rows.Scan(&startAt, &endAt, &bufferHours); err != nil {
			return nil, err
		}

		buffered := kernel.NewTimeRange(startAt, endAt).
			Inflate(time.Duration(bufferHours) * time.Hour)
		occupied = append(occupied, buffered)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return occupied, nil
}
