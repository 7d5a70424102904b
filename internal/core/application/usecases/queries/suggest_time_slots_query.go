package queries

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/model/order"
	"rental/internal/core/domain/services"
	"rental/internal/pkg/errs"
	"rental/internal/pkg/guard"
)

var ErrSuggestTimeSlotsQueryIsNotConstructed = errors.New(
	"SuggestTimeSlotsQuery must be created via NewSuggestTimeSlotsQuery constructor",
)

// SuggestTimeSlotsQuery asks for free rental slots around a desired period.
// The search window stretches the desired period by windowDays in both
// directions, and only gaps long enough to hold the desired duration are
// reported. A nil expectedEnd defaults the duration to
// services.DefaultSlotDuration.
//
// Example:
//
//	query, err := NewSuggestTimeSlotsQuery("kayak-01", expectedStart, nil, 2)
//	if err != nil {
//	    return fmt.Errorf("invalid suggestion request: %w", err)
//	}
//
//	handler := NewSuggestTimeSlotsQueryHandler(db, ports.SystemClock{})
//	suggestion, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(suggestion.Text(time.UTC))
type SuggestTimeSlotsQuery struct { //nolint:recvcheck //using for validation
	sku           string
	expectedStart time.Time
	expectedEnd   time.Time
	windowDays    int

	guard guard.ConstructorGuard
}

// NewSuggestTimeSlotsQuery creates a query for free slot suggestions.
// Requires a non empty SKU and a well formed desired period. The windowDays
// value is stored as given; the planner clamps it into its supported range.
func NewSuggestTimeSlotsQuery(
	sku string,
	expectedStart time.Time,
	expectedEnd *time.Time,
	windowDays int,
) (SuggestTimeSlotsQuery, error) {
	end := expectedStart.Add(services.DefaultSlotDuration)
	if expectedEnd != nil {
		end = *expectedEnd
	}

	query := SuggestTimeSlotsQuery{
		windowDays: windowDays,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setSKU(sku),
		query.setPeriod(expectedStart, end),
	); err != nil {
		return SuggestTimeSlotsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrSuggestTimeSlotsQueryIsNotConstructed if validation fails.
func (q SuggestTimeSlotsQuery) Validate() error {
	return q.guard.Validate(ErrSuggestTimeSlotsQueryIsNotConstructed)
}

// SKU returns the normalized equipment identifier to search for.
func (q SuggestTimeSlotsQuery) SKU() string {
	return q.sku
}

// ExpectedStart returns the desired rental start.
func (q SuggestTimeSlotsQuery) ExpectedStart() time.Time {
	return q.expectedStart
}

// ExpectedEnd returns the desired rental end, defaulted when not supplied.
func (q SuggestTimeSlotsQuery) ExpectedEnd() time.Time {
	return q.expectedEnd
}

// Duration returns the desired rental duration. Suggested slots are at least
// this long.
func (q SuggestTimeSlotsQuery) Duration() time.Duration {
	return q.expectedEnd.Sub(q.expectedStart)
}

// WindowDays returns the requested window stretch in days.
func (q SuggestTimeSlotsQuery) WindowDays() int {
	return q.windowDays
}

func (q *SuggestTimeSlotsQuery) setSKU(sku string) error {
	normalized := order.NormalizeSKU(sku)
	if normalized == "" {
		return errs.NewValidationError("sku is required")
	}

	q.sku = normalized
	return nil
}

func (q *SuggestTimeSlotsQuery) setPeriod(startAt, endAt time.Time) error {
	if err := kernel.ValidateTimeRange(startAt, endAt); err != nil {
		return err
	}

	q.expectedStart = startAt.UTC()
	q.expectedEnd = endAt.UTC()
	return nil
}

// SuggestTimeSlotsQueryResponse lists the free slots found for a SKU.
// Window is the searched range; an empty Window means the desired period lies
// entirely in the past and nothing was searched.
type SuggestTimeSlotsQueryResponse struct {
	SKU    string
	Window kernel.TimeRange
	Slots  []kernel.TimeRange
}

// Text renders the suggestion as human readable lines with timestamps in the
// given display timezone.
func (r SuggestTimeSlotsQueryResponse) Text(loc *time.Location) string {
	if r.Window.IsEmpty() {
		return fmt.Sprintf("The requested period for %s is already in the past; no slots to suggest.", r.SKU)
	}

	window := fmt.Sprintf(
		"%s and %s",
		r.Window.Start().In(loc).Format(time.RFC3339),
		r.Window.End().In(loc).Format(time.RFC3339),
	)

	if len(r.Slots) == 0 {
		return fmt.Sprintf("No free slots for %s between %s.", r.SKU, window)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Free slots for %s between %s:", r.SKU, window)
	for _, slot := range r.Slots {
		fmt.Fprintf(
			&b,
			"\n- %s to %s",
			slot.Start().In(loc).Format(time.RFC3339),
			slot.End().In(loc).Format(time.RFC3339),
		)
	}
	return b.String()
}
