package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"rental/internal/core/application/usecases/commands"
	"rental/internal/core/application/usecases/queries"
	"rental/internal/core/domain/model/order"
	"rental/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server exposes the order tools over HTTP.
// It coordinates between HTTP handlers and application use cases: every tool
// answers 200 with {"result": ...} or an error status with
// {"error": "<Kind>: <message>"}.
type Server struct {
	// Command handlers
	createOrderHandler   commands.CreateOrderCommandHandler
	editOrderHandler     commands.EditOrderCommandHandler
	cancelOrderHandler   commands.CancelOrderCommandHandler
	markOrderPaidHandler commands.MarkOrderPaidCommandHandler
	finishOrderHandler   commands.FinishOrderCommandHandler
	deliverOrderHandler  commands.DeliverOrderCommandHandler

	// Query handlers
	getOrderHandler         queries.GetOrderQueryHandler
	suggestTimeSlotsHandler queries.SuggestTimeSlotsQueryHandler

	// displayLocation is the timezone rendered text uses for timestamps.
	displayLocation *time.Location
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	editOrderHandler commands.EditOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	markOrderPaidHandler commands.MarkOrderPaidCommandHandler,
	finishOrderHandler commands.FinishOrderCommandHandler,
	deliverOrderHandler commands.DeliverOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	suggestTimeSlotsHandler queries.SuggestTimeSlotsQueryHandler,
	displayLocation *time.Location,
) *Server {
	if displayLocation == nil {
		displayLocation = time.UTC
	}
	return &Server{
		createOrderHandler:      createOrderHandler,
		editOrderHandler:        editOrderHandler,
		cancelOrderHandler:      cancelOrderHandler,
		markOrderPaidHandler:    markOrderPaidHandler,
		finishOrderHandler:      finishOrderHandler,
		deliverOrderHandler:     deliverOrderHandler,
		getOrderHandler:         getOrderHandler,
		suggestTimeSlotsHandler: suggestTimeSlotsHandler,
		displayLocation:         displayLocation,
	}
}

// RegisterRoutes mounts the tool endpoints and the health probe.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	tools := e.Group("/api/v1/tools")
	tools.POST("/create_order", s.CreateOrder)
	tools.POST("/get_order", s.GetOrder)
	tools.POST("/update_order", s.UpdateOrder)
	tools.POST("/cancel_order", s.CancelOrder)
	tools.POST("/mark_paid", s.MarkOrderPaid)
	tools.POST("/deliver_order", s.DeliverOrder)
	tools.POST("/finish_order", s.FinishOrder)
	tools.POST("/suggest_time_slots", s.SuggestTimeSlots)

	e.GET("/health", s.Health)
}

type createOrderRequest struct {
	OrderID     string  `json:"order_id"`
	UserName    string  `json:"user_name"`
	UserWeChat  string  `json:"user_wechat"`
	SKU         string  `json:"sku"`
	StartAt     string  `json:"start_at"`
	EndAt       string  `json:"end_at"`
	BufferHours *int    `json:"buffer_hours"`
	Status      *string `json:"status"`
	LockerCode  string  `json:"locker_code"`
}

type updateOrderRequest struct {
	OrderID     string  `json:"order_id"`
	UserName    *string `json:"user_name"`
	UserWeChat  *string `json:"user_wechat"`
	SKU         *string `json:"sku"`
	StartAt     *string `json:"start_at"`
	EndAt       *string `json:"end_at"`
	BufferHours *int    `json:"buffer_hours"`
	Status      *string `json:"status"`
	LockerCode  *string `json:"locker_code"`
}

type cancelOrderRequest struct {
	OrderID    string `json:"order_id"`
	HardDelete bool   `json:"hard_delete"`
}

type orderIDRequest struct {
	OrderID string `json:"order_id"`
}

type deliverOrderRequest struct {
	OrderID    string `json:"order_id"`
	LockerCode string `json:"locker_code"`
}

type suggestTimeSlotsRequest struct {
	SKU             string  `json:"sku"`
	ExpectedStartAt string  `json:"expected_start_at"`
	ExpectedEndAt   *string `json:"expected_end_at"`
	WindowDays      int     `json:"window_days"`
}

type orderPayload struct {
	OrderID     string `json:"order_id"`
	UserName    string `json:"user_name"`
	UserWeChat  string `json:"user_wechat"`
	SKU         string `json:"sku"`
	StartAt     string `json:"start_at"`
	EndAt       string `json:"end_at"`
	BufferHours int    `json:"buffer_hours"`
	Status      string `json:"status"`
	LockerCode  string `json:"locker_code"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type resultEnvelope struct {
	Result any `json:"result"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

// CreateOrder handles POST /api/v1/tools/create_order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return toolFailure(ctx, errs.NewValidationError("invalid request body"))
	}

	startAt, err := parseTimestamp("start_at", req.StartAt)
	if err != nil {
		return toolFailure(ctx, err)
	}
	endAt, err := parseTimestamp("end_at", req.EndAt)
	if err != nil {
		return toolFailure(ctx, err)
	}

	var status *order.Status
	if req.Status != nil {
		parsed, parseErr := order.StatusFromString(*req.Status)
		if parseErr != nil {
			return toolFailure(ctx, parseErr)
		}
		status = &parsed
	}

	cmd, err := commands.NewCreateOrderCommand(
		req.OrderID, req.UserName, req.UserWeChat, req.SKU,
		startAt, endAt, req.BufferHours, status, req.LockerCode,
	)
	if err != nil {
		return toolFailure(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return toolFailure(ctx, err)
	}

	return toolResult(ctx, orderToPayload(created))
}

// GetOrder handles POST /api/v1/tools/get_order.
func (s *Server) GetOrder(ctx echo.Context) error {
	var req orderIDRequest
	if err := ctx.Bind(&req); err != nil {
		return toolFailure(ctx, errs.NewValidationError("invalid request body"))
	}

	query, err := queries.NewGetOrderQuery(req.OrderID)
	if err != nil {
		return toolFailure(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return toolFailure(ctx, err)
	}

	return toolResult(ctx, resp.Text(s.displayLocation))
}

// UpdateOrder handles POST /api/v1/tools/update_order.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	var req updateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return toolFailure(ctx, errs.NewValidationError("invalid request body"))
	}

	patch := commands.OrderPatch{
		UserName:    req.UserName,
		UserWeChat:  req.UserWeChat,
		SKU:         req.SKU,
		BufferHours: req.BufferHours,
		LockerCode:  req.LockerCode,
	}

	if req.StartAt != nil {
		startAt, err := parseTimestamp("start_at", *req.StartAt)
		if err != nil {
			return toolFailure(ctx, err)
		}
		patch.StartAt = &startAt
	}
	if req.EndAt != nil {
		endAt, err := parseTimestamp("end_at", *req.EndAt)
		if err != nil {
			return toolFailure(ctx, err)
		}
		patch.EndAt = &endAt
	}
	if req.Status != nil {
		parsed, err := order.StatusFromString(*req.Status)
		if err != nil {
			return toolFailure(ctx, err)
		}
		patch.Status = &parsed
	}

	cmd, err := commands.NewEditOrderCommand(req.OrderID, patch)
	if err != nil {
		return toolFailure(ctx, err)
	}

	updated, err := s.editOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return toolFailure(ctx, err)
	}

	return toolResult(ctx, orderToPayload(updated))
}

// CancelOrder handles POST /api/v1/tools/cancel_order.
func (s *Server) CancelOrder(ctx echo.Context) error {
	var req cancelOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return toolFailure(ctx, errs.NewValidationError("invalid request body"))
	}

	cmd, err := commands.NewCancelOrderCommand(req.OrderID, req.HardDelete)
	if err != nil {
		return toolFailure(ctx, err)
	}

	canceled, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return toolFailure(ctx, err)
	}

	return toolResult(ctx, orderToPayload(canceled))
}

// MarkOrderPaid handles POST /api/v1/tools/mark_paid.
func (s *Server) MarkOrderPaid(ctx echo.Context) error {
	var req orderIDRequest
	if err := ctx.Bind(&req); err != nil {
		return toolFailure(ctx, errs.NewValidationError("invalid request body"))
	}

	cmd, err := commands.NewMarkOrderPaidCommand(req.OrderID)
	if err != nil {
		return toolFailure(ctx, err)
	}

	paid, err := s.markOrderPaidHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return toolFailure(ctx, err)
	}

	return toolResult(ctx, orderToPayload(paid))
}

// DeliverOrder handles POST /api/v1/tools/deliver_order.
func (s *Server) DeliverOrder(ctx echo.Context) error {
	var req deliverOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return toolFailure(ctx, errs.NewValidationError("invalid request body"))
	}

	cmd, err := commands.NewDeliverOrderCommand(req.OrderID, req.LockerCode)
	if err != nil {
		return toolFailure(ctx, err)
	}

	shipped, err := s.deliverOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return toolFailure(ctx, err)
	}

	return toolResult(ctx, orderToPayload(shipped))
}

// FinishOrder handles POST /api/v1/tools/finish_order.
func (s *Server) FinishOrder(ctx echo.Context) error {
	var req orderIDRequest
	if err := ctx.Bind(&req); err != nil {
		return toolFailure(ctx, errs.NewValidationError("invalid request body"))
	}

	cmd, err := commands.NewFinishOrderCommand(req.OrderID)
	if err != nil {
		return toolFailure(ctx, err)
	}

	finished, err := s.finishOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return toolFailure(ctx, err)
	}

	return toolResult(ctx, orderToPayload(finished))
}

// SuggestTimeSlots handles POST /api/v1/tools/suggest_time_slots.
func (s *Server) SuggestTimeSlots(ctx echo.Context) error {
	var req suggestTimeSlotsRequest
	if err := ctx.Bind(&req); err != nil {
		return toolFailure(ctx, errs.NewValidationError("invalid request body"))
	}

	expectedStart, err := parseTimestamp("expected_start_at", req.ExpectedStartAt)
	if err != nil {
		return toolFailure(ctx, err)
	}

	var expectedEnd *time.Time
	if req.ExpectedEndAt != nil {
		endAt, endErr := parseTimestamp("expected_end_at", *req.ExpectedEndAt)
		if endErr != nil {
			return toolFailure(ctx, endErr)
		}
		expectedEnd = &endAt
	}

	query, err := queries.NewSuggestTimeSlotsQuery(req.SKU, expectedStart, expectedEnd, req.WindowDays)
	if err != nil {
		return toolFailure(ctx, err)
	}

	resp, err := s.suggestTimeSlotsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return toolFailure(ctx, err)
	}

	return toolResult(ctx, resp.Text(s.displayLocation))
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

func toolResult(ctx echo.Context, payload any) error {
	return ctx.JSON(http.StatusOK, resultEnvelope{Result: payload})
}

func toolFailure(ctx echo.Context, err error) error {
	status, message := classifyError(err)
	return ctx.JSON(status, errorEnvelope{Error: message})
}

// classifyError maps a failure to its HTTP status and the
// "<Kind>: <message>" string the tool envelope carries.
func classifyError(err error) (int, string) {
	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, "ValidationError: " + validationErr.Message
	}

	var notFoundErr *errs.NotFoundError
	if errors.As(err, &notFoundErr) {
		return http.StatusNotFound, fmt.Sprintf("NotFoundError: order %s does not exist", notFoundErr.OrderID)
	}

	var terminalErr *errs.TerminalOrderError
	if errors.As(err, &terminalErr) {
		return http.StatusConflict, fmt.Sprintf(
			"TerminalOrderError: order %s is %s and accepts no further changes",
			terminalErr.OrderID, terminalErr.Status,
		)
	}

	var conflictErr *errs.ConflictError
	if errors.As(err, &conflictErr) {
		return http.StatusConflict, fmt.Sprintf("ConflictError: %s (sku %s)", conflictErr.Message, conflictErr.SKU)
	}

	var constraintErr *errs.ConstraintError
	if errors.As(err, &constraintErr) {
		return http.StatusUnprocessableEntity, "ConstraintError: " + constraintErr.Message
	}

	return http.StatusInternalServerError, "InternalError: " + err.Error()
}

const naiveTimestampLayout = "2006-01-02T15:04:05"

// parseTimestamp accepts RFC 3339 values, or zone-less YYYY-MM-DDTHH:MM:SS
// values which are treated as UTC.
func parseTimestamp(field, value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	if ts, err := time.ParseInLocation(naiveTimestampLayout, value, time.UTC); err == nil {
		return ts, nil
	}
	return time.Time{}, errs.NewValidationError(field + " must be an RFC 3339 or YYYY-MM-DDTHH:MM:SS timestamp")
}

func orderToPayload(o *order.Order) orderPayload {
	return orderPayload{
		OrderID:     o.ID(),
		UserName:    o.UserName(),
		UserWeChat:  o.UserWeChat(),
		SKU:         o.SKU(),
		StartAt:     o.Period().Start().Format(time.RFC3339),
		EndAt:       o.Period().End().Format(time.RFC3339),
		BufferHours: o.BufferHours(),
		Status:      o.Status().String(),
		LockerCode:  o.LockerCode(),
		CreatedAt:   o.CreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt:   o.UpdatedAt().UTC().Format(time.RFC3339),
	}
}
