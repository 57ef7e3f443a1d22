package http

import (
	"context"
	"log/slog"
	"net/http"

	"hawkerflow/internal/core/application/usecases/commands"
	"hawkerflow/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

type (
	submitOrderHandler interface {
		Handle(ctx context.Context, cmd commands.SubmitOrderCommand) (commands.SubmitOrderResult, error)
	}

	completeDishHandler interface {
		Handle(ctx context.Context, cmd commands.CompleteDishCommand) (commands.CompleteDishResult, error)
	}

	orderStatusHandler interface {
		Handle(ctx context.Context, query queries.GetOrderStatusQuery) (queries.GetOrderStatusQueryResponse, error)
	}

	stallSummaryHandler interface {
		Handle(ctx context.Context, query queries.GetStallSummaryQuery) (queries.GetStallSummaryQueryResponse, error)
	}

	stallOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetStallOrdersQuery) ([]queries.GetStallOrdersQueryResponse, error)
	}

	activityLogsHandler interface {
		Handle(ctx context.Context, query queries.GetActivityLogsQuery) (queries.GetActivityLogsQueryResponse, error)
	}
)

// Server handles the HTTP API. It coordinates between echo handlers and
// application use cases.
type Server struct {
	// Command handlers
	submitOrderHandler  submitOrderHandler
	completeDishHandler completeDishHandler

	// Query handlers
	orderStatusHandler  orderStatusHandler
	stallSummaryHandler stallSummaryHandler
	stallOrdersHandler  stallOrdersHandler
	activityLogsHandler activityLogsHandler

	logger *slog.Logger
}

func NewServer(
	submitOrderHandler submitOrderHandler,
	completeDishHandler completeDishHandler,
	orderStatusHandler orderStatusHandler,
	stallSummaryHandler stallSummaryHandler,
	stallOrdersHandler stallOrdersHandler,
	activityLogsHandler activityLogsHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		submitOrderHandler:  submitOrderHandler,
		completeDishHandler: completeDishHandler,
		orderStatusHandler:  orderStatusHandler,
		stallSummaryHandler: stallSummaryHandler,
		stallOrdersHandler:  stallOrdersHandler,
		activityLogsHandler: activityLogsHandler,
		logger:              logger.With("component", "http_server"),
	}
}

// SubmitOrder handles POST /orders. Once the request is valid the response is
// always 200 with the payment outcome, including when payment failed.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	var req SubmitOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewSubmitOrderCommand(
		req.OrderID, req.UserID, req.Contact, req.HawkerCenter, req.Token, req.items(), req.Amount,
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.submitOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SubmitOrderResponse{
		OrderID:       result.OrderID.String(),
		PaymentStatus: result.PaymentStatus.String(),
	})
}

// GetOrderStatus handles GET /orders/:orderId/status.
func (s *Server) GetOrderStatus(ctx echo.Context) error {
	orderID, err := pathParam(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderStatusQuery(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	status, err := s.orderStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderStatusResponse{
		OrderID: status.OrderID.String(),
		Status:  status.Status.String(),
	})
}

// GetWaitTime handles GET /:hawkerCenter/:stall/waitTime.
func (s *Server) GetWaitTime(ctx echo.Context) error {
	summary, err := s.stallSummary(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, WaitTimeResponse{
		HawkerCenter: summary.Stall.HawkerCenter(),
		HawkerStall:  summary.Stall.StallName(),
		WaitTime:     summary.EstimatedWaitTime,
	})
}

// GetTotalEarned handles GET /:hawkerCenter/:stall/totalEarned.
func (s *Server) GetTotalEarned(ctx echo.Context) error {
	summary, err := s.stallSummary(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TotalEarnedResponse{
		HawkerCenter: summary.Stall.HawkerCenter(),
		HawkerStall:  summary.Stall.StallName(),
		TotalEarned:  amount(summary.TotalEarned),
	})
}

// GetStallOrders handles GET /:hawkerCenter/:stall/orders.
func (s *Server) GetStallOrders(ctx echo.Context) error {
	hawkerCenter, stallName, err := stallParams(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetStallOrdersQuery(hawkerCenter, stallName)
	if err != nil {
		return s.fail(ctx, err)
	}

	open, err := s.stallOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newStallOrdersResponse(query, open))
}

// CompleteDish handles PATCH /:hawkerCenter/:stall/orders/:orderId/:dishName/complete.
func (s *Server) CompleteDish(ctx echo.Context) error {
	hawkerCenter, stallName, err := stallParams(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	orderID, err := pathParam(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}
	dishName, err := pathParam(ctx, "dishName")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCompleteDishCommand(hawkerCenter, stallName, orderID, dishName)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.completeDishHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newCompleteDishResponse(orderID, dishName, result))
}

// GetActivityLogs handles GET /activity/logs/:weekId.
func (s *Server) GetActivityLogs(ctx echo.Context) error {
	weekID, err := pathParam(ctx, "weekId")
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetActivityLogsQuery(weekID)
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.activityLogs(ctx, query)
}

// GetCurrentWeekActivityLogs handles GET /activity/logs.
func (s *Server) GetCurrentWeekActivityLogs(ctx echo.Context) error {
	return s.activityLogs(ctx, queries.NewGetCurrentWeekActivityLogsQuery())
}

func (s *Server) activityLogs(ctx echo.Context, query queries.GetActivityLogsQuery) error {
	result, err := s.activityLogsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newActivityLogsResponse(result))
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

func (s *Server) stallSummary(ctx echo.Context) (queries.GetStallSummaryQueryResponse, error) {
	hawkerCenter, stallName, err := stallParams(ctx)
	if err != nil {
		return queries.GetStallSummaryQueryResponse{}, err
	}

	query, err := queries.NewGetStallSummaryQuery(hawkerCenter, stallName)
	if err != nil {
		return queries.GetStallSummaryQueryResponse{}, err
	}

	return s.stallSummaryHandler.Handle(ctx.Request().Context(), query)
}
