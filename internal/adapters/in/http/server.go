// Package http exposes the dispatch core over a REST API plus an SSE stream
// for live order tracking.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"dispatch/internal/broadcast"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/commission"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// Server wires HTTP routes to the command and query handlers.
type Server struct {
	createOrderHandler commands.CreateOrderCommandHandler
	transitionHandler  commands.TransitionOrderStatusCommandHandler
	createRuleHandler  commands.CreateCommissionRuleCommandHandler
	updateRuleHandler  commands.UpdateCommissionRuleCommandHandler
	deleteRuleHandler  commands.DeleteCommissionRuleCommandHandler

	driverRouteHandler queries.GetDriverRouteQueryHandler
	activeRuleHandler  queries.GetActiveRuleQueryHandler
	quoteHandler       queries.QuoteCommissionQueryHandler

	broadcaster *broadcast.Broadcaster
}

// NewServer creates the HTTP server with all its handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionHandler commands.TransitionOrderStatusCommandHandler,
	createRuleHandler commands.CreateCommissionRuleCommandHandler,
	updateRuleHandler commands.UpdateCommissionRuleCommandHandler,
	deleteRuleHandler commands.DeleteCommissionRuleCommandHandler,
	driverRouteHandler queries.GetDriverRouteQueryHandler,
	activeRuleHandler queries.GetActiveRuleQueryHandler,
	quoteHandler queries.QuoteCommissionQueryHandler,
	broadcaster *broadcast.Broadcaster,
) *Server {
	return &Server{
		createOrderHandler: createOrderHandler,
		transitionHandler:  transitionHandler,
		createRuleHandler:  createRuleHandler,
		updateRuleHandler:  updateRuleHandler,
		deleteRuleHandler:  deleteRuleHandler,
		driverRouteHandler: driverRouteHandler,
		activeRuleHandler:  activeRuleHandler,
		quoteHandler:       quoteHandler,
		broadcaster:        broadcaster,
	}
}

// RegisterRoutes mounts all endpoints under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/status", s.TransitionOrderStatus)
	api.GET("/orders/:id/tracking", s.GetOrderTracking)
	api.GET("/orders/:id/stream", s.StreamOrderTracking)

	api.GET("/drivers/:id/route", s.GetDriverRoute)

	api.GET("/commission/active", s.GetActiveCommissionRule)
	api.GET("/commission/quote", s.QuoteCommission)
	api.POST("/commission/rules", s.CreateCommissionRule)
	api.PUT("/commission/rules/:id", s.UpdateCommissionRule)
	api.DELETE("/commission/rules/:id", s.DeleteCommissionRule)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "invalid customer id")
	}
	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return badRequest(ctx, "invalid restaurant id")
	}
	location, err := kernel.NewGeoPoint(req.DeliveryLat, req.DeliveryLon)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, line := range req.Items {
		item, itemErr := order.NewItem(line.Name, line.UnitPrice, line.Quantity)
		if itemErr != nil {
			return writeError(ctx, itemErr)
		}
		items = append(items, item)
	}

	cmd, err := commands.NewCreateOrderCommand(commands.CreateOrderParams{
		CustomerID:          customerID,
		RestaurantID:        restaurantID,
		Items:               items,
		DeliveryFee:         req.DeliveryFee,
		Tax:                 req.Tax,
		Currency:            req.Currency,
		DeliveryAddress:     req.DeliveryAddress,
		DeliveryLocation:    location,
		PaymentMethod:       req.PaymentMethod,
		Instructions:        req.Instructions,
		RequestedDeliveryAt: req.RequestedDeliveryAt,
	})
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(created))
}

// TransitionOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) TransitionOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req TransitionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor id")
	}

	cmd, err := commands.NewTransitionOrderStatusCommand(
		orderID, order.Status(req.NewStatus), actorID, order.ActorRole(req.ActorRole))
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.transitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// GetOrderTracking handles GET /api/v1/orders/:id/tracking. It returns the
// same snapshot the stream would have pushed.
func (s *Server) GetOrderTracking(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	snapshot, err := s.broadcaster.PollOnce(ctx.Request().Context(), orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshot)
}

// StreamOrderTracking handles GET /api/v1/orders/:id/stream. It keeps the
// connection open and pushes one SSE event per published snapshot until the
// client disconnects.
func (s *Server) StreamOrderTracking(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	requestCtx := ctx.Request().Context()
	snapshots, unsubscribe, err := s.broadcaster.Subscribe(requestCtx, orderID)
	if err != nil {
		return writeError(ctx, err)
	}
	defer unsubscribe()

	response := ctx.Response()
	response.Header().Set(echo.HeaderContentType, "text/event-stream")
	response.Header().Set(echo.HeaderCacheControl, "no-cache")
	response.Header().Set(echo.HeaderConnection, "keep-alive")
	response.WriteHeader(http.StatusOK)

	for {
		select {
		case <-requestCtx.Done():
			return nil
		case snapshot, ok := <-snapshots:
			if !ok {
				return nil
			}
			payload, marshalErr := json.Marshal(snapshot)
			if marshalErr != nil {
				return nil
			}
			if _, writeErr := fmt.Fprintf(response, "data: %s\n\n", payload); writeErr != nil {
				return nil
			}
			response.Flush()
		}
	}
}

// GetDriverRoute handles GET /api/v1/drivers/:id/route.
func (s *Server) GetDriverRoute(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid driver id")
	}

	query, err := queries.NewGetDriverRouteQuery(driverID)
	if err != nil {
		return writeError(ctx, err)
	}

	route, err := s.driverRouteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	points := make([]RoutePointResponse, 0, len(route.Points))
	for _, point := range route.Points {
		points = append(points, RoutePointResponse{
			OrderID:     point.OrderID.String(),
			Kind:        string(point.Kind),
			Address:     point.Address,
			Lat:         point.Location.Lat(),
			Lon:         point.Location.Lon(),
			Priority:    point.Priority,
			WindowStart: point.WindowStart,
			WindowEnd:   point.WindowEnd,
		})
	}

	return ctx.JSON(http.StatusOK, DriverRouteResponse{
		Points:          points,
		TotalDistanceKm: route.TotalDistanceKm,
		TotalMinutes:    route.TotalMinutes,
	})
}

// GetActiveCommissionRule handles GET /api/v1/commission/active.
func (s *Server) GetActiveCommissionRule(ctx echo.Context) error {
	rule, err := s.activeRuleHandler.Handle(ctx.Request().Context(), queries.NewGetActiveRuleQuery())
	if err != nil {
		return writeError(ctx, err)
	}
	if rule == nil {
		return ctx.NoContent(http.StatusNoContent)
	}

	return ctx.JSON(http.StatusOK, rule)
}

// QuoteCommission handles GET /api/v1/commission/quote.
func (s *Server) QuoteCommission(ctx echo.Context) error {
	amount, err := strconv.ParseFloat(ctx.QueryParam("amount"), 64)
	if err != nil {
		return badRequest(ctx, "invalid amount")
	}
	restaurantID, err := kernel.UUIDFromString(ctx.QueryParam("restaurantId"))
	if err != nil {
		return badRequest(ctx, "invalid restaurant id")
	}

	query, err := queries.NewQuoteCommissionQuery(amount, restaurantID)
	if err != nil {
		return writeError(ctx, err)
	}

	quote, err := s.quoteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, quote)
}

// CreateCommissionRule handles POST /api/v1/commission/rules.
func (s *Server) CreateCommissionRule(ctx echo.Context) error {
	var req CommissionRuleRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	createdBy, err := kernel.UUIDFromString(req.CreatedBy)
	if err != nil {
		return badRequest(ctx, "invalid createdBy id")
	}

	cmd, err := commands.NewCreateCommissionRuleCommand(
		req.Name, commission.RuleKind(req.Kind), req.Value, req.Active, createdBy)
	if err != nil {
		return writeError(ctx, err)
	}

	rule, err := s.createRuleHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, ruleToResponse(rule))
}

// UpdateCommissionRule handles PUT /api/v1/commission/rules/:id.
func (s *Server) UpdateCommissionRule(ctx echo.Context) error {
	ruleID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid rule id")
	}

	var req CommissionRuleRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewUpdateCommissionRuleCommand(
		ruleID, req.Name, commission.RuleKind(req.Kind), req.Value, req.Active)
	if err != nil {
		return writeError(ctx, err)
	}

	rule, err := s.updateRuleHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ruleToResponse(rule))
}

// DeleteCommissionRule handles DELETE /api/v1/commission/rules/:id.
func (s *Server) DeleteCommissionRule(ctx echo.Context) error {
	ruleID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid rule id")
	}

	cmd, err := commands.NewDeleteCommissionRuleCommand(ruleID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.deleteRuleHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func ruleToResponse(rule *commission.Rule) CommissionRuleResponse {
	return CommissionRuleResponse{
		ID:        rule.ID().String(),
		Name:      rule.Name(),
		Kind:      string(rule.Kind()),
		Value:     rule.Value(),
		Active:    rule.Active(),
		CreatedAt: rule.CreatedAt(),
		UpdatedAt: rule.UpdatedAt(),
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps domain errors to HTTP status codes. Internal detail stays
// out of 500 responses.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, errs.ErrInvalidTransition):
		status = http.StatusUnprocessableEntity
		message = err.Error()
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
		message = err.Error()
	}

	return ctx.JSON(status, ErrorResponse{Code: status, Message: message})
}
