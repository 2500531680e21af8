package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// OrderTracker is the slice of the tracking loop the HTTP layer needs.
type OrderTracker interface {
	StartTracking(orderID kernel.UUID) error
	CancelOrder(ctx context.Context, orderID kernel.UUID) error
	GetStatus(ctx context.Context, orderID kernel.UUID) (order.Status, error)
}

// Error is the JSON body returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrder is the request body for POST /api/v1/orders.
type NewOrder struct {
	TotalPrice float64 `json:"totalPrice"`
}

// NewCourier is the request body for POST /api/v1/couriers.
type NewCourier struct {
	Name string `json:"name"`
}

// CreatedResource reports the identifier of a newly created aggregate.
type CreatedResource struct {
	ID uuid.UUID `json:"id"`
}

// Order is the JSON representation of an active order.
type Order struct {
	ID        uuid.UUID  `json:"id"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	CourierID *uuid.UUID `json:"courierId,omitempty"`
}

// OrderStatus is the JSON body for GET /api/v1/orders/:id/status.
type OrderStatus struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

// Courier is the JSON representation of a courier.
type Courier struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Available bool      `json:"available"`
}

// Server exposes the application use cases over HTTP.
// It coordinates between echo handlers, the tracking loop, and the
// command/query handlers.
type Server struct {
	// Command handlers
	createOrderHandler    commands.CreateOrderCommandHandler
	createCourierHandler  commands.CreateCourierCommandHandler
	assignCourierHandler  commands.AssignCourierCommandHandler
	releaseCourierHandler commands.ReleaseCourierCommandHandler

	// Query handlers
	getAllCouriersHandler       queries.GetAllCouriersQueryHandler
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler

	tracker OrderTracker
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	createCourierHandler commands.CreateCourierCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	releaseCourierHandler commands.ReleaseCourierCommandHandler,
	getAllCouriersHandler queries.GetAllCouriersQueryHandler,
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler,
	tracker OrderTracker,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		createCourierHandler:        createCourierHandler,
		assignCourierHandler:        assignCourierHandler,
		releaseCourierHandler:       releaseCourierHandler,
		getAllCouriersHandler:       getAllCouriersHandler,
		getUncompletedOrdersHandler: getUncompletedOrdersHandler,
		tracker:                     tracker,
	}
}

// RegisterRoutes mounts all API routes on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders", s.GetOrders)
	v1.GET("/orders/:id/status", s.GetOrderStatus)
	v1.POST("/orders/:id/cancel", s.CancelOrder)
	v1.POST("/orders/:id/assign", s.AssignCourier)

	v1.POST("/couriers", s.CreateCourier)
	v1.GET("/couriers", s.GetCouriers)
	v1.POST("/couriers/:id/release", s.ReleaseCourier)

	e.GET("/health", s.Health)
}

// CreateOrder handles POST /api/v1/orders - places a new order and enrolls
// it for tracking.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var newOrder NewOrder
	if err := ctx.Bind(&newOrder); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	orderID := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(orderID, newOrder.TotalPrice)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to create order")
	}

	if trackErr := s.tracker.StartTracking(orderID); trackErr != nil {
		// The order is already persisted; restart re-enrollment covers it.
		ctx.Logger().Warnf("order %s created but not enrolled for tracking: %v", orderID.String(), trackErr)
	}

	return ctx.JSON(http.StatusCreated, CreatedResource{ID: orderID.Bytes()})
}

// GetOrders handles GET /api/v1/orders - retrieves all uncompleted orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	query := queries.NewGetUncompletedOrdersQuery()

	orders, err := s.getUncompletedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
	}

	response := make([]Order, len(orders))
	for i, o := range orders {
		var courierID *uuid.UUID
		if o.CourierID != nil {
			raw := o.CourierID.Bytes()
			courierID = &raw
		}

		response[i] = Order{
			ID:        o.ID.Bytes(),
			Status:    o.Status.String(),
			CreatedAt: o.CreatedAt,
			CourierID: courierID,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderStatus handles GET /api/v1/orders/:id/status.
func (s *Server) GetOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	status, err := s.tracker.GetStatus(ctx.Request().Context(), orderID)
	if err != nil {
		return domainErrorResponse(ctx, err, "Failed to retrieve order status")
	}

	return ctx.JSON(http.StatusOK, OrderStatus{ID: orderID.Bytes(), Status: status.String()})
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	if err := s.tracker.CancelOrder(ctx.Request().Context(), orderID); err != nil {
		return domainErrorResponse(ctx, err, "Failed to cancel order")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignCourier handles POST /api/v1/orders/:id/assign - triggers one
// dispatch attempt for the order.
func (s *Server) AssignCourier(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	cmd, err := commands.NewAssignCourierCommand(orderID)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid assignment data: "+err.Error())
	}

	if handleErr := s.assignCourierHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainErrorResponse(ctx, handleErr, "Failed to assign courier")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateCourier handles POST /api/v1/couriers - registers a new courier.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var newCourier NewCourier
	if err := ctx.Bind(&newCourier); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	courierID := kernel.NewUUID()

	cmd, err := commands.NewCreateCourierCommand(courierID, newCourier.Name)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid courier data: "+err.Error())
	}

	if handleErr := s.createCourierHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to create courier")
	}

	return ctx.JSON(http.StatusCreated, CreatedResource{ID: courierID.Bytes()})
}

// GetCouriers handles GET /api/v1/couriers - retrieves all couriers.
func (s *Server) GetCouriers(ctx echo.Context) error {
	query := queries.NewGetAllCouriersQuery()

	couriers, err := s.getAllCouriersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve couriers")
	}

	response := make([]Courier, len(couriers))
	for i, c := range couriers {
		response[i] = Courier{
			ID:        c.ID.Bytes(),
			Name:      c.Name,
			Available: c.Available,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ReleaseCourier handles POST /api/v1/couriers/:id/release - marks a courier
// as available again after a completed delivery leg.
func (s *Server) ReleaseCourier(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid courier id")
	}

	cmd, err := commands.NewReleaseCourierCommand(courierID)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid courier id: "+err.Error())
	}

	if handleErr := s.releaseCourierHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainErrorResponse(ctx, handleErr, "Failed to release courier")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// domainErrorResponse maps application errors onto HTTP status codes.
// Not-found lookups become 404, policy refusals become 409, validation
// failures become 400, everything else is a 500.
func domainErrorResponse(ctx echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorResponse(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, commands.ErrCancellationWindowClosed),
		errors.Is(err, commands.ErrCancellationConflict),
		errors.Is(err, commands.ErrOrderNotReadyForAssignment),
		errors.Is(err, commands.ErrNoFreeCouriersFound):
		return errorResponse(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	default:
		return errorResponse(ctx, http.StatusInternalServerError, fallback)
	}
}

func errorResponse(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}
