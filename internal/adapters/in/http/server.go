// Package http is the thin echo glue in front of the application layer.
// Handlers parse the request, build a command or query, and map the error
// taxonomy onto status codes: not-found is 404, business rule violations
// (including insufficient funds and version conflicts) are 422, validation
// failures are 400, everything else is 500.
package http

import (
	"errors"
	"net/http"

	"deliverybroker/internal/core/application/usecases/commands"
	"deliverybroker/internal/core/application/usecases/queries"
	"deliverybroker/internal/core/domain/model/delivery"
	"deliverybroker/internal/core/domain/model/kernel"
	"deliverybroker/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const defaultCancelReason = "canceled by client"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createDeliveryHandler   commands.CreateDeliveryCommandHandler
	acceptDeliveryHandler   commands.AcceptDeliveryCommandHandler
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler
	cancelDeliveryHandler   commands.CancelDeliveryCommandHandler
	depositFundsHandler     commands.DepositFundsCommandHandler
	reviewAccountHandler    commands.ReviewAccountCommandHandler

	// Query handlers
	listDeliveriesHandler       queries.ListDeliveriesQueryHandler
	clientDeliveriesHandler     queries.GetClientDeliveriesQueryHandler
	driverDeliveriesHandler     queries.GetDriverDeliveriesQueryHandler
	availableDeliveriesHandler  queries.GetAvailableDeliveriesQueryHandler
	getInRouteDeliveriesHandler queries.GetInRouteDeliveriesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createDeliveryHandler commands.CreateDeliveryCommandHandler,
	acceptDeliveryHandler commands.AcceptDeliveryCommandHandler,
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler,
	cancelDeliveryHandler commands.CancelDeliveryCommandHandler,
	depositFundsHandler commands.DepositFundsCommandHandler,
	reviewAccountHandler commands.ReviewAccountCommandHandler,
	listDeliveriesHandler queries.ListDeliveriesQueryHandler,
	clientDeliveriesHandler queries.GetClientDeliveriesQueryHandler,
	driverDeliveriesHandler queries.GetDriverDeliveriesQueryHandler,
	availableDeliveriesHandler queries.GetAvailableDeliveriesQueryHandler,
	getInRouteDeliveriesHandler queries.GetInRouteDeliveriesQueryHandler,
) *Server {
	return &Server{
		createDeliveryHandler:       createDeliveryHandler,
		acceptDeliveryHandler:       acceptDeliveryHandler,
		completeDeliveryHandler:     completeDeliveryHandler,
		cancelDeliveryHandler:       cancelDeliveryHandler,
		depositFundsHandler:         depositFundsHandler,
		reviewAccountHandler:        reviewAccountHandler,
		listDeliveriesHandler:       listDeliveriesHandler,
		clientDeliveriesHandler:     clientDeliveriesHandler,
		driverDeliveriesHandler:     driverDeliveriesHandler,
		availableDeliveriesHandler:  availableDeliveriesHandler,
		getInRouteDeliveriesHandler: getInRouteDeliveriesHandler,
	}
}

// RegisterRoutes mounts every endpoint on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/deliveries", s.CreateDelivery)
	api.GET("/deliveries", s.ListDeliveries)
	api.GET("/deliveries/available", s.GetAvailableDeliveries)
	api.GET("/deliveries/in-route", s.GetInRouteDeliveries)
	api.POST("/deliveries/:id/accept", s.AcceptDelivery)
	api.POST("/deliveries/:id/complete", s.CompleteDelivery)
	api.POST("/deliveries/:id/cancel", s.CancelDelivery)

	api.GET("/clients/:id/deliveries", s.GetClientDeliveries)
	api.GET("/drivers/:id/deliveries", s.GetDriverDeliveries)

	api.POST("/accounts/:id/deposit", s.DepositFunds)
	api.POST("/accounts/:id/review", s.ReviewAccount)
}

// CreateDelivery handles POST /api/v1/deliveries - posts a new delivery.
// The server generates the delivery identifier and returns it.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	var request CreateDeliveryRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	clientID, err := kernel.UUIDFromString(request.ClientID)
	if err != nil {
		return badRequest(ctx, "Invalid client id: "+err.Error())
	}

	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryCommand(
		deliveryID,
		clientID,
		request.PickupAddress,
		request.DeliveryAddress,
		request.Description,
		request.WeightKg,
		request.OfferedPrice,
	)
	if err != nil {
		return badRequest(ctx, "Invalid delivery data: "+err.Error())
	}

	if err := s.createDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateDeliveryResponse{ID: deliveryID.String()})
}

// AcceptDelivery handles POST /api/v1/deliveries/:id/accept - a driver takes
// an available delivery.
func (s *Server) AcceptDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery id: "+err.Error())
	}

	var request AcceptDeliveryRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(request.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id: "+err.Error())
	}

	cmd, err := commands.NewAcceptDeliveryCommand(deliveryID, driverID)
	if err != nil {
		return badRequest(ctx, "Invalid accept data: "+err.Error())
	}

	if err := s.acceptDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles POST /api/v1/deliveries/:id/complete - the
// assigned driver marks the delivery delivered and settlement runs.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery id: "+err.Error())
	}

	var request CompleteDeliveryRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(request.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id: "+err.Error())
	}

	cmd, err := commands.NewCompleteDeliveryCommand(deliveryID, driverID)
	if err != nil {
		return badRequest(ctx, "Invalid completion data: "+err.Error())
	}

	if err := s.completeDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelDelivery handles POST /api/v1/deliveries/:id/cancel - the posting
// client cancels the delivery. A blank reason gets a default.
func (s *Server) CancelDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery id: "+err.Error())
	}

	var request CancelDeliveryRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	clientID, err := kernel.UUIDFromString(request.ClientID)
	if err != nil {
		return badRequest(ctx, "Invalid client id: "+err.Error())
	}

	reason := request.Reason
	if reason == "" {
		reason = defaultCancelReason
	}

	cmd, err := commands.NewCancelDeliveryCommand(deliveryID, clientID, reason)
	if err != nil {
		return badRequest(ctx, "Invalid cancellation data: "+err.Error())
	}

	if err := s.cancelDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DepositFunds handles POST /api/v1/accounts/:id/deposit - credits a
// client's prepaid balance.
func (s *Server) DepositFunds(ctx echo.Context) error {
	clientID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid account id: "+err.Error())
	}

	var request DepositFundsRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewDepositFundsCommand(clientID, request.Amount)
	if err != nil {
		return badRequest(ctx, "Invalid deposit data: "+err.Error())
	}

	if err := s.depositFundsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReviewAccount handles POST /api/v1/accounts/:id/review - an admin approves
// or rejects a pending account.
func (s *Server) ReviewAccount(ctx echo.Context) error {
	accountID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid account id: "+err.Error())
	}

	var request ReviewAccountRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	adminID, err := kernel.UUIDFromString(request.AdminID)
	if err != nil {
		return badRequest(ctx, "Invalid admin id: "+err.Error())
	}

	cmd, err := commands.NewReviewAccountCommand(adminID, accountID, request.Approve)
	if err != nil {
		return badRequest(ctx, "Invalid review data: "+err.Error())
	}

	if err := s.reviewAccountHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListDeliveries handles GET /api/v1/deliveries - admin listing of every
// delivery, optionally filtered by ?status=.
func (s *Server) ListDeliveries(ctx echo.Context) error {
	query := queries.NewListDeliveriesQuery()
	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := delivery.StatusFromString(raw)
		if err != nil {
			return badRequest(ctx, "Invalid status filter: "+err.Error())
		}

		query, err = queries.NewListDeliveriesQueryWithStatus(status)
		if err != nil {
			return badRequest(ctx, "Invalid status filter: "+err.Error())
		}
	}

	deliveries, err := s.listDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveries)
}

// GetAvailableDeliveries handles GET /api/v1/deliveries/available - the open
// pool drivers pick from, oldest first.
func (s *Server) GetAvailableDeliveries(ctx echo.Context) error {
	query := queries.NewGetAvailableDeliveriesQuery()

	deliveries, err := s.availableDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveries)
}

// GetInRouteDeliveries handles GET /api/v1/deliveries/in-route - currently
// carried deliveries from the hot cache, optionally scoped by ?driverId=.
func (s *Server) GetInRouteDeliveries(ctx echo.Context) error {
	query := queries.NewGetInRouteDeliveriesQuery()
	if raw := ctx.QueryParam("driverId"); raw != "" {
		driverID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, "Invalid driver id: "+err.Error())
		}

		query, err = queries.NewGetInRouteDeliveriesQueryForDriver(driverID)
		if err != nil {
			return badRequest(ctx, "Invalid driver id: "+err.Error())
		}
	}

	snapshots, err := s.getInRouteDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshots)
}

// GetClientDeliveries handles GET /api/v1/clients/:id/deliveries - all
// deliveries the client ever posted, newest first.
func (s *Server) GetClientDeliveries(ctx echo.Context) error {
	clientID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid client id: "+err.Error())
	}

	query, err := queries.NewGetClientDeliveriesQuery(clientID)
	if err != nil {
		return badRequest(ctx, "Invalid client id: "+err.Error())
	}

	deliveries, err := s.clientDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveries)
}

// GetDriverDeliveries handles GET /api/v1/drivers/:id/deliveries - all
// deliveries ever assigned to the driver, newest first.
func (s *Server) GetDriverDeliveries(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid driver id: "+err.Error())
	}

	query, err := queries.NewGetDriverDeliveriesQuery(driverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id: "+err.Error())
	}

	deliveries, err := s.driverDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveries)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps the application error taxonomy onto HTTP status codes.
func writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrBusinessRule):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
	})
}
