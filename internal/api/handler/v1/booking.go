package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventhive/eventhive-api/internal/api/handler/v1/request"
	"github.com/eventhive/eventhive-api/internal/api/handler/v1/response"
	"github.com/eventhive/eventhive-api/internal/domain"
	"github.com/eventhive/eventhive-api/internal/service"
)

type BookingService interface {
	BookTicket(ctx context.Context, eventID, userID uint, ticketType string, price float64) (domain.Ticket, error)
	CancelTicket(ctx context.Context, ticketID, callerID uint) error
	IssueQR(ctx context.Context, ticketID uint) (domain.Ticket, error)
	CheckIn(ctx context.Context, ticketID uint, callerRole domain.Role) (domain.Ticket, error)
	ListUserTickets(ctx context.Context, userID uint) ([]domain.TicketWithEvent, error)
	ListEventBookings(ctx context.Context, eventID uint) ([]domain.BookingWithUser, error)
}

type BookingHandler struct {
	svc BookingService
}

func NewBookingHandler(svc BookingService) *BookingHandler {
	return &BookingHandler{
		svc: svc,
	}
}

// HandleBookTicket godoc
// @Summary      Book a ticket for an event
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                        true  "Event ID"
// @Param        request  body      request.BookTicketRequest  true  "request body"
// @Success      201      {object}  response.BookTicketResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/book [post]
// @Security     BearerAuth
func (h *BookingHandler) HandleBookTicket(ctx *gin.Context) {
	userID, respErr := currentUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.BookTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	ticket, err := h.svc.BookTicket(ctx.Request.Context(), eventID, userID, req.TicketType, req.Price)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrEventInactive):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrEventInactive))
		default:
			err = fmt.Errorf("v1.HandleBookTicket -> h.svc.BookTicket -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.BookTicketResponse{
		Message: "Ticket booked successfully",
		Ticket:  ticket,
	})
}

// HandleGetMyTickets godoc
// @Summary      List the current user's tickets
// @Tags         bookings
// @Produce      json
// @Success      200  {array}   domain.TicketWithEvent
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/my-tickets [get]
// @Security     BearerAuth
func (h *BookingHandler) HandleGetMyTickets(ctx *gin.Context) {
	userID, respErr := currentUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	tickets, err := h.svc.ListUserTickets(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetMyTickets -> h.svc.ListUserTickets -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, tickets)
}

// HandleGetEventBookings godoc
// @Summary      List all bookings for an event (admin)
// @Tags         bookings
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200      {array}   domain.BookingWithUser
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/bookings [get]
// @Security     BearerAuth
func (h *BookingHandler) HandleGetEventBookings(ctx *gin.Context) {
	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	bookings, err := h.svc.ListEventBookings(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetEventBookings -> h.svc.ListEventBookings -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, bookings)
}

// HandleCancelTicket godoc
// @Summary      Cancel one of the current user's tickets
// @Tags         bookings
// @Produce      json
// @Param        ticketID  path      int  true  "Ticket ID"
// @Success      200       {object}  response.MessageResponse
// @Failure      400       {object}  response.Err
// @Failure      401       {object}  response.Err
// @Failure      403       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      409       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /events/ticket/{ticketID}/cancel [delete]
// @Security     BearerAuth
func (h *BookingHandler) HandleCancelTicket(ctx *gin.Context) {
	userID, respErr := currentUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ticketID, respErr := parseIDParam(ctx, "ticketID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	err := h.svc.CancelTicket(ctx.Request.Context(), ticketID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTicketNotFound):
			response.RenderErr(ctx, response.ErrNotFound("ticket", "ID", ticketID))
		case errors.Is(err, service.ErrTicketNotOwned):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrTicketNotOwned))
		case errors.Is(err, service.ErrTicketCheckedIn):
			response.RenderErr(ctx, response.ErrConflict(service.ErrTicketCheckedIn))
		default:
			err = fmt.Errorf("v1.HandleCancelTicket -> h.svc.CancelTicket -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "Ticket canceled successfully"})
}

// HandleGetTicketQR godoc
// @Summary      Issue (or re-issue) the QR code for a ticket
// @Tags         bookings
// @Produce      json
// @Param        ticketID  path      int  true  "Ticket ID"
// @Success      200       {object}  response.TicketQRResponse
// @Failure      400       {object}  response.Err
// @Failure      401       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /events/ticket/{ticketID} [get]
// @Security     BearerAuth
func (h *BookingHandler) HandleGetTicketQR(ctx *gin.Context) {
	ticketID, respErr := parseIDParam(ctx, "ticketID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ticket, err := h.svc.IssueQR(ctx.Request.Context(), ticketID)
	if err != nil {
		if errors.Is(err, service.ErrTicketNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("ticket", "ID", ticketID))
			return
		}

		err = fmt.Errorf("v1.HandleGetTicketQR -> h.svc.IssueQR -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.TicketQRResponse{
		QRCode: ticket.QRCode,
		Ticket: ticket,
	})
}

// HandleCheckInTicket godoc
// @Summary      Check in a ticket (staff/admin)
// @Tags         bookings
// @Produce      json
// @Param        ticketID  path      int  true  "Ticket ID"
// @Success      200       {object}  response.CheckInResponse
// @Failure      400       {object}  response.Err
// @Failure      401       {object}  response.Err
// @Failure      403       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      409       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /events/ticket/{ticketID}/check-in [post]
// @Security     BearerAuth
func (h *BookingHandler) HandleCheckInTicket(ctx *gin.Context) {
	role, respErr := currentUserRole(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ticketID, respErr := parseIDParam(ctx, "ticketID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ticket, err := h.svc.CheckIn(ctx.Request.Context(), ticketID, role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCheckInNotAllowed):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrCheckInNotAllowed))
		case errors.Is(err, service.ErrTicketNotFound):
			response.RenderErr(ctx, response.ErrNotFound("ticket", "ID", ticketID))
		case errors.Is(err, service.ErrTicketCheckedIn):
			response.RenderErr(ctx, response.ErrConflict(service.ErrTicketCheckedIn))
		default:
			err = fmt.Errorf("v1.HandleCheckInTicket -> h.svc.CheckIn -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.CheckInResponse{
		Message: "Check-in successful",
		Ticket:  ticket,
	})
}
