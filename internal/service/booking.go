package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventhive/eventhive-api/internal/domain"
	"github.com/eventhive/eventhive-api/internal/pkg/qr"
	"github.com/eventhive/eventhive-api/internal/repository"
)

var (
	ErrTicketNotFound    = repository.ErrTicketNotFound
	ErrTicketNotOwned    = repository.ErrTicketNotOwned
	ErrTicketCheckedIn   = repository.ErrTicketCheckedIn
	ErrEventInactive     = errors.New("event is not active")
	ErrCheckInNotAllowed = errors.New("check-in requires a staff or admin role")
)

type BookingTicketRepository interface {
	Create(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error)
	FindByIDWithEvent(ctx context.Context, id uint) (domain.TicketWithEvent, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.TicketWithEvent, error)
	FindByEventID(ctx context.Context, eventID uint) ([]domain.BookingWithUser, error)
	AttachQRCode(ctx context.Context, id uint, qrCode string) (domain.Ticket, error)
	CheckIn(ctx context.Context, id uint, at time.Time) (domain.Ticket, error)
	DeleteOwned(ctx context.Context, id, ownerID uint) error
}

type BookingEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
}

type QREncoder interface {
	EncodeTicket(payload qr.TicketPayload) (string, error)
}

// BookingService drives the ticket lifecycle: booked, QR issued,
// checked in, with cancellation possible until check-in.
type BookingService struct {
	tickets BookingTicketRepository
	events  BookingEventRepository
	encoder QREncoder
	now     func() time.Time
}

func NewBookingService(tickets BookingTicketRepository, events BookingEventRepository, encoder QREncoder) *BookingService {
	return &BookingService{
		tickets: tickets,
		events:  events,
		encoder: encoder,
		now:     time.Now,
	}
}

// BookTicket creates a ticket for userID on an existing, active event.
// The price is caller-supplied and not validated against the event's
// ticket price; there is no payment step.
func (s *BookingService) BookTicket(ctx context.Context, eventID, userID uint, ticketType string, price float64) (domain.Ticket, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Ticket{}, ErrEventNotFound
		}

		return domain.Ticket{}, fmt.Errorf("s.events.FindByID -> %w", err)
	}
	if !event.IsActive {
		return domain.Ticket{}, ErrEventInactive
	}

	ticket, err := s.tickets.Create(ctx, domain.Ticket{
		EventID:    event.ID,
		UserID:     userID,
		TicketType: ticketType,
		Price:      price,
	})
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.tickets.Create -> %w", err)
	}

	return ticket, nil
}

// CancelTicket deletes the caller's own ticket. Once a ticket has been
// checked in it can no longer be cancelled.
func (s *BookingService) CancelTicket(ctx context.Context, ticketID, callerID uint) error {
	err := s.tickets.DeleteOwned(ctx, ticketID, callerID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTicketNotFound):
			return ErrTicketNotFound
		case errors.Is(err, repository.ErrTicketNotOwned):
			return ErrTicketNotOwned
		case errors.Is(err, repository.ErrTicketCheckedIn):
			return ErrTicketCheckedIn
		}

		return fmt.Errorf("s.tickets.DeleteOwned -> %w", err)
	}

	return nil
}

// IssueQR encodes the ticket's identifying payload and stores it on the
// ticket. Re-issuing overwrites the previous code.
func (s *BookingService) IssueQR(ctx context.Context, ticketID uint) (domain.Ticket, error) {
	ticket, err := s.tickets.FindByIDWithEvent(ctx, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return domain.Ticket{}, ErrTicketNotFound
		}

		return domain.Ticket{}, fmt.Errorf("s.tickets.FindByIDWithEvent -> %w", err)
	}

	qrCode, err := s.encoder.EncodeTicket(qr.TicketPayload{
		TicketID: ticket.ID,
		Event:    ticket.Event.Title,
	})
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.encoder.EncodeTicket -> %w", err)
	}

	updated, err := s.tickets.AttachQRCode(ctx, ticket.ID, qrCode)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.tickets.AttachQRCode -> %w", err)
	}

	return updated, nil
}

// CheckIn marks the ticket as redeemed. The store performs the
// transition conditionally, so concurrent calls cannot both succeed; a
// repeat check-in reports a conflict and leaves the original check-in
// time untouched.
func (s *BookingService) CheckIn(ctx context.Context, ticketID uint, callerRole domain.Role) (domain.Ticket, error) {
	if !callerRole.CanCheckIn() {
		return domain.Ticket{}, ErrCheckInNotAllowed
	}

	ticket, err := s.tickets.CheckIn(ctx, ticketID, s.now())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTicketNotFound):
			return domain.Ticket{}, ErrTicketNotFound
		case errors.Is(err, repository.ErrTicketCheckedIn):
			return domain.Ticket{}, ErrTicketCheckedIn
		}

		return domain.Ticket{}, fmt.Errorf("s.tickets.CheckIn -> %w", err)
	}

	return ticket, nil
}

func (s *BookingService) ListUserTickets(ctx context.Context, userID uint) ([]domain.TicketWithEvent, error) {
	tickets, err := s.tickets.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.tickets.FindByUserID -> %w", err)
	}

	return tickets, nil
}

func (s *BookingService) ListEventBookings(ctx context.Context, eventID uint) ([]domain.BookingWithUser, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}

		return nil, fmt.Errorf("s.events.FindByID -> %w", err)
	}

	bookings, err := s.tickets.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.tickets.FindByEventID -> %w", err)
	}

	return bookings, nil
}
