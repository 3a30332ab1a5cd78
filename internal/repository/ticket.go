package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/eventhive/eventhive-api/internal/domain"
	"github.com/eventhive/eventhive-api/internal/repository/dao"
)

var (
	ErrTicketNotFound  = dao.ErrTicketNotFound
	ErrTicketNotOwned  = dao.ErrTicketNotOwned
	ErrTicketCheckedIn = dao.ErrTicketCheckedIn
)

type TicketDAO interface {
	Insert(ctx context.Context, ticket dao.Ticket) (dao.Ticket, error)
	FindByID(ctx context.Context, id uint) (dao.Ticket, error)
	FindByIDWithEvent(ctx context.Context, id uint) (dao.Ticket, error)
	FindByUserID(ctx context.Context, userID uint) ([]dao.Ticket, error)
	FindByEventID(ctx context.Context, eventID uint) ([]dao.Ticket, error)
	CountOpenByEventID(ctx context.Context, eventID uint) (int64, error)
	AttachQRCode(ctx context.Context, id uint, qrCode string) (dao.Ticket, error)
	CheckIn(ctx context.Context, id uint, at time.Time) (dao.Ticket, error)
	DeleteOwned(ctx context.Context, id, ownerID uint) error
}

type TicketRepository struct {
	dao TicketDAO
}

func NewTicketRepository(dao TicketDAO) *TicketRepository {
	return &TicketRepository{
		dao: dao,
	}
}

func (r *TicketRepository) Create(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	created, err := r.dao.Insert(ctx, dao.Ticket{
		EventID:    ticket.EventID,
		UserID:     ticket.UserID,
		TicketType: ticket.TicketType,
		Price:      ticket.Price,
	})
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return ticketDaoToDomain(created), nil
}

func (r *TicketRepository) FindByID(ctx context.Context, id uint) (domain.Ticket, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return ticketDaoToDomain(found), nil
}

func (r *TicketRepository) FindByIDWithEvent(ctx context.Context, id uint) (domain.TicketWithEvent, error) {
	found, err := r.dao.FindByIDWithEvent(ctx, id)
	if err != nil {
		return domain.TicketWithEvent{}, fmt.Errorf("r.dao.FindByIDWithEvent -> %w", err)
	}

	return ticketWithEventDaoToDomain(found), nil
}

func (r *TicketRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.TicketWithEvent, error) {
	found, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	tickets := make([]domain.TicketWithEvent, 0, len(found))
	for _, t := range found {
		tickets = append(tickets, ticketWithEventDaoToDomain(t))
	}

	return tickets, nil
}

func (r *TicketRepository) FindByEventID(ctx context.Context, eventID uint) ([]domain.BookingWithUser, error) {
	found, err := r.dao.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventID -> %w", err)
	}

	bookings := make([]domain.BookingWithUser, 0, len(found))
	for _, t := range found {
		bookings = append(bookings, domain.BookingWithUser{
			Ticket: ticketDaoToDomain(t),
			User: domain.UserSummary{
				Name:  t.User.Name,
				Email: t.User.Email,
			},
		})
	}

	return bookings, nil
}

func (r *TicketRepository) CountOpenByEventID(ctx context.Context, eventID uint) (int64, error) {
	count, err := r.dao.CountOpenByEventID(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountOpenByEventID -> %w", err)
	}

	return count, nil
}

func (r *TicketRepository) AttachQRCode(ctx context.Context, id uint, qrCode string) (domain.Ticket, error) {
	updated, err := r.dao.AttachQRCode(ctx, id, qrCode)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.AttachQRCode -> %w", err)
	}

	return ticketDaoToDomain(updated), nil
}

func (r *TicketRepository) CheckIn(ctx context.Context, id uint, at time.Time) (domain.Ticket, error) {
	updated, err := r.dao.CheckIn(ctx, id, at)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.CheckIn -> %w", err)
	}

	return ticketDaoToDomain(updated), nil
}

func (r *TicketRepository) DeleteOwned(ctx context.Context, id, ownerID uint) error {
	if err := r.dao.DeleteOwned(ctx, id, ownerID); err != nil {
		return fmt.Errorf("r.dao.DeleteOwned -> %w", err)
	}

	return nil
}

func ticketDaoToDomain(t dao.Ticket) domain.Ticket {
	return domain.Ticket{
		ID:          t.ID,
		EventID:     t.EventID,
		UserID:      t.UserID,
		TicketType:  t.TicketType,
		Price:       t.Price,
		IsCheckedIn: t.IsCheckedIn,
		CheckInTime: t.CheckInTime,
		QRCode:      t.QRCode,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func ticketWithEventDaoToDomain(t dao.Ticket) domain.TicketWithEvent {
	return domain.TicketWithEvent{
		Ticket: ticketDaoToDomain(t),
		Event: domain.EventSummary{
			Title: t.Event.Title,
			Date:  t.Event.Date,
			Venue: t.Event.Venue,
		},
	}
}
