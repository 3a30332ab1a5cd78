package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/eventhive/eventhive-api/internal/domain"
	"github.com/eventhive/eventhive-api/internal/repository/dao"
)

var ErrEventNotFound = dao.ErrEventNotFound

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindAll(ctx context.Context) ([]dao.Event, error)
	FindByCreator(ctx context.Context, creatorID uint) ([]dao.Event, error)
	FindFiltered(ctx context.Context, category string, dateFrom *time.Time) ([]dao.Event, error)
	UpdateColumns(ctx context.Context, id uint, columns map[string]interface{}) (dao.Event, error)
	Deactivate(ctx context.Context, id uint) error
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, dao.Event{
		Title:       event.Title,
		Description: event.Description,
		Date:        event.Date,
		Time:        event.Time,
		Venue:       event.Venue,
		Category:    event.Category,
		EventType:   string(event.EventType),
		TicketPrice: event.TicketPrice,
		IsActive:    true,
		CreatedBy:   event.CreatedBy,
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return eventDaoToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return eventDaoToDomain(found), nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]domain.Event, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return eventsDaoToDomain(found), nil
}

func (r *EventRepository) FindByCreator(ctx context.Context, creatorID uint) ([]domain.Event, error) {
	found, err := r.dao.FindByCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByCreator -> %w", err)
	}

	return eventsDaoToDomain(found), nil
}

func (r *EventRepository) FindFiltered(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	found, err := r.dao.FindFiltered(ctx, filter.Category, filter.DateFrom)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindFiltered -> %w", err)
	}

	return eventsDaoToDomain(found), nil
}

func (r *EventRepository) Update(ctx context.Context, id uint, update domain.EventUpdate) (domain.Event, error) {
	columns := map[string]interface{}{}
	if update.Title != nil {
		columns["title"] = *update.Title
	}
	if update.Description != nil {
		columns["description"] = *update.Description
	}
	if update.Date != nil {
		columns["date"] = *update.Date
	}
	if update.Time != nil {
		columns["time"] = *update.Time
	}
	if update.Venue != nil {
		columns["venue"] = *update.Venue
	}
	if update.Category != nil {
		columns["category"] = *update.Category
	}
	if update.EventType != nil {
		columns["event_type"] = string(*update.EventType)
	}
	if update.TicketPrice != nil {
		columns["ticket_price"] = *update.TicketPrice
	}
	if update.IsActive != nil {
		columns["is_active"] = *update.IsActive
	}

	if len(columns) == 0 {
		return r.FindByID(ctx, id)
	}

	updated, err := r.dao.UpdateColumns(ctx, id, columns)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.UpdateColumns -> %w", err)
	}

	return eventDaoToDomain(updated), nil
}

func (r *EventRepository) Deactivate(ctx context.Context, id uint) error {
	if err := r.dao.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Deactivate -> %w", err)
	}

	return nil
}

func eventDaoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Time:        e.Time,
		Venue:       e.Venue,
		Category:    e.Category,
		EventType:   domain.EventType(e.EventType),
		TicketPrice: e.TicketPrice,
		IsActive:    e.IsActive,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func eventsDaoToDomain(found []dao.Event) []domain.Event {
	events := make([]domain.Event, 0, len(found))
	for _, e := range found {
		events = append(events, eventDaoToDomain(e))
	}

	return events
}
