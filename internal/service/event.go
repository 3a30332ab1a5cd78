package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventhive/eventhive-api/internal/domain"
	"github.com/eventhive/eventhive-api/internal/repository"
)

var (
	ErrEventNotFound       = repository.ErrEventNotFound
	ErrInvalidEvent        = errors.New("missing or invalid event fields")
	ErrTicketPriceRequired = errors.New("ticket price is required for paid events and must not be negative")
	ErrEventHasOpenTickets = errors.New("event still has tickets that are not checked in")
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindAll(ctx context.Context) ([]domain.Event, error)
	FindByCreator(ctx context.Context, creatorID uint) ([]domain.Event, error)
	FindFiltered(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error)
	Update(ctx context.Context, id uint, update domain.EventUpdate) (domain.Event, error)
	Deactivate(ctx context.Context, id uint) error
}

type EventTicketCounter interface {
	CountOpenByEventID(ctx context.Context, eventID uint) (int64, error)
}

type EventService struct {
	repo    EventRepository
	tickets EventTicketCounter
}

func NewEventService(repo EventRepository, tickets EventTicketCounter) *EventService {
	return &EventService{
		repo:    repo,
		tickets: tickets,
	}
}

// CreateEvent validates the required fields and the paid-price rule:
// ticketed and premium events must carry a non-negative price, free
// events always get price 0.
func (s *EventService) CreateEvent(ctx context.Context, event domain.Event, priceProvided bool) (domain.Event, error) {
	if event.Title == "" || event.Description == "" || event.Date.IsZero() || event.Time == "" || event.Venue == "" {
		return domain.Event{}, ErrInvalidEvent
	}
	if !event.EventType.IsValid() {
		return domain.Event{}, ErrInvalidEvent
	}

	if event.EventType.IsPaid() {
		if !priceProvided || event.TicketPrice < 0 {
			return domain.Event{}, ErrTicketPriceRequired
		}
	} else {
		event.TicketPrice = 0
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return events, nil
}

func (s *EventService) ListEventsByCreator(ctx context.Context, creatorID uint) ([]domain.Event, error) {
	events, err := s.repo.FindByCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByCreator -> %w", err)
	}

	return events, nil
}

func (s *EventService) FilterEvents(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	events, err := s.repo.FindFiltered(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindFiltered -> %w", err)
	}

	return events, nil
}

// UpdateEvent merges only the provided fields onto the stored event and
// re-checks the paid-price invariant against the merged result.
func (s *EventService) UpdateEvent(ctx context.Context, id uint, update domain.EventUpdate) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	mergedType := event.EventType
	if update.EventType != nil {
		mergedType = *update.EventType
		if !mergedType.IsValid() {
			return domain.Event{}, ErrInvalidEvent
		}
	}

	mergedPrice := event.TicketPrice
	if update.TicketPrice != nil {
		mergedPrice = *update.TicketPrice
	}

	if mergedPrice < 0 {
		return domain.Event{}, ErrTicketPriceRequired
	}
	if !mergedType.IsPaid() {
		zero := 0.0
		update.TicketPrice = &zero
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// DeactivateEvent soft-deletes an event. Deactivation is refused while
// the event still has open (not checked-in) tickets, so bookings are
// never silently orphaned.
func (s *EventService) DeactivateEvent(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return ErrEventNotFound
		}

		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	open, err := s.tickets.CountOpenByEventID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.tickets.CountOpenByEventID -> %w", err)
	}
	if open > 0 {
		return ErrEventHasOpenTickets
	}

	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return ErrEventNotFound
		}

		return fmt.Errorf("s.repo.Deactivate -> %w", err)
	}

	return nil
}
