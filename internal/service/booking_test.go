package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhive/eventhive-api/internal/domain"
	"github.com/eventhive/eventhive-api/internal/pkg/qr"
	"github.com/eventhive/eventhive-api/internal/repository"
)

type fakeTicketRepo struct {
	tickets map[uint]*domain.Ticket
	events  map[uint]domain.Event
	users   map[uint]domain.User
	nextID  uint
}

func newFakeTicketRepo(events map[uint]domain.Event) *fakeTicketRepo {
	return &fakeTicketRepo{
		tickets: make(map[uint]*domain.Ticket),
		events:  events,
		users:   make(map[uint]domain.User),
		nextID:  1,
	}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	ticket.ID = r.nextID
	r.nextID++
	r.tickets[ticket.ID] = &ticket

	return ticket, nil
}

func (r *fakeTicketRepo) FindByIDWithEvent(_ context.Context, id uint) (domain.TicketWithEvent, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return domain.TicketWithEvent{}, repository.ErrTicketNotFound
	}

	event := r.events[ticket.EventID]

	return domain.TicketWithEvent{
		Ticket: *ticket,
		Event: domain.EventSummary{
			Title: event.Title,
			Date:  event.Date,
			Venue: event.Venue,
		},
	}, nil
}

func (r *fakeTicketRepo) FindByUserID(_ context.Context, userID uint) ([]domain.TicketWithEvent, error) {
	var result []domain.TicketWithEvent
	for _, ticket := range r.tickets {
		if ticket.UserID != userID {
			continue
		}

		event := r.events[ticket.EventID]
		result = append(result, domain.TicketWithEvent{
			Ticket: *ticket,
			Event:  domain.EventSummary{Title: event.Title, Date: event.Date, Venue: event.Venue},
		})
	}

	return result, nil
}

func (r *fakeTicketRepo) FindByEventID(_ context.Context, eventID uint) ([]domain.BookingWithUser, error) {
	var result []domain.BookingWithUser
	for _, ticket := range r.tickets {
		if ticket.EventID != eventID {
			continue
		}

		user := r.users[ticket.UserID]
		result = append(result, domain.BookingWithUser{
			Ticket: *ticket,
			User:   domain.UserSummary{Name: user.Name, Email: user.Email},
		})
	}

	return result, nil
}

func (r *fakeTicketRepo) AttachQRCode(_ context.Context, id uint, qrCode string) (domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return domain.Ticket{}, repository.ErrTicketNotFound
	}
	ticket.QRCode = qrCode

	return *ticket, nil
}

func (r *fakeTicketRepo) CheckIn(_ context.Context, id uint, at time.Time) (domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return domain.Ticket{}, repository.ErrTicketNotFound
	}
	if ticket.IsCheckedIn {
		return domain.Ticket{}, repository.ErrTicketCheckedIn
	}

	ticket.IsCheckedIn = true
	ticket.CheckInTime = &at

	return *ticket, nil
}

func (r *fakeTicketRepo) DeleteOwned(_ context.Context, id, ownerID uint) error {
	ticket, ok := r.tickets[id]
	if !ok {
		return repository.ErrTicketNotFound
	}
	if ticket.UserID != ownerID {
		return repository.ErrTicketNotOwned
	}
	if ticket.IsCheckedIn {
		return repository.ErrTicketCheckedIn
	}

	delete(r.tickets, id)

	return nil
}

type fakeEventFinder struct {
	events map[uint]domain.Event
}

func (r *fakeEventFinder) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return event, nil
}

type fakeQREncoder struct {
	calls int
}

func (e *fakeQREncoder) EncodeTicket(payload qr.TicketPayload) (string, error) {
	e.calls++

	return fmt.Sprintf("data:image/png;base64,ticket-%v-%v-%v", payload.TicketID, payload.Event, e.calls), nil
}

func newBookingFixture(events ...domain.Event) (*BookingService, *fakeTicketRepo) {
	byID := make(map[uint]domain.Event, len(events))
	for _, event := range events {
		byID[event.ID] = event
	}

	tickets := newFakeTicketRepo(byID)
	svc := NewBookingService(tickets, &fakeEventFinder{events: byID}, &fakeQREncoder{})

	return svc, tickets
}

func TestBookingService_BookTicket(t *testing.T) {
	activeEvent := domain.Event{ID: 1, Title: "Gopher Meetup", IsActive: true}
	inactiveEvent := domain.Event{ID: 2, Title: "Cancelled Conf", IsActive: false}

	t.Run("books a ticket on an active event", func(t *testing.T) {
		svc, _ := newBookingFixture(activeEvent)

		ticket, err := svc.BookTicket(context.Background(), 1, 42, "general", 25)

		require.NoError(t, err)
		assert.Equal(t, uint(1), ticket.EventID)
		assert.Equal(t, uint(42), ticket.UserID)
		assert.Equal(t, domain.TicketStatusBooked, ticket.Status())
		assert.False(t, ticket.IsCheckedIn)
	})

	t.Run("rejects booking on a missing event", func(t *testing.T) {
		svc, _ := newBookingFixture(activeEvent)

		_, err := svc.BookTicket(context.Background(), 999, 42, "general", 25)

		assert.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("rejects booking on a deactivated event", func(t *testing.T) {
		svc, _ := newBookingFixture(activeEvent, inactiveEvent)

		_, err := svc.BookTicket(context.Background(), 2, 42, "general", 25)

		assert.ErrorIs(t, err, ErrEventInactive)
	})
}

func TestBookingService_IssueQR(t *testing.T) {
	event := domain.Event{ID: 1, Title: "Gopher Meetup", IsActive: true}

	t.Run("attaches a QR code to a booked ticket", func(t *testing.T) {
		svc, _ := newBookingFixture(event)
		ticket, err := svc.BookTicket(context.Background(), 1, 42, "general", 25)
		require.NoError(t, err)

		withQR, err := svc.IssueQR(context.Background(), ticket.ID)

		require.NoError(t, err)
		assert.NotEmpty(t, withQR.QRCode)
		assert.Equal(t, domain.TicketStatusQRIssued, withQR.Status())
	})

	t.Run("re-issuing replaces the stored code", func(t *testing.T) {
		svc, _ := newBookingFixture(event)
		ticket, err := svc.BookTicket(context.Background(), 1, 42, "general", 25)
		require.NoError(t, err)

		first, err := svc.IssueQR(context.Background(), ticket.ID)
		require.NoError(t, err)
		second, err := svc.IssueQR(context.Background(), ticket.ID)
		require.NoError(t, err)

		assert.NotEqual(t, first.QRCode, second.QRCode)
		assert.Equal(t, domain.TicketStatusQRIssued, second.Status())
	})

	t.Run("unknown ticket", func(t *testing.T) {
		svc, _ := newBookingFixture(event)

		_, err := svc.IssueQR(context.Background(), 999)

		assert.ErrorIs(t, err, ErrTicketNotFound)
	})
}

func TestBookingService_CheckIn(t *testing.T) {
	event := domain.Event{ID: 1, Title: "Gopher Meetup", IsActive: true}

	t.Run("staff checks in a booked ticket", func(t *testing.T) {
		svc, _ := newBookingFixture(event)
		ticket, err := svc.BookTicket(context.Background(), 1, 42, "general", 25)
		require.NoError(t, err)

		checkedIn, err := svc.CheckIn(context.Background(), ticket.ID, domain.RoleStaff)

		require.NoError(t, err)
		assert.True(t, checkedIn.IsCheckedIn)
		require.NotNil(t, checkedIn.CheckInTime)
		assert.Equal(t, domain.TicketStatusCheckedIn, checkedIn.Status())
	})

	t.Run("repeat check-in conflicts and keeps the original time", func(t *testing.T) {
		svc, repo := newBookingFixture(event)
		ticket, err := svc.BookTicket(context.Background(), 1, 42, "general", 25)
		require.NoError(t, err)

		first, err := svc.CheckIn(context.Background(), ticket.ID, domain.RoleAdmin)
		require.NoError(t, err)

		_, err = svc.CheckIn(context.Background(), ticket.ID, domain.RoleAdmin)
		assert.ErrorIs(t, err, ErrTicketCheckedIn)

		stored := repo.tickets[ticket.ID]
		require.NotNil(t, stored.CheckInTime)
		assert.Equal(t, *first.CheckInTime, *stored.CheckInTime)
	})

	t.Run("regular users cannot check in tickets", func(t *testing.T) {
		svc, _ := newBookingFixture(event)
		ticket, err := svc.BookTicket(context.Background(), 1, 42, "general", 25)
		require.NoError(t, err)

		_, err = svc.CheckIn(context.Background(), ticket.ID, domain.RoleUser)

		assert.ErrorIs(t, err, ErrCheckInNotAllowed)
	})

	t.Run("unknown ticket", func(t *testing.T) {
		svc, _ := newBookingFixture(event)

		_, err := svc.CheckIn(context.Background(), 999, domain.RoleStaff)

		assert.ErrorIs(t, err, ErrTicketNotFound)
	})
}

func TestBookingService_CancelTicket(t *testing.T) {
	event := domain.Event{ID: 1, Title: "Gopher Meetup", IsActive: true}

	t.Run("owner cancels a booked ticket", func(t *testing.T) {
		svc, _ := newBookingFixture(event)
		ticket, err := svc.BookTicket(context.Background(), 1, 42, "general", 25)
		require.NoError(t, err)

		err = svc.CancelTicket(context.Background(), ticket.ID, 42)

		require.NoError(t, err)

		tickets, err := svc.ListUserTickets(context.Background(), 42)
		require.NoError(t, err)
		assert.Empty(t, tickets)
	})

	t.Run("repeat cancel reports not found", func(t *testing.T) {
		svc, _ := newBookingFixture(event)
		ticket, err := svc.BookTicket(context.Background(), 1, 42, "general", 25)
		require.NoError(t, err)

		require.NoError(t, svc.CancelTicket(context.Background(), ticket.ID, 42))
		err = svc.CancelTicket(context.Background(), ticket.ID, 42)

		assert.ErrorIs(t, err, ErrTicketNotFound)
	})

	t.Run("only the owner can cancel", func(t *testing.T) {
		svc, _ := newBookingFixture(event)
		ticket, err := svc.BookTicket(context.Background(), 1, 42, "general", 25)
		require.NoError(t, err)

		err = svc.CancelTicket(context.Background(), ticket.ID, 7)

		assert.ErrorIs(t, err, ErrTicketNotOwned)
	})

	t.Run("a checked-in ticket cannot be cancelled", func(t *testing.T) {
		svc, _ := newBookingFixture(event)
		ticket, err := svc.BookTicket(context.Background(), 1, 42, "general", 25)
		require.NoError(t, err)
		_, err = svc.CheckIn(context.Background(), ticket.ID, domain.RoleStaff)
		require.NoError(t, err)

		err = svc.CancelTicket(context.Background(), ticket.ID, 42)

		assert.ErrorIs(t, err, ErrTicketCheckedIn)
	})
}

func TestBookingService_ListEventBookings(t *testing.T) {
	event := domain.Event{ID: 1, Title: "Gopher Meetup", IsActive: true}

	t.Run("unknown event", func(t *testing.T) {
		svc, _ := newBookingFixture(event)

		_, err := svc.ListEventBookings(context.Background(), 999)

		assert.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("lists bookings with their owners", func(t *testing.T) {
		svc, repo := newBookingFixture(event)
		repo.users[42] = domain.User{ID: 42, Name: "Alice", Email: "alice@example.com"}

		ticket, err := svc.BookTicket(context.Background(), 1, 42, "general", 25)
		require.NoError(t, err)
		_, err = svc.CheckIn(context.Background(), ticket.ID, domain.RoleAdmin)
		require.NoError(t, err)

		bookings, err := svc.ListEventBookings(context.Background(), 1)

		require.NoError(t, err)
		require.Len(t, bookings, 1)
		assert.Equal(t, "Alice", bookings[0].User.Name)
		assert.True(t, bookings[0].IsCheckedIn)
	})
}

// The happy path through the whole lifecycle: booked, QR issued,
// checked in, and no longer cancellable.
func TestBookingService_TicketLifecycle(t *testing.T) {
	event := domain.Event{ID: 1, Title: "GopherCon", Venue: "Main Hall", IsActive: true}
	svc, _ := newBookingFixture(event)

	ticket, err := svc.BookTicket(context.Background(), 1, 42, "vip", 120)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusBooked, ticket.Status())

	withQR, err := svc.IssueQR(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusQRIssued, withQR.Status())

	checkedIn, err := svc.CheckIn(context.Background(), ticket.ID, domain.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusCheckedIn, checkedIn.Status())

	err = svc.CancelTicket(context.Background(), ticket.ID, 42)
	assert.ErrorIs(t, err, ErrTicketCheckedIn)

	tickets, err := svc.ListUserTickets(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "GopherCon", tickets[0].Event.Title)
}
