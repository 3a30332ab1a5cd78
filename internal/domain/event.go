package domain

import "time"

type EventType string

const (
	EventTypeFree     EventType = "free"
	EventTypeTicketed EventType = "ticketed"
	EventTypePremium  EventType = "premium"
)

func (t EventType) IsValid() bool {
	switch t {
	case EventTypeFree, EventTypeTicketed, EventTypePremium:
		return true
	}
	return false
}

// IsPaid reports whether the event type requires a ticket price.
func (t EventType) IsPaid() bool {
	return t == EventTypeTicketed || t == EventTypePremium
}

type Event struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Venue       string    `json:"venue"`
	Category    string    `json:"category"`
	EventType   EventType `json:"event_type"`
	TicketPrice float64   `json:"ticket_price"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   uint      `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventUpdate lists the fields an admin may change on an existing
// event. Nil fields are left untouched during the merge.
type EventUpdate struct {
	Title       *string
	Description *string
	Date        *time.Time
	Time        *string
	Venue       *string
	Category    *string
	EventType   *EventType
	TicketPrice *float64
	IsActive    *bool
}

// EventFilter narrows an event listing. Zero values mean "no filter".
type EventFilter struct {
	Category string
	DateFrom *time.Time
}
