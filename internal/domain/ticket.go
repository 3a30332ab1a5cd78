package domain

import "time"

// TicketStatus is derived from the ticket record, not stored: a ticket
// starts Booked, becomes QRIssued once a code is attached, and ends
// CheckedIn after redemption.
type TicketStatus string

const (
	TicketStatusBooked    TicketStatus = "booked"
	TicketStatusQRIssued  TicketStatus = "qr_issued"
	TicketStatusCheckedIn TicketStatus = "checked_in"
)

type Ticket struct {
	ID          uint       `json:"id"`
	EventID     uint       `json:"event_id"`
	UserID      uint       `json:"user_id"`
	TicketType  string     `json:"ticket_type"`
	Price       float64    `json:"price"`
	IsCheckedIn bool       `json:"is_checked_in"`
	CheckInTime *time.Time `json:"check_in_time,omitempty"`
	QRCode      string     `json:"qr_code,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (t Ticket) Status() TicketStatus {
	switch {
	case t.IsCheckedIn:
		return TicketStatusCheckedIn
	case t.QRCode != "":
		return TicketStatusQRIssued
	default:
		return TicketStatusBooked
	}
}

// EventSummary is the denormalized slice of an event attached to a
// ticket listing. It is produced by a read-time join, never stored.
type EventSummary struct {
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
	Venue string    `json:"venue"`
}

// UserSummary is the denormalized slice of a booking's owner attached
// to an event's booking listing.
type UserSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type TicketWithEvent struct {
	Ticket
	Event EventSummary `json:"event"`
}

type BookingWithUser struct {
	Ticket
	User UserSummary `json:"user"`
}
