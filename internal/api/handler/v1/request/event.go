package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
)

const dateLayout = "2006-01-02"

var errNegativeTicketPrice = errors.New("ticket price must not be negative")

type CreateEventRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date" format:"YYYY-MM-DD"`
	Time        string   `json:"time"`
	Venue       string   `json:"venue"`
	Category    string   `json:"category,omitempty"`
	EventType   string   `json:"event_type"`
	TicketPrice *float64 `json:"ticket_price,omitempty"`
}

func (req *CreateEventRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Required, validation.Length(1, 2000)),
		validation.Field(&req.Date, validation.Required, validation.Date(dateLayout)),
		validation.Field(&req.Time, validation.Required),
		validation.Field(&req.Venue, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.EventType, validation.Required, validation.In("free", "ticketed", "premium")),
	)
	if err != nil {
		return err
	}

	if req.TicketPrice != nil && *req.TicketPrice < 0 {
		return errNegativeTicketPrice
	}

	return nil
}

// UpdateEventRequest is a partial update: nil fields are left alone.
type UpdateEventRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Date        *string  `json:"date,omitempty" format:"YYYY-MM-DD"`
	Time        *string  `json:"time,omitempty"`
	Venue       *string  `json:"venue,omitempty"`
	Category    *string  `json:"category,omitempty"`
	EventType   *string  `json:"event_type,omitempty"`
	TicketPrice *float64 `json:"ticket_price,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

func (req *UpdateEventRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.NilOrNotEmpty, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.NilOrNotEmpty, validation.Length(1, 2000)),
		validation.Field(&req.Date, validation.NilOrNotEmpty, validation.Date(dateLayout)),
		validation.Field(&req.Venue, validation.NilOrNotEmpty, validation.Length(2, 100)),
		validation.Field(&req.EventType, validation.NilOrNotEmpty, validation.In("free", "ticketed", "premium")),
	)
	if err != nil {
		return err
	}

	if req.TicketPrice != nil && *req.TicketPrice < 0 {
		return errNegativeTicketPrice
	}

	return nil
}

type FilterEventsRequest struct {
	Category string `form:"category"`
	Date     string `form:"date" format:"YYYY-MM-DD"`
}

func (req *FilterEventsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Date, validation.Date(dateLayout)),
	)
}
