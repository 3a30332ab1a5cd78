package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
)

var errNegativePrice = errors.New("price must not be negative")

type BookTicketRequest struct {
	TicketType string  `json:"ticket_type"`
	Price      float64 `json:"price"`
}

func (req *BookTicketRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.TicketType, validation.Required, validation.Length(1, 50)),
	)
	if err != nil {
		return err
	}

	if req.Price < 0 {
		return errNegativePrice
	}

	return nil
}
