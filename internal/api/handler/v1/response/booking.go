package response

import "github.com/eventhive/eventhive-api/internal/domain"

type BookTicketResponse struct {
	Message string        `json:"message"`
	Ticket  domain.Ticket `json:"ticket"`
}

type TicketQRResponse struct {
	QRCode string        `json:"qr_code"`
	Ticket domain.Ticket `json:"ticket"`
}

type CheckInResponse struct {
	Message string        `json:"message"`
	Ticket  domain.Ticket `json:"ticket"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
