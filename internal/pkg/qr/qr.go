package qr

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const pngSize = 256

// TicketPayload is the content encoded into a ticket's QR code. Scanners
// need the ticket ID to look the booking up and the event title to show
// at the door.
type TicketPayload struct {
	TicketID uint   `json:"ticket_id"`
	Event    string `json:"event"`
}

type Encoder struct{}

func NewEncoder() *Encoder {
	return &Encoder{}
}

// EncodeTicket renders the payload as a PNG QR code and returns it as a
// data URL, ready to be stored on the ticket and embedded by clients.
func (e *Encoder) EncodeTicket(payload TicketPayload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("json.Marshal -> %w", err)
	}

	png, err := qrcode.Encode(string(data), qrcode.Medium, pngSize)
	if err != nil {
		return "", fmt.Errorf("qrcode.Encode -> %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
