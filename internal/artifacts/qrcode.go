package artifacts

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

func qrPNG(payload string) ([]byte, error) {
	png, err := qrcode.Encode(payload, qrcode.Low, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}

// EncodeQRBase64 renders the payload as a PNG QR code and returns it
// base64-encoded for embedding in generated documents.
func EncodeQRBase64(payload string) (string, error) {
	png, err := qrPNG(payload)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}

// EventTicketPayload is the QR content printed on an event certificate.
func EventTicketPayload(eventName, attendee, ticketID string) string {
	return fmt.Sprintf("Event: %s\nAttendee: %s\nTicket ID: %s", eventName, attendee, ticketID)
}

// BusTicketPayload is the QR content printed on a bus ticket.
func BusTicketPayload(bookingID uint, passenger, busIdentifier, date string) string {
	return fmt.Sprintf("Bus Booking ID: %d\nPassenger: %s\nBus: %s\nDate: %s",
		bookingID, passenger, busIdentifier, date)
}
