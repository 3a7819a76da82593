package artifacts

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"testing"
)

func TestEventTicketPayload(t *testing.T) {
	payload := EventTicketPayload("Open Day", "Lena Ortiz", "t-42")
	want := "Event: Open Day\nAttendee: Lena Ortiz\nTicket ID: t-42"
	if payload != want {
		t.Errorf("payload = %q, want %q", payload, want)
	}
}

func TestBusTicketPayload(t *testing.T) {
	payload := BusTicketPayload(5, "Lena Ortiz", "BUS-9", "2026-06-12")
	want := "Bus Booking ID: 5\nPassenger: Lena Ortiz\nBus: BUS-9\nDate: 2026-06-12"
	if payload != want {
		t.Errorf("payload = %q, want %q", payload, want)
	}
}

func TestEncodeQRBase64(t *testing.T) {
	encoded, err := EncodeQRBase64("Event: Open Day\nAttendee: Lena Ortiz\nTicket ID: t-42")
	if err != nil {
		t.Fatalf("EncodeQRBase64: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("output is not valid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decoded bytes are not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 256 {
		t.Errorf("expected a 256px image, got %d", img.Bounds().Dx())
	}
}
