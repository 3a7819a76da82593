package artifacts

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// CertificateGenerator renders event certificates and bus tickets as PDF
// files under a configured directory. Generation failures are side-effect
// failures: callers log them and carry on.
type CertificateGenerator struct {
	dir    string
	logger *slog.Logger
}

func NewCertificateGenerator(dir string, logger *slog.Logger) (*CertificateGenerator, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create certificates directory: %w", err)
	}
	return &CertificateGenerator{dir: dir, logger: logger}, nil
}

// EventCertificateData carries everything printed on an event certificate.
type EventCertificateData struct {
	RegistrationID uint
	TicketID       string
	EventName      string
	EventDate      time.Time
	EventLocation  string
	AttendeeName   string
}

// GenerateEventCertificate writes the certificate PDF and returns its
// path relative to the certificates directory.
func (g *CertificateGenerator) GenerateEventCertificate(data EventCertificateData) (string, error) {
	filename := fmt.Sprintf("event_certificate_%d_%s.pdf", data.RegistrationID, data.TicketID)

	qrPayload := EventTicketPayload(data.EventName, data.AttendeeName, data.TicketID)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 20, "Certificate of Registration", "", 1, "C", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 10, "This certifies that", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, data.AttendeeName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 10, "is registered for", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, data.EventName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Date: %s", data.EventDate.Format("January 2, 2006 15:04")), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Location: %s", data.EventLocation), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Ticket ID: %s", data.TicketID), "", 1, "C", false, 0, "")

	if err := g.embedQR(pdf, qrPayload, fmt.Sprintf("qr_%s", data.TicketID)); err != nil {
		return "", err
	}

	pdf.Ln(60)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Issued %s", time.Now().UTC().Format(time.RFC1123)), "", 1, "C", false, 0, "")

	return g.write(pdf, filename)
}

// BusTicketData carries everything printed on a bus ticket.
type BusTicketData struct {
	BookingID      uint
	PassengerName  string
	BusIdentifier  string
	TravelDate     time.Time
	PickupTime     string
	PickupLocation string
	Destination    string
}

// GenerateBusTicket writes the ticket PDF and returns its path relative
// to the certificates directory.
func (g *CertificateGenerator) GenerateBusTicket(data BusTicketData) (string, error) {
	filename := fmt.Sprintf("bus_ticket_%d.pdf", data.BookingID)

	dateStr := data.TravelDate.Format("2006-01-02")
	qrPayload := BusTicketPayload(data.BookingID, data.PassengerName, data.BusIdentifier, dateStr)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 18, "Campus Bus Ticket", "", 1, "C", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 12)
	rows := [][2]string{
		{"Booking ID", fmt.Sprintf("%d", data.BookingID)},
		{"Passenger", data.PassengerName},
		{"Bus", data.BusIdentifier},
		{"Date", dateStr},
		{"Pickup Time", data.PickupTime},
		{"Pickup Location", data.PickupLocation},
		{"Destination", data.Destination},
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(50, 8, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 8, row[1], "", 1, "L", false, 0, "")
	}

	if err := g.embedQR(pdf, qrPayload, fmt.Sprintf("qr_bus_%d", data.BookingID)); err != nil {
		return "", err
	}

	pdf.Ln(60)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, "Present this ticket and your student ID when boarding.", "", 1, "C", false, 0, "")

	return g.write(pdf, filename)
}

// ResolvePath maps a stored relative certificate path back to a file on
// disk, refusing anything that escapes the certificates directory.
func (g *CertificateGenerator) ResolvePath(relative string) (string, error) {
	abs := filepath.Join(g.dir, filepath.Clean("/"+relative))
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("certificate file not found: %w", err)
	}
	return abs, nil
}

func (g *CertificateGenerator) embedQR(pdf *gofpdf.Fpdf, payload, imageName string) error {
	png, err := qrPNG(payload)
	if err != nil {
		return err
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imageName, opts, bytes.NewReader(png))

	pageWidth, _ := pdf.GetPageSize()
	y := pdf.GetY() + 10
	pdf.ImageOptions(imageName, (pageWidth-50)/2, y, 50, 50, false, opts, 0, "")
	return nil
}

func (g *CertificateGenerator) write(pdf *gofpdf.Fpdf, filename string) (string, error) {
	path := filepath.Join(g.dir, filename)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write pdf %s: %w", filename, err)
	}
	g.logger.Debug("certificate generated", "file", filename)
	return filename, nil
}
