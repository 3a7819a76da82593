package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/UCEM-2025/campus-event-service/internal/repositories"
)

type reportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewReportService(repo repositories.Repository, logger *slog.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

func (s *reportService) EventRegistrationsReport(ctx context.Context) ([]byte, error) {
	eventList, _, err := s.repo.Event().List(ctx, repositories.EventFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Registrations"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Event", "Status", "Date", "Attendee", "Email", "Ticket ID", "Payment Status", "Registered At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, event := range eventList {
		registrations, err := s.repo.Registration().GetByEvent(ctx, event.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get registrations for event %d: %w", event.ID, err)
		}
		for _, registration := range registrations {
			username, email := "", ""
			if registration.User != nil {
				username = registration.User.Username
				email = registration.User.Email
			}
			ticket := ""
			if registration.TicketID != nil {
				ticket = *registration.TicketID
			}
			values := []interface{}{
				event.Name,
				string(event.Status),
				event.Date.Format("2006-01-02 15:04"),
				username,
				email,
				ticket,
				string(registration.PaymentStatus),
				registration.RegistrationDate.Format("2006-01-02 15:04"),
			}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				f.SetCellValue(sheet, cell, v)
			}
			row++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("registrations report generated", "rows", row-2)
	return buf.Bytes(), nil
}

func (s *reportService) BookingsReport(ctx context.Context) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const hallSheet = "Hall Bookings"
	const busSheet = "Bus Bookings"
	f.SetSheetName(f.GetSheetName(0), hallSheet)
	if _, err := f.NewSheet(busSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	hallBookings, _, err := s.repo.HallBooking().List(ctx, repositories.BookingFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list hall bookings: %w", err)
	}

	hallHeaders := []string{"ID", "Hall", "Student", "Date", "Start", "End", "Purpose", "Status", "Processed At", "Remarks"}
	for i, h := range hallHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(hallSheet, cell, h)
	}
	for i, booking := range hallBookings {
		hallName, student := "", ""
		if booking.Hall != nil {
			hallName = booking.Hall.Name
		}
		if booking.Requester != nil {
			student = booking.Requester.Username
		}
		values := []interface{}{
			booking.ID,
			hallName,
			student,
			time.Time(booking.RequestedDate).Format("2006-01-02"),
			booking.StartTime,
			booking.EndTime,
			booking.Purpose,
			string(booking.Status),
			formatTimePtr(booking.ProcessedTimestamp),
			strOrEmpty(booking.AdminRemarks),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(hallSheet, cell, v)
		}
	}

	busBookings, _, err := s.repo.BusBooking().List(ctx, repositories.BookingFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list bus bookings: %w", err)
	}

	busHeaders := []string{"ID", "Bus", "Student", "Date", "Pickup", "From", "To", "Passengers", "Status", "Processed At", "Remarks"}
	for i, h := range busHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(busSheet, cell, h)
	}
	for i, booking := range busBookings {
		busIdentifier, student := "", ""
		if booking.Bus != nil {
			busIdentifier = booking.Bus.Identifier
		}
		if booking.Requester != nil {
			student = booking.Requester.Username
		}
		passengers := 0
		if booking.NumberOfPassengers != nil {
			passengers = *booking.NumberOfPassengers
		}
		values := []interface{}{
			booking.ID,
			busIdentifier,
			student,
			time.Time(booking.RequestedDate).Format("2006-01-02"),
			booking.PickupTime,
			booking.PickupLocation,
			booking.Destination,
			passengers,
			string(booking.Status),
			formatTimePtr(booking.ProcessedTimestamp),
			strOrEmpty(booking.AdminRemarks),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(busSheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("bookings report generated",
		"hall_rows", len(hallBookings),
		"bus_rows", len(busBookings))
	return buf.Bytes(), nil
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
