package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/UCEM-2025/campus-event-service/internal/artifacts"
	"github.com/UCEM-2025/campus-event-service/internal/models"
	"github.com/UCEM-2025/campus-event-service/internal/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

// fakeRenderer implements CertificateRenderer and records what it rendered.
type fakeRenderer struct {
	mu           sync.Mutex
	certificates []artifacts.EventCertificateData
	tickets      []artifacts.BusTicketData
	failNext     error
}

func (r *fakeRenderer) GenerateEventCertificate(data artifacts.EventCertificateData) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return "", err
	}
	r.certificates = append(r.certificates, data)
	return fmt.Sprintf("event_certificate_%d_%s.pdf", data.RegistrationID, data.TicketID), nil
}

func (r *fakeRenderer) GenerateBusTicket(data artifacts.BusTicketData) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return "", err
	}
	r.tickets = append(r.tickets, data)
	return fmt.Sprintf("bus_ticket_%d.pdf", data.BookingID), nil
}

// fakeRepository is an in-memory Repository. WithTransaction runs the
// closure against the same store; rollback is not simulated.
type fakeRepository struct {
	mu sync.Mutex

	users         map[uint]*models.User
	events        map[uint]*models.Event
	registrations map[uint]*models.Registration
	halls         map[uint]*models.Hall
	hallBookings  map[uint]*models.HallBooking
	buses         map[uint]*models.Bus
	busBookings   map[uint]*models.BusBooking
	notifications map[uint]*models.Notification

	nextID uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:         make(map[uint]*models.User),
		events:        make(map[uint]*models.Event),
		registrations: make(map[uint]*models.Registration),
		halls:         make(map[uint]*models.Hall),
		hallBookings:  make(map[uint]*models.HallBooking),
		buses:         make(map[uint]*models.Bus),
		busBookings:   make(map[uint]*models.BusBooking),
		notifications: make(map[uint]*models.Notification),
	}
}

func (f *fakeRepository) nextSequence() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeRepository) User() repositories.UserRepository          { return &fakeUserRepo{f} }
func (f *fakeRepository) Event() repositories.EventRepository        { return &fakeEventRepo{f} }
func (f *fakeRepository) Registration() repositories.RegistrationRepository {
	return &fakeRegistrationRepo{f}
}
func (f *fakeRepository) Hall() repositories.HallRepository               { return &fakeHallRepo{f} }
func (f *fakeRepository) HallBooking() repositories.HallBookingRepository { return &fakeHallBookingRepo{f} }
func (f *fakeRepository) Bus() repositories.BusRepository                 { return &fakeBusRepo{f} }
func (f *fakeRepository) BusBooking() repositories.BusBookingRepository   { return &fakeBusBookingRepo{f} }
func (f *fakeRepository) Notification() repositories.NotificationRepository {
	return &fakeNotificationRepo{f}
}

func (f *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(f)
}

func (f *fakeRepository) Ping(ctx context.Context) error { return nil }
func (f *fakeRepository) Close() error                   { return nil }

// Seed helpers assign IDs and insert directly.

func (f *fakeRepository) seedUser(u *models.User) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == 0 {
		u.ID = f.nextSequence()
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeRepository) seedEvent(e *models.Event) *models.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e.ID == 0 {
		e.ID = f.nextSequence()
	}
	f.events[e.ID] = e
	return e
}

func (f *fakeRepository) seedHall(h *models.Hall) *models.Hall {
	f.mu.Lock()
	defer f.mu.Unlock()
	if h.ID == 0 {
		h.ID = f.nextSequence()
	}
	f.halls[h.ID] = h
	return h
}

func (f *fakeRepository) seedBus(b *models.Bus) *models.Bus {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b.ID == 0 {
		b.ID = f.nextSequence()
	}
	f.buses[b.ID] = b
	return b
}

func (f *fakeRepository) seedHallBooking(b *models.HallBooking) *models.HallBooking {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b.ID == 0 {
		b.ID = f.nextSequence()
	}
	f.hallBookings[b.ID] = b
	return b
}

func (f *fakeRepository) seedBusBooking(b *models.BusBooking) *models.BusBooking {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b.ID == 0 {
		b.ID = f.nextSequence()
	}
	f.busBookings[b.ID] = b
	return b
}

func (f *fakeRepository) seedRegistration(r *models.Registration) *models.Registration {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ID == 0 {
		r.ID = f.nextSequence()
	}
	f.registrations[r.ID] = r
	return r
}

func (f *fakeRepository) notificationsFor(userID uint) []*models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ===== USER =====

type fakeUserRepo struct{ f *fakeRepository }

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, existing := range r.f.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return repositories.ErrDuplicateKey
		}
	}
	user.ID = r.f.nextSequence()
	r.f.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	user, ok := r.f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, user := range r.f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, user := range r.f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.User
	for _, user := range r.f.users {
		if filters.Role != nil && user.Role != *filters.Role {
			continue
		}
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (r *fakeUserRepo) HasRole(ctx context.Context, id uint, role models.UserRole) (bool, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return false, nil
	}
	return user.Role == role, nil
}

// ===== EVENT =====

type fakeEventRepo struct{ f *fakeRepository }

func (r *fakeEventRepo) Create(ctx context.Context, event *models.Event) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	event.ID = r.f.nextSequence()
	r.f.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	event, ok := r.f.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return event, nil
}

func (r *fakeEventRepo) GetByIDWithDetails(ctx context.Context, id uint) (*models.Event, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeEventRepo) Update(ctx context.Context, event *models.Event) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.events[event.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.f.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) List(ctx context.Context, filters repositories.EventFilters) ([]*models.Event, int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.Event
	for _, event := range r.f.events {
		if filters.Status != nil && event.Status != *filters.Status {
			continue
		}
		out = append(out, event)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeEventRepo) GetByStatus(ctx context.Context, status models.EventStatus) ([]*models.Event, error) {
	out, _, err := r.List(ctx, repositories.EventFilters{Status: &status})
	return out, err
}

func (r *fakeEventRepo) GetDueForReminder(ctx context.Context, from, to time.Time) ([]*models.Event, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.Event
	for _, event := range r.f.events {
		if event.Status != models.EventApproved || event.ReminderSent {
			continue
		}
		if event.Date.Before(from) || event.Date.After(to) {
			continue
		}
		out = append(out, event)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeEventRepo) GetStats(ctx context.Context, eventID uint) (*repositories.EventStats, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	event, ok := r.f.events[eventID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	stats := &repositories.EventStats{}
	for _, registration := range r.f.registrations {
		if registration.EventID != eventID {
			continue
		}
		stats.TotalRegistrations++
		if registration.TicketID != nil {
			stats.ConfirmedTickets++
		} else {
			stats.PendingPayments++
		}
	}
	if event.Capacity != nil {
		remaining := *event.Capacity - stats.TotalRegistrations
		stats.RemainingCapacity = &remaining
	}
	return stats, nil
}

// ===== REGISTRATION =====

type fakeRegistrationRepo struct{ f *fakeRepository }

func (r *fakeRegistrationRepo) Create(ctx context.Context, registration *models.Registration) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, existing := range r.f.registrations {
		if existing.UserID == registration.UserID && existing.EventID == registration.EventID {
			return repositories.ErrDuplicateKey
		}
	}
	registration.ID = r.f.nextSequence()
	if registration.RegistrationDate.IsZero() {
		registration.RegistrationDate = time.Now()
	}
	r.f.registrations[registration.ID] = registration
	return nil
}

func (r *fakeRegistrationRepo) Update(ctx context.Context, registration *models.Registration) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.registrations[registration.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.f.registrations[registration.ID] = registration
	return nil
}

func (r *fakeRegistrationRepo) Delete(ctx context.Context, id uint) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.registrations[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.f.registrations, id)
	return nil
}

func (r *fakeRegistrationRepo) GetByID(ctx context.Context, id uint) (*models.Registration, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	registration, ok := r.f.registrations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return registration, nil
}

func (r *fakeRegistrationRepo) GetByUserAndEvent(ctx context.Context, userID, eventID uint) (*models.Registration, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, registration := range r.f.registrations {
		if registration.UserID == userID && registration.EventID == eventID {
			return registration, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRegistrationRepo) GetByUser(ctx context.Context, userID uint) ([]*models.Registration, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.Registration
	for _, registration := range r.f.registrations {
		if registration.UserID == userID {
			out = append(out, registration)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRegistrationRepo) GetByEvent(ctx context.Context, eventID uint) ([]*models.Registration, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.Registration
	for _, registration := range r.f.registrations {
		if registration.EventID == eventID {
			// Attach the user the way the store preloads it.
			if registration.User == nil {
				registration.User = r.f.users[registration.UserID]
			}
			out = append(out, registration)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRegistrationRepo) CountByEvent(ctx context.Context, eventID uint) (int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var count int64
	for _, registration := range r.f.registrations {
		if registration.EventID == eventID {
			count++
		}
	}
	return count, nil
}

// ===== HALL =====

type fakeHallRepo struct{ f *fakeRepository }

func (r *fakeHallRepo) Create(ctx context.Context, hall *models.Hall) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, existing := range r.f.halls {
		if existing.Name == hall.Name {
			return repositories.ErrDuplicateKey
		}
	}
	hall.ID = r.f.nextSequence()
	r.f.halls[hall.ID] = hall
	return nil
}

func (r *fakeHallRepo) GetByID(ctx context.Context, id uint) (*models.Hall, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	hall, ok := r.f.halls[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return hall, nil
}

func (r *fakeHallRepo) GetByName(ctx context.Context, name string) (*models.Hall, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, hall := range r.f.halls {
		if hall.Name == name {
			return hall, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeHallRepo) Update(ctx context.Context, hall *models.Hall) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.halls[hall.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.f.halls[hall.ID] = hall
	return nil
}

func (r *fakeHallRepo) Delete(ctx context.Context, id uint) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.halls[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.f.halls, id)
	for bookingID, booking := range r.f.hallBookings {
		if booking.HallID == id {
			delete(r.f.hallBookings, bookingID)
		}
	}
	return nil
}

func (r *fakeHallRepo) List(ctx context.Context) ([]*models.Hall, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.Hall
	for _, hall := range r.f.halls {
		out = append(out, hall)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeHallRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	_, err := r.GetByName(ctx, name)
	return err == nil, nil
}

// ===== HALL BOOKING =====

type fakeHallBookingRepo struct{ f *fakeRepository }

func (r *fakeHallBookingRepo) Create(ctx context.Context, booking *models.HallBooking) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	booking.ID = r.f.nextSequence()
	r.f.hallBookings[booking.ID] = booking
	return nil
}

func (r *fakeHallBookingRepo) GetByID(ctx context.Context, id uint) (*models.HallBooking, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	booking, ok := r.f.hallBookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return booking, nil
}

func (r *fakeHallBookingRepo) GetByIDWithDetails(ctx context.Context, id uint) (*models.HallBooking, error) {
	booking, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	booking.Hall = r.f.halls[booking.HallID]
	booking.Requester = r.f.users[booking.StudentID]
	return booking, nil
}

func (r *fakeHallBookingRepo) Update(ctx context.Context, booking *models.HallBooking) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.hallBookings[booking.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.f.hallBookings[booking.ID] = booking
	return nil
}

func (r *fakeHallBookingRepo) List(ctx context.Context, filters repositories.BookingFilters) ([]*models.HallBooking, int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.HallBooking
	for _, booking := range r.f.hallBookings {
		if filters.Status != nil && booking.Status != *filters.Status {
			continue
		}
		out = append(out, booking)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeHallBookingRepo) GetByStudent(ctx context.Context, studentID uint) ([]*models.HallBooking, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.HallBooking
	for _, booking := range r.f.hallBookings {
		if booking.StudentID == studentID {
			out = append(out, booking)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeHallBookingRepo) GetStats(ctx context.Context) (*repositories.BookingStats, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	stats := &repositories.BookingStats{}
	for _, booking := range r.f.hallBookings {
		switch booking.Status {
		case models.BookingPending:
			stats.Pending++
		case models.BookingApproved:
			stats.Approved++
		case models.BookingRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

// ===== BUS =====

type fakeBusRepo struct{ f *fakeRepository }

func (r *fakeBusRepo) Create(ctx context.Context, bus *models.Bus) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, existing := range r.f.buses {
		if existing.Identifier == bus.Identifier {
			return repositories.ErrDuplicateKey
		}
	}
	bus.ID = r.f.nextSequence()
	r.f.buses[bus.ID] = bus
	return nil
}

func (r *fakeBusRepo) GetByID(ctx context.Context, id uint) (*models.Bus, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	bus, ok := r.f.buses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return bus, nil
}

func (r *fakeBusRepo) GetByIdentifier(ctx context.Context, identifier string) (*models.Bus, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, bus := range r.f.buses {
		if bus.Identifier == identifier {
			return bus, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeBusRepo) Update(ctx context.Context, bus *models.Bus) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.buses[bus.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.f.buses[bus.ID] = bus
	return nil
}

func (r *fakeBusRepo) Delete(ctx context.Context, id uint) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.buses[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.f.buses, id)
	for bookingID, booking := range r.f.busBookings {
		if booking.BusID == id {
			delete(r.f.busBookings, bookingID)
		}
	}
	return nil
}

func (r *fakeBusRepo) List(ctx context.Context) ([]*models.Bus, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.Bus
	for _, bus := range r.f.buses {
		out = append(out, bus)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeBusRepo) ExistsByIdentifier(ctx context.Context, identifier string) (bool, error) {
	_, err := r.GetByIdentifier(ctx, identifier)
	return err == nil, nil
}

// ===== BUS BOOKING =====

type fakeBusBookingRepo struct{ f *fakeRepository }

func (r *fakeBusBookingRepo) Create(ctx context.Context, booking *models.BusBooking) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	booking.ID = r.f.nextSequence()
	r.f.busBookings[booking.ID] = booking
	return nil
}

func (r *fakeBusBookingRepo) GetByID(ctx context.Context, id uint) (*models.BusBooking, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	booking, ok := r.f.busBookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return booking, nil
}

func (r *fakeBusBookingRepo) GetByIDWithDetails(ctx context.Context, id uint) (*models.BusBooking, error) {
	booking, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	booking.Bus = r.f.buses[booking.BusID]
	booking.Requester = r.f.users[booking.StudentID]
	return booking, nil
}

func (r *fakeBusBookingRepo) Update(ctx context.Context, booking *models.BusBooking) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.busBookings[booking.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.f.busBookings[booking.ID] = booking
	return nil
}

func (r *fakeBusBookingRepo) List(ctx context.Context, filters repositories.BookingFilters) ([]*models.BusBooking, int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.BusBooking
	for _, booking := range r.f.busBookings {
		if filters.Status != nil && booking.Status != *filters.Status {
			continue
		}
		out = append(out, booking)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeBusBookingRepo) GetByStudent(ctx context.Context, studentID uint) ([]*models.BusBooking, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.BusBooking
	for _, booking := range r.f.busBookings {
		if booking.StudentID == studentID {
			out = append(out, booking)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeBusBookingRepo) GetStats(ctx context.Context) (*repositories.BookingStats, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	stats := &repositories.BookingStats{}
	for _, booking := range r.f.busBookings {
		switch booking.Status {
		case models.BookingPending:
			stats.Pending++
		case models.BookingApproved:
			stats.Approved++
		case models.BookingRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

// ===== NOTIFICATION =====

type fakeNotificationRepo struct{ f *fakeRepository }

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	notification.ID = r.f.nextSequence()
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	r.f.notifications[notification.ID] = notification
	return nil
}

func (r *fakeNotificationRepo) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	notification, ok := r.f.notifications[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return notification, nil
}

func (r *fakeNotificationRepo) Update(ctx context.Context, notification *models.Notification) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.notifications[notification.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.f.notifications[notification.ID] = notification
	return nil
}

func (r *fakeNotificationRepo) GetByUser(ctx context.Context, userID uint, filters repositories.NotificationFilters) ([]*models.Notification, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.Notification
	for _, notification := range r.f.notifications {
		if notification.UserID != userID {
			continue
		}
		if filters.Unread != nil && notification.IsRead == *filters.Unread {
			continue
		}
		out = append(out, notification)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, userID uint) (int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var count int64
	for _, notification := range r.f.notifications {
		if notification.UserID == userID && !notification.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID uint) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, notification := range r.f.notifications {
		if notification.UserID == userID {
			notification.IsRead = true
		}
	}
	return nil
}
