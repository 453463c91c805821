package booking

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/BruksfildServices01/studio-console/internal/audit"
	domain "github.com/BruksfildServices01/studio-console/internal/domain/booking"
	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/models"
)

var errNotFound = errors.New("not found")

// ======================================================
// FAKE REPOSITORY
// ======================================================

// fakeRepo guarda tudo em memória e reproduz a disciplina do
// repositório real: criação e remarcação recheca conflito sob trava e
// devolve cópias nas leituras.
type fakeRepo struct {
	mu sync.Mutex

	services     map[uint]*models.Service
	staff        map[uint]*models.StaffMember
	availability map[uint]domain.Week

	appointments map[uint]*models.Appointment
	nextApptID   uint

	requests   map[uint]*models.RescheduleRequest
	nextReqID  uint

	failCreate error
	failUpdate error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services:     make(map[uint]*models.Service),
		staff:        make(map[uint]*models.StaffMember),
		availability: make(map[uint]domain.Week),
		appointments: make(map[uint]*models.Appointment),
		requests:     make(map[uint]*models.RescheduleRequest),
	}
}

var _ domain.Repository = (*fakeRepo)(nil)

func (r *fakeRepo) addService(svc models.Service) *models.Service {
	r.services[svc.ID] = &svc
	return &svc
}

func (r *fakeRepo) addStaff(id uint, week domain.Week) *models.StaffMember {
	s := &models.StaffMember{ID: id, Active: true, User: models.User{ID: id, Name: "Profissional"}}
	r.staff[id] = s
	r.availability[id] = week
	return s
}

func (r *fakeRepo) addAppointment(ap models.Appointment) *models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ap.ID == 0 {
		r.nextApptID++
		ap.ID = r.nextApptID
	} else if ap.ID > r.nextApptID {
		r.nextApptID = ap.ID
	}
	r.appointments[ap.ID] = &ap

	stored := ap
	return &stored
}

func (r *fakeRepo) stored(id uint) *models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.appointments[id]
	if !ok {
		return nil
	}
	cp := *ap
	return &cp
}

func (r *fakeRepo) GetService(ctx context.Context, serviceID uint) (*models.Service, error) {
	svc, ok := r.services[serviceID]
	if !ok {
		return nil, errNotFound
	}
	cp := *svc
	return &cp, nil
}

func (r *fakeRepo) GetStaffMember(ctx context.Context, staffID uint) (*models.StaffMember, error) {
	s, ok := r.staff[staffID]
	if !ok {
		return nil, errNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) GetAvailabilityForWeekday(ctx context.Context, staffID uint, weekday int) (*models.Availability, error) {
	week, ok := r.availability[staffID]
	if !ok {
		return nil, errNotFound
	}
	av := week.Day(time.Weekday(weekday))
	if av == nil {
		return nil, errNotFound
	}
	cp := *av
	return &cp, nil
}

func (r *fakeRepo) ListAvailability(ctx context.Context, staffID uint) (domain.Week, error) {
	week, ok := r.availability[staffID]
	if !ok {
		return nil, errNotFound
	}
	return week, nil
}

func (r *fakeRepo) busyLocked(staffID uint, excludeID uint) []domain.Interval {
	var busy []domain.Interval
	for _, ap := range r.appointments {
		if ap.StaffMemberID == nil || *ap.StaffMemberID != staffID {
			continue
		}
		if ap.Status == string(domain.StatusCancelled) {
			continue
		}
		if excludeID > 0 && ap.ID == excludeID {
			continue
		}
		busy = append(busy, domain.Interval{Start: ap.ScheduledAt, End: ap.EndTime})
	}
	return busy
}

func (r *fakeRepo) ListBusyIntervals(ctx context.Context, staffID uint, from, to time.Time, excludeAppointmentID uint) ([]domain.Interval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	window := domain.Interval{Start: from, End: to}
	var out []domain.Interval
	for _, iv := range r.busyLocked(staffID, excludeAppointmentID) {
		if iv.Overlaps(window) {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment, buffer time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failCreate != nil {
		return r.failCreate
	}

	if ap.StaffMemberID != nil {
		candidate := domain.Interval{Start: ap.ScheduledAt, End: ap.EndTime}
		if domain.OverlapsAny(candidate, buffer, r.busyLocked(*ap.StaffMemberID, 0)) {
			return httperr.ErrBusiness("slot_unavailable")
		}
	}

	r.nextApptID++
	ap.ID = r.nextApptID

	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) GetAppointment(ctx context.Context, appointmentID uint) (*models.Appointment, error) {
	ap := r.stored(appointmentID)
	if ap == nil {
		return nil, errNotFound
	}
	return ap, nil
}

func (r *fakeRepo) GetAppointmentByPublicRef(ctx context.Context, publicRef string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ap := range r.appointments {
		if ap.PublicRef == publicRef {
			cp := *ap
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (r *fakeRepo) ListAppointmentsForPeriod(ctx context.Context, staffID uint, from, to time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	window := domain.Interval{Start: from, End: to}
	var out []models.Appointment
	for _, ap := range r.appointments {
		if staffID > 0 && (ap.StaffMemberID == nil || *ap.StaffMemberID != staffID) {
			continue
		}
		iv := domain.Interval{Start: ap.ScheduledAt, End: ap.EndTime}
		if iv.Overlaps(window) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failUpdate != nil {
		return r.failUpdate
	}

	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) RescheduleAppointment(ctx context.Context, ap *models.Appointment, start, end time.Time, buffer time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ap.StaffMemberID != nil {
		candidate := domain.Interval{Start: start, End: end}
		if domain.OverlapsAny(candidate, buffer, r.busyLocked(*ap.StaffMemberID, ap.ID)) {
			return httperr.ErrBusiness("slot_unavailable")
		}
	}

	ap.ScheduledAt = start
	ap.EndTime = end

	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) CreateRescheduleRequest(ctx context.Context, req *models.RescheduleRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.requests {
		if existing.AppointmentID == req.AppointmentID && existing.Status == "pending" {
			return httperr.ErrBusiness("request_already_pending")
		}
	}

	r.nextReqID++
	req.ID = r.nextReqID

	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *fakeRepo) GetRescheduleRequest(ctx context.Context, requestID uint) (*models.RescheduleRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[requestID]
	if !ok {
		return nil, errNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *fakeRepo) UpdateRescheduleRequest(ctx context.Context, req *models.RescheduleRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

// ======================================================
// FAKE COLLABORATORS
// ======================================================

type fakeSettings struct {
	st models.BookingSettings
}

func (f *fakeSettings) Get(ctx context.Context) (*models.BookingSettings, error) {
	cp := f.st
	return &cp, nil
}

type fakeProcessor struct {
	mu         sync.Mutex
	calls      int
	lastRef    string
	lastAmount int64
	err        error
}

func (p *fakeProcessor) Refund(ctx context.Context, paymentRef string, amountCents int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls++
	p.lastRef = paymentRef
	p.lastAmount = amountCents
	return p.err
}

type sentMessage struct {
	recipient string
	template  string
	data      map[string]string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (n *fakeNotifier) Send(ctx context.Context, recipient, template string, data map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentMessage{recipient: recipient, template: template, data: data})
	return nil
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type nopWriter struct{}

func (nopWriter) Log(userID *uint, action, entity string, entityID *uint, metadata any) error {
	return nil
}

func testDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(nopWriter{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// ======================================================
// FIXTURE
// ======================================================

type fixture struct {
	repo      *fakeRepo
	settings  *fakeSettings
	processor *fakeProcessor
	notifier  *fakeNotifier
	audit     *audit.Dispatcher
}

// allWeek deixa todos os dias abertos o dia inteiro; os testes de
// janela de expediente montam semanas mais restritas por conta própria.
func allWeek(staffID uint) domain.Week {
	week := make(domain.Week, 0, 7)
	for wd := 0; wd < 7; wd++ {
		week = append(week, models.Availability{
			StaffMemberID: staffID,
			Weekday:       wd,
			StartTime:     "00:00",
			EndTime:       "23:59",
		})
	}
	return week
}

func priceCents(v int64) *int64 {
	return &v
}

func newFixture() *fixture {
	f := &fixture{
		repo:      newFakeRepo(),
		settings:  &fakeSettings{st: models.BookingSettings{ID: 1, Timezone: "UTC"}},
		processor: &fakeProcessor{},
		notifier:  &fakeNotifier{},
		audit:     testDispatcher(),
	}

	f.repo.addService(models.Service{
		ID:                 1,
		Name:               "Massagem relaxante",
		DurationMin:        60,
		Active:             true,
		CancellationPolicy: domain.PolicyFullRefund,
	})
	f.repo.addStaff(1, allWeek(1))

	return f
}

// futureSlot devolve data e hora de um início válido alguns dias à
// frente, sempre no meio do expediente aberto.
func futureSlot(daysAhead, hour int) (string, string, time.Time) {
	day := time.Now().UTC().AddDate(0, 0, daysAhead)
	start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
	return start.Format("2006-01-02"), start.Format("15:04"), start
}
