package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	domain "github.com/BruksfildServices01/studio-console/internal/domain/booking"
	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/models"
	"github.com/BruksfildServices01/studio-console/internal/notify"
)

func (f *fixture) createUC() *CreateAppointment {
	return NewCreateAppointment(f.repo, f.settings, f.audit, f.notifier)
}

func TestCreateAppointment_Success(t *testing.T) {
	f := newFixture()
	date, hour, start := futureSlot(2, 10)

	result, err := f.createUC().Execute(context.Background(), CreateAppointmentInput{
		CustomerName: "Ana Souza",
		ServiceID:    1,
		StaffID:      1,
		Date:         date,
		Time:         hour,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ap := result.Appointment
	if ap.ID == 0 {
		t.Fatalf("expected assigned ID")
	}
	if ap.PublicRef == "" {
		t.Fatalf("expected public ref")
	}
	if ap.Status != string(domain.StatusNew) {
		t.Fatalf("expected new, got %s", ap.Status)
	}
	if ap.PaymentStatus != "not_required" {
		t.Fatalf("expected not_required, got %s", ap.PaymentStatus)
	}
	if !ap.ScheduledAt.Equal(start) {
		t.Fatalf("expected start %s, got %s", start, ap.ScheduledAt)
	}
	if !ap.EndTime.Equal(start.Add(time.Hour)) {
		t.Fatalf("expected end %s, got %s", start.Add(time.Hour), ap.EndTime)
	}

	if f.repo.stored(ap.ID) == nil {
		t.Fatalf("expected appointment persisted")
	}
}

func TestCreateAppointment_RequireApproval(t *testing.T) {
	f := newFixture()
	f.settings.st.RequireApproval = true
	date, hour, _ := futureSlot(2, 10)

	result, err := f.createUC().Execute(context.Background(), CreateAppointmentInput{
		CustomerName:  "Ana Souza",
		CustomerEmail: "ana@example.com",
		ServiceID:     1,
		StaffID:       1,
		Date:          date,
		Time:          hour,
		Notify:        true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Appointment.Status != string(domain.StatusPending) {
		t.Fatalf("expected pending, got %s", result.Appointment.Status)
	}

	if f.notifier.count() != 1 {
		t.Fatalf("expected 1 notification, got %d", f.notifier.count())
	}
	if f.notifier.sent[0].template != notify.TemplateBookingPending {
		t.Fatalf("expected pending template, got %s", f.notifier.sent[0].template)
	}
}

func TestCreateAppointment_PaymentRequired(t *testing.T) {
	f := newFixture()
	f.repo.addService(models.Service{
		ID:                 2,
		Name:               "Dia de noiva",
		DurationMin:        120,
		Active:             true,
		RequiresPayment:    true,
		PriceCents:         priceCents(25000),
		CancellationPolicy: domain.PolicyFullRefund,
	})
	date, hour, _ := futureSlot(2, 10)

	result, err := f.createUC().Execute(context.Background(), CreateAppointmentInput{
		CustomerName: "Ana Souza",
		ServiceID:    2,
		StaffID:      1,
		Date:         date,
		Time:         hour,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Appointment.PaymentStatus != "unpaid" {
		t.Fatalf("expected unpaid, got %s", result.Appointment.PaymentStatus)
	}
	if result.Appointment.PaymentAmountCents != 25000 {
		t.Fatalf("expected 25000, got %d", result.Appointment.PaymentAmountCents)
	}
}

func TestCreateAppointment_ServiceNotFound(t *testing.T) {
	f := newFixture()
	f.repo.addService(models.Service{ID: 9, Name: "Desativado", DurationMin: 30, Active: false})
	date, hour, _ := futureSlot(2, 10)

	for _, serviceID := range []uint{9, 404} {
		_, err := f.createUC().Execute(context.Background(), CreateAppointmentInput{
			CustomerName: "Ana Souza",
			ServiceID:    serviceID,
			Date:         date,
			Time:         hour,
		})
		if !httperr.IsBusiness(err, "service_not_found") {
			t.Fatalf("service %d: expected service_not_found, got %v", serviceID, err)
		}
	}
}

func TestCreateAppointment_StaffNotFound(t *testing.T) {
	f := newFixture()
	f.repo.staff[2] = &models.StaffMember{ID: 2, Active: false}
	date, hour, _ := futureSlot(2, 10)

	for _, staffID := range []uint{2, 404} {
		_, err := f.createUC().Execute(context.Background(), CreateAppointmentInput{
			CustomerName: "Ana Souza",
			ServiceID:    1,
			StaffID:      staffID,
			Date:         date,
			Time:         hour,
		})
		if !httperr.IsBusiness(err, "staff_not_found") {
			t.Fatalf("staff %d: expected staff_not_found, got %v", staffID, err)
		}
	}
}

func TestCreateAppointment_InvalidDate(t *testing.T) {
	f := newFixture()

	_, err := f.createUC().Execute(context.Background(), CreateAppointmentInput{
		CustomerName: "Ana Souza",
		ServiceID:    1,
		Date:         "2026-13-40",
		Time:         "10:00",
	})
	if !httperr.IsBusiness(err, "validation_error") {
		t.Fatalf("expected validation_error, got %v", err)
	}
}

func TestCreateAppointment_MinNotice(t *testing.T) {
	f := newFixture()
	f.settings.st.MinNoticeHours = 48
	date, hour, _ := futureSlot(1, 10)

	_, err := f.createUC().Execute(context.Background(), CreateAppointmentInput{
		CustomerName: "Ana Souza",
		ServiceID:    1,
		StaffID:      1,
		Date:         date,
		Time:         hour,
	})
	if !httperr.IsBusiness(err, "slot_unavailable") {
		t.Fatalf("expected slot_unavailable, got %v", err)
	}
}

func TestCreateAppointment_MaxAdvance(t *testing.T) {
	f := newFixture()
	f.settings.st.MaxAdvanceDays = 7
	date, hour, _ := futureSlot(30, 10)

	_, err := f.createUC().Execute(context.Background(), CreateAppointmentInput{
		CustomerName: "Ana Souza",
		ServiceID:    1,
		StaffID:      1,
		Date:         date,
		Time:         hour,
	})
	if !httperr.IsBusiness(err, "slot_unavailable") {
		t.Fatalf("expected slot_unavailable, got %v", err)
	}
}

func TestCreateAppointment_OutsideWorkingWindow(t *testing.T) {
	f := newFixture()

	morning := make(domain.Week, 0, 7)
	for wd := 0; wd < 7; wd++ {
		morning = append(morning, models.Availability{
			StaffMemberID: 2,
			Weekday:       wd,
			StartTime:     "09:00",
			EndTime:       "12:00",
		})
	}
	f.repo.addStaff(2, morning)

	date, hour, _ := futureSlot(2, 14)

	_, err := f.createUC().Execute(context.Background(), CreateAppointmentInput{
		CustomerName: "Ana Souza",
		ServiceID:    1,
		StaffID:      2,
		Date:         date,
		Time:         hour,
	})
	if !httperr.IsBusiness(err, "slot_unavailable") {
		t.Fatalf("expected slot_unavailable, got %v", err)
	}
}

func TestCreateAppointment_SlotTaken(t *testing.T) {
	f := newFixture()
	date, hour, _ := futureSlot(2, 10)

	input := CreateAppointmentInput{
		CustomerName: "Ana Souza",
		ServiceID:    1,
		StaffID:      1,
		Date:         date,
		Time:         hour,
	}

	if _, err := f.createUC().Execute(context.Background(), input); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	_, err := f.createUC().Execute(context.Background(), input)
	if !httperr.IsBusiness(err, "slot_unavailable") {
		t.Fatalf("expected slot_unavailable, got %v", err)
	}
}

func TestCreateAppointment_BufferBlocksAdjacent(t *testing.T) {
	f := newFixture()
	f.settings.st.BufferMinutes = 30

	date, hour, _ := futureSlot(2, 10)
	if _, err := f.createUC().Execute(context.Background(), CreateAppointmentInput{
		CustomerName: "Ana Souza",
		ServiceID:    1,
		StaffID:      1,
		Date:         date,
		Time:         hour,
	}); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	// Encostado no fim do primeiro (11:00): só conflita por causa do buffer.
	_, nextHour, _ := futureSlot(2, 11)
	_, err := f.createUC().Execute(context.Background(), CreateAppointmentInput{
		CustomerName: "Bia Lima",
		ServiceID:    1,
		StaffID:      1,
		Date:         date,
		Time:         nextHour,
	})
	if !httperr.IsBusiness(err, "slot_unavailable") {
		t.Fatalf("expected slot_unavailable, got %v", err)
	}
}

func TestCreateAppointment_UnassignedSkipsStaffChecks(t *testing.T) {
	f := newFixture()
	date, hour, _ := futureSlot(2, 3)

	result, err := f.createUC().Execute(context.Background(), CreateAppointmentInput{
		CustomerName: "Ana Souza",
		ServiceID:    1,
		StaffID:      0,
		Date:         date,
		Time:         hour,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Appointment.StaffMemberID != nil {
		t.Fatalf("expected unassigned appointment")
	}
}

func TestCreateAppointment_ConcurrentOneWins(t *testing.T) {
	f := newFixture()
	date, hour, _ := futureSlot(2, 10)

	uc := f.createUC()
	input := CreateAppointmentInput{
		CustomerName: "Ana Souza",
		ServiceID:    1,
		StaffID:      1,
		Date:         date,
		Time:         hour,
	}

	const attempts = 8
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), input)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	wins, conflicts := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case httperr.IsBusiness(err, "slot_unavailable"):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if wins != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins)
	}
	if conflicts != attempts-1 {
		t.Fatalf("expected %d conflicts, got %d", attempts-1, conflicts)
	}
}

func TestCreateAppointment_NotifyFailureIsWarning(t *testing.T) {
	f := newFixture()
	f.notifier.err = context.DeadlineExceeded
	date, hour, _ := futureSlot(2, 10)

	result, err := f.createUC().Execute(context.Background(), CreateAppointmentInput{
		CustomerName:  "Ana Souza",
		CustomerEmail: "ana@example.com",
		ServiceID:     1,
		StaffID:       1,
		Date:          date,
		Time:          hour,
		Notify:        true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Warning != "notification_failed" {
		t.Fatalf("expected notification_failed warning, got %q", result.Warning)
	}
	if f.repo.stored(result.Appointment.ID) == nil {
		t.Fatalf("appointment must be persisted despite notification failure")
	}
}
