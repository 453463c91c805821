package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/studio-console/internal/audit"
	domain "github.com/BruksfildServices01/studio-console/internal/domain/booking"
	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/models"
	"github.com/BruksfildServices01/studio-console/internal/notify"
	"github.com/BruksfildServices01/studio-console/internal/settings"
	"github.com/BruksfildServices01/studio-console/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type RescheduleAppointmentInput struct {
	AppointmentID uint

	Date string // YYYY-MM-DD
	Time string // HH:mm

	Notify bool
	By     *uint
}

// ======================================================
// USE CASE
// ======================================================

// RescheduleAppointment move o agendamento para um novo horário,
// mantendo status e dados de pagamento. O horário atual do próprio
// agendamento não conta como conflito.
type RescheduleAppointment struct {
	repo     domain.Repository
	settings settings.Source
	audit    *audit.Dispatcher
	notifier notify.Sender
}

func NewRescheduleAppointment(
	repo domain.Repository,
	settings settings.Source,
	audit *audit.Dispatcher,
	notifier notify.Sender,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:     repo,
		settings: settings,
		audit:    audit,
		notifier: notifier,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Configurações + agendamento
	// --------------------------------------------------
	st, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Novo horário no timezone configurado
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(st.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("validation_error")
	}

	duration := time.Duration(ap.Service.DurationMin) * time.Minute
	end := start.Add(duration)
	now := timezone.NowIn(st.Timezone)

	// --------------------------------------------------
	// 3️⃣ Regras de antecedência + expediente
	// --------------------------------------------------
	if err := domain.CheckNotice(start, now, st); err != nil {
		return nil, err
	}

	if ap.StaffMemberID != nil {
		av, err := uc.repo.GetAvailabilityForWeekday(ctx, *ap.StaffMemberID, int(start.Weekday()))
		if err != nil {
			return nil, httperr.ErrBusiness("slot_unavailable")
		}
		if err := domain.CheckWindow(av, start, duration); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 4️⃣ Troca de horário sob trava
	// --------------------------------------------------
	buffer := time.Duration(st.BufferMinutes) * time.Minute
	if err := uc.repo.RescheduleAppointment(ctx, ap, start, end, buffer); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Auditoria + notificação
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   in.By,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"scheduled_at": ap.ScheduledAt},
	})

	if in.Notify && ap.CustomerEmail != "" {
		_ = uc.notifier.Send(ctx, ap.CustomerEmail, notify.TemplateBookingRescheduled, map[string]string{
			"customer_name": ap.CustomerName,
			"service_name":  ap.Service.Name,
			"scheduled_at":  ap.ScheduledAt.Format("02/01/2006 15:04"),
			"public_ref":    ap.PublicRef,
		})
	}

	return ap, nil
}
