package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

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

type CreateAppointmentInput struct {
	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	ServiceID uint

	// StaffID 0 cria sem profissional atribuído: sem checagem de
	// expediente nem de conflito.
	StaffID    uint
	LocationID *uint

	Date  string // YYYY-MM-DD
	Time  string // HH:mm
	Notes string

	Notify bool
	By     *uint
}

type CreateAppointmentResult struct {
	Appointment *models.Appointment `json:"appointment"`
	Warning     string              `json:"warning,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	settings settings.Source
	audit    *audit.Dispatcher
	notifier notify.Sender
}

func NewCreateAppointment(
	repo domain.Repository,
	settings settings.Source,
	audit *audit.Dispatcher,
	notifier notify.Sender,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		settings: settings,
		audit:    audit,
		notifier: notifier,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*CreateAppointmentResult, error) {

	// --------------------------------------------------
	// 1️⃣ Configurações vigentes
	// --------------------------------------------------
	st, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Data / hora no timezone configurado
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(st.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("validation_error")
	}

	now := timezone.NowIn(st.Timezone)

	// --------------------------------------------------
	// 3️⃣ Serviço
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil || !svc.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	duration := time.Duration(svc.DurationMin) * time.Minute
	end := start.Add(duration)

	// --------------------------------------------------
	// 4️⃣ Antecedência mínima e máxima
	// --------------------------------------------------
	if err := domain.CheckNotice(start, now, st); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Profissional + expediente
	// --------------------------------------------------
	var staffRef *uint
	if in.StaffID > 0 {
		staff, err := uc.repo.GetStaffMember(ctx, in.StaffID)
		if err != nil || !staff.Active {
			return nil, httperr.ErrBusiness("staff_not_found")
		}

		av, err := uc.repo.GetAvailabilityForWeekday(ctx, in.StaffID, int(start.Weekday()))
		if err != nil {
			// sem linha de disponibilidade = dia fechado
			return nil, httperr.ErrBusiness("slot_unavailable")
		}
		if err := domain.CheckWindow(av, start, duration); err != nil {
			return nil, err
		}

		staffRef = &staff.ID
	}

	// --------------------------------------------------
	// 6️⃣ Montagem do agendamento
	// --------------------------------------------------
	ap := &models.Appointment{
		PublicRef:     uuid.NewString(),
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		CustomerEmail: in.CustomerEmail,
		ServiceID:     svc.ID,
		StaffMemberID: staffRef,
		LocationID:    in.LocationID,
		ScheduledAt:   start,
		EndTime:       end,
		Status:        string(domain.InitialStatus(st.RequireApproval)),
		Notes:         in.Notes,
		PaymentStatus: "not_required",
	}

	if svc.RequiresPayment && svc.PriceCents != nil {
		ap.PaymentStatus = "unpaid"
		ap.PaymentAmountCents = *svc.PriceCents
	}

	// --------------------------------------------------
	// 7️⃣ Criação sob trava (reconfere conflito com buffer)
	// --------------------------------------------------
	buffer := time.Duration(st.BufferMinutes) * time.Minute
	if err := uc.repo.CreateAppointment(ctx, ap, buffer); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 8️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   in.By,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"public_ref":   ap.PublicRef,
			"scheduled_at": ap.ScheduledAt,
			"status":       ap.Status,
		},
	})

	// --------------------------------------------------
	// 9️⃣ Notificação (falha nunca derruba a criação)
	// --------------------------------------------------
	result := &CreateAppointmentResult{Appointment: ap}

	if in.Notify && in.CustomerEmail != "" {
		template := notify.TemplateBookingConfirmed
		if domain.Status(ap.Status) == domain.StatusPending {
			template = notify.TemplateBookingPending
		}

		err := uc.notifier.Send(ctx, in.CustomerEmail, template, map[string]string{
			"customer_name": ap.CustomerName,
			"service_name":  svc.Name,
			"scheduled_at":  ap.ScheduledAt.Format("02/01/2006 15:04"),
			"public_ref":    ap.PublicRef,
		})
		if err != nil {
			result.Warning = "notification_failed"
		}
	}

	return result, nil
}
