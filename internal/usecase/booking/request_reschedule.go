package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/studio-console/internal/audit"
	domain "github.com/BruksfildServices01/studio-console/internal/domain/booking"
	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/models"
	"github.com/BruksfildServices01/studio-console/internal/settings"
	"github.com/BruksfildServices01/studio-console/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type RequestRescheduleInput struct {
	AppointmentID uint

	Date   string // YYYY-MM-DD
	Time   string // HH:mm
	Reason string

	By *uint
}

// ======================================================
// USE CASE
// ======================================================

// RequestReschedule registra a proposta de novo horário feita pelo
// cliente. O agendamento só muda quando um administrador aceitar; no
// máximo uma solicitação pendente por agendamento.
type RequestReschedule struct {
	repo     domain.Repository
	settings settings.Source
	audit    *audit.Dispatcher
}

func NewRequestReschedule(
	repo domain.Repository,
	settings settings.Source,
	audit *audit.Dispatcher,
) *RequestReschedule {
	return &RequestReschedule{
		repo:     repo,
		settings: settings,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *RequestReschedule) Execute(
	ctx context.Context,
	in RequestRescheduleInput,
) (*models.RescheduleRequest, error) {

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

	proposed, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(st.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("validation_error")
	}

	// proposta já fora da antecedência mínima não entra na fila
	now := timezone.NowIn(st.Timezone)
	if err := domain.CheckNotice(proposed, now, st); err != nil {
		return nil, err
	}

	req := &models.RescheduleRequest{
		AppointmentID: ap.ID,
		ProposedAt:    proposed,
		Reason:        in.Reason,
		Status:        "pending",
	}

	if err := uc.repo.CreateRescheduleRequest(ctx, req); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.By,
		Action:   "reschedule_requested",
		Entity:   "reschedule_request",
		EntityID: &req.ID,
		Metadata: map[string]any{
			"appointment_id": ap.ID,
			"proposed_at":    proposed,
		},
	})

	return req, nil
}
