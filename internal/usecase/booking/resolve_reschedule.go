package booking

import (
	"context"

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

type ResolveRescheduleInput struct {
	RequestID  uint
	Accept     bool
	AdminNotes string

	Notify bool
	By     *uint
}

// ======================================================
// USE CASE
// ======================================================

// ResolveReschedule decide uma solicitação pendente. Aceitar executa a
// remarcação com todas as regras de horário; se o horário proposto não
// estiver mais livre a solicitação continua pendente. Recusar não toca
// no agendamento.
type ResolveReschedule struct {
	repo       domain.Repository
	settings   settings.Source
	audit      *audit.Dispatcher
	reschedule *RescheduleAppointment
}

func NewResolveReschedule(
	repo domain.Repository,
	settings settings.Source,
	audit *audit.Dispatcher,
	reschedule *RescheduleAppointment,
) *ResolveReschedule {
	return &ResolveReschedule{
		repo:       repo,
		settings:   settings,
		audit:      audit,
		reschedule: reschedule,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ResolveReschedule) Execute(
	ctx context.Context,
	in ResolveRescheduleInput,
) (*models.RescheduleRequest, error) {

	req, err := uc.repo.GetRescheduleRequest(ctx, in.RequestID)
	if err != nil {
		return nil, httperr.ErrBusiness("request_not_found")
	}

	if req.Status != "pending" {
		return nil, httperr.ErrBusiness("invalid_transition")
	}

	st, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(st.Timezone)
	now := timezone.NowIn(st.Timezone)

	if in.Accept {
		proposed := req.ProposedAt.In(loc)

		_, err := uc.reschedule.Execute(ctx, RescheduleAppointmentInput{
			AppointmentID: req.AppointmentID,
			Date:          proposed.Format("2006-01-02"),
			Time:          proposed.Format("15:04"),
			Notify:        in.Notify,
			By:            in.By,
		})
		if err != nil {
			// horário proposto não serve mais; a solicitação fica
			// pendente para o administrador decidir de novo
			return nil, err
		}

		req.Status = "accepted"
	} else {
		req.Status = "declined"
	}

	req.AdminNotes = in.AdminNotes
	req.ResolvedAt = &now

	if err := uc.repo.UpdateRescheduleRequest(ctx, req); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.By,
		Action:   "reschedule_resolved",
		Entity:   "reschedule_request",
		EntityID: &req.ID,
		Metadata: map[string]any{"status": req.Status},
	})

	return req, nil
}
