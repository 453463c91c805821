package booking

import (
	"context"

	"github.com/BruksfildServices01/studio-console/internal/audit"
	domain "github.com/BruksfildServices01/studio-console/internal/domain/booking"
	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/models"
)

// AdvanceAppointment move o agendamento um passo no funil:
// pending → new (aprovação), new → contacted, contacted → confirmed.
type AdvanceAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAdvanceAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AdvanceAppointment {
	return &AdvanceAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *AdvanceAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	target string,
	by *uint,
) (*models.Appointment, error) {

	targetStatus, err := domain.ParseStatus(target)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.Advance(ap, targetStatus); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   by,
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"status": ap.Status},
	})

	return ap, nil
}
