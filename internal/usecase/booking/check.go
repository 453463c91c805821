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

// CheckInAppointment registra a chegada do cliente na recepção.
type CheckInAppointment struct {
	repo     domain.Repository
	settings settings.Source
	audit    *audit.Dispatcher
}

func NewCheckInAppointment(
	repo domain.Repository,
	settings settings.Source,
	audit *audit.Dispatcher,
) *CheckInAppointment {
	return &CheckInAppointment{
		repo:     repo,
		settings: settings,
		audit:    audit,
	}
}

func (uc *CheckInAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	by *uint,
) (*models.Appointment, error) {

	st, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(st.Timezone)
	if err := domain.CheckIn(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   by,
		Action:   "appointment_checked_in",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

// CheckOutAppointment registra a saída e conclui o atendimento.
type CheckOutAppointment struct {
	repo     domain.Repository
	settings settings.Source
	audit    *audit.Dispatcher
}

func NewCheckOutAppointment(
	repo domain.Repository,
	settings settings.Source,
	audit *audit.Dispatcher,
) *CheckOutAppointment {
	return &CheckOutAppointment{
		repo:     repo,
		settings: settings,
		audit:    audit,
	}
}

func (uc *CheckOutAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	by *uint,
) (*models.Appointment, error) {

	st, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(st.Timezone)
	if err := domain.CheckOut(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   by,
		Action:   "appointment_checked_out",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
