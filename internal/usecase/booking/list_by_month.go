package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/studio-console/internal/domain/booking"
	"github.com/BruksfildServices01/studio-console/internal/dto"
	"github.com/BruksfildServices01/studio-console/internal/settings"
	"github.com/BruksfildServices01/studio-console/internal/timezone"
)

type ListAppointmentsByMonth struct {
	repo     domain.Repository
	settings settings.Source
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
	settings settings.Source,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo:     repo,
		settings: settings,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	staffID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	st, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(st.Timezone)

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		staffID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	return dto.ToAppointmentList(appointments), nil
}
