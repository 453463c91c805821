package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/studio-console/internal/domain/booking"
	"github.com/BruksfildServices01/studio-console/internal/dto"
	"github.com/BruksfildServices01/studio-console/internal/settings"
	"github.com/BruksfildServices01/studio-console/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo     domain.Repository
	settings settings.Source
}

func NewListAppointmentsByDate(
	repo domain.Repository,
	settings settings.Source,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo:     repo,
		settings: settings,
	}
}

// staffID = 0 lista a agenda do estúdio inteiro.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	staffID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	st, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(st.Timezone)

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.AddDate(0, 0, 1)

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
