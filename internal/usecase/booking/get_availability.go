package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/studio-console/internal/domain/booking"
	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/settings"
	"github.com/BruksfildServices01/studio-console/internal/timezone"
)

// GetAvailability enumera os horários livres de um profissional para
// um serviço em uma data. Consulta pura: nada é reservado aqui.
type GetAvailability struct {
	repo     domain.Repository
	settings settings.Source
}

func NewGetAvailability(
	repo domain.Repository,
	settings settings.Source,
) *GetAvailability {
	return &GetAvailability{
		repo:     repo,
		settings: settings,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	staffID uint,
	serviceID uint,
	date time.Time,
) ([]domain.TimeSlot, error) {

	st, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	svc, err := uc.repo.GetService(ctx, serviceID)
	if err != nil || !svc.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	loc := timezone.Location(st.Timezone)
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	av, err := uc.repo.GetAvailabilityForWeekday(ctx, staffID, int(dayStart.Weekday()))
	if err != nil {
		// dia fechado
		return []domain.TimeSlot{}, nil
	}
	week := domain.Week{*av}

	buffer := time.Duration(st.BufferMinutes) * time.Minute
	busy, err := uc.repo.ListBusyIntervals(
		ctx,
		staffID,
		dayStart.Add(-buffer),
		dayEnd.Add(buffer),
		0,
	)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(svc.DurationMin) * time.Minute
	now := timezone.NowIn(st.Timezone)

	slots := []domain.TimeSlot{}
	for start := range domain.BookableSlots(week, dayStart, dayEnd, duration, now, st, busy) {
		slots = append(slots, domain.TimeSlot{
			Start: start.Format("15:04"),
			End:   start.Add(duration).Format("15:04"),
		})
	}

	return slots, nil
}
