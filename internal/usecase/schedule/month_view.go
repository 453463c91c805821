package schedule

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/studio-console/internal/domain/schedule"
	"github.com/BruksfildServices01/studio-console/internal/dto"
	"github.com/BruksfildServices01/studio-console/internal/settings"
	"github.com/BruksfildServices01/studio-console/internal/timezone"
)

// MonthView monta o quadro mensal: grade de semanas completas, turnos
// por dia e o resumo do período exibido.
type MonthView struct {
	repo     domain.Repository
	settings settings.Source
}

func NewMonthView(
	repo domain.Repository,
	settings settings.Source,
) *MonthView {
	return &MonthView{
		repo:     repo,
		settings: settings,
	}
}

// staffID = 0 mostra o quadro da equipe inteira.
func (uc *MonthView) Execute(
	ctx context.Context,
	staffID uint,
	year int,
	month int,
) (*dto.MonthViewDTO, error) {

	st, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(st.Timezone)
	grid := domain.MonthGrid(year, time.Month(month), loc)

	from := grid[0]
	to := grid[len(grid)-1].AddDate(0, 0, 1)

	entries, err := uc.repo.ListEntriesForRange(ctx, staffID, from, to)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string][]dto.ScheduleEntryDTO, len(entries))
	for i := range entries {
		key := entries[i].Date.Format("2006-01-02")
		byDay[key] = append(byDay[key], dto.ToScheduleEntry(&entries[i]))
	}

	days := make([]dto.ScheduleDayDTO, 0, len(grid))
	for _, d := range grid {
		key := d.Format("2006-01-02")
		dayEntries := byDay[key]
		if dayEntries == nil {
			dayEntries = []dto.ScheduleEntryDTO{}
		}

		days = append(days, dto.ScheduleDayDTO{
			Date:    key,
			InMonth: d.Month() == time.Month(month),
			Entries: dayEntries,
		})
	}

	return &dto.MonthViewDTO{
		Year:    year,
		Month:   month,
		Days:    days,
		Summary: domain.Summarize(entries),
	}, nil
}
