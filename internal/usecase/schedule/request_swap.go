package schedule

import (
	"context"

	"github.com/BruksfildServices01/studio-console/internal/audit"
	domain "github.com/BruksfildServices01/studio-console/internal/domain/schedule"
	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/models"
)

// RequestSwap marca o turno como aguardando troca. O turno continua
// valendo na escala até a resolução.
type RequestSwap struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRequestSwap(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RequestSwap {
	return &RequestSwap{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RequestSwap) Execute(
	ctx context.Context,
	entryID uint,
	by *uint,
) (*models.ScheduleEntry, error) {

	entry, err := uc.repo.GetEntry(ctx, entryID)
	if err != nil {
		return nil, httperr.ErrBusiness("shift_not_found")
	}

	if err := domain.CanRequestSwap(entry.Status); err != nil {
		return nil, err
	}

	entry.Status = domain.EntryStatusSwapRequested
	if err := uc.repo.UpdateEntry(ctx, entry); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   by,
		Action:   "shift_swap_requested",
		Entity:   "schedule_entry",
		EntityID: &entry.ID,
	})

	return entry, nil
}
