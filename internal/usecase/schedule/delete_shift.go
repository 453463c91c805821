package schedule

import (
	"context"

	"github.com/BruksfildServices01/studio-console/internal/audit"
	domain "github.com/BruksfildServices01/studio-console/internal/domain/schedule"
	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/models"
)

// DeleteShift tira o turno do quadro marcando como cancelado; a linha
// fica para histórico e auditoria.
type DeleteShift struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteShift(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteShift {
	return &DeleteShift{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteShift) Execute(
	ctx context.Context,
	entryID uint,
	by *uint,
) (*models.ScheduleEntry, error) {

	entry, err := uc.repo.GetEntry(ctx, entryID)
	if err != nil {
		return nil, httperr.ErrBusiness("shift_not_found")
	}

	if err := domain.CanCancel(entry.Status); err != nil {
		return nil, err
	}

	entry.Status = domain.EntryStatusCancelled
	if err := uc.repo.UpdateEntry(ctx, entry); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   by,
		Action:   "shift_cancelled",
		Entity:   "schedule_entry",
		EntityID: &entry.ID,
	})

	return entry, nil
}
