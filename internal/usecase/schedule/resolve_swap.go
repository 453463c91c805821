package schedule

import (
	"context"

	"github.com/BruksfildServices01/studio-console/internal/audit"
	domain "github.com/BruksfildServices01/studio-console/internal/domain/schedule"
	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/models"
	"github.com/BruksfildServices01/studio-console/internal/settings"
)

// ======================================================
// INPUT
// ======================================================

type ResolveSwapInput struct {
	EntryID uint

	// Accept transfere o turno para NewStaffID; recusar devolve o
	// turno ao dono original sem mexer em mais nada.
	Accept     bool
	NewStaffID uint

	By *uint
}

// ======================================================
// USE CASE
// ======================================================

type ResolveSwap struct {
	repo     domain.Repository
	settings settings.Source
	audit    *audit.Dispatcher
}

func NewResolveSwap(
	repo domain.Repository,
	settings settings.Source,
	audit *audit.Dispatcher,
) *ResolveSwap {
	return &ResolveSwap{
		repo:     repo,
		settings: settings,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ResolveSwap) Execute(
	ctx context.Context,
	in ResolveSwapInput,
) (*models.ScheduleEntry, error) {

	entry, err := uc.repo.GetEntry(ctx, in.EntryID)
	if err != nil {
		return nil, httperr.ErrBusiness("shift_not_found")
	}

	if err := domain.CanResolveSwap(entry.Status); err != nil {
		return nil, err
	}

	if !in.Accept {
		entry.Status = domain.EntryStatusScheduled
		if err := uc.repo.UpdateEntry(ctx, entry); err != nil {
			return nil, err
		}

		uc.audit.Dispatch(audit.Event{
			UserID:   in.By,
			Action:   "shift_swap_declined",
			Entity:   "schedule_entry",
			EntityID: &entry.ID,
		})
		return entry, nil
	}

	st, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	newStaff, err := uc.repo.GetStaffMember(ctx, in.NewStaffID)
	if err != nil || !newStaff.Active {
		return nil, httperr.ErrBusiness("staff_not_found")
	}

	prevStatus := entry.Status
	entry.Status = domain.EntryStatusScheduled

	if err := uc.repo.ReassignEntry(ctx, entry, newStaff.ID, st.AllowShiftOverlap); err != nil {
		entry.Status = prevStatus
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.By,
		Action:   "shift_swap_accepted",
		Entity:   "schedule_entry",
		EntityID: &entry.ID,
		Metadata: map[string]any{"new_staff_member_id": newStaff.ID},
	})

	return entry, nil
}
