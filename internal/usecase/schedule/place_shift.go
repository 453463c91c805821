package schedule

import (
	"context"
	"time"

	"github.com/BruksfildServices01/studio-console/internal/audit"
	domain "github.com/BruksfildServices01/studio-console/internal/domain/schedule"
	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/models"
	"github.com/BruksfildServices01/studio-console/internal/settings"
	"github.com/BruksfildServices01/studio-console/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type PlaceShiftInput struct {
	StaffID uint
	Date    string // YYYY-MM-DD

	// TemplateID preenchido copia horários e aparência do modelo;
	// senão StartTime/EndTime são obrigatórios.
	TemplateID *uint
	StartTime  string // HH:mm
	EndTime    string // HH:mm
	ShiftType  string
	Color      string

	LocationID *uint
	By         *uint
}

// ======================================================
// USE CASE
// ======================================================

type PlaceShift struct {
	repo     domain.Repository
	settings settings.Source
	audit    *audit.Dispatcher
}

func NewPlaceShift(
	repo domain.Repository,
	settings settings.Source,
	audit *audit.Dispatcher,
) *PlaceShift {
	return &PlaceShift{
		repo:     repo,
		settings: settings,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *PlaceShift) Execute(
	ctx context.Context,
	in PlaceShiftInput,
) (*models.ScheduleEntry, error) {

	// --------------------------------------------------
	// 1️⃣ Configurações + profissional
	// --------------------------------------------------
	st, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	staff, err := uc.repo.GetStaffMember(ctx, in.StaffID)
	if err != nil || !staff.Active {
		return nil, httperr.ErrBusiness("staff_not_found")
	}

	date, err := time.ParseInLocation(
		"2006-01-02",
		in.Date,
		timezone.Location(st.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("validation_error")
	}

	// --------------------------------------------------
	// 2️⃣ Horários (modelo ou avulso)
	// --------------------------------------------------
	startTime := in.StartTime
	endTime := in.EndTime
	shiftType := in.ShiftType
	color := in.Color

	if in.TemplateID != nil {
		tpl, err := uc.repo.GetTemplate(ctx, *in.TemplateID)
		if err != nil || !tpl.Active {
			return nil, httperr.ErrBusiness("template_not_found")
		}
		startTime = tpl.StartTime
		endTime = tpl.EndTime
		if shiftType == "" {
			shiftType = tpl.ShiftType
		}
		if color == "" {
			color = tpl.Color
		}
	}

	if shiftType == "" {
		shiftType = "regular"
	}

	if _, err := domain.SpanMinutes(startTime, endTime); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Criação sob trava (reconfere sobreposição)
	// --------------------------------------------------
	entry := &models.ScheduleEntry{
		StaffMemberID: staff.ID,
		Date:          date,
		StartTime:     startTime,
		EndTime:       endTime,
		ShiftType:     shiftType,
		Status:        domain.EntryStatusScheduled,
		Color:         color,
		LocationID:    in.LocationID,
		TemplateID:    in.TemplateID,
	}

	if err := uc.repo.CreateEntry(ctx, entry, st.AllowShiftOverlap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   in.By,
		Action:   "shift_placed",
		Entity:   "schedule_entry",
		EntityID: &entry.ID,
		Metadata: map[string]any{
			"staff_member_id": staff.ID,
			"date":            in.Date,
			"start_time":      startTime,
			"end_time":        endTime,
		},
	})

	return entry, nil
}
