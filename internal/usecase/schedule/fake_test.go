package schedule

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/studio-console/internal/audit"
	domain "github.com/BruksfildServices01/studio-console/internal/domain/schedule"
	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/models"
)

var errNotFound = errors.New("not found")

// ======================================================
// FAKE REPOSITORY
// ======================================================

// fakeRepo guarda o quadro em memória com a mesma disciplina do
// repositório real: a checagem de sobreposição acontece sob a trava,
// junto com a escrita.
type fakeRepo struct {
	mu sync.Mutex

	staff     map[uint]*models.StaffMember
	templates map[uint]*models.ShiftTemplate

	entries     map[uint]*models.ScheduleEntry
	nextEntryID uint
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		staff:     make(map[uint]*models.StaffMember),
		templates: make(map[uint]*models.ShiftTemplate),
		entries:   make(map[uint]*models.ScheduleEntry),
	}
}

func (r *fakeRepo) addStaff(id uint, name string) *models.StaffMember {
	s := &models.StaffMember{ID: id, UserID: id, Active: true, User: models.User{ID: id, Name: name}}
	r.staff[id] = s
	return s
}

func (r *fakeRepo) addTemplate(tpl models.ShiftTemplate) *models.ShiftTemplate {
	r.templates[tpl.ID] = &tpl
	return &tpl
}

func (r *fakeRepo) addEntry(e models.ScheduleEntry) *models.ScheduleEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == 0 {
		r.nextEntryID++
		e.ID = r.nextEntryID
	} else if e.ID > r.nextEntryID {
		r.nextEntryID = e.ID
	}
	if e.Status == "" {
		e.Status = domain.EntryStatusScheduled
	}
	r.entries[e.ID] = &e

	cp := e
	return &cp
}

func (r *fakeRepo) storedEntry(id uint) *models.ScheduleEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil
	}
	cp := *e
	return &cp
}

func (r *fakeRepo) GetStaffMember(ctx context.Context, staffID uint) (*models.StaffMember, error) {
	s, ok := r.staff[staffID]
	if !ok {
		return nil, errNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) GetTemplate(ctx context.Context, templateID uint) (*models.ShiftTemplate, error) {
	tpl, ok := r.templates[templateID]
	if !ok {
		return nil, errNotFound
	}
	cp := *tpl
	return &cp, nil
}

func (r *fakeRepo) dayEntriesLocked(staffID uint, date time.Time, excludeID uint) []models.ScheduleEntry {
	var out []models.ScheduleEntry
	for _, e := range r.entries {
		if e.StaffMemberID != staffID || !e.Date.Equal(date) || e.ID == excludeID {
			continue
		}
		out = append(out, *e)
	}
	return out
}

func (r *fakeRepo) CreateEntry(ctx context.Context, e *models.ScheduleEntry, allowOverlap bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !allowOverlap {
		day := r.dayEntriesLocked(e.StaffMemberID, e.Date, 0)
		if domain.Conflicts(day, e.StartTime, e.EndTime) {
			return httperr.ErrBusiness("shift_conflict")
		}
	}

	r.nextEntryID++
	e.ID = r.nextEntryID

	cp := *e
	r.entries[e.ID] = &cp
	return nil
}

func (r *fakeRepo) hydrateLocked(e models.ScheduleEntry) models.ScheduleEntry {
	if s, ok := r.staff[e.StaffMemberID]; ok {
		e.StaffMember = *s
	}
	return e
}

func (r *fakeRepo) GetEntry(ctx context.Context, entryID uint) (*models.ScheduleEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[entryID]
	if !ok {
		return nil, errNotFound
	}
	cp := r.hydrateLocked(*e)
	return &cp, nil
}

func (r *fakeRepo) ListEntriesForRange(ctx context.Context, staffID uint, from, to time.Time) ([]models.ScheduleEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.ScheduleEntry
	for _, e := range r.entries {
		if staffID > 0 && e.StaffMemberID != staffID {
			continue
		}
		if e.Date.Before(from) || !e.Date.Before(to) {
			continue
		}
		out = append(out, r.hydrateLocked(*e))
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (r *fakeRepo) UpdateEntry(ctx context.Context, e *models.ScheduleEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *e
	r.entries[e.ID] = &cp
	return nil
}

func (r *fakeRepo) ReassignEntry(ctx context.Context, e *models.ScheduleEntry, newStaffID uint, allowOverlap bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !allowOverlap {
		day := r.dayEntriesLocked(newStaffID, e.Date, e.ID)
		if domain.Conflicts(day, e.StartTime, e.EndTime) {
			return httperr.ErrBusiness("shift_conflict")
		}
	}

	e.StaffMemberID = newStaffID
	e.StaffMember = models.StaffMember{}

	cp := *e
	r.entries[e.ID] = &cp
	return nil
}

// ======================================================
// FAKE COLLABORATORS
// ======================================================

type fakeSettings struct {
	st models.BookingSettings
}

func (f *fakeSettings) Get(ctx context.Context) (*models.BookingSettings, error) {
	cp := f.st
	return &cp, nil
}

type nopWriter struct{}

func (nopWriter) Log(userID *uint, action, entity string, entityID *uint, metadata any) error {
	return nil
}

func testDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(nopWriter{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// ======================================================
// FIXTURE
// ======================================================

type fixture struct {
	repo     *fakeRepo
	settings *fakeSettings
	audit    *audit.Dispatcher
}

func newFixture() *fixture {
	f := &fixture{
		repo:     newFakeRepo(),
		settings: &fakeSettings{st: models.BookingSettings{ID: 1, Timezone: "UTC"}},
		audit:    testDispatcher(),
	}

	f.repo.addStaff(1, "Marina")
	f.repo.addStaff(2, "Rafael")

	return f
}

func (f *fixture) placeUC() *PlaceShift {
	return NewPlaceShift(f.repo, f.settings, f.audit)
}

func (f *fixture) deleteUC() *DeleteShift {
	return NewDeleteShift(f.repo, f.audit)
}

func (f *fixture) monthViewUC() *MonthView {
	return NewMonthView(f.repo, f.settings)
}

func (f *fixture) requestSwapUC() *RequestSwap {
	return NewRequestSwap(f.repo, f.audit)
}

func (f *fixture) resolveSwapUC() *ResolveSwap {
	return NewResolveSwap(f.repo, f.settings, f.audit)
}

func mustDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}
