package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/studio-console/internal/domain/schedule"
	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Staff
// --------------------------------------------------

func (r *ScheduleGormRepository) GetStaffMember(
	ctx context.Context,
	staffID uint,
) (*models.StaffMember, error) {

	var staff models.StaffMember
	if err := r.db.WithContext(ctx).First(&staff, staffID).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

// --------------------------------------------------
// Template
// --------------------------------------------------

func (r *ScheduleGormRepository) GetTemplate(
	ctx context.Context,
	templateID uint,
) (*models.ShiftTemplate, error) {

	var tpl models.ShiftTemplate
	if err := r.db.WithContext(ctx).First(&tpl, templateID).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

// --------------------------------------------------
// Entry (create / conflict)
// --------------------------------------------------

func (r *ScheduleGormRepository) CreateEntry(
	ctx context.Context,
	e *models.ScheduleEntry,
	allowOverlap bool,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockStaffRow(tx, e.StaffMemberID); err != nil {
			return err
		}

		if !allowOverlap {
			if err := assertNoShiftConflict(tx, e.StaffMemberID, e.Date, e.StartTime, e.EndTime, 0); err != nil {
				return err
			}
		}

		return tx.Create(e).Error
	})
}

func assertNoShiftConflict(
	tx *gorm.DB,
	staffID uint,
	date time.Time,
	startTime string,
	endTime string,
	excludeEntryID uint,
) error {

	var entries []models.ScheduleEntry
	q := tx.Model(&models.ScheduleEntry{}).
		Where("staff_member_id = ? AND date = ?", staffID, date)
	if excludeEntryID > 0 {
		q = q.Where("id <> ?", excludeEntryID)
	}
	if err := q.Find(&entries).Error; err != nil {
		return err
	}

	if domain.Conflicts(entries, startTime, endTime) {
		return httperr.ErrBusiness("shift_conflict")
	}
	return nil
}

// --------------------------------------------------
// Entry (read)
// --------------------------------------------------

func (r *ScheduleGormRepository) GetEntry(
	ctx context.Context,
	entryID uint,
) (*models.ScheduleEntry, error) {

	var e models.ScheduleEntry
	if err := r.db.WithContext(ctx).
		Preload("StaffMember.User").
		First(&e, entryID).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ScheduleGormRepository) ListEntriesForRange(
	ctx context.Context,
	staffID uint,
	from time.Time,
	to time.Time,
) ([]models.ScheduleEntry, error) {

	var entries []models.ScheduleEntry

	q := r.db.WithContext(ctx).
		Preload("StaffMember.User").
		Where("date >= ? AND date < ?", from, to)
	if staffID > 0 {
		q = q.Where("staff_member_id = ?", staffID)
	}

	if err := q.Order("date ASC, start_time ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// --------------------------------------------------
// Entry (state change)
// --------------------------------------------------

func (r *ScheduleGormRepository) UpdateEntry(
	ctx context.Context,
	e *models.ScheduleEntry,
) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *ScheduleGormRepository) ReassignEntry(
	ctx context.Context,
	e *models.ScheduleEntry,
	newStaffID uint,
	allowOverlap bool,
) error {

	prevStaffID := e.StaffMemberID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockStaffRow(tx, newStaffID); err != nil {
			return err
		}

		if !allowOverlap {
			if err := assertNoShiftConflict(tx, newStaffID, e.Date, e.StartTime, e.EndTime, e.ID); err != nil {
				return err
			}
		}

		e.StaffMemberID = newStaffID
		e.StaffMember = models.StaffMember{}
		return tx.Save(e).Error
	})

	if err != nil {
		e.StaffMemberID = prevStaffID
		return err
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
