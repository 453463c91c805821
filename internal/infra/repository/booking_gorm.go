package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/studio-console/internal/domain/booking"
	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, serviceID).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Staff
// --------------------------------------------------

func (r *BookingGormRepository) GetStaffMember(
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
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) GetAvailabilityForWeekday(
	ctx context.Context,
	staffID uint,
	weekday int,
) (*models.Availability, error) {

	var av models.Availability
	if err := r.db.WithContext(ctx).
		Where("staff_member_id = ? AND weekday = ?", staffID, weekday).
		First(&av).Error; err != nil {
		return nil, err
	}
	return &av, nil
}

func (r *BookingGormRepository) ListAvailability(
	ctx context.Context,
	staffID uint,
) (domain.Week, error) {

	var week []models.Availability
	if err := r.db.WithContext(ctx).
		Where("staff_member_id = ?", staffID).
		Order("weekday ASC").
		Find(&week).Error; err != nil {
		return nil, err
	}
	return domain.Week(week), nil
}

// --------------------------------------------------
// Busy intervals
// --------------------------------------------------

func (r *BookingGormRepository) ListBusyIntervals(
	ctx context.Context,
	staffID uint,
	from time.Time,
	to time.Time,
	excludeAppointmentID uint,
) ([]domain.Interval, error) {
	return busyIntervals(r.db.WithContext(ctx), staffID, from, to, excludeAppointmentID)
}

// busyIntervals junta agendamentos ativos e turnos de escala que tocam
// a janela [from, to), na convenção semiaberta.
func busyIntervals(
	tx *gorm.DB,
	staffID uint,
	from time.Time,
	to time.Time,
	excludeAppointmentID uint,
) ([]domain.Interval, error) {

	var busy []domain.Interval

	var apps []models.Appointment
	q := tx.Model(&models.Appointment{}).
		Select("scheduled_at", "end_time").
		Where(
			"staff_member_id = ? AND status <> 'cancelled' AND scheduled_at < ? AND end_time > ?",
			staffID, to, from,
		)
	if excludeAppointmentID > 0 {
		q = q.Where("id <> ?", excludeAppointmentID)
	}
	if err := q.Order("scheduled_at ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	for i := range apps {
		busy = append(busy, domain.Interval{
			Start: apps[i].ScheduledAt,
			End:   apps[i].EndTime,
		})
	}

	// turnos colocados no quadro também bloqueiam o horário do
	// profissional para reservas
	loc := from.Location()
	dayLow := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -1)
	dayHigh := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, loc)

	var entries []models.ScheduleEntry
	if err := tx.Model(&models.ScheduleEntry{}).
		Where(
			"staff_member_id = ? AND status <> 'cancelled' AND date >= ? AND date <= ?",
			staffID, dayLow, dayHigh,
		).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	for i := range entries {
		iv, ok := entryInterval(&entries[i], loc)
		if !ok {
			continue
		}
		if iv.Start.Before(to) && iv.End.After(from) {
			busy = append(busy, iv)
		}
	}

	return busy, nil
}

func entryInterval(e *models.ScheduleEntry, loc *time.Location) (domain.Interval, bool) {
	start, err := time.Parse("15:04", e.StartTime)
	if err != nil {
		return domain.Interval{}, false
	}
	end, err := time.Parse("15:04", e.EndTime)
	if err != nil {
		return domain.Interval{}, false
	}

	anchor := func(t time.Time) time.Time {
		return time.Date(
			e.Date.Year(), e.Date.Month(), e.Date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	iv := domain.Interval{Start: anchor(start), End: anchor(end)}
	if !iv.End.After(iv.Start) {
		return domain.Interval{}, false
	}
	return iv, true
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	buffer time.Duration,
) error {

	// sem profissional atribuído não há agenda a disputar
	if ap.StaffMemberID == nil {
		return r.db.WithContext(ctx).Create(ap).Error
	}

	staffID := *ap.StaffMemberID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockStaffRow(tx, staffID); err != nil {
			return err
		}

		if err := assertSlotFree(tx, staffID, ap.ScheduledAt, ap.EndTime, buffer, 0); err != nil {
			return err
		}

		return tx.Create(ap).Error
	})

	if httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness("slot_unavailable")
	}
	return err
}

// lockStaffRow serializa as escritas de agenda de um profissional:
// toda criação e remarcação disputa a mesma linha de staff_members.
func lockStaffRow(tx *gorm.DB, staffID uint) error {
	var staff models.StaffMember
	return tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&staff, staffID).Error
}

func assertSlotFree(
	tx *gorm.DB,
	staffID uint,
	start time.Time,
	end time.Time,
	buffer time.Duration,
	excludeAppointmentID uint,
) error {

	probeStart := start.Add(-buffer)
	probeEnd := end.Add(buffer)

	busy, err := busyIntervals(tx, staffID, probeStart, probeEnd, excludeAppointmentID)
	if err != nil {
		return err
	}

	candidate := domain.Interval{Start: start, End: end}
	if domain.OverlapsAny(candidate, buffer, busy) {
		return httperr.ErrBusiness("slot_unavailable")
	}
	return nil
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *BookingGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("StaffMember.User").
		First(&ap, appointmentID).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) GetAppointmentByPublicRef(
	ctx context.Context,
	publicRef string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("StaffMember.User").
		Where("public_ref = ?", publicRef).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	staffID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	q := r.db.WithContext(ctx).
		Preload("Service").
		Preload("StaffMember.User").
		Where("scheduled_at >= ? AND scheduled_at < ?", from, to)
	if staffID > 0 {
		q = q.Where("staff_member_id = ?", staffID)
	}

	if err := q.Order("scheduled_at ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *BookingGormRepository) RescheduleAppointment(
	ctx context.Context,
	ap *models.Appointment,
	start time.Time,
	end time.Time,
	buffer time.Duration,
) error {

	prevStart := ap.ScheduledAt
	prevEnd := ap.EndTime

	var err error
	if ap.StaffMemberID == nil {
		ap.ScheduledAt = start
		ap.EndTime = end
		err = r.db.WithContext(ctx).Save(ap).Error
	} else {
		staffID := *ap.StaffMemberID
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := lockStaffRow(tx, staffID); err != nil {
				return err
			}

			if err := assertSlotFree(tx, staffID, start, end, buffer, ap.ID); err != nil {
				return err
			}

			ap.ScheduledAt = start
			ap.EndTime = end
			return tx.Save(ap).Error
		})
	}

	if err != nil {
		ap.ScheduledAt = prevStart
		ap.EndTime = prevEnd
		if httperr.IsExclusionConflict(err) {
			return httperr.ErrBusiness("slot_unavailable")
		}
		return err
	}
	return nil
}

// --------------------------------------------------
// Reschedule request
// --------------------------------------------------

func (r *BookingGormRepository) CreateRescheduleRequest(
	ctx context.Context,
	req *models.RescheduleRequest,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ap models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ap, req.AppointmentID).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.RescheduleRequest{}).
			Where("appointment_id = ? AND status = 'pending'", req.AppointmentID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("request_already_pending")
		}

		return tx.Create(req).Error
	})

	if httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness("request_already_pending")
	}
	return err
}

func (r *BookingGormRepository) GetRescheduleRequest(
	ctx context.Context,
	requestID uint,
) (*models.RescheduleRequest, error) {

	var req models.RescheduleRequest
	if err := r.db.WithContext(ctx).First(&req, requestID).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *BookingGormRepository) UpdateRescheduleRequest(
	ctx context.Context,
	req *models.RescheduleRequest,
) error {
	return r.db.WithContext(ctx).Save(req).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
