package schedule

import (
	"context"
	"time"

	"github.com/BruksfildServices01/studio-console/internal/models"
)

type Repository interface {
	// -------- Staff --------
	GetStaffMember(
		ctx context.Context,
		staffID uint,
	) (*models.StaffMember, error)

	// -------- Template --------
	GetTemplate(
		ctx context.Context,
		templateID uint,
	) (*models.ShiftTemplate, error)

	// -------- Entry (create / conflict) --------
	// CreateEntry trava a linha do profissional, reconfere sobreposição
	// com os turnos do dia e insere na mesma transação. allowOverlap
	// pula a checagem de sobreposição.
	CreateEntry(
		ctx context.Context,
		e *models.ScheduleEntry,
		allowOverlap bool,
	) error

	// -------- Entry (read) --------
	GetEntry(
		ctx context.Context,
		entryID uint,
	) (*models.ScheduleEntry, error)

	// staffID = 0 lista os turnos de toda a equipe.
	ListEntriesForRange(
		ctx context.Context,
		staffID uint,
		from time.Time,
		to time.Time,
	) ([]models.ScheduleEntry, error)

	// -------- Entry (state change) --------
	UpdateEntry(
		ctx context.Context,
		e *models.ScheduleEntry,
	) error

	// ReassignEntry transfere o turno para outro profissional sob a
	// mesma trava de criação. Em caso de erro o struct não é alterado.
	ReassignEntry(
		ctx context.Context,
		e *models.ScheduleEntry,
		newStaffID uint,
		allowOverlap bool,
	) error
}
