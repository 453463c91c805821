package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/studio-console/internal/models"
)

type Repository interface {
	// -------- Service --------
	GetService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	// -------- Staff --------
	GetStaffMember(
		ctx context.Context,
		staffID uint,
	) (*models.StaffMember, error)

	// -------- Availability --------
	GetAvailabilityForWeekday(
		ctx context.Context,
		staffID uint,
		weekday int,
	) (*models.Availability, error)

	ListAvailability(
		ctx context.Context,
		staffID uint,
	) (Week, error)

	// -------- Busy intervals --------
	// excludeAppointmentID > 0 ignora o próprio agendamento, para
	// checagens de remarcação.
	ListBusyIntervals(
		ctx context.Context,
		staffID uint,
		from time.Time,
		to time.Time,
		excludeAppointmentID uint,
	) ([]Interval, error)

	// -------- Appointment (create / conflict) --------
	// CreateAppointment trava a linha do profissional, reconfere o
	// horário expandido pelo buffer e insere na mesma transação.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		buffer time.Duration,
	) error

	// -------- Appointment (read) --------
	GetAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	GetAppointmentByPublicRef(
		ctx context.Context,
		publicRef string,
	) (*models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		staffID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment (state change) --------
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// RescheduleAppointment move o agendamento para o novo horário sob
	// a mesma trava de criação, ignorando o horário atual do próprio
	// agendamento na checagem de conflito. Em caso de erro o struct
	// não é alterado.
	RescheduleAppointment(
		ctx context.Context,
		ap *models.Appointment,
		start time.Time,
		end time.Time,
		buffer time.Duration,
	) error

	// -------- Reschedule request --------
	// CreateRescheduleRequest garante no máximo uma solicitação
	// pendente por agendamento.
	CreateRescheduleRequest(
		ctx context.Context,
		req *models.RescheduleRequest,
	) error

	GetRescheduleRequest(
		ctx context.Context,
		requestID uint,
	) (*models.RescheduleRequest, error)

	UpdateRescheduleRequest(
		ctx context.Context,
		req *models.RescheduleRequest,
	) error
}
