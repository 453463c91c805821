package booking

import (
	"time"

	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Advance(ap *models.Appointment, target Status) error {
	if err := CanAdvance(Status(ap.Status), target); err != nil {
		return err
	}

	ap.Status = string(target)
	return nil
}

func Cancel(ap *models.Appointment, now time.Time, reason string, late bool) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	ap.CancellationReason = reason
	ap.LateCancellation = late
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// CheckIn registra a chegada do cliente; só faz sentido com o
// agendamento confirmado.
func CheckIn(ap *models.Appointment, now time.Time) error {
	if Status(ap.Status) != StatusConfirmed {
		return httperr.ErrBusiness("invalid_transition")
	}
	if ap.CheckedInAt != nil {
		return httperr.ErrBusiness("invalid_transition")
	}

	ap.CheckedInAt = &now
	return nil
}

// CheckOut registra a saída e conclui o agendamento.
func CheckOut(ap *models.Appointment, now time.Time) error {
	if ap.CheckedInAt == nil {
		return httperr.ErrBusiness("invalid_transition")
	}
	if err := Complete(ap, now); err != nil {
		return err
	}

	ap.CheckedOutAt = &now
	return nil
}
