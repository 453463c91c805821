package booking

import "github.com/BruksfildServices01/studio-console/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Cadeia de avanço, sem pular etapas. A aprovação (pending → new)
// devolve o agendamento ao funil normal.
var forward = map[Status]Status{
	StatusPending:   StatusNew,
	StatusNew:       StatusContacted,
	StatusContacted: StatusConfirmed,
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusNew, StatusContacted, StatusConfirmed, StatusCancelled, StatusCompleted:
		return Status(s), nil
	}
	return "", httperr.ErrBusiness("validation_error")
}

// InitialStatus define o status de entrada de um novo agendamento.
func InitialStatus(requireApproval bool) Status {
	if requireApproval {
		return StatusPending
	}
	return StatusNew
}

func IsTerminal(s Status) bool {
	return s == StatusCancelled || s == StatusCompleted
}

// ===============================
// Validations
// ===============================

func CanAdvance(current, target Status) error {
	if forward[current] != target {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

// CanCancel: qualquer estado não terminal pode ser cancelado. Cancelar
// duas vezes falha rápido, sem reavaliar política de reembolso.
func CanCancel(current Status) error {
	if IsTerminal(current) {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

// CanReschedule distingue o agendamento cancelado (erro próprio) dos
// demais estados terminais.
func CanReschedule(current Status) error {
	if current == StatusCancelled {
		return httperr.ErrBusiness("appointment_cancelled")
	}
	if IsTerminal(current) {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}
