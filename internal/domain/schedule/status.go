package schedule

import "github.com/BruksfildServices01/studio-console/internal/httperr"

// ===============================
// Entry Status
// ===============================

const (
	EntryStatusScheduled     = "scheduled"
	EntryStatusSwapRequested = "swap_requested"
	EntryStatusCancelled     = "cancelled"
)

// CanCancel valida a remoção de um turno do quadro. Turnos já
// cancelados não podem ser cancelados de novo.
func CanCancel(current string) error {
	if current == EntryStatusCancelled {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

// CanRequestSwap valida o pedido de troca: só turnos ativos sem pedido
// em aberto.
func CanRequestSwap(current string) error {
	if current != EntryStatusScheduled {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

// CanResolveSwap valida a resolução de um pedido de troca.
func CanResolveSwap(current string) error {
	if current != EntryStatusSwapRequested {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}
