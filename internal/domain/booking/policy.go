package booking

import (
	"time"

	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/models"
)

// ===============================
// Cancellation Policy
// ===============================

const (
	PolicyFullRefund    = "full_refund"
	PolicyPartialRefund = "partial_refund"
	PolicyNoRefund      = "no_refund"
	PolicyDepositOnly   = "deposit_only"
	PolicyManual        = "manual"
)

func IsValidPolicy(p string) bool {
	switch p {
	case PolicyFullRefund, PolicyPartialRefund, PolicyNoRefund, PolicyDepositOnly, PolicyManual:
		return true
	}
	return false
}

// RefundDecision é o resultado registrado no cancelamento. A execução
// do reembolso acontece fora daqui (internal/payment).
type RefundDecision struct {
	RefundCents          int64 `json:"refund_cents"`
	RequiresManualReview bool  `json:"requires_manual_review"`
}

// EvaluateCancellation calcula a decisão de reembolso a partir da
// política do serviço e do momento do cancelamento. Função pura: sem
// relógio próprio, sem I/O.
//
// Com paidCents zero a decisão é sempre zero/não-manual, qualquer que
// seja a política. Cancelamento após o horário agendado cai no mesmo
// ramo de "dentro da janela" da política parcial.
func EvaluateCancellation(
	svc *models.Service,
	scheduledAt time.Time,
	cancelledAt time.Time,
	paidCents int64,
) (RefundDecision, error) {

	if paidCents == 0 {
		return RefundDecision{}, nil
	}

	switch svc.CancellationPolicy {

	case PolicyFullRefund:
		return RefundDecision{RefundCents: paidCents}, nil

	case PolicyNoRefund:
		return RefundDecision{}, nil

	case PolicyDepositOnly:
		if !validPercentage(svc.DepositPercentage) {
			return RefundDecision{}, httperr.ErrBusiness("invalid_policy_configuration")
		}
		// O depósito é retido incondicionalmente; devolve o restante.
		return RefundDecision{
			RefundCents: percentageOf(paidCents, 100-svc.DepositPercentage),
		}, nil

	case PolicyPartialRefund:
		if !validPercentage(svc.RefundPercentage) {
			return RefundDecision{}, httperr.ErrBusiness("invalid_policy_configuration")
		}

		window := time.Duration(svc.CancellationWindowHours) * time.Hour
		if scheduledAt.Sub(cancelledAt) >= window {
			// Janela de cancelamento gratuito.
			return RefundDecision{RefundCents: paidCents}, nil
		}
		return RefundDecision{
			RefundCents: percentageOf(paidCents, svc.RefundPercentage),
		}, nil

	case PolicyManual:
		// Nenhuma ação automática; decisão vai para a fila do administrador.
		return RefundDecision{RequiresManualReview: true}, nil
	}

	return RefundDecision{}, httperr.ErrBusiness("invalid_policy_configuration")
}

func validPercentage(pct int) bool {
	return pct >= 0 && pct <= 100
}

// percentageOf aplica o percentual sobre centavos com arredondamento
// half-up.
func percentageOf(amountCents int64, pct int) int64 {
	return (amountCents*int64(pct) + 50) / 100
}
