package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/studio-console/internal/httperr"
)

// respondBusinessError traduz os códigos de negócio dos use cases para
// HTTP. Qualquer erro não mapeado vira 500 genérico, sem vazar detalhe.
func respondBusinessError(c *gin.Context, err error) {
	code, ok := httperr.CodeOf(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	switch code {

	// -------- 404 --------
	case "appointment_not_found":
		httperr.NotFound(c, code, "Agendamento não encontrado.")
	case "service_not_found":
		httperr.NotFound(c, code, "Serviço não encontrado.")
	case "staff_not_found":
		httperr.NotFound(c, code, "Profissional não encontrado.")
	case "shift_not_found":
		httperr.NotFound(c, code, "Turno não encontrado.")
	case "request_not_found":
		httperr.NotFound(c, code, "Solicitação não encontrada.")
	case "template_not_found":
		httperr.NotFound(c, code, "Modelo de turno não encontrado.")

	// -------- 409 --------
	case "slot_unavailable":
		httperr.Conflict(c, code, "Horário indisponível.")
	case "shift_conflict":
		httperr.Conflict(c, code, "O turno sobrepõe outro turno do profissional.")
	case "request_already_pending":
		httperr.Conflict(c, code, "Já existe uma solicitação pendente para este agendamento.")

	// -------- 502 --------
	case "refund_failed":
		httperr.BadGateway(c, code, "O estorno falhou; o agendamento segue cancelado e o reembolso será retentado.")

	// -------- 400 --------
	case "invalid_transition":
		httperr.BadRequest(c, code, "Transição de status inválida.")
	case "appointment_cancelled":
		httperr.BadRequest(c, code, "O agendamento está cancelado.")
	case "validation_error":
		httperr.BadRequest(c, code, "Dados inválidos.")
	case "invalid_policy_configuration":
		httperr.BadRequest(c, code, "Política de cancelamento mal configurada no serviço.")
	case "cancellation_disabled":
		httperr.BadRequest(c, code, "Cancelamento pelo cliente está desabilitado.")
	case "cancellation_window_closed":
		httperr.BadRequest(c, code, "Fora do prazo de cancelamento.")

	default:
		httperr.BadRequest(c, code, "Operação inválida.")
	}
}
