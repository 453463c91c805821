package booking

import (
	"context"

	"github.com/BruksfildServices01/studio-console/internal/audit"
	domain "github.com/BruksfildServices01/studio-console/internal/domain/booking"
	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/models"
	"github.com/BruksfildServices01/studio-console/internal/payment"
)

// ======================================================
// INPUT
// ======================================================

type RetryRefundInput struct {
	AppointmentID uint

	// AmountCents substitui o valor registrado; obrigatório para
	// liberar um reembolso em análise manual, opcional nos demais.
	AmountCents *int64

	By *uint
}

// ======================================================
// USE CASE
// ======================================================

// RetryRefund reexecuta um reembolso pendente ou falho e libera os
// casos em análise manual com o valor decidido pelo administrador.
type RetryRefund struct {
	repo      domain.Repository
	audit     *audit.Dispatcher
	processor payment.Processor
}

func NewRetryRefund(
	repo domain.Repository,
	audit *audit.Dispatcher,
	processor payment.Processor,
) *RetryRefund {
	return &RetryRefund{
		repo:      repo,
		audit:     audit,
		processor: processor,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *RetryRefund) Execute(
	ctx context.Context,
	in RetryRefundInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if domain.Status(ap.Status) != domain.StatusCancelled {
		return nil, httperr.ErrBusiness("invalid_transition")
	}

	switch ap.RefundStatus {
	case "pending", "manual_review", "failed":
		// reexecutável
	default:
		return nil, httperr.ErrBusiness("invalid_transition")
	}

	amount := ap.RefundAmountCents
	if in.AmountCents != nil {
		amount = *in.AmountCents
	}
	if amount <= 0 || amount > ap.PaymentAmountCents {
		return nil, httperr.ErrBusiness("validation_error")
	}
	if ap.RefundStatus == "manual_review" && in.AmountCents == nil {
		return nil, httperr.ErrBusiness("validation_error")
	}

	if ap.PaymentRef == "" {
		return nil, httperr.ErrBusiness("refund_failed")
	}

	if err := uc.processor.Refund(ctx, ap.PaymentRef, amount); err != nil {
		ap.RefundStatus = "failed"
		_ = uc.repo.UpdateAppointment(ctx, ap)
		return nil, httperr.ErrBusiness("refund_failed")
	}

	ap.RefundStatus = "completed"
	ap.RefundAmountCents = amount
	ap.RefundManualReview = false
	ap.PaymentStatus = "refunded"

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.By,
		Action:   "refund_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"refund_cents": amount},
	})

	return ap, nil
}
