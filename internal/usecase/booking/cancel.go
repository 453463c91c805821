package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/studio-console/internal/audit"
	domain "github.com/BruksfildServices01/studio-console/internal/domain/booking"
	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/models"
	"github.com/BruksfildServices01/studio-console/internal/notify"
	"github.com/BruksfildServices01/studio-console/internal/payment"
	"github.com/BruksfildServices01/studio-console/internal/settings"
	"github.com/BruksfildServices01/studio-console/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CancelAppointmentInput struct {
	AppointmentID uint
	Reason        string

	// SelfServe ativa as regras do autoatendimento: cancelamento
	// habilitado e antecedência mínima. Administradores cancelam sem
	// essas travas.
	SelfServe bool

	Notify bool
	By     *uint
}

type CancelAppointmentResult struct {
	Appointment *models.Appointment   `json:"appointment"`
	Decision    domain.RefundDecision `json:"refund_decision"`
	Warning     string                `json:"warning,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type CancelAppointment struct {
	repo      domain.Repository
	settings  settings.Source
	audit     *audit.Dispatcher
	processor payment.Processor
	notifier  notify.Sender
}

func NewCancelAppointment(
	repo domain.Repository,
	settings settings.Source,
	audit *audit.Dispatcher,
	processor payment.Processor,
	notifier notify.Sender,
) *CancelAppointment {
	return &CancelAppointment{
		repo:      repo,
		settings:  settings,
		audit:     audit,
		processor: processor,
		notifier:  notifier,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	in CancelAppointmentInput,
) (*CancelAppointmentResult, error) {

	// --------------------------------------------------
	// 1️⃣ Configurações + agendamento
	// --------------------------------------------------
	st, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	// cancelar duas vezes falha rápido, sem reavaliar reembolso
	if err := domain.CanCancel(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	now := timezone.NowIn(st.Timezone)
	noticeFloor := time.Duration(st.CancellationNoticeHours) * time.Hour
	insideFloor := noticeFloor > 0 && ap.ScheduledAt.Sub(now) < noticeFloor

	// --------------------------------------------------
	// 2️⃣ Travas do autoatendimento
	// --------------------------------------------------
	if in.SelfServe {
		if !st.AllowCancellation {
			return nil, httperr.ErrBusiness("cancellation_disabled")
		}
		if insideFloor {
			return nil, httperr.ErrBusiness("cancellation_window_closed")
		}
	}

	// --------------------------------------------------
	// 3️⃣ Decisão de reembolso (antes de qualquer mutação)
	// --------------------------------------------------
	var paid int64
	if ap.PaymentStatus == "paid" {
		paid = ap.PaymentAmountCents
	}

	decision, err := domain.EvaluateCancellation(&ap.Service, ap.ScheduledAt, now, paid)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Cancelamento + registro da decisão
	// --------------------------------------------------
	late := insideFloor || now.After(ap.ScheduledAt)
	if err := domain.Cancel(ap, now, in.Reason, late); err != nil {
		return nil, err
	}

	ap.RefundAmountCents = decision.RefundCents
	ap.RefundManualReview = decision.RequiresManualReview
	switch {
	case decision.RequiresManualReview:
		ap.RefundStatus = "manual_review"
	case decision.RefundCents > 0:
		ap.RefundStatus = "pending"
	default:
		ap.RefundStatus = "none"
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.By,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"refund_cents":  decision.RefundCents,
			"manual_review": decision.RequiresManualReview,
			"late":          late,
			"self_serve":    in.SelfServe,
		},
	})

	result := &CancelAppointmentResult{Appointment: ap, Decision: decision}

	// --------------------------------------------------
	// 5️⃣ Execução do reembolso (cancelamento já persistido)
	// --------------------------------------------------
	if !decision.RequiresManualReview && decision.RefundCents > 0 {
		if ap.PaymentRef == "" {
			// sem referência no provedor; fica pendente para conciliação
			result.Warning = "refund_pending"
		} else if err := uc.processor.Refund(ctx, ap.PaymentRef, decision.RefundCents); err != nil {
			ap.RefundStatus = "failed"
			_ = uc.repo.UpdateAppointment(ctx, ap)
			return nil, httperr.ErrBusiness("refund_failed")
		} else {
			ap.RefundStatus = "completed"
			ap.PaymentStatus = "refunded"
			if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
				return nil, err
			}
		}
	}

	// --------------------------------------------------
	// 6️⃣ Notificação
	// --------------------------------------------------
	if in.Notify && ap.CustomerEmail != "" {
		refundNote := ""
		switch {
		case decision.RequiresManualReview:
			refundNote = "Seu reembolso está em análise."
		case decision.RefundCents > 0:
			refundNote = "O reembolso será processado no meio de pagamento original."
		}

		err := uc.notifier.Send(ctx, ap.CustomerEmail, notify.TemplateBookingCancelled, map[string]string{
			"customer_name": ap.CustomerName,
			"service_name":  ap.Service.Name,
			"scheduled_at":  ap.ScheduledAt.Format("02/01/2006 15:04"),
			"refund_note":   refundNote,
		})
		if err != nil && result.Warning == "" {
			result.Warning = "notification_failed"
		}
	}

	return result, nil
}
