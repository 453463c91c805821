package notify

import "context"

// Templates de notificação conhecidos.
const (
	TemplateBookingPending     = "booking_pending"
	TemplateBookingConfirmed   = "booking_confirmed"
	TemplateBookingCancelled   = "booking_cancelled"
	TemplateBookingRescheduled = "booking_rescheduled"
)

// Sender entrega notificações ao cliente. A falha de envio nunca deve
// derrubar a operação que a disparou.
type Sender interface {
	Send(ctx context.Context, recipient string, template string, data map[string]string) error
}

// Noop descarta todas as notificações. Usado quando o canal de e-mail
// não está configurado e nos testes.
type Noop struct{}

func (Noop) Send(ctx context.Context, recipient, template string, data map[string]string) error {
	return nil
}
