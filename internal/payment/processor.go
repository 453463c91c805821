package payment

import "context"

// Processor executa estornos no meio de pagamento. amountCents é o
// valor a devolver em centavos, paymentRef identifica o pagamento
// original no provedor.
type Processor interface {
	Refund(ctx context.Context, paymentRef string, amountCents int64) error
}

// Noop aceita qualquer estorno sem chamar provedor nenhum. Usado
// quando o gateway não está configurado e nos testes.
type Noop struct{}

func (Noop) Refund(ctx context.Context, paymentRef string, amountCents int64) error {
	return nil
}
