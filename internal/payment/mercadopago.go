package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/refund"
)

const refundTimeout = 15 * time.Second

// MercadoPago estorna pagamentos via API do Mercado Pago.
type MercadoPago struct {
	client refund.Client
	log    *slog.Logger
}

func NewMercadoPago(accessToken string, log *slog.Logger) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{
		client: refund.NewClient(cfg),
		log:    log,
	}, nil
}

var _ Processor = (*MercadoPago)(nil)

func (m *MercadoPago) Refund(ctx context.Context, paymentRef string, amountCents int64) error {
	ctx, cancel := context.WithTimeout(ctx, refundTimeout)
	defer cancel()

	// a API trabalha em unidades monetárias, não em centavos
	amount := float64(amountCents) / 100

	resp, err := m.client.CreatePartialRefund(ctx, amount, paymentRef)
	if err != nil {
		m.log.Error("mercadopago refund failed",
			"payment_ref", paymentRef,
			"amount_cents", amountCents,
			"error", err,
		)
		return fmt.Errorf("mercadopago refund: %w", err)
	}

	m.log.Info("mercadopago refund created",
		"payment_ref", paymentRef,
		"amount_cents", amountCents,
		"refund_id", resp.ID,
		"status", resp.Status,
	)
	return nil
}
