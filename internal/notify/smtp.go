package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// SMTPSender envia as notificações por SMTP sem autenticação
// (compatível com Mailpit em desenvolvimento e relays internos).
type SMTPSender struct {
	addr string
	from string
	log  *slog.Logger
}

func NewSMTPSender(host string, port string, from string, log *slog.Logger) *SMTPSender {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@studio-console.local"
	}

	return &SMTPSender{
		addr: fmt.Sprintf("%s:%s", host, port),
		from: from,
		log:  log,
	}
}

var _ Sender = (*SMTPSender)(nil)

func (s *SMTPSender) Send(ctx context.Context, recipient, template string, data map[string]string) error {
	subject, body, err := render(template, data)
	if err != nil {
		return err
	}

	msg := buildMessage(s.from, recipient, subject, body)

	// smtp.SendMail não aceita context; rodamos em goroutine e
	// respeitamos o cancelamento do chamador.
	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(s.addr, nil, s.from, []string{recipient}, []byte(msg))
	}()

	select {
	case err := <-done:
		if err != nil {
			s.log.Warn("notification send failed",
				"template", template,
				"error", err,
			)
			return err
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func render(template string, data map[string]string) (subject, body string, err error) {
	get := func(key string) string { return data[key] }

	switch template {
	case TemplateBookingPending:
		subject = "Recebemos sua solicitação de agendamento"
		body = fmt.Sprintf(
			"Olá %s,\n\nRecebemos sua solicitação de %s para %s.\nAssim que for aprovada você recebe a confirmação.\n\nCódigo do agendamento: %s\n",
			get("customer_name"), get("service_name"), get("scheduled_at"), get("public_ref"),
		)
	case TemplateBookingConfirmed:
		subject = "Agendamento confirmado"
		body = fmt.Sprintf(
			"Olá %s,\n\nSeu agendamento de %s está confirmado para %s.\n\nCódigo do agendamento: %s\n",
			get("customer_name"), get("service_name"), get("scheduled_at"), get("public_ref"),
		)
	case TemplateBookingCancelled:
		subject = "Agendamento cancelado"
		body = fmt.Sprintf(
			"Olá %s,\n\nSeu agendamento de %s para %s foi cancelado.\n%s\n",
			get("customer_name"), get("service_name"), get("scheduled_at"), get("refund_note"),
		)
	case TemplateBookingRescheduled:
		subject = "Agendamento remarcado"
		body = fmt.Sprintf(
			"Olá %s,\n\nSeu agendamento de %s foi remarcado para %s.\n\nCódigo do agendamento: %s\n",
			get("customer_name"), get("service_name"), get("scheduled_at"), get("public_ref"),
		)
	default:
		return "", "", fmt.Errorf("unknown notification template: %s", template)
	}
	return subject, body, nil
}

func buildMessage(from, to, subject, body string) string {
	// mensagem RFC 5322 mínima, suficiente para relays comuns
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		body,
	)
}
