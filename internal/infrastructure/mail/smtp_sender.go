// Package mail envía cotizaciones y facturas por correo vía SMTP.
package mail

import (
	"context"
	"fmt"
	"io"

	gomail "gopkg.in/gomail.v2"

	"github.com/jobblox/crm-api/internal/application/billing"
	"github.com/jobblox/crm-api/pkg/config"
)

var _ billing.MailSender = (*SMTPSender)(nil)

// SMTPSender implementa billing.MailSender usando gomail.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender construye el sender con la configuración SMTP de la app.
func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// SendDocument envía un correo con un adjunto opcional (PDF de factura o cotización).
// gomail no acepta context; el envío corre en una goroutine y se abandona si el
// contexto expira antes (la conexión SMTP se cierra sola por timeout del dialer).
func (s *SMTPSender) SendDocument(ctx context.Context, to, subject, body string, attachment []byte, filename string) error {
	if s.from == "" {
		return fmt.Errorf("mail: MAIL_FROM no configurado")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	if len(attachment) > 0 && filename != "" {
		m.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachment)
			return err
		}))
	}

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("mail: enviar a %s: %w", to, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("mail: enviar a %s: %w", to, ctx.Err())
	}
}
