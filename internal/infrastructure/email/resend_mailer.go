// Package email envía los correos transaccionales de la aplicación vía
// Resend. Solo hay uno: el link de restablecimiento de password.
package email

import (
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/dfquintero/mercado-api/internal/application/ports"
	"github.com/dfquintero/mercado-api/pkg/config"
)

var _ ports.Mailer = (*ResendMailer)(nil)

// ResendMailer implementación de ports.Mailer sobre la API de Resend.
type ResendMailer struct {
	client *resend.Client
	sender string
}

// NewResendMailer construye el mailer con la API key y el remitente configurados.
func NewResendMailer(cfg config.EmailConfig) *ResendMailer {
	return &ResendMailer{
		client: resend.NewClient(cfg.APIKey),
		sender: cfg.Sender,
	}
}

// SendPasswordResetEmail envía el link de reset. El link expira a los 15
// minutos; el texto lo advierte.
func (m *ResendMailer) SendPasswordResetEmail(to, resetURL string) error {
	params := &resend.SendEmailRequest{
		From:    m.sender,
		To:      []string{to},
		Subject: "Restablece tu password",
		Text: fmt.Sprintf(
			"Recibimos una solicitud para restablecer tu password.\n\n"+
				"Abre este link para continuar (expira en 15 minutos):\n%s\n\n"+
				"Si no solicitaste el cambio, ignora este correo.",
			resetURL,
		),
	}
	if _, err := m.client.Emails.Send(params); err != nil {
		return fmt.Errorf("enviar correo de reset: %w", err)
	}
	return nil
}
