package email

import (
	"context"
	"fmt"
	"net/smtp"

	"kennel-backend/internal/config"
)

// InviteEmailData carries everything the invite message needs.
type InviteEmailData struct {
	Email      string
	InviteLink string
	ExpiresIn  string
}

type EmailService interface {
	SendInviteEmail(ctx context.Context, data InviteEmailData) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

func NewSMTPEmailService(cfg config.SMTPConfig) EmailService {
	return &smtpEmailService{
		smtpAddr: cfg.Host + ":" + cfg.Port,
		smtpFrom: cfg.From,
	}
}

// SendInviteEmail sends the password-setup link to a newly invited admin.
// Message copy is PT-BR, matching the rest of the product.
func (s *smtpEmailService) SendInviteEmail(ctx context.Context, data InviteEmailData) error {
	subject := "Convite para o painel Benites Bulls"
	body := fmt.Sprintf(`Olá,

	Você foi convidado para administrar o painel Benites Bulls.
	Use o link abaixo para criar sua senha e acessar o painel:
	%s

	O link é válido por %s.

	Se você não esperava este convite, ignore este e-mail.`, data.InviteLink, data.ExpiresIn)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, data.Email, subject, body))
	return smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{data.Email}, msg)
}
