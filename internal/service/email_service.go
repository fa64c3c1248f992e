package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"

	"wanderlog/internal/config"
)

type EmailService interface {
	SendWelcomeEmail(ctx context.Context, toEmail, fullName string) error
}

type emailService struct {
	client *resend.Client
	cfg    *config.Config
}

func NewEmailService(cfg *config.Config) EmailService {
	return &emailService{
		client: resend.NewClient(cfg.ResendAPIKey),
		cfg:    cfg,
	}
}

var welcomeTemplate = template.Must(template.New("welcome").Parse(`
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
	<h2>Welcome to {{.AppName}}, {{.Name}}!</h2>
	<p>Your travel journal is ready. Add your first story and start pinning
	the trips you never want to forget.</p>
</div>
`))

func (s *emailService) SendWelcomeEmail(ctx context.Context, toEmail, fullName string) error {
	data := struct {
		AppName string
		Name    string
	}{
		AppName: s.cfg.AppName,
		Name:    fullName,
	}

	var body bytes.Buffer
	if err := welcomeTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render welcome email: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.cfg.AppName, s.cfg.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: fmt.Sprintf("Welcome to %s", s.cfg.AppName),
	}

	_, err := s.client.Emails.Send(params)
	return err
}
