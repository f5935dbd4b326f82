package email

import (
	"bytes"
	"html/template"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *zap.Logger
}

func NewEmailService(apiKey, from, fromName string, logger *zap.Logger) *EmailService {
	return &EmailService{
		client:   resend.NewClient(apiKey),
		from:     from,
		fromName: fromName,
		logger:   logger,
	}
}

var verificationTemplate = template.Must(template.New("verification").Parse(`
<p>Hi {{.FirstName}},</p>
<p>Confirm your email address by entering this code in the app:</p>
<p><strong>{{.Token}}</strong></p>
<p>The code expires in 24 hours.</p>
`))

var welcomeTemplate = template.Must(template.New("welcome").Parse(`
<p>Hi {{.FirstName}},</p>
<p>Welcome to NearMeet! Fill in your profile and set your location to start
seeing people around you.</p>
`))

func (s *EmailService) SendVerificationEmail(email, firstName, verificationToken string) error {
	html, err := render(verificationTemplate, map[string]string{
		"FirstName": firstName,
		"Token":     verificationToken,
	})
	if err != nil {
		return err
	}

	return s.send(email, "Verify your email", html)
}

func (s *EmailService) SendWelcomeEmail(email, firstName string) error {
	html, err := render(welcomeTemplate, map[string]string{
		"FirstName": firstName,
	})
	if err != nil {
		return err
	}

	return s.send(email, "Welcome to NearMeet!", html)
}

func (s *EmailService) send(to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		s.logger.Warn("email send failed", zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return err
	}
	return nil
}

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
