package services

import (
	"fmt"
	"html"
	"net/smtp"
	"strings"

	"github.com/dantebozzuti27/baseline-video/internal/config"
)

type EmailService struct {
	cfg config.SMTPConfig
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != "" && s.cfg.From != ""
}

// Send is a no-op when SMTP is not configured.
func (s *EmailService) Send(to, subject, body string) error {
	if !s.IsConfigured() {
		return nil
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, buildMessage(s.cfg.From, to, subject, body)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendClaimLink mails a player the link that binds their login to the
// roster record a coach created for them.
func (s *EmailService) SendClaimLink(to, playerName, teamName, claimURL string) error {
	subject, body := claimLinkMessage(playerName, teamName, claimURL)
	return s.Send(to, subject, body)
}

func claimLinkMessage(playerName, teamName, claimURL string) (subject, body string) {
	subject = fmt.Sprintf("Your %s player account is ready", teamName)
	body = fmt.Sprintf(`
		<html>
		<body>
			<h2>Claim your account</h2>
			<p>Hi %s,</p>
			<p>Your coach added you to <strong>%s</strong>.</p>
			<p><a href="%s">Click here to claim your player account</a></p>
			<p>The link can be used once.</p>
		</body>
		</html>
	`, html.EscapeString(playerName), html.EscapeString(teamName), html.EscapeString(claimURL))
	return subject, body
}

// Roster names end up in headers; a stray newline must not start a new one.
var headerReplacer = strings.NewReplacer("\r", " ", "\n", " ")

func buildMessage(from, to, subject, body string) []byte {
	return []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		headerReplacer.Replace(from), headerReplacer.Replace(to), headerReplacer.Replace(subject), body))
}
