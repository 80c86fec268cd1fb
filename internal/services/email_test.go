package services

import (
	"strings"
	"testing"

	"github.com/dantebozzuti27/baseline-video/internal/config"
	"github.com/stretchr/testify/assert"
)

func configuredSMTP() config.SMTPConfig {
	return config.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     "587",
		Username: "user@example.com",
		Password: "password",
		From:     "noreply@example.com",
	}
}

func TestEmailService_IsConfigured(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*config.SMTPConfig)
		want   bool
	}{
		{"complete", func(*config.SMTPConfig) {}, true},
		{"missing host", func(c *config.SMTPConfig) { c.Host = "" }, false},
		{"missing username", func(c *config.SMTPConfig) { c.Username = "" }, false},
		{"missing password", func(c *config.SMTPConfig) { c.Password = "" }, false},
		{"missing from", func(c *config.SMTPConfig) { c.From = "" }, false},
		{"port is optional", func(c *config.SMTPConfig) { c.Port = "" }, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := configuredSMTP()
			tc.mutate(&cfg)
			assert.Equal(t, tc.want, NewEmailService(cfg).IsConfigured())
		})
	}
}

func TestEmailService_SendClaimLink_NotConfigured(t *testing.T) {
	svc := NewEmailService(config.SMTPConfig{})

	err := svc.SendClaimLink("player@example.com", "Sam Rivera", "River Hawks", "http://localhost:8080/claim/abc")

	assert.NoError(t, err)
}

func TestEmailService_Send_UnreachableServer(t *testing.T) {
	cfg := configuredSMTP()
	cfg.Host = "127.0.0.1"
	cfg.Port = "1"

	err := NewEmailService(cfg).Send("to@example.com", "Subject", "Body")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send email")
}

func TestClaimLinkMessage_EscapesRosterNames(t *testing.T) {
	subject, body := claimLinkMessage(`<b>Sam</b>`, "Hawks & Co", `http://x/claim/a"b`)

	assert.Equal(t, "Your Hawks & Co player account is ready", subject)
	assert.Contains(t, body, "Hi &lt;b&gt;Sam&lt;/b&gt;,")
	assert.Contains(t, body, "<strong>Hawks &amp; Co</strong>")
	assert.Contains(t, body, `href="http://x/claim/a&#34;b"`)
	assert.NotContains(t, body, "<b>Sam</b>")
}

func TestBuildMessage_StripsHeaderNewlines(t *testing.T) {
	msg := string(buildMessage("noreply@example.com", "sam@example.com", "Your Hawks\r\nBcc: evil@example.com team", "<p>hi</p>"))

	headers, body, ok := strings.Cut(msg, "\r\n\r\n")
	assert.True(t, ok)
	assert.Equal(t, "<p>hi</p>", body)
	assert.NotContains(t, headers, "\r\nBcc:")
	assert.Contains(t, headers, "Subject: Your Hawks  Bcc: evil@example.com team")
}
