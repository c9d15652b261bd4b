package mailer

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuildPasswordResetEmail(t *testing.T) {
	e := BuildPasswordResetEmail(PasswordResetData{
		SiteName:  "Agenda de Serviços",
		Name:      "Ana",
		ResetLink: "https://agenda.example/login/reset/abc?x=1&y=2",
		ExpiresIn: "1 hora",
	})

	if e.Subject != "Agenda de Serviços: redefinição de senha" {
		t.Errorf("Subject = %q", e.Subject)
	}
	if !strings.Contains(e.TextBody, "https://agenda.example/login/reset/abc?x=1&y=2") {
		t.Error("text body should carry the raw link")
	}
	if !strings.Contains(e.TextBody, "Olá, Ana.") {
		t.Error("text body should greet the user")
	}
	if !strings.Contains(e.HTMLBody, "abc?x=1&amp;y=2") {
		t.Error("html body should escape the link")
	}
	if !strings.Contains(e.HTMLBody, "O link expira em 1 hora.") {
		t.Error("html body should mention expiry")
	}
}

func TestNew_EnabledByHost(t *testing.T) {
	if !New(Config{Host: "smtp.example", From: "agenda@example.org"}, zap.NewNop()).Enabled() {
		t.Error("mailer with host should be enabled")
	}
}

func TestSend_DisabledOnlyLogs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := New(Config{}, zap.New(core))

	if m.Enabled() {
		t.Fatal("mailer without host should be disabled")
	}
	if err := m.Send(context.Background(), Email{To: "ana@example.org", Subject: "x"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if logs.FilterMessage("smtp not configured; e-mail not sent").Len() != 1 {
		t.Error("expected a log entry for the skipped e-mail")
	}
	if err := m.Send(context.Background(), Email{}); err == nil {
		t.Error("empty recipient should fail")
	}
}
