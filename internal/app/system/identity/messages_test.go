package identity_test

import (
	"context"
	"testing"

	"github.com/dalemusser/agenda/internal/app/system/identity"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		flow identity.Flow
		code identity.Code
		want string
	}{
		{"login wrong password", identity.FlowLogin, identity.CodeWrongPassword, "Senha incorreta. Tente novamente."},
		{"login throttled", identity.FlowLogin, identity.CodeTooManyRequests, "Muitas tentativas de login. Tente novamente mais tarde."},
		{"login unmapped", identity.FlowLogin, identity.CodeEmailInUse, "Ocorreu um erro ao fazer login. Tente novamente."},
		{"signup in use", identity.FlowSignup, identity.CodeEmailInUse, "Este e-mail já está em uso. Tente fazer login ou use outro e-mail."},
		{"signup unknown", identity.FlowSignup, identity.Code("auth/x"), "Ocorreu um erro ao fazer o cadastro. Tente novamente."},
		{"reset not found", identity.FlowReset, identity.CodeUserNotFound, "Não há usuário registrado com este e-mail."},
		{"reset differs from login", identity.FlowReset, identity.CodeWrongPassword, "Ocorreu um erro ao enviar o e-mail de recuperação. Tente novamente."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := identity.Message(tt.flow, tt.code); got != tt.want {
				t.Errorf("Message = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFake(t *testing.T) {
	f := identity.NewFake()
	f.Tokens["tok"] = identity.Identity{UID: "u1", Email: "ana@igreja.org"}

	if _, err := f.Verify(context.Background(), "nope"); err != identity.ErrInvalidToken {
		t.Errorf("Verify unknown err = %v", err)
	}
	id, err := f.Verify(context.Background(), "tok")
	if err != nil || id.UID != "u1" {
		t.Fatalf("Verify = %+v, %v", id, err)
	}
}
