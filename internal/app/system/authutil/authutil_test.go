package authutil

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name string
		pw   string
		want error
	}{
		{"minimum length", "louvor", nil},
		{"mixed", "Culto@Domingo19", nil},
		{"accented runes count once", "oração", nil},
		{"at max length", strings.Repeat("a", MaxPasswordLength), nil},
		{"empty", "", ErrPasswordTooShort},
		{"five chars", "salmo", ErrPasswordTooShort},
		{"over max", strings.Repeat("a", MaxPasswordLength+1), ErrPasswordTooLong},
		{"common", "123456", ErrPasswordCommon},
		{"common pt-BR", "senha123", ErrPasswordCommon},
		{"common any case", "IGREJA", ErrPasswordCommon},
		{"common mixed case", "Jesus123", ErrPasswordCommon},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidatePassword(tt.pw); !errors.Is(err, tt.want) {
				t.Errorf("ValidatePassword(%q) = %v, want %v", tt.pw, err, tt.want)
			}
		})
	}
}

func TestValidateNewPassword(t *testing.T) {
	tests := []struct {
		pw, confirm string
		want        error
	}{
		{"segura99", "segura98", ErrPasswordMismatch},
		{"abc", "abc", ErrPasswordTooShort},
		{"senha", "senha", ErrPasswordTooShort},
		{"segura99", "segura99", nil},
	}
	for _, tt := range tests {
		if err := ValidateNewPassword(tt.pw, tt.confirm); !errors.Is(err, tt.want) {
			t.Errorf("ValidateNewPassword(%q, %q) = %v, want %v", tt.pw, tt.confirm, err, tt.want)
		}
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrPasswordTooShort, "A senha deve ter pelo menos 6 caracteres."},
		{ErrPasswordTooLong, "A senha deve ter no máximo 72 caracteres."},
		{ErrPasswordMismatch, "As senhas não coincidem."},
		{ErrPasswordCommon, "Senha fraca. Use uma senha mais forte."},
		{errors.New("other"), "Senha inválida."},
	}
	for _, tt := range tests {
		if got := Message(tt.err); got != tt.want {
			t.Errorf("Message(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestPasswordRules_MentionsBounds(t *testing.T) {
	rules := PasswordRules()
	if !strings.Contains(rules, "6") || !strings.Contains(rules, "72") {
		t.Errorf("PasswordRules() = %q, want both length bounds", rules)
	}
}

func TestHashAndCheck(t *testing.T) {
	const pw = "tesouraria2024"

	h1, err := HashPassword(pw)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword(pw)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 == pw || !strings.HasPrefix(h1, "$2") {
		t.Errorf("hash %q does not look like bcrypt", h1)
	}
	if h1 == h2 {
		t.Error("same password hashed twice should differ by salt")
	}

	tests := []struct {
		name string
		pw   string
		hash string
		want bool
	}{
		{"correct", pw, h1, true},
		{"other salt", pw, h2, true},
		{"wrong", "tesouraria2025", h1, false},
		{"empty password", "", h1, false},
		{"empty hash", pw, "", false},
		{"garbage hash", pw, "not-a-valid-hash", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckPassword(tt.pw, tt.hash); got != tt.want {
				t.Errorf("CheckPassword = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHashPassword_MultibyteAtMaxLength(t *testing.T) {
	pw := strings.Repeat("ç", MaxPasswordLength/2)
	if err := ValidatePassword(pw); err != nil {
		t.Fatalf("ValidatePassword: %v", err)
	}
	hash, err := HashPassword(pw)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(pw, hash) {
		t.Error("CheckPassword failed at max length")
	}
}
