// Package authutil holds password rules and hashing for locally
// authenticated users.
package authutil

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt rejects input longer than 72 bytes.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

var (
	ErrPasswordTooShort = errors.New("password too short")
	ErrPasswordTooLong  = errors.New("password too long")
	ErrPasswordCommon   = errors.New("password too common")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// commonPasswords are rejected regardless of case.
var commonPasswords = map[string]struct{}{
	"123456": {}, "1234567": {}, "12345678": {}, "123456789": {}, "111111": {},
	"password": {}, "qwerty": {}, "abc123": {}, "iloveyou": {}, "letmein": {},
	"football": {}, "welcome": {}, "senha": {}, "senha123": {}, "mudar123": {},
	"jesus123": {}, "brasil": {}, "igreja": {},
}

// ValidatePassword checks length bounds and the common-password list.
func ValidatePassword(pw string) error {
	if len([]rune(pw)) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(pw) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	if _, bad := commonPasswords[strings.ToLower(pw)]; bad {
		return ErrPasswordCommon
	}
	return nil
}

// ValidateNewPassword checks a password and its confirmation.
func ValidateNewPassword(pw, confirm string) error {
	if pw != confirm {
		return ErrPasswordMismatch
	}
	return ValidatePassword(pw)
}

// Message translates a password error for the UI.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrPasswordTooShort):
		return "A senha deve ter pelo menos 6 caracteres."
	case errors.Is(err, ErrPasswordTooLong):
		return "A senha deve ter no máximo 72 caracteres."
	case errors.Is(err, ErrPasswordCommon):
		return "Senha fraca. Use uma senha mais forte."
	case errors.Is(err, ErrPasswordMismatch):
		return "As senhas não coincidem."
	case err == nil:
		return ""
	}
	return "Senha inválida."
}

// PasswordRules describes the rules next to password fields.
func PasswordRules() string {
	return "A senha deve ter entre 6 e 72 caracteres e não pode ser uma senha comum."
}

// HashPassword returns a bcrypt hash of pw.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether pw matches hash.
func CheckPassword(pw, hash string) bool {
	if pw == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
