package session

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const minPasswordLen = 6

// Registration form errors, worded exactly as the UI shows them.
var (
	ErrMissingEmail     = errors.New("Informe seu email")
	ErrMissingName      = errors.New("Informe seu nome completo")
	ErrPasswordMismatch = errors.New("As senhas não coincidem")
	ErrPasswordTooShort = errors.New("A senha deve ter pelo menos 6 caracteres")
)

// ValidateRegistration runs the local checks that must pass before any
// network call is made.
func ValidateRegistration(in RegisterInput) error {
	if strings.TrimSpace(in.Email) == "" {
		return ErrMissingEmail
	}
	if strings.TrimSpace(in.FullName) == "" {
		return ErrMissingName
	}
	if in.Password != in.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	return nil
}
