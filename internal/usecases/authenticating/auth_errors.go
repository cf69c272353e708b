package authenticating

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials  = errors.New("credenciais inválidas")
	ErrUserDisabled        = errors.New("usuário desativado")
	ErrUserNotFound        = errors.New("usuário não encontrado")
	ErrInvalidToken        = errors.New("token inválido")
	ErrExpiredToken        = errors.New("token expirado")
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")
)

// Erros de login que o cliente enxerga apenas como "credenciais inválidas"
var credentialErrors = []error{ErrInvalidCredentials, ErrUserDisabled, ErrUserNotFound}

type AuthError struct {
	Err     error
	Code    string
	UserID  int // zero quando o usuário não foi identificado
	Details string
}

func (e *AuthError) Error() string {
	if e.Details == "" {
		return e.Err.Error()
	}
	if e.UserID != 0 {
		return fmt.Sprintf("%s (usuário %d): %s", e.Err, e.UserID, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Err, e.Details)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// WithUser associa o usuário ao erro para os logs
func (e *AuthError) WithUser(userID int) *AuthError {
	e.UserID = userID
	return e
}

func IsCredentialsError(err error) bool {
	for _, target := range credentialErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func NewAuthError(baseErr error, code string, details string) *AuthError {
	return &AuthError{Err: baseErr, Code: code, Details: details}
}
