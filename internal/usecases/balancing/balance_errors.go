package balancing

import (
	"errors"
	"fmt"
)

var (
	ErrClientIDRequired  = errors.New("client ID is required")
	ErrClientNotFound    = errors.New("client not found")
	ErrNothingToUpdate   = errors.New("no tracking field to update")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidPeriod     = errors.New("invalid period")
	ErrFetchTracking     = errors.New("error fetching tracking from database")
	ErrSaveTracking      = errors.New("error saving tracking")
	ErrFetchAlerts       = errors.New("error fetching balance alerts")
	ErrGenerateID        = errors.New("error generating ID")
	ErrDatabaseOperation = errors.New("database operation error")
)

// BalanceError é um erro com contexto adicional para saldos de clientes
type BalanceError struct {
	Err      error  // Erro base
	Code     string // Código de erro para API
	ClientID string // ID do cliente envolvido (quando aplicável)
	Details  string // Detalhes adicionais
}

func (e *BalanceError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *BalanceError) Unwrap() error {
	return e.Err
}

func NewBalanceError(err error, code string, details string) *BalanceError {
	return &BalanceError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewBalanceErrorWithID(err error, code string, clientID string, details string) *BalanceError {
	return &BalanceError{
		Err:      err,
		Code:     code,
		ClientID: clientID,
		Details:  details,
	}
}
