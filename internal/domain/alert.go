package domain

import "time"

// BalanceAlert é um alerta aberto para uma plataforma de um cliente com saldo acabando
type BalanceAlert struct {
	ID            string     `json:"id"`
	ClientID      string     `json:"client_id"`
	ClientName    string     `json:"client_name"`
	AgencyID      string     `json:"agency_id"`
	ManagerID     *int       `json:"manager_id"`
	Platform      Platform   `json:"platform"`
	Tier          Tier       `json:"tier"`
	DaysRemaining int        `json:"days_remaining"`
	Saldo         float64    `json:"saldo"`
	ValorDiario   float64    `json:"valor_diario"`
	DepletionDate time.Time  `json:"depletion_date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
}

// Key identifica o alerta por cliente e plataforma
func (a *BalanceAlert) Key() string {
	return a.ClientID + ":" + string(a.Platform)
}

type BalanceAlertSweepResult struct {
	Opened   int `json:"opened"`
	Updated  int `json:"updated"`
	Resolved int `json:"resolved"`
}
