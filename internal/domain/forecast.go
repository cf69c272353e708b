package domain

import "time"

// Tier é a faixa de urgência derivada dos dias restantes de saldo
type Tier string

const (
	TierUnknown  Tier = "unknown"
	TierCritical Tier = "critical"
	TierWarning  Tier = "warning"
	TierCaution  Tier = "caution"
	TierHealthy  Tier = "healthy"
)

type ForecastResult struct {
	DaysRemaining    *int       `json:"days_remaining"`
	DepletionDate    *time.Time `json:"depletion_date"`
	PercentRemaining float64    `json:"percent_remaining"`
	Tier             Tier       `json:"tier"`
}

type PlatformForecast struct {
	ForecastResult
	Platform    Platform `json:"platform"`
	Saldo       float64  `json:"saldo"`
	ValorDiario float64  `json:"valor_diario"`
	Eligible    bool     `json:"eligible"`
}

type ClientForecast struct {
	ClientID    string           `json:"client_id"`
	ClientName  string           `json:"client_name"`
	ClientLogo  *string          `json:"client_logo"`
	ManagerID   *int             `json:"manager_id"`
	Google      PlatformForecast `json:"google"`
	Meta        PlatformForecast `json:"meta"`
	OverallDays *int             `json:"overall_days"`
	OverallTier Tier             `json:"overall_tier"`
}

type PortfolioAggregate struct {
	Count         int          `json:"count"`
	Critical      int          `json:"critical"`
	Warning       int          `json:"warning"`
	Healthy       int          `json:"healthy"`
	Tiers         map[Tier]int `json:"tiers"`
	TotalSaldo    float64      `json:"total_saldo"`
	TotalDiario   float64      `json:"total_diario"`
	AverageDiario float64      `json:"average_diario"`
	GeneratedAt   time.Time    `json:"generated_at"`
}

type RechargeEvent struct {
	ClientID        string    `json:"client_id"`
	ClientName      string    `json:"client_name"`
	ClientLogo      *string   `json:"client_logo"`
	ManagerID       *int      `json:"manager_id"`
	Platform        Platform  `json:"platform"`
	ScheduledDate   time.Time `json:"scheduled_date"`
	Saldo           float64   `json:"saldo"`
	ValorDiario     float64   `json:"valor_diario"`
	DaysRemaining   *int      `json:"days_remaining"`
	Tier            Tier      `json:"tier"`
	SuggestedAmount float64   `json:"suggested_amount"`
}

// CalendarDay agrupa os eventos de recarga de um dia (formato yyyy-mm-dd)
type CalendarDay struct {
	Date   string          `json:"date"`
	Events []RechargeEvent `json:"events"`
}
