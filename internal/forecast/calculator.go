package forecast

import (
	"math"
	"time"

	"github.com/vfg2006/traffic-balance-api/internal/domain"
	"github.com/vfg2006/traffic-balance-api/pkg/utils"
)

// ReferenceWindowDays é a janela usada para o percentual restante
const ReferenceWindowDays = 30

// MaxForecastDays limita a previsão (cem anos) antes da conversão para int
const MaxForecastDays = 36500

// Compute calcula a previsão de uma plataforma a partir do saldo e do gasto diário
func Compute(balance, dailySpend float64, now time.Time) domain.ForecastResult {
	balance = utils.NonNegative(balance)
	dailySpend = utils.NonNegative(dailySpend)

	if dailySpend <= 0 {
		return domain.ForecastResult{Tier: domain.TierUnknown}
	}

	days := int(math.Min(math.Ceil(balance/dailySpend), MaxForecastDays))
	depletion := utils.StartOfDay(now).AddDate(0, 0, days)

	return domain.ForecastResult{
		DaysRemaining:    &days,
		DepletionDate:    &depletion,
		PercentRemaining: PercentRemaining(&days),
		Tier:             Classify(&days),
	}
}

// ComputeNumbers aplica a coerção de entrada e calcula a previsão
func ComputeNumbers(saldo, valorDiario domain.Number, now time.Time) domain.ForecastResult {
	return Compute(saldo.Float(), valorDiario.Float(), now)
}

// PercentRemaining é min(100, dias/30*100), zero quando não há previsão
func PercentRemaining(days *int) float64 {
	if days == nil || *days <= 0 {
		return 0
	}

	percent := float64(*days) / ReferenceWindowDays * 100
	if percent > 100 {
		return 100
	}

	return utils.RoundWithTwoDecimalPlace(percent)
}

// SuggestRecharge retorna o valor para cobrir coverDays de gasto a partir do saldo atual
func SuggestRecharge(balance, dailySpend float64, coverDays int) float64 {
	balance = utils.NonNegative(balance)
	dailySpend = utils.NonNegative(dailySpend)
	if dailySpend <= 0 || coverDays <= 0 {
		return 0
	}

	missing := dailySpend*float64(coverDays) - balance
	if missing <= 0 {
		return 0
	}

	return utils.RoundWithTwoDecimalPlace(missing)
}

// ForecastPlatform calcula a previsão de uma plataforma normalizada.
// Plataformas inelegíveis (recarga contínua, Meta desativado) ficam sem previsão.
func ForecastPlatform(in PlatformInput, now time.Time) domain.PlatformForecast {
	result := domain.ForecastResult{Tier: domain.TierUnknown}
	if in.Eligible() {
		result = Compute(in.Balance, in.DailySpend, now)
	}

	return domain.PlatformForecast{
		ForecastResult: result,
		Platform:       in.Platform,
		Saldo:          in.Balance,
		ValorDiario:    in.DailySpend,
		Eligible:       in.Eligible(),
	}
}

// ForecastClient calcula as previsões das duas plataformas e a urgência geral do cliente
func ForecastClient(record *domain.TrackingRecord, now time.Time) *domain.ClientForecast {
	snapshot := Normalize(record)

	google := ForecastPlatform(snapshot.Google, now)
	meta := ForecastPlatform(snapshot.Meta, now)

	overall := OverallDays(google.DaysRemaining, meta.DaysRemaining)

	return &domain.ClientForecast{
		ClientID:    snapshot.Record.ClientID,
		ClientName:  snapshot.Record.ClientName,
		ClientLogo:  snapshot.Record.ClientLogo,
		ManagerID:   snapshot.Record.ManagerID,
		Google:      google,
		Meta:        meta,
		OverallDays: overall,
		OverallTier: Classify(overall),
	}
}

// Forecasts calcula as previsões de todos os registros com o mesmo instante de referência
func Forecasts(records []*domain.TrackingRecord, now time.Time) []*domain.ClientForecast {
	forecasts := make([]*domain.ClientForecast, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		forecasts = append(forecasts, ForecastClient(record, now))
	}
	return forecasts
}
