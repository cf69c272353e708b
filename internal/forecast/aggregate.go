package forecast

import (
	"time"

	"github.com/vfg2006/traffic-balance-api/internal/domain"
	"github.com/vfg2006/traffic-balance-api/pkg/utils"
)

// Aggregate consolida a carteira: contagem por faixa e totais de investimento.
// Só entram registros com ao menos uma plataforma elegível com saldo e gasto
// diário positivos. A urgência geral considera apenas essas plataformas.
func Aggregate(records []*domain.TrackingRecord, now time.Time) domain.PortfolioAggregate {
	aggregate := domain.PortfolioAggregate{
		Tiers: map[domain.Tier]int{
			domain.TierCritical: 0,
			domain.TierWarning:  0,
			domain.TierCaution:  0,
			domain.TierHealthy:  0,
		},
		GeneratedAt: now,
	}

	for _, record := range records {
		if record == nil {
			continue
		}

		snapshot := Normalize(record)

		var days []*int
		for _, in := range snapshot.Inputs() {
			if !in.Forecastable() {
				continue
			}
			days = append(days, Compute(in.Balance, in.DailySpend, now).DaysRemaining)
		}

		if len(days) == 0 {
			continue
		}

		overall := OverallDays(days...)
		tier := Classify(overall)

		aggregate.Count++
		aggregate.Tiers[tier]++

		switch tier {
		case domain.TierCritical:
			aggregate.Critical++
		case domain.TierWarning:
			aggregate.Warning++
		default:
			aggregate.Healthy++
		}

		aggregate.TotalSaldo += snapshot.Google.Balance + snapshot.Meta.Balance
		aggregate.TotalDiario += snapshot.Google.DailySpend + snapshot.Meta.DailySpend
	}

	aggregate.TotalSaldo = utils.RoundWithTwoDecimalPlace(aggregate.TotalSaldo)
	aggregate.TotalDiario = utils.RoundWithTwoDecimalPlace(aggregate.TotalDiario)

	if aggregate.Count > 0 {
		aggregate.AverageDiario = utils.RoundWithTwoDecimalPlace(aggregate.TotalDiario / float64(aggregate.Count))
	}

	return aggregate
}
