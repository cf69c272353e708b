// Package forecast implementa a previsão de saldo e recarga: dias restantes,
// data de esgotamento, faixa de urgência, agregação da carteira e projeção de
// eventos para o calendário. Todas as funções são puras e nunca retornam erro;
// dados ausentes degradam para nil, zero ou exclusão.
package forecast

import (
	"time"

	"github.com/vfg2006/traffic-balance-api/internal/domain"
	"github.com/vfg2006/traffic-balance-api/pkg/utils"
)

// PlatformInput é o acompanhamento de uma plataforma já normalizado
type PlatformInput struct {
	Platform     domain.Platform
	Balance      float64
	DailySpend   float64
	NextRecharge *time.Time
	Continuous   bool
	Active       bool
}

// Eligible indica se a plataforma participa da previsão por esgotamento
func (p PlatformInput) Eligible() bool {
	return p.Active && !p.Continuous
}

// Forecastable exige plataforma elegível, gasto diário e saldo positivos
func (p PlatformInput) Forecastable() bool {
	return p.Eligible() && p.DailySpend > 0 && p.Balance > 0
}

// Snapshot é a visão tipada de um TrackingRecord
type Snapshot struct {
	Record *domain.TrackingRecord
	Google PlatformInput
	Meta   PlatformInput
}

func (s Snapshot) Inputs() []PlatformInput {
	return []PlatformInput{s.Google, s.Meta}
}

// Normalize é o único ponto de coerção das linhas de acompanhamento
func Normalize(record *domain.TrackingRecord) Snapshot {
	if record == nil {
		record = &domain.TrackingRecord{}
	}

	metaActive := record.AdsActive != nil && *record.AdsActive

	return Snapshot{
		Record: record,
		Google: normalizePlatform(domain.PlatformGoogle, record.Google, true),
		Meta:   normalizePlatform(domain.PlatformMeta, record.Meta, metaActive),
	}
}

func normalizePlatform(platform domain.Platform, tracking domain.PlatformTracking, active bool) PlatformInput {
	return PlatformInput{
		Platform:     platform,
		Balance:      utils.NonNegative(tracking.Saldo.Float()),
		DailySpend:   utils.NonNegative(tracking.ValorDiario.Float()),
		NextRecharge: tracking.ProximaRecarga,
		Continuous:   tracking.IsContinuous(),
		Active:       active,
	}
}
