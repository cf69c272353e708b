// Package simulator reúne as calculadoras de campanha usadas no site e no painel
// (ROAS, CPL e funil). Divisões por zero resultam em zero.
package simulator

import (
	"math"

	"github.com/vfg2006/traffic-balance-api/internal/domain"
	"github.com/vfg2006/traffic-balance-api/pkg/utils"
)

// FunnelInput são as premissas do simulador de funil
type FunnelInput struct {
	Investment     domain.Number `json:"investimento"`
	CPL            domain.Number `json:"cpl"`
	ConversionRate domain.Number `json:"taxa_conversao"` // percentual, 0 a 100
	AverageTicket  domain.Number `json:"ticket_medio"`
}

type FunnelResult struct {
	Investment float64 `json:"investimento"`
	Leads      int     `json:"leads"`
	Sales      int     `json:"vendas"`
	Revenue    float64 `json:"faturamento"`
	ROAS       float64 `json:"roas"`
	CPL        float64 `json:"cpl"`
	CPA        float64 `json:"cpa"`
	Profit     float64 `json:"lucro"`
}

// ROAS é o retorno sobre o investimento em anúncios (receita / investimento)
func ROAS(revenue, spend float64) float64 {
	if spend <= 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(revenue / spend)
}

// CPL é o custo por lead
func CPL(spend float64, leads int) float64 {
	if leads <= 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(spend / float64(leads))
}

// CPA é o custo por aquisição (venda)
func CPA(spend float64, sales int) float64 {
	if sales <= 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(spend / float64(sales))
}

// maxFunnelCount limita leads e vendas antes da conversão para int
const maxFunnelCount = math.MaxInt32

func toCount(f float64) int {
	if f >= maxFunnelCount {
		return maxFunnelCount
	}
	return int(f)
}

// Funnel projeta leads, vendas e faturamento a partir do investimento
func Funnel(input FunnelInput) FunnelResult {
	investment := utils.NonNegative(input.Investment.Float())
	cpl := utils.NonNegative(input.CPL.Float())
	rate := utils.NonNegative(input.ConversionRate.Float())
	if rate > 100 {
		rate = 100
	}
	ticket := utils.NonNegative(input.AverageTicket.Float())

	leads := 0
	if cpl > 0 {
		leads = toCount(investment / cpl)
	}

	sales := toCount(float64(leads) * rate / 100)
	revenue := utils.RoundWithTwoDecimalPlace(float64(sales) * ticket)

	return FunnelResult{
		Investment: investment,
		Leads:      leads,
		Sales:      sales,
		Revenue:    revenue,
		ROAS:       ROAS(revenue, investment),
		CPL:        CPL(investment, leads),
		CPA:        CPA(investment, sales),
		Profit:     utils.RoundWithTwoDecimalPlace(revenue - investment),
	}
}
