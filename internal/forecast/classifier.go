package forecast

import (
	"sort"

	"github.com/vfg2006/traffic-balance-api/internal/domain"
)

// Limites das faixas de urgência (dias restantes, inclusive)
const (
	CriticalMaxDays = 3
	WarningMaxDays  = 7
	CautionMaxDays  = 14
)

// TierInfo carrega os metadados de apresentação de uma faixa
type TierInfo struct {
	Tier  domain.Tier `json:"tier"`
	Label string      `json:"label"`
	Color string      `json:"color"`
}

var tierInfo = map[domain.Tier]TierInfo{
	domain.TierCritical: {Tier: domain.TierCritical, Label: "Crítico", Color: "#dc2626"},
	domain.TierWarning:  {Tier: domain.TierWarning, Label: "Atenção", Color: "#f97316"},
	domain.TierCaution:  {Tier: domain.TierCaution, Label: "Cuidado", Color: "#eab308"},
	domain.TierHealthy:  {Tier: domain.TierHealthy, Label: "Saudável", Color: "#16a34a"},
	domain.TierUnknown:  {Tier: domain.TierUnknown, Label: "Sem previsão", Color: "#6b7280"},
}

// Classify mapeia dias restantes para a faixa de urgência
func Classify(days *int) domain.Tier {
	switch {
	case days == nil:
		return domain.TierUnknown
	case *days <= CriticalMaxDays:
		return domain.TierCritical
	case *days <= WarningMaxDays:
		return domain.TierWarning
	case *days <= CautionMaxDays:
		return domain.TierCaution
	default:
		return domain.TierHealthy
	}
}

// Info retorna os metadados de apresentação da faixa
func Info(tier domain.Tier) TierInfo {
	if info, ok := tierInfo[tier]; ok {
		return info
	}
	return tierInfo[domain.TierUnknown]
}

// Rank ordena as faixas da mais urgente (0) para a menos urgente.
// Sem previsão fica por último.
func Rank(tier domain.Tier) int {
	switch tier {
	case domain.TierCritical:
		return 0
	case domain.TierWarning:
		return 1
	case domain.TierCaution:
		return 2
	case domain.TierHealthy:
		return 3
	default:
		return 4
	}
}

// OverallDays é o menor valor entre os dias informados, ignorando nil.
// Retorna nil quando nenhum valor existe.
func OverallDays(days ...*int) *int {
	var min *int
	for _, d := range days {
		if d == nil {
			continue
		}
		if min == nil || *d < *min {
			v := *d
			min = &v
		}
	}
	return min
}

// RankByUrgency ordena os clientes do mais urgente para o menos urgente
func RankByUrgency(forecasts []*domain.ClientForecast) {
	sort.SliceStable(forecasts, func(i, j int) bool {
		return lessDays(forecasts[i].OverallDays, forecasts[j].OverallDays, forecasts[i].ClientName, forecasts[j].ClientName)
	})
}

func lessDays(a, b *int, nameA, nameB string) bool {
	switch {
	case a == nil && b == nil:
		return nameA < nameB
	case a == nil:
		return false
	case b == nil:
		return true
	case *a != *b:
		return *a < *b
	default:
		return nameA < nameB
	}
}
