package forecast

import (
	"time"

	"github.com/vfg2006/traffic-balance-api/internal/domain"
)

var referenceNow = time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func stringPtr(v string) *string { return &v }

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func platform(saldo, valorDiario float64) domain.PlatformTracking {
	return domain.PlatformTracking{
		Saldo:       domain.NewNumber(saldo),
		ValorDiario: domain.NewNumber(valorDiario),
	}
}
