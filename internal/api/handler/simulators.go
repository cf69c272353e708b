package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-balance-api/internal/domain"
	"github.com/vfg2006/traffic-balance-api/internal/forecast"
	"github.com/vfg2006/traffic-balance-api/internal/simulator"
	"github.com/vfg2006/traffic-balance-api/internal/usecases/balancing"
	"github.com/vfg2006/traffic-balance-api/pkg/apiErrors"
)

type SimulateForecastRequest struct {
	Saldo       domain.Number `json:"saldo"`
	ValorDiario domain.Number `json:"valor_diario"`
	CoverDays   int           `json:"cover_days"`
}

type SimulateForecastResponse struct {
	domain.ForecastResult
	Info            forecast.TierInfo `json:"info"`
	SuggestedAmount float64           `json:"suggested_amount"`
}

// SimulateForecast calcula a previsão para valores digitados livremente.
// Campos ausentes ou não numéricos contam como zero.
func SimulateForecast(service balancing.BalanceService, defaultCoverDays int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SimulateForecastRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.WithError(errors.Wrap(err, "simulação de saldo")).Warn("Corpo inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		coverDays := req.CoverDays
		if coverDays <= 0 {
			coverDays = defaultCoverDays
		}

		result := service.Simulate(req.Saldo, req.ValorDiario)

		writeJSON(w, http.StatusOK, SimulateForecastResponse{
			ForecastResult:  result,
			Info:            forecast.Info(result.Tier),
			SuggestedAmount: forecast.SuggestRecharge(req.Saldo.Float(), req.ValorDiario.Float(), coverDays),
		})
	}
}

func SimulateFunnel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input simulator.FunnelInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			logrus.WithError(errors.Wrap(err, "simulação de funil")).Warn("Corpo inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		writeJSON(w, http.StatusOK, simulator.Funnel(input))
	}
}
