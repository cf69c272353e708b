package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-balance-api/internal/domain"
	"github.com/vfg2006/traffic-balance-api/internal/forecast"
	"github.com/vfg2006/traffic-balance-api/internal/usecases/balancing"
	"github.com/vfg2006/traffic-balance-api/pkg/apiErrors"
)

type ClientForecastResponse struct {
	*domain.ClientForecast
	OverallInfo forecast.TierInfo `json:"overall_info"`
}

func newClientForecastResponse(f *domain.ClientForecast) ClientForecastResponse {
	return ClientForecastResponse{
		ClientForecast: f,
		OverallInfo:    forecast.Info(f.OverallTier),
	}
}

// ListForecasts retorna a previsão de saldo de cada cliente do escopo, mais urgentes primeiro
func ListForecasts(service balancing.BalanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, code, err := scopeFromRequest(r)
		if err != nil {
			writeScopeError(w, code, err)
			return
		}

		forecasts, err := service.ListForecasts(scope)
		if err != nil {
			handleBalanceError(w, err)
			return
		}

		response := make([]ClientForecastResponse, 0, len(forecasts))
		for _, f := range forecasts {
			response = append(response, newClientForecastResponse(f))
		}

		writeJSON(w, http.StatusOK, response)
	}
}

func GetPortfolio(service balancing.BalanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, code, err := scopeFromRequest(r)
		if err != nil {
			writeScopeError(w, code, err)
			return
		}

		portfolio, err := service.GetPortfolio(scope)
		if err != nil {
			handleBalanceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, portfolio)
	}
}

// GetCalendar retorna as recargas agendadas agrupadas por dia.
// Aceita ?start= e ?end= no formato yyyy-mm-dd.
func GetCalendar(service balancing.BalanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, code, err := scopeFromRequest(r)
		if err != nil {
			writeScopeError(w, code, err)
			return
		}

		query := r.URL.Query()
		days, err := service.GetCalendar(scope, query.Get("start"), query.Get("end"))
		if err != nil {
			handleBalanceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, days)
	}
}

func GetClientForecast(service balancing.BalanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, code, err := scopeFromRequest(r)
		if err != nil {
			writeScopeError(w, code, err)
			return
		}

		clientID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		result, err := service.GetClientForecast(scope, clientID)
		if err != nil {
			handleBalanceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newClientForecastResponse(result))
	}
}

func UpdateClientTracking(service balancing.BalanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateClientTracking")

		scope, code, err := scopeFromRequest(r)
		if err != nil {
			writeScopeError(w, code, err)
			return
		}

		var request domain.UpdateTrackingRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			err = errors.Wrap(err, "erro ao decodificar acompanhamento")
			logrus.WithError(err).Warn("Requisição de acompanhamento inválida")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}
		request.ClientID = httprouter.ParamsFromContext(r.Context()).ByName("id")

		result, err := service.UpdateTracking(scope, &request)
		if err != nil {
			handleBalanceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newClientForecastResponse(result))
	}
}

func handleBalanceError(w http.ResponseWriter, err error) {
	var balanceErr *balancing.BalanceError
	if errors.As(err, &balanceErr) {
		var details any
		if balanceErr.ClientID != "" {
			details = map[string]any{"client_id": balanceErr.ClientID}
		}

		if apiErrors.StatusFor(balanceErr.Code) >= http.StatusInternalServerError {
			logrus.WithError(err).Error("Erro ao processar saldos")
			apiErrors.WriteError(w, balanceErr.Code, "Erro ao processar saldos", details)
			return
		}

		apiErrors.WriteError(w, balanceErr.Code, balanceErr.Error(), details)
		return
	}

	logrus.WithError(err).Error("Erro inesperado ao processar saldos")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno", nil)
}
