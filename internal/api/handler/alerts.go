package handler

import (
	"net/http"

	"github.com/vfg2006/traffic-balance-api/internal/usecases/balancing"
)

// ListAlerts retorna os alertas de saldo abertos no escopo do usuário
func ListAlerts(service balancing.BalanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, code, err := scopeFromRequest(r)
		if err != nil {
			writeScopeError(w, code, err)
			return
		}

		alerts, err := service.ListAlerts(scope)
		if err != nil {
			handleBalanceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, alerts)
	}
}
