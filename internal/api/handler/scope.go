package handler

import (
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"github.com/vfg2006/traffic-balance-api/internal/domain"
	"github.com/vfg2006/traffic-balance-api/pkg/apiErrors"
	"github.com/vfg2006/traffic-balance-api/pkg/middleware"
)

var errForeignManager = errors.New("gestor não pode consultar outro gestor")

// scopeFromRequest monta o escopo de dados a partir do usuário autenticado.
// Administradores enxergam a agência inteira e podem filtrar por ?manager_id=;
// gestores ficam restritos aos próprios clientes.
func scopeFromRequest(r *http.Request) (domain.TrackingScope, string, error) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return domain.TrackingScope{}, apiErrors.ErrInvalidToken, errors.New("usuário não autenticado")
	}

	scope := domain.TrackingScope{AgencyID: claims.AgencyID}
	managerParam := r.URL.Query().Get("manager_id")

	if claims.UserRoleID != middleware.RoleAdmin {
		if managerParam != "" && managerParam != strconv.Itoa(claims.UserID) {
			return scope, apiErrors.ErrInsufficientPrivilege, errForeignManager
		}
		managerID := claims.UserID
		scope.ManagerID = &managerID
		return scope, "", nil
	}

	if managerParam != "" {
		managerID, err := strconv.Atoi(managerParam)
		if err != nil {
			return scope, apiErrors.ErrInvalidFormat, errors.Wrap(err, "manager_id inválido")
		}
		scope.ManagerID = &managerID
	}

	return scope, "", nil
}

func writeScopeError(w http.ResponseWriter, code string, err error) {
	apiErrors.WriteError(w, code, err.Error(), nil)
}
