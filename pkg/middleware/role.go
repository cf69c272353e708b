package middleware

import (
	"net/http"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-balance-api/pkg/apiErrors"
)

const (
	RoleAdmin   = 1 // dono da agência, enxerga todos os clientes
	RoleManager = 2 // gestor de tráfego, enxerga apenas os próprios clientes
)

var roleNames = map[int]string{
	RoleAdmin:   "admin",
	RoleManager: "gestor",
}

func RoleName(role int) string {
	if name, ok := roleNames[role]; ok {
		return name
	}
	return "desconhecido"
}

// RoleMiddleware libera a rota apenas para os papéis informados
func RoleMiddleware(allowedRoles ...int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				logrus.WithField("path", r.URL.Path).Warn("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			if !slices.Contains(allowedRoles, claims.UserRoleID) {
				logrus.WithFields(logrus.Fields{
					"user_id":   claims.UserID,
					"user_role": RoleName(claims.UserRoleID),
					"agency_id": claims.AgencyID,
					"path":      r.URL.Path,
				}).Warn("Acesso negado")
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func AdminOnly() func(http.Handler) http.Handler {
	return RoleMiddleware(RoleAdmin)
}

func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware(RoleAdmin, RoleManager)
}
