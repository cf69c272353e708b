package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/traffic-balance-api/internal/domain"
	"github.com/vfg2006/traffic-balance-api/internal/usecases/authenticating"
	"github.com/vfg2006/traffic-balance-api/pkg/apiErrors"
)

type stubAuthenticator struct {
	claims *domain.Claims
	err    error
}

func (s stubAuthenticator) LoginUser(email, password string) (string, error) {
	return "", nil
}

func (s stubAuthenticator) ValidateToken(tokenString string) (*domain.Claims, error) {
	return s.claims, s.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	claims := &domain.Claims{UserID: 3, UserRoleID: RoleManager, AgencyID: "agencia-1"}

	tests := []struct {
		name           string
		path           string
		header         string
		auth           stubAuthenticator
		expectedStatus int
	}{
		{
			name:           "rota pública dispensa token",
			path:           "/healthcheck",
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "sem cabeçalho",
			path:           "/v1/balances/forecasts",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "sem prefixo Bearer",
			path:           "/v1/balances/forecasts",
			header:         "abc",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "token expirado",
			path:           "/v1/balances/forecasts",
			header:         "Bearer abc",
			auth:           stubAuthenticator{err: authenticating.NewAuthError(authenticating.ErrExpiredToken, apiErrors.ErrExpiredToken, "")},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "token válido",
			path:           "/v1/balances/forecasts",
			header:         "Bearer abc",
			auth:           stubAuthenticator{claims: claims},
			expectedStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *domain.Claims
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = ClaimsFromContext(r.Context())
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.auth)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.auth.claims != nil {
				assert.Equal(t, claims, seen)
			}
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		claims         *domain.Claims
		middleware     func(http.Handler) http.Handler
		expectedStatus int
	}{
		{
			name:           "sem claims",
			middleware:     AllRoles(),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "gestor em rota de administrador",
			claims:         &domain.Claims{UserID: 2, UserRoleID: RoleManager},
			middleware:     AdminOnly(),
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "administrador em rota de administrador",
			claims:         &domain.Claims{UserID: 1, UserRoleID: RoleAdmin},
			middleware:     AdminOnly(),
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "gestor em rota comum",
			claims:         &domain.Claims{UserID: 2, UserRoleID: RoleManager},
			middleware:     AllRoles(),
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "role desconhecido",
			claims:         &domain.Claims{UserID: 9, UserRoleID: 7},
			middleware:     AllRoles(),
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil)
			if tt.claims != nil {
				req = req.WithContext(WithClaims(req.Context(), tt.claims))
			}
			rec := httptest.NewRecorder()

			tt.middleware(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"https://painel.agencia.com"})(okHandler())

	t.Run("origem permitida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/alerts", nil)
		req.Header.Set("Origin", "https://painel.agencia.com")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, "https://painel.agencia.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("origem bloqueada", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/alerts", nil)
		req.Header.Set("Origin", "https://outro.com")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight responde sem chamar o handler", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/alerts", nil)
		req.Header.Set("Origin", "https://painel.agencia.com")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCorsWildcard(t *testing.T) {
	handler := Cors([]string{"*"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/alerts", nil)
	req.Header.Set("Origin", "https://qualquer.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, "https://qualquer.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), CorrelationIDHeader)
	assert.Equal(t, CorrelationIDHeader, rec.Header().Get("Access-Control-Expose-Headers"))
}

func TestRoleName(t *testing.T) {
	assert.Equal(t, "admin", RoleName(RoleAdmin))
	assert.Equal(t, "gestor", RoleName(RoleManager))
	assert.Equal(t, "desconhecido", RoleName(42))
}
