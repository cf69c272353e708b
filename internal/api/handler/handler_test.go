package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-balance-api/infrastructure/repository/mocks"
	"github.com/vfg2006/traffic-balance-api/internal/api/handler/router"
	"github.com/vfg2006/traffic-balance-api/internal/config"
	"github.com/vfg2006/traffic-balance-api/internal/domain"
	"github.com/vfg2006/traffic-balance-api/internal/usecases/balancing"
	"github.com/vfg2006/traffic-balance-api/pkg/apiErrors"
	"github.com/vfg2006/traffic-balance-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

var (
	adminClaims   = &domain.Claims{UserID: 1, UserRoleID: middleware.RoleAdmin, AgencyID: "agencia-1"}
	managerClaims = &domain.Claims{UserID: 4, UserRoleID: middleware.RoleManager, AgencyID: "agencia-1"}
)

func intPtr(i int) *int { return &i }

func boolPtr(b bool) *bool { return &b }

type testEnv struct {
	handler      http.Handler
	trackingRepo *mocks.MockTrackingRepository
	alertRepo    *mocks.MockBalanceAlertRepository
	job          *stubCronJob
}

type stubCronJob struct {
	triggered bool
	busy      bool
}

func (s *stubCronJob) TriggerManualSync() bool {
	if s.busy {
		return false
	}
	s.triggered = true
	return true
}

func (s *stubCronJob) GetStatus() map[string]any {
	return map[string]any{"sync_enabled": true}
}

func newTestEnv(t *testing.T) *testEnv {
	ctrl := gomock.NewController(t)
	trackingRepo := mocks.NewMockTrackingRepository(ctrl)
	alertRepo := mocks.NewMockBalanceAlertRepository(ctrl)

	cfg := &config.Config{Forecast: config.Forecast{CoverDays: 30}}
	service := balancing.NewService(trackingRepo, alertRepo, cfg)
	job := &stubCronJob{}

	rt := router.New(
		router.WithRoutes(Balances(service)...),
		router.WithRoutes(Simulators(service, cfg.Forecast.CoverDays)...),
		router.WithRoutes(CronJobs(CronJobServices{CronJobTypeBalanceAlerts: job})...),
	)

	return &testEnv{handler: rt, trackingRepo: trackingRepo, alertRepo: alertRepo, job: job}
}

func (e *testEnv) do(method, target string, body string, claims *domain.Claims) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	if claims != nil {
		req = req.WithContext(middleware.WithClaims(req.Context(), claims))
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func trackingRecords() []*domain.TrackingRecord {
	return []*domain.TrackingRecord{
		{
			ID:         "trk-1",
			ClientID:   "cli-1",
			ClientName: "Ótica Central",
			Google: domain.PlatformTracking{
				Saldo:       domain.NewNumber(1000),
				ValorDiario: domain.NewNumber(50),
			},
		},
		{
			ID:         "trk-2",
			ClientID:   "cli-2",
			ClientName: "Padaria Aurora",
			Meta: domain.PlatformTracking{
				Saldo:       domain.NewNumber(100),
				ValorDiario: domain.NewNumber(50),
			},
			AdsActive: boolPtr(true),
		},
	}
}

func TestListForecastsHandler(t *testing.T) {
	t.Run("gestor enxerga apenas os próprios clientes", func(t *testing.T) {
		env := newTestEnv(t)
		expectedScope := domain.TrackingScope{AgencyID: "agencia-1", ManagerID: intPtr(4)}
		env.trackingRepo.EXPECT().ListTracking(expectedScope).Return(trackingRecords(), nil)

		rec := env.do(http.MethodGet, "/v1/balances/forecasts", "", managerClaims)
		require.Equal(t, http.StatusOK, rec.Code)

		var response []ClientForecastResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		require.Len(t, response, 2)
		assert.Equal(t, "cli-2", response[0].ClientID)
		assert.Equal(t, domain.TierCritical, response[0].OverallTier)
		assert.Equal(t, "Crítico", response[0].OverallInfo.Label)
		assert.Equal(t, "cli-1", response[1].ClientID)
	})

	t.Run("administrador filtra por gestor", func(t *testing.T) {
		env := newTestEnv(t)
		expectedScope := domain.TrackingScope{AgencyID: "agencia-1", ManagerID: intPtr(9)}
		env.trackingRepo.EXPECT().ListTracking(expectedScope).Return([]*domain.TrackingRecord{}, nil)

		rec := env.do(http.MethodGet, "/v1/balances/forecasts?manager_id=9", "", adminClaims)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("gestor não consulta outro gestor", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(http.MethodGet, "/v1/balances/forecasts?manager_id=9", "", managerClaims)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("manager_id inválido", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(http.MethodGet, "/v1/balances/forecasts?manager_id=abc", "", adminClaims)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidFormat, decodeAPIError(t, rec).Code)
	})

	t.Run("falha no banco não expõe detalhes", func(t *testing.T) {
		env := newTestEnv(t)
		env.trackingRepo.EXPECT().ListTracking(gomock.Any()).Return(nil, errors.New("pq: senha incorreta"))

		rec := env.do(http.MethodGet, "/v1/balances/forecasts", "", adminClaims)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "senha")
	})

	t.Run("sem autenticação", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(http.MethodGet, "/v1/balances/forecasts", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetPortfolioHandler(t *testing.T) {
	env := newTestEnv(t)
	env.trackingRepo.EXPECT().ListTracking(domain.TrackingScope{AgencyID: "agencia-1"}).Return(trackingRecords(), nil)

	rec := env.do(http.MethodGet, "/v1/balances/portfolio", "", adminClaims)
	require.Equal(t, http.StatusOK, rec.Code)

	var portfolio domain.PortfolioAggregate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &portfolio))
	assert.Equal(t, 2, portfolio.Count)
	assert.Equal(t, 1, portfolio.Critical)
	assert.Equal(t, 1, portfolio.Healthy)
	assert.Equal(t, 1, portfolio.Tiers[domain.TierHealthy])
	assert.InDelta(t, 1100.0, portfolio.TotalSaldo, 0.001)
}

func TestGetCalendarHandler(t *testing.T) {
	t.Run("agrupa recargas por dia", func(t *testing.T) {
		env := newTestEnv(t)

		nextWeek := time.Now().AddDate(0, 0, 7)
		nextWeek = time.Date(nextWeek.Year(), nextWeek.Month(), nextWeek.Day(), 0, 0, 0, 0, time.UTC)

		records := trackingRecords()
		records[0].Google.ProximaRecarga = &nextWeek
		records[1].Meta.ProximaRecarga = &nextWeek
		env.trackingRepo.EXPECT().ListTracking(gomock.Any()).Return(records, nil)

		rec := env.do(http.MethodGet, "/v1/balances/calendar", "", adminClaims)
		require.Equal(t, http.StatusOK, rec.Code)

		var days []domain.CalendarDay
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &days))
		require.Len(t, days, 1)
		assert.Equal(t, nextWeek.Format(time.DateOnly), days[0].Date)
		require.Len(t, days[0].Events, 2)
		assert.Equal(t, "cli-2", days[0].Events[0].ClientID)
		assert.InDelta(t, 1400.0, days[0].Events[0].SuggestedAmount, 0.001)
	})

	t.Run("data inválida", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(http.MethodGet, "/v1/balances/calendar?start=ontem", "", adminClaims)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidFormat, decodeAPIError(t, rec).Code)
	})
}

func TestClientForecastHandler(t *testing.T) {
	t.Run("cliente fora do escopo", func(t *testing.T) {
		env := newTestEnv(t)
		env.trackingRepo.EXPECT().GetTrackingByClientID(gomock.Any(), "cli-9").Return(nil, nil)

		rec := env.do(http.MethodGet, "/v1/clients/cli-9/forecast", "", managerClaims)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		apiErr := decodeAPIError(t, rec)
		assert.Equal(t, apiErrors.ErrClientNotFound, apiErr.Code)
		assert.Equal(t, map[string]any{"client_id": "cli-9"}, apiErr.Details)
	})

	t.Run("previsão do cliente", func(t *testing.T) {
		env := newTestEnv(t)
		env.trackingRepo.EXPECT().GetTrackingByClientID(gomock.Any(), "cli-1").Return(trackingRecords()[0], nil)

		rec := env.do(http.MethodGet, "/v1/clients/cli-1/forecast", "", adminClaims)
		require.Equal(t, http.StatusOK, rec.Code)

		var response ClientForecastResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, intPtr(20), response.Google.DaysRemaining)
		assert.Equal(t, domain.TierHealthy, response.OverallTier)
	})
}

func TestUpdateClientTrackingHandler(t *testing.T) {
	t.Run("aceita números como texto", func(t *testing.T) {
		env := newTestEnv(t)
		current := trackingRecords()[0]
		updated := trackingRecords()[0]
		updated.Google.Saldo = domain.NewNumber(150)

		env.trackingRepo.EXPECT().GetTrackingByClientID(gomock.Any(), "cli-1").Return(current, nil)
		env.trackingRepo.EXPECT().SaveTracking("trk-1", gomock.Any()).DoAndReturn(func(_ string, request *domain.UpdateTrackingRequest) error {
			assert.Equal(t, "cli-1", request.ClientID)
			assert.Equal(t, 150.0, request.Google.Saldo.Float())
			return nil
		})
		env.trackingRepo.EXPECT().GetTrackingByClientID(gomock.Any(), "cli-1").Return(updated, nil)

		rec := env.do(http.MethodPut, "/v1/clients/cli-1/tracking", `{"google":{"saldo":"150,00"}}`, managerClaims)
		require.Equal(t, http.StatusOK, rec.Code)

		var response ClientForecastResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, intPtr(3), response.Google.DaysRemaining)
	})

	t.Run("corpo inválido", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(http.MethodPut, "/v1/clients/cli-1/tracking", `{`, managerClaims)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("nenhum campo informado", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(http.MethodPut, "/v1/clients/cli-1/tracking", `{}`, managerClaims)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrTrackingNotChange, decodeAPIError(t, rec).Code)
	})
}

func TestSimulateForecastHandler(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		expectedDays  *int
		expectedTier  domain.Tier
		expectedValue float64
	}{
		{
			name:          "valores numéricos",
			body:          `{"saldo": 600, "valor_diario": 100}`,
			expectedDays:  intPtr(6),
			expectedTier:  domain.TierWarning,
			expectedValue: 2400,
		},
		{
			name:          "valores como texto com vírgula",
			body:          `{"saldo": "1.500,50", "valor_diario": "100"}`,
			expectedDays:  intPtr(16),
			expectedTier:  domain.TierHealthy,
			expectedValue: 1499.5,
		},
		{
			name:         "gasto diário ausente",
			body:         `{"saldo": 600}`,
			expectedDays: nil,
			expectedTier: domain.TierUnknown,
		},
		{
			name:         "valores malformados",
			body:         `{"saldo": {"a": 1}, "valor_diario": [1]}`,
			expectedDays: nil,
			expectedTier: domain.TierUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			rec := env.do(http.MethodPost, "/v1/forecast/simulate", tt.body, managerClaims)
			require.Equal(t, http.StatusOK, rec.Code)

			var response SimulateForecastResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedDays, response.DaysRemaining)
			assert.Equal(t, tt.expectedTier, response.Tier)
			assert.InDelta(t, tt.expectedValue, response.SuggestedAmount, 0.001)
		})
	}
}

func TestSimulateFunnelHandler(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/v1/simulators/funnel", `{"investimento": "1000", "cpl": 10, "taxa_conversao": 10, "ticket_medio": 500}`, managerClaims)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `"leads":100`))
}

func TestListAlertsHandler(t *testing.T) {
	env := newTestEnv(t)
	env.alertRepo.EXPECT().ListOpen(domain.TrackingScope{AgencyID: "agencia-1", ManagerID: intPtr(4)}).Return([]*domain.BalanceAlert{
		{ID: "a1", ClientID: "cli-2", Platform: domain.PlatformMeta, Tier: domain.TierCritical, DaysRemaining: 2},
	}, nil)

	rec := env.do(http.MethodGet, "/v1/alerts", "", managerClaims)
	require.Equal(t, http.StatusOK, rec.Code)

	var alerts []domain.BalanceAlert
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alerts))
	require.Len(t, alerts, 1)
	assert.Equal(t, "cli-2:meta", alerts[0].Key())
}

func TestCronHandlers(t *testing.T) {
	t.Run("gestor não dispara rotinas", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(http.MethodPost, "/v1/cron/balance-alerts/run", "", managerClaims)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, env.job.triggered)
	})

	t.Run("administrador dispara varredura", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(http.MethodPost, "/v1/cron/balance-alerts/run", "", adminClaims)
		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.True(t, env.job.triggered)
	})

	t.Run("varredura em andamento", func(t *testing.T) {
		env := newTestEnv(t)
		env.job.busy = true

		rec := env.do(http.MethodPost, "/v1/cron/balance-alerts/run", "", adminClaims)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("rotina desconhecida", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(http.MethodPost, "/v1/cron/meta/run", "", adminClaims)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrUnknownCronJob, decodeAPIError(t, rec).Code)
	})

	t.Run("status", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(http.MethodGet, "/v1/cron/status", "", adminClaims)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"balance-alerts":{"sync_enabled":true}}`, rec.Body.String())
	})
}
