package handler

import (
	"net/http"

	"github.com/vfg2006/traffic-balance-api/internal/api/handler/router"
	"github.com/vfg2006/traffic-balance-api/internal/usecases/authenticating"
	"github.com/vfg2006/traffic-balance-api/internal/usecases/balancing"
	"github.com/vfg2006/traffic-balance-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func Balances(service balancing.BalanceService) []router.Route {
	return router.Use(middleware.AllRoles(),
		router.Route{
			Path:    "/v1/balances/forecasts",
			Method:  http.MethodGet,
			Handler: ListForecasts(service),
		},
		router.Route{
			Path:    "/v1/balances/portfolio",
			Method:  http.MethodGet,
			Handler: GetPortfolio(service),
		},
		router.Route{
			Path:    "/v1/balances/calendar",
			Method:  http.MethodGet,
			Handler: GetCalendar(service),
		},
		router.Route{
			Path:    "/v1/clients/:id/forecast",
			Method:  http.MethodGet,
			Handler: GetClientForecast(service),
		},
		router.Route{
			Path:    "/v1/clients/:id/tracking",
			Method:  http.MethodPut,
			Handler: UpdateClientTracking(service),
		},
		router.Route{
			Path:    "/v1/alerts",
			Method:  http.MethodGet,
			Handler: ListAlerts(service),
		},
	)
}

func Simulators(service balancing.BalanceService, coverDays int) []router.Route {
	return router.Use(middleware.AllRoles(),
		router.Route{
			Path:    "/v1/forecast/simulate",
			Method:  http.MethodPost,
			Handler: SimulateForecast(service, coverDays),
		},
		router.Route{
			Path:    "/v1/simulators/funnel",
			Method:  http.MethodPost,
			Handler: SimulateFunnel(),
		},
	)
}

func CronJobs(services CronJobServices) []router.Route {
	return router.Use(middleware.AdminOnly(),
		router.Route{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		router.Route{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	)
}
