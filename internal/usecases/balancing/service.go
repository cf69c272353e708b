package balancing

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-balance-api/infrastructure/repository"
	"github.com/vfg2006/traffic-balance-api/internal/config"
	"github.com/vfg2006/traffic-balance-api/internal/domain"
	"github.com/vfg2006/traffic-balance-api/internal/forecast"
	"github.com/vfg2006/traffic-balance-api/pkg/apiErrors"
	"github.com/vfg2006/traffic-balance-api/pkg/utils"
)

type BalanceService interface {
	ListForecasts(scope domain.TrackingScope) ([]*domain.ClientForecast, error)
	GetClientForecast(scope domain.TrackingScope, clientID string) (*domain.ClientForecast, error)
	GetPortfolio(scope domain.TrackingScope) (*domain.PortfolioAggregate, error)
	GetCalendar(scope domain.TrackingScope, start, end string) ([]domain.CalendarDay, error)
	UpdateTracking(scope domain.TrackingScope, request *domain.UpdateTrackingRequest) (*domain.ClientForecast, error)
	Simulate(saldo, valorDiario domain.Number) domain.ForecastResult
	ListAlerts(scope domain.TrackingScope) ([]*domain.BalanceAlert, error)
}

type Service struct {
	trackingRepo repository.TrackingRepository
	alertRepo    repository.BalanceAlertRepository
	cfg          *config.Config
	now          func() time.Time
}

func NewService(trackingRepo repository.TrackingRepository, alertRepo repository.BalanceAlertRepository, cfg *config.Config) BalanceService {
	return &Service{
		trackingRepo: trackingRepo,
		alertRepo:    alertRepo,
		cfg:          cfg,
		now:          time.Now,
	}
}

func (s *Service) loadTracking(scope domain.TrackingScope) ([]*domain.TrackingRecord, error) {
	records, err := s.trackingRepo.ListTracking(scope)
	if err != nil {
		logrus.WithError(err).WithField("agency_id", scope.AgencyID).Error("Erro ao buscar acompanhamentos")
		return nil, NewBalanceError(ErrFetchTracking, apiErrors.ErrDatabaseOperation, err.Error())
	}
	return records, nil
}

func (s *Service) ListForecasts(scope domain.TrackingScope) ([]*domain.ClientForecast, error) {
	records, err := s.loadTracking(scope)
	if err != nil {
		return nil, err
	}

	forecasts := forecast.Forecasts(records, s.now())
	forecast.RankByUrgency(forecasts)

	return forecasts, nil
}

func (s *Service) GetClientForecast(scope domain.TrackingScope, clientID string) (*domain.ClientForecast, error) {
	record, err := s.getRecord(scope, clientID)
	if err != nil {
		return nil, err
	}

	return forecast.ForecastClient(record, s.now()), nil
}

func (s *Service) getRecord(scope domain.TrackingScope, clientID string) (*domain.TrackingRecord, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, NewBalanceError(ErrClientIDRequired, apiErrors.ErrMissingRequiredData, "")
	}

	record, err := s.trackingRepo.GetTrackingByClientID(scope, clientID)
	if err != nil {
		return nil, NewBalanceErrorWithID(ErrFetchTracking, apiErrors.ErrDatabaseOperation, clientID, err.Error())
	}

	if record == nil {
		return nil, NewBalanceErrorWithID(ErrClientNotFound, apiErrors.ErrClientNotFound, clientID, "")
	}

	return record, nil
}

func (s *Service) GetPortfolio(scope domain.TrackingScope) (*domain.PortfolioAggregate, error) {
	records, err := s.loadTracking(scope)
	if err != nil {
		return nil, err
	}

	aggregate := forecast.Aggregate(records, s.now())
	return &aggregate, nil
}

// GetCalendar projeta as recargas agendadas do escopo e agrupa por dia.
// start e end são opcionais e inclusivos, no formato yyyy-mm-dd.
func (s *Service) GetCalendar(scope domain.TrackingScope, start, end string) ([]domain.CalendarDay, error) {
	startDate, err := utils.ParseOptionalDate(start)
	if err != nil {
		return nil, NewBalanceError(ErrInvalidDate, apiErrors.ErrInvalidFormat, fmt.Sprintf("start: %s", start))
	}

	endDate, err := utils.ParseOptionalDate(end)
	if err != nil {
		return nil, NewBalanceError(ErrInvalidDate, apiErrors.ErrInvalidFormat, fmt.Sprintf("end: %s", end))
	}

	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, NewBalanceError(ErrInvalidPeriod, apiErrors.ErrInvalidPeriod, "end deve ser maior ou igual a start")
	}

	records, err := s.loadTracking(scope)
	if err != nil {
		return nil, err
	}

	events := forecast.ProjectEvents(records, s.now(), forecast.WithCoverDays(s.cfg.Forecast.CoverDays))
	events = forecast.FilterEventsByPeriod(events, startDate, endDate)

	return forecast.GroupByDay(events), nil
}

func (s *Service) UpdateTracking(scope domain.TrackingScope, request *domain.UpdateTrackingRequest) (*domain.ClientForecast, error) {
	if request == nil || request.IsEmpty() {
		return nil, NewBalanceError(ErrNothingToUpdate, apiErrors.ErrTrackingNotChange, "")
	}

	for _, update := range []*domain.PlatformTrackingUpdate{request.Google, request.Meta} {
		if update == nil || update.ProximaRecarga == nil {
			continue
		}
		if _, err := utils.ParseDate(*update.ProximaRecarga); err != nil {
			return nil, NewBalanceErrorWithID(ErrInvalidDate, apiErrors.ErrInvalidFormat, request.ClientID, fmt.Sprintf("proxima_recarga: %s", *update.ProximaRecarga))
		}
	}

	record, err := s.getRecord(scope, request.ClientID)
	if err != nil {
		return nil, err
	}

	trackingID := record.ID
	if trackingID == "" {
		trackingID, err = utils.GenerateID()
		if err != nil {
			return nil, NewBalanceErrorWithID(ErrGenerateID, apiErrors.ErrInternalServer, request.ClientID, err.Error())
		}
	}

	if err := s.trackingRepo.SaveTracking(trackingID, request); err != nil {
		logrus.WithError(err).WithField("client_id", request.ClientID).Error("Erro ao salvar acompanhamento")
		return nil, NewBalanceErrorWithID(ErrSaveTracking, apiErrors.ErrDatabaseOperation, request.ClientID, err.Error())
	}

	logrus.WithField("client_id", request.ClientID).Info("Acompanhamento de saldo atualizado")

	return s.GetClientForecast(scope, request.ClientID)
}

func (s *Service) Simulate(saldo, valorDiario domain.Number) domain.ForecastResult {
	return forecast.ComputeNumbers(saldo, valorDiario, s.now())
}

func (s *Service) ListAlerts(scope domain.TrackingScope) ([]*domain.BalanceAlert, error) {
	alerts, err := s.alertRepo.ListOpen(scope)
	if err != nil {
		return nil, NewBalanceError(ErrFetchAlerts, apiErrors.ErrDatabaseOperation, err.Error())
	}
	return alerts, nil
}
