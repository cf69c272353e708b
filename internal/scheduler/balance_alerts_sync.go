// Package scheduler contém os serviços agendados da API
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-balance-api/infrastructure/repository"
	"github.com/vfg2006/traffic-balance-api/internal/config"
	"github.com/vfg2006/traffic-balance-api/internal/domain"
	"github.com/vfg2006/traffic-balance-api/internal/forecast"
	"github.com/vfg2006/traffic-balance-api/pkg/utils"
)

type BalanceAlertSyncConfig struct {
	CronSchedule string
	Enabled      bool
}

// BalanceAlertSyncService varre os saldos de todas as agências e mantém um
// alerta aberto por cliente e plataforma em faixa crítica ou de atenção.
type BalanceAlertSyncService struct {
	scheduler           *gocron.Scheduler
	trackingRepo        repository.TrackingRepository
	alertRepo           repository.BalanceAlertRepository
	config              BalanceAlertSyncConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResult          domain.BalanceAlertSweepResult
}

func NewBalanceAlertSyncService(
	trackingRepo repository.TrackingRepository,
	alertRepo repository.BalanceAlertRepository,
	cfg *config.Config,
) *BalanceAlertSyncService {
	syncConfig := BalanceAlertSyncConfig{
		CronSchedule: cfg.BalanceAlertSync.CronSchedule,
		Enabled:      cfg.BalanceAlertSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
	}).Info("Configuração do agendador de alertas de saldo carregada")

	return &BalanceAlertSyncService{
		scheduler:    gocron.NewScheduler(time.Local),
		trackingRepo: trackingRepo,
		alertRepo:    alertRepo,
		config:       syncConfig,
	}
}

func (s *BalanceAlertSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de alertas de saldo desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de alertas de saldo")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.SweepBalanceAlerts(ctx); err != nil {
			logrus.WithError(err).Error("Erro na varredura de alertas de saldo")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar varredura de alertas de saldo: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de alertas de saldo")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *BalanceAlertSyncService) SweepBalanceAlerts(ctx context.Context) error {
	if !s.acquire() {
		logrus.Warn("Varredura de alertas de saldo já está em execução")
		return nil
	}
	defer s.release()

	return s.sweep(ctx)
}

// acquire marca a varredura como em execução; false se já houver uma
func (s *BalanceAlertSyncService) acquire() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	return true
}

func (s *BalanceAlertSyncService) release() {
	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()
}

// sweep exige acquire feito pelo chamador
func (s *BalanceAlertSyncService) sweep(ctx context.Context) error {
	logrus.Info("Iniciando varredura de alertas de saldo")

	// escopo vazio: todas as agências
	scope := domain.TrackingScope{}

	records, err := s.trackingRepo.ListTracking(scope)
	if err != nil {
		return fmt.Errorf("erro ao buscar acompanhamentos: %w", err)
	}

	openAlerts, err := s.alertRepo.ListOpen(scope)
	if err != nil {
		return fmt.Errorf("erro ao buscar alertas abertos: %w", err)
	}

	result, err := s.processSweepWithDate(ctx, records, openAlerts, time.Now())
	if err != nil {
		return err
	}

	s.syncMutex.Lock()
	s.lastResult = result
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"opened":   result.Opened,
		"updated":  result.Updated,
		"resolved": result.Resolved,
	}).Info("Varredura de alertas de saldo concluída")

	return nil
}

// processSweepWithDate compara as previsões do momento com os alertas abertos.
// Plataformas em faixa crítica ou de atenção abrem ou atualizam alerta; as demais
// resolvem o alerta aberto, se houver.
func (s *BalanceAlertSyncService) processSweepWithDate(
	ctx context.Context,
	records []*domain.TrackingRecord,
	openAlerts []*domain.BalanceAlert,
	now time.Time,
) (domain.BalanceAlertSweepResult, error) {
	result := domain.BalanceAlertSweepResult{}

	openByKey := make(map[string]*domain.BalanceAlert, len(openAlerts))
	for _, alert := range openAlerts {
		openByKey[alert.Key()] = alert
	}

	alerts := make([]*domain.BalanceAlert, 0)
	for _, record := range records {
		if record == nil {
			continue
		}

		for _, in := range forecast.Normalize(record).Inputs() {
			platformForecast := forecast.ForecastPlatform(in, now)
			if !isAlertTier(platformForecast.Tier) {
				continue
			}

			alert := &domain.BalanceAlert{
				ClientID:      record.ClientID,
				ClientName:    record.ClientName,
				AgencyID:      record.AgencyID,
				ManagerID:     record.ManagerID,
				Platform:      in.Platform,
				Tier:          platformForecast.Tier,
				DaysRemaining: *platformForecast.DaysRemaining,
				Saldo:         platformForecast.Saldo,
				ValorDiario:   platformForecast.ValorDiario,
				DepletionDate: *platformForecast.DepletionDate,
				UpdatedAt:     now,
			}

			if existing, ok := openByKey[alert.Key()]; ok {
				alert.ID = existing.ID
				alert.CreatedAt = existing.CreatedAt
				delete(openByKey, alert.Key())
				result.Updated++
			} else {
				id, err := utils.GenerateID()
				if err != nil {
					return result, fmt.Errorf("erro ao gerar ID do alerta: %w", err)
				}
				alert.ID = id
				alert.CreatedAt = now
				result.Opened++
			}

			alerts = append(alerts, alert)
		}
	}

	resolvedIDs := make([]string, 0, len(openByKey))
	for _, alert := range openAlerts {
		if _, stillOpen := openByKey[alert.Key()]; stillOpen {
			resolvedIDs = append(resolvedIDs, alert.ID)
		}
	}
	result.Resolved = len(resolvedIDs)

	if err := s.alertRepo.SaveSweep(ctx, alerts, resolvedIDs, now); err != nil {
		return result, fmt.Errorf("erro ao gravar alertas de saldo: %w", err)
	}

	return result, nil
}

func isAlertTier(tier domain.Tier) bool {
	return tier == domain.TierCritical || tier == domain.TierWarning
}

// TriggerManualSync inicia manualmente uma varredura de alertas de saldo.
// Retorna false quando já existe uma varredura em andamento.
func (s *BalanceAlertSyncService) TriggerManualSync() bool {
	if !s.acquire() {
		logrus.Info("Varredura de alertas de saldo já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando varredura manual de alertas de saldo")
	go func() {
		defer s.release()
		if err := s.sweep(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na varredura manual de alertas de saldo")
		}
	}()

	return true
}

// GetStatus retorna o status atual do agendador
func (s *BalanceAlertSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_result":            s.lastResult,
	}
}
