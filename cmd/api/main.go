package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-balance-api/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-balance-api/infrastructure/repository"
	"github.com/vfg2006/traffic-balance-api/internal/api"
	"github.com/vfg2006/traffic-balance-api/internal/config"
	"github.com/vfg2006/traffic-balance-api/internal/scheduler"
	"github.com/vfg2006/traffic-balance-api/internal/usecases/authenticating"
	"github.com/vfg2006/traffic-balance-api/internal/usecases/balancing"
	"github.com/vfg2006/traffic-balance-api/pkg/log"
)

func main() {
	chdirToSource()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel := log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	trackingRepo := repository.NewTrackingRepository(pgConn)
	alertRepo := repository.NewBalanceAlertRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)
	balanceService := balancing.NewService(trackingRepo, alertRepo, cfg)

	balanceAlertSyncService := scheduler.NewBalanceAlertSyncService(trackingRepo, alertRepo, cfg)
	if err := balanceAlertSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de alertas de saldo")
	} else {
		logrus.Info("Agendador de alertas de saldo iniciado com sucesso")
	}

	server, err := api.New(cfg, pgConn, balanceService, authenticator, balanceAlertSyncService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// chdirToSource garante que o .env ao lado do main seja encontrado
func chdirToSource() {
	_, file, _, _ := runtime.Caller(0)
	os.Chdir(path.Dir(file))
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
