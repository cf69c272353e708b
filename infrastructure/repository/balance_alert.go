package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/traffic-balance-api/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-balance-api/internal/domain"
)

//go:generate mockgen -source=balance_alert.go -destination=mocks/balance_alert.go -package=mocks

const (
	balanceAlertsTable = "balance_alerts"
)

type BalanceAlertRepository interface {
	ListOpen(scope domain.TrackingScope) ([]*domain.BalanceAlert, error)
	SaveSweep(ctx context.Context, alerts []*domain.BalanceAlert, resolvedIDs []string, resolvedAt time.Time) error
}

type balanceAlertRepository struct {
	conn *postgres.Connection
}

func NewBalanceAlertRepository(conn *postgres.Connection) BalanceAlertRepository {
	return &balanceAlertRepository{
		conn: conn,
	}
}

func (r *balanceAlertRepository) ListOpen(scope domain.TrackingScope) ([]*domain.BalanceAlert, error) {
	queryBuilder := squirrel.
		Select(
			"ba.id",
			"ba.client_id",
			"c.name",
			"ba.agency_id",
			"ba.manager_id",
			"ba.platform",
			"ba.tier",
			"ba.days_remaining",
			"ba.saldo",
			"ba.valor_diario",
			"ba.depletion_date",
			"ba.created_at",
			"ba.updated_at",
		).
		From("balance_alerts ba").
		Join("clients c ON c.id = ba.client_id").
		Where(squirrel.Eq{"ba.resolved_at": nil}).
		OrderBy("ba.days_remaining ASC", "c.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if scope.AgencyID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"ba.agency_id": scope.AgencyID})
	}

	if scope.ManagerID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"ba.manager_id": *scope.ManagerID})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	alerts := make([]*domain.BalanceAlert, 0)
	for rows.Next() {
		alert := &domain.BalanceAlert{}
		err := rows.Scan(
			&alert.ID,
			&alert.ClientID,
			&alert.ClientName,
			&alert.AgencyID,
			&alert.ManagerID,
			&alert.Platform,
			&alert.Tier,
			&alert.DaysRemaining,
			&alert.Saldo,
			&alert.ValorDiario,
			&alert.DepletionDate,
			&alert.CreatedAt,
			&alert.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear alerta: %w", err)
		}
		alerts = append(alerts, alert)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return alerts, nil
}

// SaveSweep grava o resultado de uma varredura: abre ou atualiza os alertas
// informados e resolve os que deixaram de existir, na mesma transação.
func (r *balanceAlertRepository) SaveSweep(ctx context.Context, alerts []*domain.BalanceAlert, resolvedIDs []string, resolvedAt time.Time) error {
	if len(alerts) == 0 && len(resolvedIDs) == 0 {
		return nil
	}

	return r.conn.RunInTransaction(ctx, func(q postgres.Queryer) error {
		if err := upsertAlerts(q, alerts); err != nil {
			return err
		}
		return resolveAlerts(q, resolvedIDs, resolvedAt)
	})
}

func upsertAlerts(q postgres.Queryer, alerts []*domain.BalanceAlert) error {
	if len(alerts) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert(balanceAlertsTable).
		Columns(
			"id",
			"client_id",
			"agency_id",
			"manager_id",
			"platform",
			"tier",
			"days_remaining",
			"saldo",
			"valor_diario",
			"depletion_date",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, alert := range alerts {
		query = query.Values(
			alert.ID,
			alert.ClientID,
			alert.AgencyID,
			alert.ManagerID,
			alert.Platform,
			alert.Tier,
			alert.DaysRemaining,
			alert.Saldo,
			alert.ValorDiario,
			alert.DepletionDate.Format(time.DateOnly),
		)
	}

	query = query.Suffix(`
		ON CONFLICT (client_id, platform) WHERE resolved_at IS NULL DO UPDATE SET
			tier = EXCLUDED.tier,
			days_remaining = EXCLUDED.days_remaining,
			saldo = EXCLUDED.saldo,
			valor_diario = EXCLUDED.valor_diario,
			depletion_date = EXCLUDED.depletion_date,
			manager_id = EXCLUDED.manager_id,
			updated_at = CURRENT_TIMESTAMP
	`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de alertas: %w", err)
	}

	if _, err := q.Exec(sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao gravar alertas: %w", err)
	}

	return nil
}

func resolveAlerts(q postgres.Queryer, ids []string, resolvedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := squirrel.
		Update(balanceAlertsTable).
		Set("resolved_at", resolvedAt).
		Set("updated_at", resolvedAt).
		Where(squirrel.Eq{"id": ids, "resolved_at": nil}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de resolução: %w", err)
	}

	if _, err := q.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao resolver alertas: %w", err)
	}

	return nil
}
