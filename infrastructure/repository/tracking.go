// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/traffic-balance-api/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-balance-api/internal/domain"
)

//go:generate mockgen -source=tracking.go -destination=mocks/tracking.go -package=mocks

const (
	clientsTable  = "clients c"
	trackingTable = "client_tracking"
)

var trackingColumns = []string{
	"COALESCE(t.id, '')",
	"c.id",
	"c.name",
	"c.logo_url",
	"c.agency_id",
	"c.manager_id",
	"t.google_saldo",
	"t.google_valor_diario",
	"t.google_proxima_recarga",
	"t.google_recarga_tipo",
	"t.meta_saldo",
	"t.meta_valor_diario",
	"t.meta_proxima_recarga",
	"t.meta_recarga_tipo",
	"t.ads_active",
	"COALESCE(t.updated_at, c.created_at)",
}

type TrackingRepository interface {
	ListTracking(scope domain.TrackingScope) ([]*domain.TrackingRecord, error)
	GetTrackingByClientID(scope domain.TrackingScope, clientID string) (*domain.TrackingRecord, error)
	SaveTracking(trackingID string, request *domain.UpdateTrackingRequest) error
}

type trackingRepository struct {
	conn *postgres.Connection
}

func NewTrackingRepository(conn *postgres.Connection) TrackingRepository {
	return &trackingRepository{
		conn: conn,
	}
}

func (r *trackingRepository) selectTracking(scope domain.TrackingScope) squirrel.SelectBuilder {
	queryBuilder := squirrel.
		Select(trackingColumns...).
		From(clientsTable).
		LeftJoin("client_tracking t ON t.client_id = c.id").
		Where(squirrel.Eq{"c.active": true}).
		PlaceholderFormat(squirrel.Dollar)

	if scope.AgencyID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"c.agency_id": scope.AgencyID})
	}

	if scope.ManagerID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"c.manager_id": *scope.ManagerID})
	}

	return queryBuilder
}

func (r *trackingRepository) ListTracking(scope domain.TrackingScope) ([]*domain.TrackingRecord, error) {
	query, args, err := r.selectTracking(scope).
		OrderBy("c.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.TrackingRecord, 0)
	for rows.Next() {
		record, err := scanTracking(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear acompanhamento: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

func (r *trackingRepository) GetTrackingByClientID(scope domain.TrackingScope, clientID string) (*domain.TrackingRecord, error) {
	query, args, err := r.selectTracking(scope).
		Where(squirrel.Eq{"c.id": clientID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	record, err := scanTracking(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear acompanhamento: %w", err)
	}

	return record, nil
}

// SaveTracking cria ou atualiza a linha de acompanhamento do cliente.
// Apenas os campos informados na requisição são gravados.
func (r *trackingRepository) SaveTracking(trackingID string, request *domain.UpdateTrackingRequest) error {
	columns := []string{"id", "client_id"}
	values := []interface{}{trackingID, request.ClientID}

	addPlatform := func(prefix string, update *domain.PlatformTrackingUpdate) {
		if update == nil {
			return
		}
		if update.Saldo != nil {
			columns = append(columns, prefix+"_saldo")
			values = append(values, *update.Saldo)
		}
		if update.ValorDiario != nil {
			columns = append(columns, prefix+"_valor_diario")
			values = append(values, *update.ValorDiario)
		}
		if update.ProximaRecarga != nil {
			columns = append(columns, prefix+"_proxima_recarga")
			values = append(values, nullableString(*update.ProximaRecarga))
		}
		if update.RecargaTipo != nil {
			columns = append(columns, prefix+"_recarga_tipo")
			values = append(values, nullableString(*update.RecargaTipo))
		}
	}

	addPlatform(string(domain.PlatformGoogle), request.Google)
	addPlatform(string(domain.PlatformMeta), request.Meta)

	if request.AdsActive != nil {
		columns = append(columns, "ads_active")
		values = append(values, *request.AdsActive)
	}

	suffix := "ON CONFLICT (client_id) DO UPDATE SET updated_at = CURRENT_TIMESTAMP"
	for _, column := range columns[2:] {
		suffix += fmt.Sprintf(", %s = EXCLUDED.%s", column, column)
	}

	query, args, err := squirrel.StatementBuilder.
		Insert(trackingTable).
		Columns(columns...).
		Values(values...).
		Suffix(suffix).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de acompanhamento: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao salvar acompanhamento: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTracking(row rowScanner) (*domain.TrackingRecord, error) {
	record := &domain.TrackingRecord{}

	err := row.Scan(
		&record.ID,
		&record.ClientID,
		&record.ClientName,
		&record.ClientLogo,
		&record.AgencyID,
		&record.ManagerID,
		&record.Google.Saldo,
		&record.Google.ValorDiario,
		&record.Google.ProximaRecarga,
		&record.Google.RecargaTipo,
		&record.Meta.Saldo,
		&record.Meta.ValorDiario,
		&record.Meta.ProximaRecarga,
		&record.Meta.RecargaTipo,
		&record.AdsActive,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return record, nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
