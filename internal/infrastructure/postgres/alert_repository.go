package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/betonpro/beton-api/internal/domain/entity"
	"github.com/betonpro/beton-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación de AlertRepository sobre PostgreSQL (usable con pool o tx).
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

const alertColumns = `a.id, a.resource_id, res.name, a.severity, a.balance, a.threshold, a.message, a.acknowledged, a.created_at`

// Create persiste una alerta de stock.
func (r *AlertRepo) Create(ctx context.Context, a *entity.StockAlert) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_alerts (id, resource_id, severity, balance, threshold, message, acknowledged, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.ResourceID, a.Severity, a.Balance, a.Threshold, a.Message, a.Acknowledged, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock alert: %w", err)
	}
	return nil
}

// ListOpenByResource alertas no reconocidas de una materia, más recientes primero.
func (r *AlertRepo) ListOpenByResource(ctx context.Context, resourceID string) ([]*entity.StockAlert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM stock_alerts a JOIN resources res ON res.id = a.resource_id
		WHERE a.resource_id = $1 AND NOT a.acknowledged
		ORDER BY a.created_at DESC`
	return r.list(ctx, query, resourceID)
}

// List alertas, opcionalmente filtradas por estado de reconocimiento.
func (r *AlertRepo) List(ctx context.Context, acknowledged *bool, limit, offset int) ([]*entity.StockAlert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM stock_alerts a JOIN resources res ON res.id = a.resource_id`
	args := []any{}
	pos := 1
	if acknowledged != nil {
		query += fmt.Sprintf(" WHERE a.acknowledged = $%d", pos)
		args = append(args, *acknowledged)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.list(ctx, query, args...)
}

func (r *AlertRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockAlert, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var items []*entity.StockAlert
	for rows.Next() {
		var a entity.StockAlert
		if err := rows.Scan(
			&a.ID, &a.ResourceID, &a.ResourceName, &a.Severity,
			&a.Balance, &a.Threshold, &a.Message, &a.Acknowledged, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}

// Acknowledge marca una alerta como vista.
func (r *AlertRepo) Acknowledge(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `UPDATE stock_alerts SET acknowledged = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("acknowledge alert: %w", err)
	}
	return nil
}

// AcknowledgeByResource reconoce todas las alertas abiertas de una materia.
func (r *AlertRepo) AcknowledgeByResource(ctx context.Context, resourceID string) (int, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE stock_alerts SET acknowledged = true WHERE resource_id = $1 AND NOT acknowledged`,
		resourceID,
	)
	if err != nil {
		return 0, fmt.Errorf("acknowledge alerts by resource: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
