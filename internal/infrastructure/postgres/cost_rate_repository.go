package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/betonpro/beton-api/internal/domain/entity"
	"github.com/betonpro/beton-api/internal/domain/repository"
)

var _ repository.CostRateRepository = (*CostRateRepo)(nil)

// CostRateRepo implementación de CostRateRepository sobre PostgreSQL (usable con pool o tx).
type CostRateRepo struct {
	q Querier
}

// NewCostRateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCostRateRepository(q Querier) *CostRateRepo {
	return &CostRateRepo{q: q}
}

const costRateColumns = `id, category, name, value, unit, active, date_from, date_to, created_at`

// Create persiste una tarifa de costo.
func (r *CostRateRepo) Create(ctx context.Context, rate *entity.CostRate) error {
	if rate.ID == "" {
		rate.ID = uuid.New().String()
	}
	query := `
		INSERT INTO cost_rates (id, category, name, value, unit, active, date_from, date_to, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		rate.ID, rate.Category, rate.Name, rate.Value, rate.Unit,
		rate.Active, rate.DateFrom, rate.DateTo, rate.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create cost rate: %w", err)
	}
	return nil
}

// ActiveForDate tarifas activas de una categoría y unidad cuyo período cubre
// la fecha dada, más recientes primero.
func (r *CostRateRepo) ActiveForDate(ctx context.Context, category, unit string, date time.Time) ([]*entity.CostRate, error) {
	query := `
		SELECT ` + costRateColumns + `
		FROM cost_rates
		WHERE category = $1 AND unit = $2 AND active
		  AND date_from <= $3
		  AND (date_to IS NULL OR date_to >= $3)
		ORDER BY date_from DESC`
	return r.list(ctx, query, category, unit, date)
}

// List tarifas, opcionalmente filtradas por categoría.
func (r *CostRateRepo) List(ctx context.Context, category string) ([]*entity.CostRate, error) {
	query := `SELECT ` + costRateColumns + ` FROM cost_rates`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY date_from DESC`
	return r.list(ctx, query, args...)
}

func (r *CostRateRepo) list(ctx context.Context, query string, args ...any) ([]*entity.CostRate, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cost rates: %w", err)
	}
	defer rows.Close()

	var items []*entity.CostRate
	for rows.Next() {
		var rate entity.CostRate
		if err := rows.Scan(
			&rate.ID, &rate.Category, &rate.Name, &rate.Value, &rate.Unit,
			&rate.Active, &rate.DateFrom, &rate.DateTo, &rate.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan cost rate: %w", err)
		}
		items = append(items, &rate)
	}
	return items, rows.Err()
}
