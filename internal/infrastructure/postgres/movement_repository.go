package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/betonpro/beton-api/internal/domain/entity"
	"github.com/betonpro/beton-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). El libro es append-only: Update no existe.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, resource_id, kind, quantity, description, source_ref, reversed, occurred_at, created_at, created_by`

// Create persiste un movimiento del libro.
func (r *MovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, resource_id, kind, quantity, description, source_ref, reversed, occurred_at, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	sourceRef := (*string)(nil)
	if m.SourceRef != "" {
		sourceRef = &m.SourceRef
	}
	createdBy := (*string)(nil)
	if m.CreatedBy != "" {
		createdBy = &m.CreatedBy
	}
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ResourceID, m.Kind, m.Quantity, m.Description,
		sourceRef, m.Reversed, m.OccurredAt, m.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID; nil si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// Balance deriva el saldo sumando sobre el libro: SUM(entradas) - SUM(salidas)
// de movimientos no revertidos, opcionalmente hasta asOf. Nunca lee un
// contador almacenado.
func (r *MovementRepo) Balance(ctx context.Context, resourceID string, asOf *time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN kind = 'entry' THEN quantity ELSE -quantity END), 0)
		FROM stock_movements
		WHERE resource_id = $1 AND NOT reversed`
	args := []any{resourceID}
	if asOf != nil {
		query += ` AND occurred_at <= $2`
		args = append(args, *asOf)
	}
	var balance decimal.Decimal
	if err := r.q.QueryRow(ctx, query, args...).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("balance: %w", err)
	}
	return balance, nil
}

// ListByResource lista movimientos de una materia en un rango de fechas.
func (r *MovementRepo) ListByResource(ctx context.Context, resourceID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE resource_id = $1`
	args := []any{resourceID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND occurred_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND occurred_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY occurred_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	return r.list(ctx, query, args...)
}

// ListBySourceRef lista los movimientos de una referencia de origen.
func (r *MovementRepo) ListBySourceRef(ctx context.Context, sourceRef string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE source_ref = $1 ORDER BY occurred_at`
	return r.list(ctx, query, sourceRef)
}

func (r *MovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var items []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// ReverseBySourceRef marca como revertidos los movimientos vivos de una
// referencia de origen. Debe correr en la misma tx que la recreación.
func (r *MovementRepo) ReverseBySourceRef(ctx context.Context, sourceRef string) (int, error) {
	query := `UPDATE stock_movements SET reversed = true WHERE source_ref = $1 AND NOT reversed`
	tag, err := r.q.Exec(ctx, query, sourceRef)
	if err != nil {
		return 0, fmt.Errorf("reverse movements: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// SumBySource total de salidas no revertidas de una referencia de origen en un rango.
func (r *MovementRepo) SumBySource(ctx context.Context, sourceRef string, from, to *time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM stock_movements
		WHERE source_ref = $1 AND kind = 'exit' AND NOT reversed`
	args := []any{sourceRef}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND occurred_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND occurred_at <= $%d", pos)
		args = append(args, *to)
	}
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum by source: %w", err)
	}
	return total, nil
}

// Delete borra un movimiento (vía administrativa; el caller reevalúa alertas).
func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM stock_movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	return nil
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var sourceRef, createdBy *string
	err := row.Scan(
		&m.ID, &m.ResourceID, &m.Kind, &m.Quantity, &m.Description,
		&sourceRef, &m.Reversed, &m.OccurredAt, &m.CreatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	if sourceRef != nil {
		m.SourceRef = *sourceRef
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}
