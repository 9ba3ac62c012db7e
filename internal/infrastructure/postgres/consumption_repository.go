package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/betonpro/beton-api/internal/domain/entity"
	"github.com/betonpro/beton-api/internal/domain/repository"
)

var _ repository.ConsumptionRepository = (*ConsumptionRepo)(nil)

// ConsumptionRepo implementación de ConsumptionRepository sobre PostgreSQL
// (usable con pool o tx). Una fila por orden (constraint único en order_id).
type ConsumptionRepo struct {
	q Querier
}

// NewConsumptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsumptionRepository(q Querier) *ConsumptionRepo {
	return &ConsumptionRepo{q: q}
}

const consumptionColumns = `id, order_id, formula_id, quantity, computed, movement_ids, computed_at, computed_by`

// GetByOrderID devuelve el registro de consumo de la orden o nil.
func (r *ConsumptionRepo) GetByOrderID(ctx context.Context, orderID string) (*entity.ProductionConsumption, error) {
	query := `SELECT ` + consumptionColumns + ` FROM production_consumptions WHERE order_id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, orderID))
}

// GetByOrderIDForUpdate igual que GetByOrderID bloqueando la fila, para
// serializar aplicaciones concurrentes sobre la misma orden.
func (r *ConsumptionRepo) GetByOrderIDForUpdate(ctx context.Context, orderID string) (*entity.ProductionConsumption, error) {
	query := `SELECT ` + consumptionColumns + ` FROM production_consumptions WHERE order_id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, orderID))
}

func (r *ConsumptionRepo) scanOne(row pgx.Row) (*entity.ProductionConsumption, error) {
	var c entity.ProductionConsumption
	var computedBy *string
	err := row.Scan(
		&c.ID, &c.OrderID, &c.FormulaID, &c.Quantity, &c.Computed,
		&c.MovementIDs, &c.ComputedAt, &computedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production consumption: %w", err)
	}
	if computedBy != nil {
		c.ComputedBy = *computedBy
	}
	return &c, nil
}

// Create persiste un registro de consumo nuevo.
func (r *ConsumptionRepo) Create(ctx context.Context, c *entity.ProductionConsumption) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	query := `
		INSERT INTO production_consumptions (id, order_id, formula_id, quantity, computed, movement_ids, computed_at, computed_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	computedBy := (*string)(nil)
	if c.ComputedBy != "" {
		computedBy = &c.ComputedBy
	}
	_, err := r.q.Exec(ctx, query,
		c.ID, c.OrderID, c.FormulaID, c.Quantity, c.Computed, c.MovementIDs, c.ComputedAt, computedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create production consumption: %w", errAsDuplicate(err))
		}
		return fmt.Errorf("create production consumption: %w", err)
	}
	return nil
}

// Update actualiza el registro de la orden (recomputación forzada).
func (r *ConsumptionRepo) Update(ctx context.Context, c *entity.ProductionConsumption) error {
	query := `
		UPDATE production_consumptions
		SET formula_id = $2, quantity = $3, computed = $4, movement_ids = $5, computed_at = $6, computed_by = $7
		WHERE id = $1`
	computedBy := (*string)(nil)
	if c.ComputedBy != "" {
		computedBy = &c.ComputedBy
	}
	_, err := r.q.Exec(ctx, query,
		c.ID, c.FormulaID, c.Quantity, c.Computed, c.MovementIDs, c.ComputedAt, computedBy,
	)
	if err != nil {
		return fmt.Errorf("update production consumption: %w", err)
	}
	return nil
}
