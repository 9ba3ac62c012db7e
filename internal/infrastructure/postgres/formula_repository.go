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

var _ repository.FormulaRepository = (*FormulaRepo)(nil)

// FormulaRepo implementación de FormulaRepository sobre PostgreSQL (usable con pool o tx).
type FormulaRepo struct {
	q Querier
}

// NewFormulaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFormulaRepository(q Querier) *FormulaRepo {
	return &FormulaRepo{q: q}
}

// Create persiste la fórmula y su composición.
func (r *FormulaRepo) Create(ctx context.Context, f *entity.Formula) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	query := `
		INSERT INTO formulas (id, name, description, strength_class, reference_yield, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		f.ID, f.Name, f.Description, f.StrengthClass, f.ReferenceYield, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create formula: %w", errAsDuplicate(err))
		}
		return fmt.Errorf("create formula: %w", err)
	}
	for _, comp := range f.Components {
		_, err := r.q.Exec(ctx, `
			INSERT INTO formula_components (formula_id, resource_id, quantity)
			VALUES ($1, $2, $3)`,
			f.ID, comp.ResourceID, comp.Quantity,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("create formula component: %w", errAsDuplicate(err))
			}
			return fmt.Errorf("create formula component: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la fórmula con su composición cargada; nil si no existe.
func (r *FormulaRepo) GetByID(ctx context.Context, id string) (*entity.Formula, error) {
	query := `
		SELECT id, name, description, strength_class, reference_yield, created_at, updated_at
		FROM formulas WHERE id = $1`
	var f entity.Formula
	err := r.q.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.Name, &f.Description, &f.StrengthClass, &f.ReferenceYield, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get formula: %w", err)
	}
	if err := r.loadComponents(ctx, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FormulaRepo) loadComponents(ctx context.Context, f *entity.Formula) error {
	rows, err := r.q.Query(ctx, `
		SELECT fc.resource_id, res.name, fc.quantity
		FROM formula_components fc
		JOIN resources res ON res.id = fc.resource_id
		WHERE fc.formula_id = $1
		ORDER BY res.name`, f.ID)
	if err != nil {
		return fmt.Errorf("load components: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var comp entity.FormulaComponent
		if err := rows.Scan(&comp.ResourceID, &comp.ResourceName, &comp.Quantity); err != nil {
			return fmt.Errorf("scan component: %w", err)
		}
		f.Components = append(f.Components, comp)
	}
	return rows.Err()
}

// List devuelve todas las fórmulas con composición.
func (r *FormulaRepo) List(ctx context.Context) ([]*entity.Formula, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, description, strength_class, reference_yield, created_at, updated_at
		FROM formulas ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list formulas: %w", err)
	}
	defer rows.Close()

	var items []*entity.Formula
	for rows.Next() {
		var f entity.Formula
		if err := rows.Scan(
			&f.ID, &f.Name, &f.Description, &f.StrengthClass, &f.ReferenceYield, &f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan formula: %w", err)
		}
		items = append(items, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, f := range items {
		if err := r.loadComponents(ctx, f); err != nil {
			return nil, err
		}
	}
	return items, nil
}
