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

var _ repository.ResourceRepository = (*ResourceRepo)(nil)

// ResourceRepo implementación de ResourceRepository sobre PostgreSQL (usable con pool o tx).
type ResourceRepo struct {
	q Querier
}

// NewResourceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewResourceRepository(q Querier) *ResourceRepo {
	return &ResourceRepo{q: q}
}

const resourceColumns = `id, name, kind, unit, critical_threshold, low_threshold, created_at, updated_at`

// Create persiste una materia rastreable.
func (r *ResourceRepo) Create(ctx context.Context, res *entity.Resource) error {
	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	query := `
		INSERT INTO resources (id, name, kind, unit, critical_threshold, low_threshold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		res.ID, res.Name, res.Kind, res.Unit,
		res.CriticalThreshold, res.LowThreshold, res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create resource: %w", errAsDuplicate(err))
		}
		return fmt.Errorf("create resource: %w", err)
	}
	return nil
}

// GetByID obtiene una materia por ID; nil si no existe.
func (r *ResourceRepo) GetByID(ctx context.Context, id string) (*entity.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetByIDForUpdate obtiene la materia bloqueando la fila (SELECT FOR UPDATE).
// Serializa movimientos y consumos concurrentes sobre el mismo recurso.
func (r *ResourceRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

func (r *ResourceRepo) scanOne(row pgx.Row) (*entity.Resource, error) {
	var res entity.Resource
	err := row.Scan(
		&res.ID, &res.Name, &res.Kind, &res.Unit,
		&res.CriticalThreshold, &res.LowThreshold, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get resource: %w", err)
	}
	return &res, nil
}

// List devuelve las materias, opcionalmente filtradas por tipo.
func (r *ResourceRepo) List(ctx context.Context, kind string) ([]*entity.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = $1`
		args = append(args, kind)
	}
	query += ` ORDER BY name`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	var items []*entity.Resource
	for rows.Next() {
		var res entity.Resource
		if err := rows.Scan(
			&res.ID, &res.Name, &res.Kind, &res.Unit,
			&res.CriticalThreshold, &res.LowThreshold, &res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		items = append(items, &res)
	}
	return items, rows.Err()
}

// Update actualiza nombre, unidad y umbrales de una materia.
func (r *ResourceRepo) Update(ctx context.Context, res *entity.Resource) error {
	query := `
		UPDATE resources
		SET name = $2, unit = $3, critical_threshold = $4, low_threshold = $5, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, res.ID, res.Name, res.Unit, res.CriticalThreshold, res.LowThreshold)
	if err != nil {
		return fmt.Errorf("update resource: %w", err)
	}
	return nil
}
