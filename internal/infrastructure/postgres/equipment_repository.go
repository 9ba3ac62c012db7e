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

var _ repository.EquipmentRepository = (*EquipmentRepo)(nil)

// EquipmentRepo implementación de EquipmentRepository sobre PostgreSQL (usable con pool o tx).
type EquipmentRepo struct {
	q Querier
}

// NewEquipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEquipmentRepository(q Querier) *EquipmentRepo {
	return &EquipmentRepo{q: q}
}

const equipmentColumns = `id, name, category, registration, avg_consumption_per_hour, active, created_at, updated_at`

// Create persiste un engin.
func (r *EquipmentRepo) Create(ctx context.Context, e *entity.Equipment) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	query := `
		INSERT INTO equipment (id, name, category, registration, avg_consumption_per_hour, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Name, e.Category, e.Registration, e.AvgConsumptionPerHour,
		e.Active, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create equipment: %w", err)
	}
	return nil
}

// GetByID obtiene un engin por ID; nil si no existe.
func (r *EquipmentRepo) GetByID(ctx context.Context, id string) (*entity.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`
	var e entity.Equipment
	err := r.q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Name, &e.Category, &e.Registration, &e.AvgConsumptionPerHour,
		&e.Active, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment: %w", err)
	}
	return &e, nil
}

// List devuelve los engins, opcionalmente solo los activos.
func (r *EquipmentRepo) List(ctx context.Context, onlyActive bool) ([]*entity.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment`
	if onlyActive {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	defer rows.Close()

	var items []*entity.Equipment
	for rows.Next() {
		var e entity.Equipment
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Category, &e.Registration, &e.AvgConsumptionPerHour,
			&e.Active, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		items = append(items, &e)
	}
	return items, rows.Err()
}
