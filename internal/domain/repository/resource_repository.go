package repository

import (
	"context"

	"github.com/betonpro/beton-api/internal/domain/entity"
)

// ResourceRepository define el puerto de persistencia para materias rastreables (DIP).
type ResourceRepository interface {
	Create(ctx context.Context, r *entity.Resource) error
	GetByID(ctx context.Context, id string) (*entity.Resource, error)
	// GetByIDForUpdate bloquea la fila de la materia (SELECT FOR UPDATE) para
	// serializar consumos concurrentes dentro de la transacción del caller.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Resource, error)
	List(ctx context.Context, kind string) ([]*entity.Resource, error)
	Update(ctx context.Context, r *entity.Resource) error
}
