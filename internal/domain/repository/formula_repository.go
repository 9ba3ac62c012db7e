package repository

import (
	"context"

	"github.com/betonpro/beton-api/internal/domain/entity"
)

// FormulaRepository define el puerto de persistencia para fórmulas y su composición.
type FormulaRepository interface {
	Create(ctx context.Context, f *entity.Formula) error
	// GetByID devuelve la fórmula con su composición cargada.
	GetByID(ctx context.Context, id string) (*entity.Formula, error)
	List(ctx context.Context) ([]*entity.Formula, error)
}
