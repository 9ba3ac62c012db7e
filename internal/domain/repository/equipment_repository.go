package repository

import (
	"context"

	"github.com/betonpro/beton-api/internal/domain/entity"
)

// EquipmentRepository define el puerto de persistencia para engins (módulo combustible).
type EquipmentRepository interface {
	Create(ctx context.Context, e *entity.Equipment) error
	GetByID(ctx context.Context, id string) (*entity.Equipment, error)
	List(ctx context.Context, onlyActive bool) ([]*entity.Equipment, error)
}
