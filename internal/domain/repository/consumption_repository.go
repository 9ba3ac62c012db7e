package repository

import (
	"context"

	"github.com/betonpro/beton-api/internal/domain/entity"
)

// ConsumptionRepository define el puerto de persistencia para los registros de
// consumo de producción (una fila por orden).
type ConsumptionRepository interface {
	// GetByOrderID devuelve el registro de la orden o nil si no existe.
	GetByOrderID(ctx context.Context, orderID string) (*entity.ProductionConsumption, error)
	// GetByOrderIDForUpdate igual que GetByOrderID pero bloqueando la fila,
	// para serializar aplicaciones concurrentes sobre la misma orden.
	GetByOrderIDForUpdate(ctx context.Context, orderID string) (*entity.ProductionConsumption, error)
	Create(ctx context.Context, c *entity.ProductionConsumption) error
	Update(ctx context.Context, c *entity.ProductionConsumption) error
}
