package repository

import (
	"context"

	"github.com/betonpro/beton-api/internal/domain/entity"
)

// AlertRepository define el puerto de persistencia para alertas de stock.
type AlertRepository interface {
	Create(ctx context.Context, a *entity.StockAlert) error
	// ListOpenByResource alertas no reconocidas de una materia, más recientes primero.
	ListOpenByResource(ctx context.Context, resourceID string) ([]*entity.StockAlert, error)
	List(ctx context.Context, acknowledged *bool, limit, offset int) ([]*entity.StockAlert, error)
	Acknowledge(ctx context.Context, id string) error
	// AcknowledgeByResource reconoce todas las alertas abiertas de una materia
	// (resolución automática) y devuelve cuántas afectó.
	AcknowledgeByResource(ctx context.Context, resourceID string) (int, error)
}
