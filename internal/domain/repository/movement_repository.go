package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/betonpro/beton-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del libro de movimientos.
// El libro es append-only: no hay Update; la reversión marca Reversed y el
// borrado existe solo como vía administrativa.
type MovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// Balance deriva el saldo: SUM(entradas) - SUM(salidas) de movimientos no
	// revertidos, opcionalmente restringido a movimientos hasta asOf.
	Balance(ctx context.Context, resourceID string, asOf *time.Time) (decimal.Decimal, error)
	ListByResource(ctx context.Context, resourceID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListBySourceRef(ctx context.Context, sourceRef string) ([]*entity.StockMovement, error)
	// ReverseBySourceRef marca como revertidos los movimientos no revertidos de
	// una referencia de origen y devuelve cuántos afectó. Debe ejecutarse en la
	// misma transacción que la recreación de movimientos.
	ReverseBySourceRef(ctx context.Context, sourceRef string) (int, error)
	// SumBySource total de salidas de una referencia de origen en un rango
	// (consumos por engin, auditoría).
	SumBySource(ctx context.Context, sourceRef string, from, to *time.Time) (decimal.Decimal, error)
	// Delete es la única vía de borrado (administrativa); el caller debe
	// reevaluar alertas tras usarla.
	Delete(ctx context.Context, id string) error
}
