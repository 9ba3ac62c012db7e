package stock

import (
	"context"

	"github.com/betonpro/beton-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el libro de stock:
// movimiento y evaluación de alertas se confirman o se revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		resourceRepo repository.ResourceRepository,
		movRepo repository.MovementRepository,
		alertRepo repository.AlertRepository,
	) error) error
}

// ConsumptionTxRunner inicia una transacción con los repositorios del motor de
// consumo de producción (reversión, salidas y marca computed en una sola tx).
type ConsumptionTxRunner interface {
	RunConsumption(ctx context.Context, fn func(
		resourceRepo repository.ResourceRepository,
		movRepo repository.MovementRepository,
		consumptionRepo repository.ConsumptionRepository,
		alertRepo repository.AlertRepository,
	) error) error
}

// FuelTxRunner inicia una transacción con los repositorios del módulo de
// combustible (entrada de stock + registro de compra en una sola tx).
type FuelTxRunner interface {
	RunFuel(ctx context.Context, fn func(
		resourceRepo repository.ResourceRepository,
		movRepo repository.MovementRepository,
		purchaseRepo repository.PurchaseRepository,
		alertRepo repository.AlertRepository,
	) error) error
}
