package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/betonpro/beton-api/internal/application/stock"
	"github.com/betonpro/beton-api/internal/domain/repository"
)

// Ensure TxRunner implements los puertos transaccionales del motor de stock.
var _ stock.TxRunner = (*TxRunner)(nil)
var _ stock.ConsumptionTxRunner = (*TxRunner)(nil)
var _ stock.FuelTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con
// aislamiento read-committed y bloqueo de fila vía los repos (FOR UPDATE).
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback (escrituras simples del libro).
func (r *TxRunner) Run(ctx context.Context, fn func(
	resourceRepo repository.ResourceRepository,
	movRepo repository.MovementRepository,
	alertRepo repository.AlertRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewResourceRepository(tx), NewMovementRepository(tx), NewAlertRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunConsumption inicia una transacción con los repos del motor de consumo de
// producción: reversión, salidas, marca computed y alertas en una sola tx.
func (r *TxRunner) RunConsumption(ctx context.Context, fn func(
	resourceRepo repository.ResourceRepository,
	movRepo repository.MovementRepository,
	consumptionRepo repository.ConsumptionRepository,
	alertRepo repository.AlertRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewResourceRepository(tx), NewMovementRepository(tx), NewConsumptionRepository(tx), NewAlertRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunFuel inicia una transacción con los repos del módulo de combustible
// (entrada de stock + compra con precio).
func (r *TxRunner) RunFuel(ctx context.Context, fn func(
	resourceRepo repository.ResourceRepository,
	movRepo repository.MovementRepository,
	purchaseRepo repository.PurchaseRepository,
	alertRepo repository.AlertRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewResourceRepository(tx), NewMovementRepository(tx), NewPurchaseRepository(tx), NewAlertRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
