package stock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/betonpro/beton-api/internal/domain"
	"github.com/betonpro/beton-api/internal/domain/entity"
	"github.com/betonpro/beton-api/internal/domain/repository"
)

// LedgerUseCase opera el libro de movimientos de stock. El saldo es siempre
// derivado (suma sobre el libro), nunca un contador mutable: cualquier
// contador que exista en otra parte es una proyección invalidada por cada
// escritura, no fuente de verdad.
type LedgerUseCase struct {
	txRunner  TxRunner
	movRepo   repository.MovementRepository
	resRepo   repository.ResourceRepository
	evaluator *AlertEvaluator
}

// NewLedgerUseCase construye el caso de uso del libro de stock.
func NewLedgerUseCase(
	txRunner TxRunner,
	movRepo repository.MovementRepository,
	resRepo repository.ResourceRepository,
	evaluator *AlertEvaluator,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:  txRunner,
		movRepo:   movRepo,
		resRepo:   resRepo,
		evaluator: evaluator,
	}
}

// RecordMovementInput entrada para registrar un movimiento.
type RecordMovementInput struct {
	ResourceID  string
	Kind        string // entry, exit
	Quantity    decimal.Decimal
	Description string
	SourceRef   string
	UserID      string
}

// RecordMovement añade una entrada inmutable al libro y evalúa los umbrales de
// la materia en la misma transacción. La fila de la materia se bloquea
// (SELECT FOR UPDATE) para serializar escrituras concurrentes sobre el mismo
// recurso.
func (uc *LedgerUseCase) RecordMovement(ctx context.Context, input RecordMovementInput) (*entity.StockMovement, error) {
	if input.Kind != entity.MovementEntry && input.Kind != entity.MovementExit {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}

	now := time.Now()
	mov := &entity.StockMovement{
		ResourceID:  input.ResourceID,
		Kind:        input.Kind,
		Quantity:    input.Quantity,
		Description: input.Description,
		SourceRef:   input.SourceRef,
		OccurredAt:  now,
		CreatedAt:   now,
		CreatedBy:   input.UserID,
	}

	err := uc.txRunner.Run(ctx, func(
		resourceRepo repository.ResourceRepository,
		movRepo repository.MovementRepository,
		alertRepo repository.AlertRepository,
	) error {
		res, err := resourceRepo.GetByIDForUpdate(ctx, input.ResourceID)
		if err != nil {
			return err
		}
		if res == nil {
			return domain.ErrResourceNotFound
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		balance, err := movRepo.Balance(ctx, res.ID, nil)
		if err != nil {
			return err
		}
		return uc.evaluator.Evaluate(ctx, res, balance, alertRepo)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// CurrentBalance saldo actual derivado del libro. Devuelve cero para una
// materia conocida sin movimientos.
func (uc *LedgerUseCase) CurrentBalance(ctx context.Context, resourceID string) (decimal.Decimal, error) {
	res, err := uc.resRepo.GetByID(ctx, resourceID)
	if err != nil {
		return decimal.Zero, err
	}
	if res == nil {
		return decimal.Zero, domain.ErrResourceNotFound
	}
	return uc.movRepo.Balance(ctx, resourceID, nil)
}

// BalanceAsOf saldo derivado restringido a movimientos hasta el instante dado
// (auditoría y valoración histórica).
func (uc *LedgerUseCase) BalanceAsOf(ctx context.Context, resourceID string, asOf time.Time) (decimal.Decimal, error) {
	res, err := uc.resRepo.GetByID(ctx, resourceID)
	if err != nil {
		return decimal.Zero, err
	}
	if res == nil {
		return decimal.Zero, domain.ErrResourceNotFound
	}
	return uc.movRepo.Balance(ctx, resourceID, &asOf)
}

// ListMovements histórico de movimientos de una materia.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, resourceID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return uc.movRepo.ListByResource(ctx, resourceID, from, to, limit, offset)
}

// DeleteMovement vía administrativa de borrado. Recalcula saldo y alertas en
// la misma transacción: el libro y el estado de alertas nunca divergen.
func (uc *LedgerUseCase) DeleteMovement(ctx context.Context, movementID string) error {
	return uc.txRunner.Run(ctx, func(
		resourceRepo repository.ResourceRepository,
		movRepo repository.MovementRepository,
		alertRepo repository.AlertRepository,
	) error {
		mov, err := movRepo.GetByID(ctx, movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		res, err := resourceRepo.GetByIDForUpdate(ctx, mov.ResourceID)
		if err != nil {
			return err
		}
		if res == nil {
			return domain.ErrResourceNotFound
		}
		if err := movRepo.Delete(ctx, movementID); err != nil {
			return err
		}
		balance, err := movRepo.Balance(ctx, res.ID, nil)
		if err != nil {
			return err
		}
		return uc.evaluator.Evaluate(ctx, res, balance, alertRepo)
	})
}

// RecheckResource reevalúa los umbrales de una materia sin movimiento nuevo.
// Lo invoca la administración tras cambiar umbrales y el rechequeo programado.
func (uc *LedgerUseCase) RecheckResource(ctx context.Context, resourceID string) error {
	return uc.txRunner.Run(ctx, func(
		resourceRepo repository.ResourceRepository,
		movRepo repository.MovementRepository,
		alertRepo repository.AlertRepository,
	) error {
		res, err := resourceRepo.GetByIDForUpdate(ctx, resourceID)
		if err != nil {
			return err
		}
		if res == nil {
			return domain.ErrResourceNotFound
		}
		balance, err := movRepo.Balance(ctx, res.ID, nil)
		if err != nil {
			return err
		}
		return uc.evaluator.Evaluate(ctx, res, balance, alertRepo)
	})
}
