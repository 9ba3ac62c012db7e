package stock

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/betonpro/beton-api/internal/application/dto"
	"github.com/betonpro/beton-api/internal/domain"
	"github.com/betonpro/beton-api/internal/domain/entity"
	"github.com/betonpro/beton-api/internal/domain/formula"
	"github.com/betonpro/beton-api/internal/domain/repository"
)

// ShortageError error de stock insuficiente con el detalle de materias
// faltantes. Envuelve domain.ErrInsufficientStock para matching con errors.Is.
type ShortageError struct {
	Shortages []dto.Shortage
}

func (e *ShortageError) Error() string {
	return fmt.Sprintf("%v: %d materia(s) insuficiente(s)", domain.ErrInsufficientStock, len(e.Shortages))
}

func (e *ShortageError) Unwrap() error { return domain.ErrInsufficientStock }

// ConsumptionUseCase aplica los consumos de materias de una orden de
// producción contra el libro de stock: resuelve cantidades por fórmula,
// verifica suficiencia y registra las salidas de forma atómica e idempotente.
type ConsumptionUseCase struct {
	txRunner        ConsumptionTxRunner
	formulaRepo     repository.FormulaRepository
	movRepo         repository.MovementRepository
	resRepo         repository.ResourceRepository
	evaluator       *AlertEvaluator
	blockOnShortage bool
}

// NewConsumptionUseCase construye el motor de consumo. blockOnShortage decide
// la política ante stock insuficiente: bloquear (por defecto) o registrar un
// warning y continuar.
func NewConsumptionUseCase(
	txRunner ConsumptionTxRunner,
	formulaRepo repository.FormulaRepository,
	movRepo repository.MovementRepository,
	resRepo repository.ResourceRepository,
	evaluator *AlertEvaluator,
	blockOnShortage bool,
) *ConsumptionUseCase {
	return &ConsumptionUseCase{
		txRunner:        txRunner,
		formulaRepo:     formulaRepo,
		movRepo:         movRepo,
		resRepo:         resRepo,
		evaluator:       evaluator,
		blockOnShortage: blockOnShortage,
	}
}

// VerifyAvailability compara las cantidades requeridas por la fórmula con el
// saldo actual de cada materia. Solo lectura, sin efectos: pensado para
// previsualización antes de lanzar la producción.
func (uc *ConsumptionUseCase) VerifyAvailability(ctx context.Context, formulaID string, quantity decimal.Decimal) (*dto.AvailabilityResult, error) {
	f, err := uc.formulaRepo.GetByID(ctx, formulaID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrFormulaNotFound
	}
	required, err := formula.ResolveRequiredQuantities(f, quantity)
	if err != nil {
		return nil, err
	}
	shortages, err := uc.collectShortages(ctx, f, required, uc.movRepo)
	if err != nil {
		return nil, err
	}
	return &dto.AvailabilityResult{
		Sufficient: len(shortages) == 0,
		Shortages:  shortages,
	}, nil
}

func (uc *ConsumptionUseCase) collectShortages(ctx context.Context, f *entity.Formula, required map[string]decimal.Decimal, movRepo repository.MovementRepository) ([]dto.Shortage, error) {
	shortages := []dto.Shortage{}
	for _, comp := range f.Components {
		req := required[comp.ResourceID]
		available, err := movRepo.Balance(ctx, comp.ResourceID, nil)
		if err != nil {
			return nil, err
		}
		if available.LessThan(req) {
			shortages = append(shortages, dto.Shortage{
				ResourceID:   comp.ResourceID,
				ResourceName: comp.ResourceName,
				Required:     req,
				Available:    available,
				Missing:      req.Sub(available),
			})
		}
	}
	return shortages, nil
}

// ApplyConsumptionInput entrada del motor de consumo.
type ApplyConsumptionInput struct {
	OrderID   string
	FormulaID string
	Quantity  decimal.Decimal
	Force     bool
	UserID    string
}

// ApplyConsumption es la operación transaccional central:
//  1. Si la orden ya tiene un consumo computed y Force es falso, falla con
//     ErrAlreadyComputed sin efectos (garantía de idempotencia).
//  2. Con Force, revierte los movimientos previos de la orden dentro de la
//     misma transacción (sin doble descuento).
//  3. Resuelve las cantidades requeridas por la fórmula.
//  4. Verifica suficiencia según la política: bloquea con ShortageError o
//     registra un warning y continúa. Force omite el bloqueo.
//  5. Registra una salida por materia, referenciada a la orden.
//  6. Marca el consumo computed.
//
// Todo en una sola transacción: cualquier fallo deja el libro y la marca
// computed exactamente como estaban. Las filas de materias se bloquean en
// orden de ID para evitar interbloqueos entre consumos concurrentes.
func (uc *ConsumptionUseCase) ApplyConsumption(ctx context.Context, input ApplyConsumptionInput) (*entity.ProductionConsumption, error) {
	if input.OrderID == "" || input.FormulaID == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}

	f, err := uc.formulaRepo.GetByID(ctx, input.FormulaID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrFormulaNotFound
	}
	required, err := formula.ResolveRequiredQuantities(f, input.Quantity)
	if err != nil {
		return nil, err
	}

	// Orden determinista de bloqueo de filas.
	resourceIDs := make([]string, 0, len(required))
	for id := range required {
		resourceIDs = append(resourceIDs, id)
	}
	sort.Strings(resourceIDs)

	sourceRef := entity.OrderSourceRef(input.OrderID)
	now := time.Now()
	var result *entity.ProductionConsumption

	err = uc.txRunner.RunConsumption(ctx, func(
		resourceRepo repository.ResourceRepository,
		movRepo repository.MovementRepository,
		consumptionRepo repository.ConsumptionRepository,
		alertRepo repository.AlertRepository,
	) error {
		cons, err := consumptionRepo.GetByOrderIDForUpdate(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if cons != nil && cons.Computed && !input.Force {
			return domain.ErrAlreadyComputed
		}

		resources := make(map[string]*entity.Resource, len(resourceIDs))
		for _, id := range resourceIDs {
			res, err := resourceRepo.GetByIDForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if res == nil {
				return domain.ErrResourceNotFound
			}
			resources[id] = res
		}

		if input.Force {
			reversed, err := movRepo.ReverseBySourceRef(ctx, sourceRef)
			if err != nil {
				return err
			}
			if reversed > 0 {
				log.Info().Str("order_id", input.OrderID).Int("reversed", reversed).
					Msg("movimientos previos de la orden revertidos para recomputación")
			}
		}

		shortages, err := uc.collectShortages(ctx, f, required, movRepo)
		if err != nil {
			return err
		}
		if len(shortages) > 0 {
			if uc.blockOnShortage && !input.Force {
				return &ShortageError{Shortages: shortages}
			}
			log.Warn().Str("order_id", input.OrderID).Int("shortages", len(shortages)).
				Msg("stock insuficiente: consumo registrado igualmente por política")
		}

		movementIDs := make([]string, 0, len(resourceIDs))
		for _, id := range resourceIDs {
			mov := &entity.StockMovement{
				ResourceID: id,
				Kind:       entity.MovementExit,
				Quantity:   required[id],
				Description: fmt.Sprintf("Salida automática por orden de producción %s - %s",
					input.OrderID, f.Name),
				SourceRef:  sourceRef,
				OccurredAt: now,
				CreatedAt:  now,
				CreatedBy:  input.UserID,
			}
			if err := movRepo.Create(ctx, mov); err != nil {
				return err
			}
			movementIDs = append(movementIDs, mov.ID)
		}

		// Evaluación de umbrales materia por materia, en la misma transacción.
		for _, id := range resourceIDs {
			balance, err := movRepo.Balance(ctx, id, nil)
			if err != nil {
				return err
			}
			if err := uc.evaluator.Evaluate(ctx, resources[id], balance, alertRepo); err != nil {
				return err
			}
		}

		if cons == nil {
			cons = &entity.ProductionConsumption{OrderID: input.OrderID}
		}
		cons.FormulaID = input.FormulaID
		cons.Quantity = input.Quantity
		cons.Computed = true
		cons.MovementIDs = movementIDs
		cons.ComputedAt = now
		cons.ComputedBy = input.UserID
		if cons.ID == "" {
			if err := consumptionRepo.Create(ctx, cons); err != nil {
				return err
			}
		} else if err := consumptionRepo.Update(ctx, cons); err != nil {
			return err
		}
		result = cons
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
