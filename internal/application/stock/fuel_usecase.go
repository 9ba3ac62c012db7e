package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/betonpro/beton-api/internal/application/dto"
	"github.com/betonpro/beton-api/internal/domain"
	"github.com/betonpro/beton-api/internal/domain/entity"
	"github.com/betonpro/beton-api/internal/domain/repository"
)

// FuelUseCase módulo de combustible sobre el mismo libro de stock: un
// aprovisionamiento es una entrada más su compra con precio, un consumo de
// engin es una salida referenciada por equipo. Los umbrales y alertas siguen
// el patrón común de las materias primas.
type FuelUseCase struct {
	txRunner      FuelTxRunner
	movRepo       repository.MovementRepository
	equipmentRepo repository.EquipmentRepository
	evaluator     *AlertEvaluator
}

// NewFuelUseCase construye el caso de uso de combustible.
func NewFuelUseCase(
	txRunner FuelTxRunner,
	movRepo repository.MovementRepository,
	equipmentRepo repository.EquipmentRepository,
	evaluator *AlertEvaluator,
) *FuelUseCase {
	return &FuelUseCase{
		txRunner:      txRunner,
		movRepo:       movRepo,
		equipmentRepo: equipmentRepo,
		evaluator:     evaluator,
	}
}

// RecordRefuel registra un aprovisionamiento: entrada en el libro y compra con
// precio en una sola transacción, con evaluación de umbrales (resolución
// automática de alertas al recuperar saldo).
func (uc *FuelUseCase) RecordRefuel(ctx context.Context, in dto.RecordRefuelRequest, userID string) (*entity.StockMovement, error) {
	if in.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	if in.UnitPriceHT.LessThanOrEqual(decimal.Zero) || in.TaxRatePct.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var mov *entity.StockMovement
	err := uc.txRunner.RunFuel(ctx, func(
		resourceRepo repository.ResourceRepository,
		movRepo repository.MovementRepository,
		purchaseRepo repository.PurchaseRepository,
		alertRepo repository.AlertRepository,
	) error {
		res, err := resourceRepo.GetByIDForUpdate(ctx, in.ResourceID)
		if err != nil {
			return err
		}
		if res == nil || res.Kind != entity.ResourceKindFuel {
			return domain.ErrResourceNotFound
		}

		purchase := &entity.PurchaseEntry{
			ResourceID:    in.ResourceID,
			Supplier:      in.Supplier,
			Quantity:      in.Quantity,
			UnitPriceHT:   in.UnitPriceHT,
			TaxRatePct:    in.TaxRatePct,
			InvoiceNumber: in.InvoiceNumber,
			InvoiceDate:   now,
			CreatedAt:     now,
		}
		if err := purchaseRepo.Create(ctx, purchase); err != nil {
			return err
		}

		mov = &entity.StockMovement{
			ResourceID: in.ResourceID,
			Kind:       entity.MovementEntry,
			Quantity:   in.Quantity,
			Description: fmt.Sprintf("Aprovisionamiento %s - %s%s",
				res.Name, in.Supplier, notesSuffix(in.Notes)),
			SourceRef:  entity.PurchaseSourceRef(purchase.ID),
			OccurredAt: now,
			CreatedAt:  now,
			CreatedBy:  userID,
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

// RecordEquipmentConsumption registra el consumo de un engin como salida del
// libro del combustible.
func (uc *FuelUseCase) RecordEquipmentConsumption(ctx context.Context, in dto.RecordFuelConsumptionRequest, userID string) (*entity.StockMovement, error) {
	if in.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	eq, err := uc.equipmentRepo.GetByID(ctx, in.EquipmentID)
	if err != nil {
		return nil, err
	}
	if eq == nil || !eq.Active {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var mov *entity.StockMovement
	err = uc.txRunner.RunFuel(ctx, func(
		resourceRepo repository.ResourceRepository,
		movRepo repository.MovementRepository,
		_ repository.PurchaseRepository,
		alertRepo repository.AlertRepository,
	) error {
		res, err := resourceRepo.GetByIDForUpdate(ctx, in.ResourceID)
		if err != nil {
			return err
		}
		if res == nil || res.Kind != entity.ResourceKindFuel {
			return domain.ErrResourceNotFound
		}

		mov = &entity.StockMovement{
			ResourceID: in.ResourceID,
			Kind:       entity.MovementExit,
			Quantity:   in.Quantity,
			Description: fmt.Sprintf("Consumo de %s%s",
				eq.Name, notesSuffix(in.Notes)),
			SourceRef:  entity.EquipmentSourceRef(eq.ID),
			OccurredAt: now,
			CreatedAt:  now,
			CreatedBy:  userID,
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

// EquipmentConsumptionTotal total consumido por un engin en un rango de fechas.
func (uc *FuelUseCase) EquipmentConsumptionTotal(ctx context.Context, equipmentID string, from, to *time.Time) (decimal.Decimal, error) {
	eq, err := uc.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return decimal.Zero, err
	}
	if eq == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	return uc.movRepo.SumBySource(ctx, entity.EquipmentSourceRef(equipmentID), from, to)
}

// CreateEquipment da de alta un engin consumidor de combustible.
func (uc *FuelUseCase) CreateEquipment(ctx context.Context, in dto.EquipmentRequest) (*entity.Equipment, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.AvgConsumptionPerHour.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	eq := &entity.Equipment{
		Name:                  in.Name,
		Category:              in.Category,
		Registration:          in.Registration,
		AvgConsumptionPerHour: in.AvgConsumptionPerHour,
		Active:                true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := uc.equipmentRepo.Create(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}

// ListEquipment lista los engins, opcionalmente solo activos.
func (uc *FuelUseCase) ListEquipment(ctx context.Context, onlyActive bool) ([]*entity.Equipment, error) {
	return uc.equipmentRepo.List(ctx, onlyActive)
}

func notesSuffix(notes string) string {
	if notes == "" {
		return ""
	}
	return " - " + notes
}
