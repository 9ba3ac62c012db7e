package costing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/betonpro/beton-api/internal/application/dto"
	"github.com/betonpro/beton-api/internal/domain"
	"github.com/betonpro/beton-api/internal/domain/entity"
	"github.com/betonpro/beton-api/internal/domain/repository"
)

// PurchaseUseCase captura de compras con precio (facturas de proveedor) para
// alimentar el histórico de precios. No toca el libro de stock: el saldo viene
// solo de los movimientos.
type PurchaseUseCase struct {
	purchaseRepo repository.PurchaseRepository
	resRepo      repository.ResourceRepository
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(purchaseRepo repository.PurchaseRepository, resRepo repository.ResourceRepository) *PurchaseUseCase {
	return &PurchaseUseCase{purchaseRepo: purchaseRepo, resRepo: resRepo}
}

// Register valida y persiste una entrada de compra.
func (uc *PurchaseUseCase) Register(ctx context.Context, in dto.PurchaseEntryRequest) (*entity.PurchaseEntry, error) {
	if in.Quantity.LessThanOrEqual(decimal.Zero) || in.UnitPriceHT.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	if in.TaxRatePct.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	res, err := uc.resRepo.GetByID(ctx, in.ResourceID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, domain.ErrResourceNotFound
	}

	invoiceDate := time.Now()
	if in.InvoiceDate != "" {
		invoiceDate, err = time.Parse("2006-01-02", in.InvoiceDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}

	entry := &entity.PurchaseEntry{
		ResourceID:    in.ResourceID,
		Supplier:      in.Supplier,
		Quantity:      in.Quantity,
		UnitPriceHT:   in.UnitPriceHT,
		TaxRatePct:    in.TaxRatePct,
		InvoiceNumber: in.InvoiceNumber,
		InvoiceDate:   invoiceDate,
		CreatedAt:     time.Now(),
	}
	if err := uc.purchaseRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
