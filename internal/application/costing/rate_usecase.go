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

// RateUseCase administración de tarifas de costo configurables.
type RateUseCase struct {
	rateRepo repository.CostRateRepository
}

// NewRateUseCase construye el caso de uso.
func NewRateUseCase(rateRepo repository.CostRateRepository) *RateUseCase {
	return &RateUseCase{rateRepo: rateRepo}
}

func validCategory(c string) bool {
	switch c {
	case entity.CostCategoryLabor, entity.CostCategoryOverhead, entity.CostCategoryTransport:
		return true
	}
	return false
}

func validUnit(u string) bool {
	switch u {
	case entity.CostUnitPerHour, entity.CostUnitPerM3, entity.CostUnitPerOrder:
		return true
	}
	return false
}

// Create da de alta una tarifa activa con período de validez.
func (uc *RateUseCase) Create(ctx context.Context, in dto.CostRateRequest) (*entity.CostRate, error) {
	if !validCategory(in.Category) || !validUnit(in.Unit) || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Value.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	dateFrom := time.Now()
	if in.DateFrom != "" {
		var err error
		dateFrom, err = time.Parse("2006-01-02", in.DateFrom)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	var dateTo *time.Time
	if in.DateTo != "" {
		t, err := time.Parse("2006-01-02", in.DateTo)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		if t.Before(dateFrom) {
			return nil, domain.ErrInvalidInput
		}
		dateTo = &t
	}

	rate := &entity.CostRate{
		Category:  in.Category,
		Name:      in.Name,
		Value:     in.Value,
		Unit:      in.Unit,
		Active:    true,
		DateFrom:  dateFrom,
		DateTo:    dateTo,
		CreatedAt: time.Now(),
	}
	if err := uc.rateRepo.Create(ctx, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

// List devuelve las tarifas, opcionalmente filtradas por categoría.
func (uc *RateUseCase) List(ctx context.Context, category string) ([]*entity.CostRate, error) {
	if category != "" && !validCategory(category) {
		return nil, domain.ErrInvalidInput
	}
	return uc.rateRepo.List(ctx, category)
}
