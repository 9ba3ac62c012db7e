package stock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/betonpro/beton-api/internal/application/dto"
	"github.com/betonpro/beton-api/internal/domain"
	"github.com/betonpro/beton-api/internal/domain/entity"
	"github.com/betonpro/beton-api/internal/domain/repository"
)

// FormulaUseCase administración de fórmulas de hormigón. Valida la composición
// contra las materias existentes antes de persistir; la resolución de
// cantidades vive en domain/formula.
type FormulaUseCase struct {
	formulaRepo repository.FormulaRepository
	resRepo     repository.ResourceRepository
}

// NewFormulaUseCase construye el caso de uso.
func NewFormulaUseCase(formulaRepo repository.FormulaRepository, resRepo repository.ResourceRepository) *FormulaUseCase {
	return &FormulaUseCase{formulaRepo: formulaRepo, resRepo: resRepo}
}

// Create da de alta una fórmula con su composición.
func (uc *FormulaUseCase) Create(ctx context.Context, in dto.FormulaRequest) (*entity.Formula, error) {
	if in.Name == "" || len(in.Components) == 0 {
		return nil, domain.ErrInvalidFormula
	}
	if in.ReferenceYield.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidFormula
	}

	seen := make(map[string]bool, len(in.Components))
	components := make([]entity.FormulaComponent, 0, len(in.Components))
	for _, comp := range in.Components {
		if comp.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidQuantity
		}
		if seen[comp.ResourceID] {
			return nil, domain.ErrDuplicate
		}
		seen[comp.ResourceID] = true
		res, err := uc.resRepo.GetByID(ctx, comp.ResourceID)
		if err != nil {
			return nil, err
		}
		if res == nil {
			return nil, domain.ErrResourceNotFound
		}
		components = append(components, entity.FormulaComponent{
			ResourceID:   comp.ResourceID,
			ResourceName: res.Name,
			Quantity:     comp.Quantity,
		})
	}

	now := time.Now()
	f := &entity.Formula{
		Name:           in.Name,
		Description:    in.Description,
		StrengthClass:  in.StrengthClass,
		ReferenceYield: in.ReferenceYield,
		Components:     components,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.formulaRepo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Get devuelve una fórmula con su composición.
func (uc *FormulaUseCase) Get(ctx context.Context, id string) (*entity.Formula, error) {
	f, err := uc.formulaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrFormulaNotFound
	}
	return f, nil
}

// List devuelve todas las fórmulas.
func (uc *FormulaUseCase) List(ctx context.Context) ([]*entity.Formula, error) {
	return uc.formulaRepo.List(ctx)
}
