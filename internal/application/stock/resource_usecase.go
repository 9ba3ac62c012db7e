package stock

import (
	"context"
	"time"

	"github.com/betonpro/beton-api/internal/application/dto"
	"github.com/betonpro/beton-api/internal/domain"
	"github.com/betonpro/beton-api/internal/domain/entity"
	"github.com/betonpro/beton-api/internal/domain/repository"
)

// ResourceUseCase administración de materias rastreables. Un cambio de
// umbrales dispara la reevaluación de alertas sin esperar un movimiento nuevo.
type ResourceUseCase struct {
	resRepo repository.ResourceRepository
	ledger  *LedgerUseCase
}

// NewResourceUseCase construye el caso de uso.
func NewResourceUseCase(resRepo repository.ResourceRepository, ledger *LedgerUseCase) *ResourceUseCase {
	return &ResourceUseCase{resRepo: resRepo, ledger: ledger}
}

// Create da de alta una materia validando el invariante de umbrales.
func (uc *ResourceUseCase) Create(ctx context.Context, in dto.ResourceRequest) (*entity.Resource, error) {
	if in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	kind := in.Kind
	if kind == "" {
		kind = entity.ResourceKindMaterial
	}
	if kind != entity.ResourceKindMaterial && kind != entity.ResourceKindFuel {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	res := &entity.Resource{
		Name:              in.Name,
		Kind:              kind,
		Unit:              in.Unit,
		CriticalThreshold: in.CriticalThreshold,
		LowThreshold:      in.LowThreshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if !res.ValidThresholds() {
		return nil, domain.ErrInvalidThresholds
	}
	if err := uc.resRepo.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Update modifica nombre, unidad y umbrales; tras persistir reevalúa las
// alertas de la materia con los umbrales nuevos.
func (uc *ResourceUseCase) Update(ctx context.Context, id string, in dto.ResourceRequest) (*entity.Resource, error) {
	res, err := uc.resRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, domain.ErrResourceNotFound
	}
	if in.Name != "" {
		res.Name = in.Name
	}
	if in.Unit != "" {
		res.Unit = in.Unit
	}
	res.CriticalThreshold = in.CriticalThreshold
	res.LowThreshold = in.LowThreshold
	res.UpdatedAt = time.Now()
	if !res.ValidThresholds() {
		return nil, domain.ErrInvalidThresholds
	}
	if err := uc.resRepo.Update(ctx, res); err != nil {
		return nil, err
	}
	if err := uc.ledger.RecheckResource(ctx, res.ID); err != nil {
		return nil, err
	}
	return res, nil
}

// Get devuelve una materia por ID.
func (uc *ResourceUseCase) Get(ctx context.Context, id string) (*entity.Resource, error) {
	res, err := uc.resRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, domain.ErrResourceNotFound
	}
	return res, nil
}

// List devuelve las materias, opcionalmente filtradas por tipo.
func (uc *ResourceUseCase) List(ctx context.Context, kind string) ([]*entity.Resource, error) {
	return uc.resRepo.List(ctx, kind)
}
