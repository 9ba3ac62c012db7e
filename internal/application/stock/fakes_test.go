package stock_test

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/betonpro/beton-api/internal/domain/entity"
	"github.com/betonpro/beton-api/internal/domain/repository"
)

// Fakes en memoria de los puertos de persistencia, compartidos por los tests
// del paquete. Implementan la misma semántica que los adaptadores de Postgres:
// saldos derivados del libro, reversión por source_ref, alertas abiertas.

type fakeResourceRepo struct {
	items map[string]*entity.Resource
}

func newFakeResourceRepo(resources ...*entity.Resource) *fakeResourceRepo {
	r := &fakeResourceRepo{items: map[string]*entity.Resource{}}
	for _, res := range resources {
		r.items[res.ID] = res
	}
	return r
}

func (r *fakeResourceRepo) Create(_ context.Context, res *entity.Resource) error {
	if res.ID == "" {
		res.ID = fmt.Sprintf("res-%d", len(r.items)+1)
	}
	r.items[res.ID] = res
	return nil
}

func (r *fakeResourceRepo) GetByID(_ context.Context, id string) (*entity.Resource, error) {
	return r.items[id], nil
}

func (r *fakeResourceRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Resource, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeResourceRepo) List(_ context.Context, kind string) ([]*entity.Resource, error) {
	var out []*entity.Resource
	for _, res := range r.items {
		if kind == "" || res.Kind == kind {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *fakeResourceRepo) Update(_ context.Context, res *entity.Resource) error {
	r.items[res.ID] = res
	return nil
}

type fakeMovementRepo struct {
	items []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = fmt.Sprintf("mov-%d", len(r.items)+1)
	}
	cp := *m
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	for _, m := range r.items {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) Balance(_ context.Context, resourceID string, asOf *time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, m := range r.items {
		if m.ResourceID != resourceID || m.Reversed {
			continue
		}
		if asOf != nil && m.OccurredAt.After(*asOf) {
			continue
		}
		total = total.Add(m.Signed())
	}
	return total, nil
}

func (r *fakeMovementRepo) ListByResource(_ context.Context, resourceID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.items {
		if m.ResourceID != resourceID {
			continue
		}
		if from != nil && m.OccurredAt.Before(*from) {
			continue
		}
		if to != nil && m.OccurredAt.After(*to) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMovementRepo) ListBySourceRef(_ context.Context, sourceRef string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.items {
		if m.SourceRef == sourceRef {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ReverseBySourceRef(_ context.Context, sourceRef string) (int, error) {
	n := 0
	for _, m := range r.items {
		if m.SourceRef == sourceRef && !m.Reversed {
			m.Reversed = true
			n++
		}
	}
	return n, nil
}

func (r *fakeMovementRepo) SumBySource(_ context.Context, sourceRef string, from, to *time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, m := range r.items {
		if m.SourceRef != sourceRef || m.Reversed || m.Kind != entity.MovementExit {
			continue
		}
		if from != nil && m.OccurredAt.Before(*from) {
			continue
		}
		if to != nil && m.OccurredAt.After(*to) {
			continue
		}
		total = total.Add(m.Quantity)
	}
	return total, nil
}

func (r *fakeMovementRepo) Delete(_ context.Context, id string) error {
	for i, m := range r.items {
		if m.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeAlertRepo struct {
	items []*entity.StockAlert
}

func (r *fakeAlertRepo) Create(_ context.Context, a *entity.StockAlert) error {
	if a.ID == "" {
		a.ID = fmt.Sprintf("alert-%d", len(r.items)+1)
	}
	r.items = append(r.items, a)
	return nil
}

func (r *fakeAlertRepo) ListOpenByResource(_ context.Context, resourceID string) ([]*entity.StockAlert, error) {
	var out []*entity.StockAlert
	for _, a := range r.items {
		if a.ResourceID == resourceID && !a.Acknowledged {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAlertRepo) List(_ context.Context, acknowledged *bool, limit, offset int) ([]*entity.StockAlert, error) {
	var out []*entity.StockAlert
	for _, a := range r.items {
		if acknowledged != nil && a.Acknowledged != *acknowledged {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAlertRepo) Acknowledge(_ context.Context, id string) error {
	for _, a := range r.items {
		if a.ID == id {
			a.Acknowledged = true
		}
	}
	return nil
}

func (r *fakeAlertRepo) AcknowledgeByResource(_ context.Context, resourceID string) (int, error) {
	n := 0
	for _, a := range r.items {
		if a.ResourceID == resourceID && !a.Acknowledged {
			a.Acknowledged = true
			n++
		}
	}
	return n, nil
}

// open devuelve las alertas no reconocidas de una materia (helper de aserción).
func (r *fakeAlertRepo) open(resourceID string) []*entity.StockAlert {
	out, _ := r.ListOpenByResource(context.Background(), resourceID)
	return out
}

type fakeConsumptionRepo struct {
	items map[string]*entity.ProductionConsumption // por OrderID
}

func newFakeConsumptionRepo() *fakeConsumptionRepo {
	return &fakeConsumptionRepo{items: map[string]*entity.ProductionConsumption{}}
}

func (r *fakeConsumptionRepo) GetByOrderID(_ context.Context, orderID string) (*entity.ProductionConsumption, error) {
	return r.items[orderID], nil
}

func (r *fakeConsumptionRepo) GetByOrderIDForUpdate(ctx context.Context, orderID string) (*entity.ProductionConsumption, error) {
	return r.GetByOrderID(ctx, orderID)
}

func (r *fakeConsumptionRepo) Create(_ context.Context, c *entity.ProductionConsumption) error {
	if c.ID == "" {
		c.ID = fmt.Sprintf("cons-%d", len(r.items)+1)
	}
	r.items[c.OrderID] = c
	return nil
}

func (r *fakeConsumptionRepo) Update(_ context.Context, c *entity.ProductionConsumption) error {
	r.items[c.OrderID] = c
	return nil
}

type fakeFormulaRepo struct {
	items map[string]*entity.Formula
}

func newFakeFormulaRepo(formulas ...*entity.Formula) *fakeFormulaRepo {
	r := &fakeFormulaRepo{items: map[string]*entity.Formula{}}
	for _, f := range formulas {
		r.items[f.ID] = f
	}
	return r
}

func (r *fakeFormulaRepo) Create(_ context.Context, f *entity.Formula) error {
	if f.ID == "" {
		f.ID = fmt.Sprintf("formula-%d", len(r.items)+1)
	}
	r.items[f.ID] = f
	return nil
}

func (r *fakeFormulaRepo) GetByID(_ context.Context, id string) (*entity.Formula, error) {
	return r.items[id], nil
}

func (r *fakeFormulaRepo) List(_ context.Context) ([]*entity.Formula, error) {
	var out []*entity.Formula
	for _, f := range r.items {
		out = append(out, f)
	}
	return out, nil
}

type fakePurchaseRepo struct {
	items []*entity.PurchaseEntry
}

func (r *fakePurchaseRepo) Create(_ context.Context, p *entity.PurchaseEntry) error {
	if p.ID == "" {
		p.ID = fmt.Sprintf("purchase-%d", len(r.items)+1)
	}
	r.items = append(r.items, p)
	return nil
}

func (r *fakePurchaseRepo) ListByResourceInRange(_ context.Context, resourceID string, from, to time.Time) ([]*entity.PurchaseEntry, error) {
	var out []*entity.PurchaseEntry
	for _, p := range r.items {
		if p.ResourceID != resourceID {
			continue
		}
		if p.InvoiceDate.Before(from) || p.InvoiceDate.After(to) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type fakeEquipmentRepo struct {
	items map[string]*entity.Equipment
}

func newFakeEquipmentRepo(equipment ...*entity.Equipment) *fakeEquipmentRepo {
	r := &fakeEquipmentRepo{items: map[string]*entity.Equipment{}}
	for _, e := range equipment {
		r.items[e.ID] = e
	}
	return r
}

func (r *fakeEquipmentRepo) Create(_ context.Context, e *entity.Equipment) error {
	if e.ID == "" {
		e.ID = fmt.Sprintf("eq-%d", len(r.items)+1)
	}
	r.items[e.ID] = e
	return nil
}

func (r *fakeEquipmentRepo) GetByID(_ context.Context, id string) (*entity.Equipment, error) {
	return r.items[id], nil
}

func (r *fakeEquipmentRepo) List(_ context.Context, onlyActive bool) ([]*entity.Equipment, error) {
	var out []*entity.Equipment
	for _, e := range r.items {
		if onlyActive && !e.Active {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// fakeTxRunner ejecuta los cierres directamente sobre los fakes, sin
// transacción real. Implementa los tres runners del paquete.
type fakeTxRunner struct {
	resources    *fakeResourceRepo
	movements    *fakeMovementRepo
	alerts       *fakeAlertRepo
	consumptions *fakeConsumptionRepo
	purchases    *fakePurchaseRepo
}

func (tr *fakeTxRunner) Run(ctx context.Context, fn func(
	resourceRepo repository.ResourceRepository,
	movRepo repository.MovementRepository,
	alertRepo repository.AlertRepository,
) error) error {
	return fn(tr.resources, tr.movements, tr.alerts)
}

func (tr *fakeTxRunner) RunConsumption(ctx context.Context, fn func(
	resourceRepo repository.ResourceRepository,
	movRepo repository.MovementRepository,
	consumptionRepo repository.ConsumptionRepository,
	alertRepo repository.AlertRepository,
) error) error {
	return fn(tr.resources, tr.movements, tr.consumptions, tr.alerts)
}

func (tr *fakeTxRunner) RunFuel(ctx context.Context, fn func(
	resourceRepo repository.ResourceRepository,
	movRepo repository.MovementRepository,
	purchaseRepo repository.PurchaseRepository,
	alertRepo repository.AlertRepository,
) error) error {
	return fn(tr.resources, tr.movements, tr.purchases, tr.alerts)
}
