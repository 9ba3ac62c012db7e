package costing_test

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/betonpro/beton-api/internal/domain/entity"
)

// Fakes en memoria de los puertos que consume el motor de costos.

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

type fakeRateRepo struct {
	items []*entity.CostRate
}

func (r *fakeRateRepo) Create(_ context.Context, rate *entity.CostRate) error {
	if rate.ID == "" {
		rate.ID = fmt.Sprintf("rate-%d", len(r.items)+1)
	}
	r.items = append(r.items, rate)
	return nil
}

func (r *fakeRateRepo) ActiveForDate(_ context.Context, category, unit string, date time.Time) ([]*entity.CostRate, error) {
	var out []*entity.CostRate
	for _, rate := range r.items {
		if rate.Category == category && rate.Unit == unit && rate.CoversDate(date) {
			out = append(out, rate)
		}
	}
	return out, nil
}

func (r *fakeRateRepo) List(_ context.Context, category string) ([]*entity.CostRate, error) {
	var out []*entity.CostRate
	for _, rate := range r.items {
		if category == "" || rate.Category == category {
			out = append(out, rate)
		}
	}
	return out, nil
}

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }
