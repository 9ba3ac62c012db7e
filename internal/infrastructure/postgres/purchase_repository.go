package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/betonpro/beton-api/internal/domain/entity"
	"github.com/betonpro/beton-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste una entrada de compra.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.PurchaseEntry) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO purchase_entries (id, resource_id, supplier, quantity, unit_price_ht, tax_rate_pct, invoice_number, invoice_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.ResourceID, p.Supplier, p.Quantity, p.UnitPriceHT,
		p.TaxRatePct, p.InvoiceNumber, p.InvoiceDate, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create purchase entry: %w", err)
	}
	return nil
}

// ListByResourceInRange entradas de una materia con fecha de factura en [from, to].
func (r *PurchaseRepo) ListByResourceInRange(ctx context.Context, resourceID string, from, to time.Time) ([]*entity.PurchaseEntry, error) {
	query := `
		SELECT id, resource_id, supplier, quantity, unit_price_ht, tax_rate_pct, invoice_number, invoice_date, created_at
		FROM purchase_entries
		WHERE resource_id = $1 AND invoice_date >= $2 AND invoice_date <= $3
		ORDER BY invoice_date`
	rows, err := r.q.Query(ctx, query, resourceID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list purchase entries: %w", err)
	}
	defer rows.Close()

	var items []*entity.PurchaseEntry
	for rows.Next() {
		var p entity.PurchaseEntry
		if err := rows.Scan(
			&p.ID, &p.ResourceID, &p.Supplier, &p.Quantity, &p.UnitPriceHT,
			&p.TaxRatePct, &p.InvoiceNumber, &p.InvoiceDate, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan purchase entry: %w", err)
		}
		items = append(items, &p)
	}
	return items, rows.Err()
}
