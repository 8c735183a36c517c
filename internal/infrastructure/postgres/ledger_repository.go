package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-engine/internal/domain/entity"
	"github.com/jhoicas/stock-engine/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación de LedgerRepository sobre PostgreSQL. Solo INSERT y SELECT.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador.
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Append inserta una entrada inmutable.
func (r *LedgerRepo) Append(ctx context.Context, e *entity.StockLedgerEntry) error {
	query := `
		INSERT INTO stock_ledger (id, product_id, location_id, warehouse_id, quantity, on_hand, free_to_use,
			unit_cost, total_cost, movement_type, reference, document_id, date, responsible, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.ProductID, e.LocationID, e.WarehouseID, e.Quantity, e.OnHand, e.FreeToUse,
		e.UnitCost, e.TotalCost, string(e.MovementType), e.Reference, nullIfEmpty(e.DocumentID),
		e.Date, e.Responsible, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

func ledgerWhere(lf repository.LedgerFilter) *filter {
	f := &filter{}
	if lf.ProductID != "" {
		f.add("product_id = $%d", lf.ProductID)
	}
	if lf.LocationID != "" {
		f.add("location_id = $%d", lf.LocationID)
	}
	if lf.WarehouseID != "" {
		f.add("warehouse_id = $%d", lf.WarehouseID)
	}
	if lf.MovementType != "" {
		f.add("movement_type = $%d", string(lf.MovementType))
	}
	if lf.DocumentID != "" {
		f.add("document_id = $%d", lf.DocumentID)
	}
	if lf.From != nil {
		f.add("date >= $%d", *lf.From)
	}
	if lf.To != nil {
		f.add("date <= $%d", *lf.To)
	}
	return f
}

// List devuelve entradas más recientes primero; seq desempata entradas con la misma fecha.
func (r *LedgerRepo) List(ctx context.Context, lf repository.LedgerFilter) ([]*entity.StockLedgerEntry, error) {
	f := ledgerWhere(lf)
	query := `
		SELECT id, product_id, location_id, warehouse_id, quantity, on_hand, free_to_use, unit_cost, total_cost,
			movement_type, reference, COALESCE(document_id::text, ''), date, responsible, created_at
		FROM stock_ledger` + f.where() + ` ORDER BY date DESC, seq DESC`
	query += f.page(lf.Limit, lf.Skip)
	rows, err := r.q.Query(ctx, query, f.args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.StockLedgerEntry, 0)
	for rows.Next() {
		var e entity.StockLedgerEntry
		var mt string
		if err := rows.Scan(&e.ID, &e.ProductID, &e.LocationID, &e.WarehouseID, &e.Quantity, &e.OnHand, &e.FreeToUse,
			&e.UnitCost, &e.TotalCost, &mt, &e.Reference, &e.DocumentID, &e.Date, &e.Responsible, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		e.MovementType = entity.MovementType(mt)
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (r *LedgerRepo) Count(ctx context.Context, lf repository.LedgerFilter) (int, error) {
	f := ledgerWhere(lf)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_ledger`+f.where(), f.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count ledger: %w", err)
	}
	return n, nil
}

func (r *LedgerRepo) SumDelta(ctx context.Context, productID, locationID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM stock_ledger WHERE product_id = $1 AND location_id = $2`,
		productID, locationID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum ledger: %w", err)
	}
	return sum, nil
}
