package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-engine/internal/domain"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
	"github.com/jhoicas/stock-engine/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const balanceColumns = `product_id, location_id, warehouse_id, on_hand, free_to_use, updated_at`

func scanBalance(row pgx.Row) (*entity.StockBalance, error) {
	var b entity.StockBalance
	if err := row.Scan(&b.ProductID, &b.LocationID, &b.WarehouseID, &b.OnHand, &b.FreeToUse, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// GetOrCreate inserta la fila en cero si no existe y la lee con SELECT FOR UPDATE.
// Dentro de una tx el bloqueo se mantiene hasta Commit o Rollback.
func (r *StockRepo) GetOrCreate(ctx context.Context, productID, locationID, warehouseID string) (*entity.StockBalance, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_balances (product_id, location_id, warehouse_id, on_hand, free_to_use, updated_at)
		VALUES ($1, $2, $3, 0, 0, now())
		ON CONFLICT (product_id, location_id) DO NOTHING`,
		productID, locationID, warehouseID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("create stock balance: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("create stock balance: %w", err)
	}
	b, err := scanBalance(r.q.QueryRow(ctx, `
		SELECT `+balanceColumns+` FROM stock_balances
		WHERE product_id = $1 AND location_id = $2
		FOR UPDATE`, productID, locationID))
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return b, nil
}

// Save escribe OnHand/FreeToUse. El CHECK (on_hand >= 0) de la tabla respalda la validación del aplicador.
func (r *StockRepo) Save(ctx context.Context, b *entity.StockBalance) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE stock_balances SET on_hand = $3, free_to_use = $4, updated_at = $5
		WHERE product_id = $1 AND location_id = $2`,
		b.ProductID, b.LocationID, b.OnHand, b.FreeToUse, b.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update stock %s/%s: %w", b.ProductID, b.LocationID, domain.ErrNotFound)
	}
	return nil
}

func (r *StockRepo) Get(ctx context.Context, productID, locationID string) (*entity.StockBalance, error) {
	b, err := scanBalance(r.q.QueryRow(ctx,
		`SELECT `+balanceColumns+` FROM stock_balances WHERE product_id = $1 AND location_id = $2`,
		productID, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return b, nil
}

func stockWhere(sf repository.StockFilter) *filter {
	f := &filter{}
	if sf.ProductID != "" {
		f.add("b.product_id = $%d", sf.ProductID)
	}
	if sf.LocationID != "" {
		f.add("b.location_id = $%d", sf.LocationID)
	}
	if sf.WarehouseID != "" {
		f.add("b.warehouse_id = $%d", sf.WarehouseID)
	}
	if sf.OnlyZero {
		f.raw("b.on_hand = 0")
	}
	if sf.AtOrBelowMin {
		f.raw("EXISTS (SELECT 1 FROM products p WHERE p.id = b.product_id AND b.on_hand <= p.min_stock_level)")
	}
	return f
}

func (r *StockRepo) List(ctx context.Context, sf repository.StockFilter) ([]*entity.StockBalance, error) {
	f := stockWhere(sf)
	query := `
		SELECT b.product_id, b.location_id, b.warehouse_id, b.on_hand, b.free_to_use, b.updated_at
		FROM stock_balances b` + f.where() + ` ORDER BY b.location_id, b.product_id`
	rows, err := r.q.Query(ctx, query, f.args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.StockBalance, 0)
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *StockRepo) Count(ctx context.Context, sf repository.StockFilter) (int, error) {
	f := stockWhere(sf)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_balances b`+f.where(), f.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stock: %w", err)
	}
	return n, nil
}

func (r *StockRepo) SumOnHand(ctx context.Context, productID, warehouseID string) (decimal.Decimal, error) {
	f := stockWhere(repository.StockFilter{ProductID: productID, WarehouseID: warehouseID})
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(b.on_hand), 0) FROM stock_balances b`+f.where(), f.args...).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum stock: %w", err)
	}
	return sum, nil
}

// ListLowStock agrupa por producto; el LEFT JOIN hace que un producto sin saldos sume 0.
func (r *StockRepo) ListLowStock(ctx context.Context, warehouseID string) ([]repository.LowStockItem, error) {
	query := `
		SELECT p.id, p.sku, p.name, p.category, p.unit_measure, p.cost, p.min_stock_level, p.created_at, p.updated_at,
		       COALESCE(SUM(b.on_hand), 0) AS on_hand
		FROM products p
		LEFT JOIN stock_balances b
		       ON b.product_id = p.id AND ($1::text = '' OR b.warehouse_id::text = $1::text)
		GROUP BY p.id
		HAVING COALESCE(SUM(b.on_hand), 0) <= p.min_stock_level
		ORDER BY p.sku`
	rows, err := r.q.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	defer rows.Close()
	out := make([]repository.LowStockItem, 0)
	for rows.Next() {
		var it repository.LowStockItem
		p := &it.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Category, &p.UnitMeasure, &p.Cost, &p.MinStockLevel,
			&p.CreatedAt, &p.UpdatedAt, &it.OnHand); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
