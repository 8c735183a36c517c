package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-engine/internal/domain/entity"
)

// StockFilter filtra filas de StockBalance. Los campos vacíos no filtran.
type StockFilter struct {
	ProductID    string
	LocationID   string
	WarehouseID  string
	OnlyZero     bool // solo saldos en cero (reporte de agotados)
	AtOrBelowMin bool // solo saldos <= MinStockLevel del producto
}

// LowStockItem producto cuyo stock sumado está en o por debajo de su umbral de reorden.
type LowStockItem struct {
	Product entity.Product
	OnHand  decimal.Decimal
}

// StockRepository define el puerto de la tabla de saldos por (producto, ubicación).
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// GetOrCreate devuelve el saldo del par creando una fila en cero si no existe.
	// Dentro de una transacción la fila queda bloqueada hasta el commit (SELECT FOR UPDATE).
	GetOrCreate(ctx context.Context, productID, locationID, warehouseID string) (*entity.StockBalance, error)
	// Save persiste OnHand/FreeToUse de una fila obtenida con GetOrCreate.
	// Solo el aplicador de movimientos debe llamarlo.
	Save(ctx context.Context, balance *entity.StockBalance) error
	Get(ctx context.Context, productID, locationID string) (*entity.StockBalance, error)
	List(ctx context.Context, filter StockFilter) ([]*entity.StockBalance, error)
	Count(ctx context.Context, filter StockFilter) (int, error)
	// SumOnHand suma OnHand del producto en todas sus ubicaciones (o solo en warehouseID si no es vacío).
	SumOnHand(ctx context.Context, productID, warehouseID string) (decimal.Decimal, error)
	// ListLowStock devuelve productos con stock sumado <= MinStockLevel. Un producto sin saldos cuenta como 0.
	ListLowStock(ctx context.Context, warehouseID string) ([]LowStockItem, error)
}
