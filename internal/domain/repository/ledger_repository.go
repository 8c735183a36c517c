package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-engine/internal/domain/entity"
)

// LedgerFilter filtra el ledger. Los campos vacíos no filtran; From y To son inclusivos.
type LedgerFilter struct {
	ProductID    string
	LocationID   string
	WarehouseID  string
	MovementType entity.MovementType
	DocumentID   string
	From         *time.Time
	To           *time.Time
	Limit        int
	Skip         int
}

// LedgerRepository es el puerto del ledger de stock. Es de solo inserción: no existen Update ni Delete.
type LedgerRepository interface {
	Append(ctx context.Context, entry *entity.StockLedgerEntry) error
	// List devuelve las entradas más recientes primero.
	List(ctx context.Context, filter LedgerFilter) ([]*entity.StockLedgerEntry, error)
	Count(ctx context.Context, filter LedgerFilter) (int, error)
	// SumDelta suma los deltas del par (producto, ubicación); debe coincidir con StockBalance.OnHand.
	SumDelta(ctx context.Context, productID, locationID string) (decimal.Decimal, error)
}
