package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType clasifica un movimiento del ledger.
type MovementType string

// Tipos de movimiento de inventario.
const (
	MovementTypeReceipt    MovementType = "receipt"    // entrada
	MovementTypeDelivery   MovementType = "delivery"   // salida
	MovementTypeTransfer   MovementType = "transfer"   // traslado entre ubicaciones
	MovementTypeAdjustment MovementType = "adjustment" // ajuste
)

// IsValid indica si el tipo de movimiento es conocido.
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeReceipt, MovementTypeDelivery, MovementTypeTransfer, MovementTypeAdjustment:
		return true
	}
	return false
}

// StockLedgerEntry es un registro inmutable del ledger de stock. OnHand y FreeToUse son la foto
// del saldo después de aplicar Quantity.
type StockLedgerEntry struct {
	ID           string
	ProductID    string
	LocationID   string
	WarehouseID  string
	Quantity     decimal.Decimal // delta con signo
	OnHand       decimal.Decimal
	FreeToUse    decimal.Decimal
	UnitCost     decimal.Decimal
	TotalCost    decimal.Decimal
	MovementType MovementType
	Reference    string
	DocumentID   string
	Date         time.Time
	Responsible  string
	CreatedAt    time.Time
}
