package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBalance representa el stock actual de un producto en una ubicación (tabla materializada).
// Clave (ProductID, LocationID). WarehouseID es una copia desnormalizada de Location.WarehouseID.
// FreeToUse siempre refleja OnHand: no existe el concepto de reserva.
type StockBalance struct {
	ProductID   string
	LocationID  string
	WarehouseID string
	OnHand      decimal.Decimal
	FreeToUse   decimal.Decimal
	UpdatedAt   time.Time
}

// NewStockBalance devuelve una fila en cero para el par (producto, ubicación).
func NewStockBalance(productID, locationID, warehouseID string) *StockBalance {
	return &StockBalance{
		ProductID:   productID,
		LocationID:  locationID,
		WarehouseID: warehouseID,
		OnHand:      decimal.Zero,
		FreeToUse:   decimal.Zero,
	}
}
