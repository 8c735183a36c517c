package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario (multi-ubicación).
// SKU es inmutable; Name, Category, UnitMeasure, Cost y MinStockLevel son campos administrativos.
type Product struct {
	ID            string
	SKU           string // único global, en mayúsculas
	Name          string
	Category      string
	UnitMeasure   string
	Cost          decimal.Decimal // costo por unidad
	MinStockLevel decimal.Decimal // umbral de reorden
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
