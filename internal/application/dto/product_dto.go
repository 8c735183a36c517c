package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El SKU se guarda en mayúsculas.
type CreateProductRequest struct {
	SKU           string          `json:"sku" validate:"required,min=1,max=64"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Category      string          `json:"category" validate:"max=100"`
	UnitMeasure   string          `json:"unit_measure" validate:"required,max=20"`
	Cost          decimal.Decimal `json:"cost"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
}

// UpdateProductRequest entrada para actualizar los campos administrativos (el SKU es inmutable).
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category      *string          `json:"category" validate:"omitempty,max=100"`
	UnitMeasure   *string          `json:"unit_measure" validate:"omitempty,min=1,max=20"`
	Cost          *decimal.Decimal `json:"cost"`
	MinStockLevel *decimal.Decimal `json:"min_stock_level"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	UnitMeasure   string          `json:"unit_measure"`
	Cost          decimal.Decimal `json:"cost"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
