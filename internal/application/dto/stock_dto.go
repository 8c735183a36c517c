package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBalanceResponse saldo de un producto en una ubicación.
type StockBalanceResponse struct {
	ProductID   string          `json:"product_id"`
	LocationID  string          `json:"location_id"`
	WarehouseID string          `json:"warehouse_id"`
	OnHand      decimal.Decimal `json:"on_hand"`
	FreeToUse   decimal.Decimal `json:"free_to_use"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// LedgerQuery filtros de GET /api/stock/ledger. from y to en RFC3339.
type LedgerQuery struct {
	ProductID    string `query:"product_id" validate:"omitempty,uuid"`
	LocationID   string `query:"location_id" validate:"omitempty,uuid"`
	WarehouseID  string `query:"warehouse_id" validate:"omitempty,uuid"`
	MovementType string `query:"movement_type" validate:"omitempty,oneof=receipt delivery transfer adjustment"`
	DocumentID   string `query:"document_id" validate:"omitempty,uuid"`
	From         string `query:"from" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	To           string `query:"to" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Limit        int    `query:"limit" validate:"omitempty,min=1,max=500"`
	Skip         int    `query:"skip" validate:"omitempty,min=0"`
}

// LedgerEntryResponse entrada del ledger con la foto del saldo resultante.
type LedgerEntryResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	LocationID   string          `json:"location_id"`
	WarehouseID  string          `json:"warehouse_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	OnHand       decimal.Decimal `json:"on_hand"`
	FreeToUse    decimal.Decimal `json:"free_to_use"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	MovementType string          `json:"movement_type"`
	Reference    string          `json:"reference"`
	DocumentID   string          `json:"document_id,omitempty"`
	Date         time.Time       `json:"date"`
	Responsible  string          `json:"responsible"`
}

// LedgerListResponse página del ledger, más recientes primero.
type LedgerListResponse struct {
	Items []LedgerEntryResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// LowStockResponse producto en o bajo su umbral de reorden.
type LowStockResponse struct {
	ProductID          string          `json:"product_id"`
	SKU                string          `json:"sku"`
	ProductName        string          `json:"product_name"`
	OnHand             decimal.Decimal `json:"on_hand"`
	MinStockLevel      decimal.Decimal `json:"min_stock_level"`
	Deficit            decimal.Decimal `json:"deficit"`
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`  // hasta 1.5 × min_stock_level
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // suggested_order_qty × cost
}

// ReplayCheckResponse resultado de reconstruir un saldo desde el ledger.
type ReplayCheckResponse struct {
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id"`
	LedgerSum  decimal.Decimal `json:"ledger_sum"`
	OnHand     decimal.Decimal `json:"on_hand"`
	Consistent bool            `json:"consistent"`
}
