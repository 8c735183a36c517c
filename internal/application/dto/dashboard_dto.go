package dto

import "github.com/shopspring/decimal"

// OperationKindCounts documentos pendientes de una variante.
type OperationKindCounts struct {
	Kind      string `json:"kind"`
	ToProcess int    `json:"to_process"` // en ready
	Waiting   int    `json:"waiting"`
	Late      int    `json:"late"` // waiting o ready con fecha programada vencida
}

// TopSKUDTO producto con mayor valor de inventario.
type TopSKUDTO struct {
	ProductID   string          `json:"product_id"`
	SKU         string          `json:"sku"`
	ProductName string          `json:"product_name"`
	OnHand      decimal.Decimal `json:"on_hand"`
	StockValue  decimal.Decimal `json:"stock_value"` // on_hand × cost
}

// DashboardSummaryDTO resumen operativo de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	WarehouseID      string                `json:"warehouse_id,omitempty"`
	Operations       []OperationKindCounts `json:"operations"`
	LowStockCount    int                   `json:"low_stock_count"`
	OutOfStockCount  int                   `json:"out_of_stock_count"`
	MonthlyMovements int                   `json:"monthly_movements"`
	StockValue       decimal.Decimal       `json:"stock_value"`
	TopSKUs          []TopSKUDTO           `json:"top_skus"`
	DateLabel        string                `json:"date_label"`
}
