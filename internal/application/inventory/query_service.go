package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-engine/internal/domain"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
	"github.com/jhoicas/stock-engine/internal/domain/repository"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 500
)

// normalizePage aplica el límite por defecto (50) y el máximo (500).
func normalizePage(limit, skip int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if skip < 0 {
		skip = 0
	}
	return limit, skip
}

// StockQueryService expone las consultas de solo lectura sobre saldos y ledger.
type StockQueryService struct {
	repos Repos
}

// NewStockQueryService construye el servicio de consultas.
func NewStockQueryService(repos Repos) *StockQueryService {
	return &StockQueryService{repos: repos}
}

// Stock lista saldos por producto, ubicación y/o bodega.
func (s *StockQueryService) Stock(ctx context.Context, filter repository.StockFilter) ([]*entity.StockBalance, error) {
	return s.repos.Stock.List(ctx, filter)
}

// Ledger lista movimientos, más recientes primero.
func (s *StockQueryService) Ledger(ctx context.Context, filter repository.LedgerFilter) ([]*entity.StockLedgerEntry, error) {
	if filter.MovementType != "" && !filter.MovementType.IsValid() {
		return nil, domain.Invalid("movement_type", "tipo de movimiento desconocido")
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, domain.Invalid("from", "el rango de fechas está invertido")
	}
	filter.Limit, filter.Skip = normalizePage(filter.Limit, filter.Skip)
	return s.repos.Ledger.List(ctx, filter)
}

// LowStockReport producto en o bajo su umbral de reorden con la cantidad sugerida de pedido.
type LowStockReport struct {
	Product            entity.Product
	OnHand             decimal.Decimal
	Deficit            decimal.Decimal // MinStockLevel - OnHand
	SuggestedOrderQty  decimal.Decimal // hasta 1.5 × MinStockLevel
	EstimatedOrderCost decimal.Decimal
}

var idealStockFactor = decimal.NewFromFloat(1.5)

// LowStock devuelve los productos cuyo stock sumado (en todas las ubicaciones o solo en warehouseID)
// es menor o igual a su MinStockLevel, ordenados por mayor déficit.
func (s *StockQueryService) LowStock(ctx context.Context, warehouseID string) ([]LowStockReport, error) {
	items, err := s.repos.Stock.ListLowStock(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("stock bajo: %w", err)
	}
	out := make([]LowStockReport, 0, len(items))
	for _, it := range items {
		ideal := it.Product.MinStockLevel.Mul(idealStockFactor)
		suggested := ideal.Sub(it.OnHand)
		if suggested.IsNegative() {
			suggested = decimal.Zero
		}
		out = append(out, LowStockReport{
			Product:            it.Product,
			OnHand:             it.OnHand,
			Deficit:            it.Product.MinStockLevel.Sub(it.OnHand),
			SuggestedOrderQty:  suggested,
			EstimatedOrderCost: suggested.Mul(it.Product.Cost),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Deficit.Equal(out[j].Deficit) {
			return out[i].Deficit.GreaterThan(out[j].Deficit)
		}
		return out[i].Product.SKU < out[j].Product.SKU
	})
	return out, nil
}

// OutOfStock lista los saldos en cero.
func (s *StockQueryService) OutOfStock(ctx context.Context, warehouseID string) ([]*entity.StockBalance, error) {
	return s.repos.Stock.List(ctx, repository.StockFilter{WarehouseID: warehouseID, OnlyZero: true})
}

// ReplayCheck compara la suma de deltas del ledger con el saldo materializado.
type ReplayCheck struct {
	ProductID  string
	LocationID string
	LedgerSum  decimal.Decimal
	OnHand     decimal.Decimal
	Consistent bool
}

// VerifyReplay reconstruye el saldo de (producto, ubicación) desde el ledger y lo compara con la tabla.
func (s *StockQueryService) VerifyReplay(ctx context.Context, productID, locationID string) (*ReplayCheck, error) {
	sum, err := s.repos.Ledger.SumDelta(ctx, productID, locationID)
	if err != nil {
		return nil, fmt.Errorf("replay: sumar ledger: %w", err)
	}
	onHand := decimal.Zero
	bal, err := s.repos.Stock.Get(ctx, productID, locationID)
	if err != nil {
		return nil, fmt.Errorf("replay: obtener saldo: %w", err)
	}
	if bal != nil {
		onHand = bal.OnHand
	}
	return &ReplayCheck{
		ProductID:  productID,
		LocationID: locationID,
		LedgerSum:  sum,
		OnHand:     onHand,
		Consistent: sum.Equal(onHand),
	}, nil
}
