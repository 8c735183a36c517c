// Package analytics contiene el resumen operativo del tablero de inventario.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-engine/internal/application/dto"
	"github.com/jhoicas/stock-engine/internal/application/inventory"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
	"github.com/jhoicas/stock-engine/internal/domain/repository"
)

const dashboardTopSKUs = 5 // número de SKUs en el widget del dashboard

var dashboardKinds = []entity.OperationKind{
	entity.OperationReceipt,
	entity.OperationDelivery,
	entity.OperationTransfer,
	entity.OperationAdjustment,
}

// DashboardUseCase genera el resumen operativo de una bodega (o de todas).
// Solo lee: no abre transacciones.
type DashboardUseCase struct {
	repos inventory.Repos
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repos inventory.Repos) *DashboardUseCase {
	return &DashboardUseCase{repos: repos, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO. warehouseID vacío resume todas las bodegas.
//
// Cuatro consultas en paralelo:
//  1. documentos waiting y ready   → Operations
//  2. productos bajo el umbral     → LowStockCount
//  3. saldos en cero               → OutOfStockCount
//  4. ledger del mes en curso      → MonthlyMovements
//
// El valor de inventario y el top de SKUs se calculan después, sobre los saldos.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, warehouseID string) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type opsResult struct {
		counts []dto.OperationKindCounts
		err    error
	}
	type countResult struct {
		n   int
		err error
	}

	opsCh := make(chan opsResult, 1)
	lowCh := make(chan countResult, 1)
	outCh := make(chan countResult, 1)
	movCh := make(chan countResult, 1)

	go func() {
		counts, err := uc.operationCounts(ctx, warehouseID, now)
		opsCh <- opsResult{counts, err}
	}()
	go func() {
		items, err := uc.repos.Stock.ListLowStock(ctx, warehouseID)
		lowCh <- countResult{len(items), err}
	}()
	go func() {
		n, err := uc.repos.Stock.Count(ctx, repository.StockFilter{WarehouseID: warehouseID, OnlyZero: true})
		outCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.repos.Ledger.Count(ctx, repository.LedgerFilter{WarehouseID: warehouseID, From: &monthStart})
		movCh <- countResult{n, err}
	}()

	ops := <-opsCh
	low := <-lowCh
	out := <-outCh
	mov := <-movCh

	if ops.err != nil {
		return nil, fmt.Errorf("dashboard: operaciones: %w", ops.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if out.err != nil {
		return nil, fmt.Errorf("dashboard: agotados: %w", out.err)
	}
	if mov.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos del mes: %w", mov.err)
	}

	total, top, err := uc.stockValue(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: valor de inventario: %w", err)
	}

	return &dto.DashboardSummaryDTO{
		WarehouseID:      warehouseID,
		Operations:       ops.counts,
		LowStockCount:    low.n,
		OutOfStockCount:  out.n,
		MonthlyMovements: mov.n,
		StockValue:       total,
		TopSKUs:          top,
		DateLabel:        monthLabel(now),
	}, nil
}

func (uc *DashboardUseCase) operationCounts(ctx context.Context, warehouseID string, now time.Time) ([]dto.OperationKindCounts, error) {
	byKind := make(map[entity.OperationKind]*dto.OperationKindCounts, len(dashboardKinds))
	out := make([]dto.OperationKindCounts, len(dashboardKinds))
	for i, k := range dashboardKinds {
		out[i].Kind = string(k)
		byKind[k] = &out[i]
	}
	for _, status := range []entity.OperationStatus{entity.StatusWaiting, entity.StatusReady} {
		docs, err := uc.repos.Operations.List(ctx, repository.OperationFilter{Status: status, WarehouseID: warehouseID})
		if err != nil {
			return nil, err
		}
		for _, d := range docs {
			c, ok := byKind[d.Kind]
			if !ok {
				continue
			}
			if status == entity.StatusReady {
				c.ToProcess++
			} else {
				c.Waiting++
			}
			if d.ScheduleDate != nil && d.ScheduleDate.Before(now) {
				c.Late++
			}
		}
	}
	return out, nil
}

// stockValue suma on_hand × cost por producto y devuelve los de mayor valor.
func (uc *DashboardUseCase) stockValue(ctx context.Context, warehouseID string) (decimal.Decimal, []dto.TopSKUDTO, error) {
	balances, err := uc.repos.Stock.List(ctx, repository.StockFilter{WarehouseID: warehouseID})
	if err != nil {
		return decimal.Zero, nil, err
	}
	onHand := make(map[string]decimal.Decimal)
	for _, b := range balances {
		onHand[b.ProductID] = onHand[b.ProductID].Add(b.OnHand)
	}

	total := decimal.Zero
	top := make([]dto.TopSKUDTO, 0, len(onHand))
	for productID, qty := range onHand {
		if qty.IsZero() {
			continue
		}
		p, err := uc.repos.Products.GetByID(ctx, productID)
		if err != nil {
			return decimal.Zero, nil, err
		}
		if p == nil {
			continue
		}
		value := qty.Mul(p.Cost)
		total = total.Add(value)
		top = append(top, dto.TopSKUDTO{
			ProductID:   p.ID,
			SKU:         p.SKU,
			ProductName: p.Name,
			OnHand:      qty,
			StockValue:  value,
		})
	}
	sort.Slice(top, func(i, j int) bool {
		if !top[i].StockValue.Equal(top[j].StockValue) {
			return top[i].StockValue.GreaterThan(top[j].StockValue)
		}
		return top[i].SKU < top[j].SKU
	})
	if len(top) > dashboardTopSKUs {
		top = top[:dashboardTopSKUs]
	}
	return total, top, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
