package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-engine/internal/domain/entity"
	"github.com/jhoicas/stock-engine/internal/infrastructure/memory"
)

var dashboardNow = time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newDashboard(t *testing.T) (*DashboardUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := NewDashboardUseCase(store.Repos())
	uc.now = func() time.Time { return dashboardNow }
	return uc, store
}

func setBalance(t *testing.T, store *memory.Store, productID, locationID, warehouseID string, qty int64) {
	t.Helper()
	ctx := context.Background()
	repos := store.Repos()
	b, err := repos.Stock.GetOrCreate(ctx, productID, locationID, warehouseID)
	require.NoError(t, err)
	b.OnHand = dec(qty)
	b.FreeToUse = b.OnHand
	require.NoError(t, repos.Stock.Save(ctx, b))
}

func TestGetSummary_SinDatos(t *testing.T) {
	uc, _ := newDashboard(t)

	got, err := uc.GetSummary(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, got.Operations, 4)
	for _, c := range got.Operations {
		assert.Zero(t, c.ToProcess)
		assert.Zero(t, c.Waiting)
	}
	assert.True(t, got.StockValue.IsZero())
	assert.Empty(t, got.TopSKUs)
	assert.Equal(t, "Febrero 2026", got.DateLabel)
}

func TestGetSummary_ConteosYValor(t *testing.T) {
	uc, store := newDashboard(t)
	ctx := context.Background()
	repos := store.Repos()

	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", SKU: "A-1", Name: "Tornillo", Cost: dec(2), MinStockLevel: dec(5)}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p2", SKU: "B-2", Name: "Tuerca", Cost: dec(10), MinStockLevel: dec(1)}))
	setBalance(t, store, "p1", "l1", "w1", 3)
	setBalance(t, store, "p2", "l1", "w1", 4)
	setBalance(t, store, "p2", "l2", "w1", 0)

	past := dashboardNow.Add(-48 * time.Hour)
	future := dashboardNow.Add(48 * time.Hour)
	docs := []*entity.OperationDocument{
		{ID: "d1", Kind: entity.OperationReceipt, Reference: "WH/IN/0001", Status: entity.StatusReady, WarehouseID: "w1", ScheduleDate: &past},
		{ID: "d2", Kind: entity.OperationReceipt, Reference: "WH/IN/0002", Status: entity.StatusWaiting, WarehouseID: "w1", ScheduleDate: &future},
		{ID: "d3", Kind: entity.OperationDelivery, Reference: "WH/OUT/0001", Status: entity.StatusDraft, WarehouseID: "w1", ScheduleDate: &past},
		{ID: "d4", Kind: entity.OperationTransfer, Reference: "WH/TRF/0001", Status: entity.StatusDone, WarehouseID: "w1"},
	}
	for _, d := range docs {
		require.NoError(t, repos.Operations.Create(ctx, d))
	}

	require.NoError(t, repos.Ledger.Append(ctx, &entity.StockLedgerEntry{ID: "e1", WarehouseID: "w1", Date: dashboardNow.AddDate(0, -1, 0)}))
	require.NoError(t, repos.Ledger.Append(ctx, &entity.StockLedgerEntry{ID: "e2", WarehouseID: "w1", Date: dashboardNow.Add(-time.Hour)}))

	got, err := uc.GetSummary(ctx, "w1")
	require.NoError(t, err)

	byKind := map[string]int{}
	for i, c := range got.Operations {
		byKind[c.Kind] = i
	}
	receipts := got.Operations[byKind["receipt"]]
	assert.Equal(t, 1, receipts.ToProcess)
	assert.Equal(t, 1, receipts.Waiting)
	assert.Equal(t, 1, receipts.Late)
	deliveries := got.Operations[byKind["delivery"]]
	assert.Zero(t, deliveries.ToProcess+deliveries.Waiting+deliveries.Late)

	assert.Equal(t, 1, got.LowStockCount)
	assert.Equal(t, 1, got.OutOfStockCount)
	assert.Equal(t, 1, got.MonthlyMovements)

	assert.True(t, got.StockValue.Equal(dec(46)), got.StockValue.String())
	require.Len(t, got.TopSKUs, 2)
	assert.Equal(t, "B-2", got.TopSKUs[0].SKU)
	assert.True(t, got.TopSKUs[0].StockValue.Equal(dec(40)))
	assert.Equal(t, "A-1", got.TopSKUs[1].SKU)
}

func TestGetSummary_OtraBodegaVacia(t *testing.T) {
	uc, store := newDashboard(t)
	ctx := context.Background()
	require.NoError(t, store.Repos().Products.Create(ctx, &entity.Product{ID: "p1", SKU: "A-1", Cost: dec(2)}))
	setBalance(t, store, "p1", "l1", "w1", 3)

	got, err := uc.GetSummary(ctx, "w2")
	require.NoError(t, err)
	assert.True(t, got.StockValue.IsZero())
	assert.Zero(t, got.OutOfStockCount)
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Diciembre 2025", monthLabel(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Enero 2026", monthLabel(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
}
