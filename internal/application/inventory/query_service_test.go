package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-engine/internal/domain"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
	"github.com/jhoicas/stock-engine/internal/domain/repository"
)

func TestLowStock_SumaUbicacionesYSugierePedido(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.stockIn(t, f.l1, 2)
	f.stockIn(t, f.l2, 1)

	healthy := &entity.Product{ID: "prod-2", SKU: "SKU-002", Name: "Arandela", Cost: dec(1), MinStockLevel: dec(1)}
	require.NoError(t, f.repos.Products.Create(ctx, healthy))
	f.product = healthy
	f.stockIn(t, f.l1, 50)

	items, err := f.query.LowStock(ctx, "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	it := items[0]
	assert.Equal(t, "SKU-001", it.Product.SKU)
	assert.True(t, it.OnHand.Equal(dec(3)))
	assert.True(t, it.Deficit.Equal(dec(2)))
	assert.True(t, it.SuggestedOrderQty.Equal(decimal.RequireFromString("4.5")))
	assert.True(t, it.EstimatedOrderCost.Equal(decimal.RequireFromString("11.25")))
}

func TestLowStock_ProductoSinSaldosCuentaComoCero(t *testing.T) {
	f := newFixture(t)
	items, err := f.query.LowStock(context.Background(), f.warehouse.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].OnHand.IsZero())
}

func TestOutOfStock_SoloSaldosEnCero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.stockIn(t, f.l1, 2)
	f.stockIn(t, f.l2, 2)
	f.complete(t, f.delivery(t, f.l1, 2).ID)

	rows, err := f.query.OutOfStock(ctx, "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, f.l1.ID, rows[0].LocationID)
}

func TestStock_FiltraPorBodegaYUbicacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.stockIn(t, f.l1, 2)
	f.stockIn(t, f.l2, 3)

	all, err := f.query.Stock(ctx, repository.StockFilter{WarehouseID: f.warehouse.ID})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := f.query.Stock(ctx, repository.StockFilter{LocationID: f.l2.ID})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.True(t, one[0].OnHand.Equal(dec(3)))
}

func TestLedger_MasRecientePrimeroYPaginado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		f.stockIn(t, f.l1, int64(i))
	}

	entries, err := f.query.Ledger(ctx, repository.LedgerFilter{ProductID: f.product.ID})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.True(t, entries[0].OnHand.Equal(dec(6)))
	assert.True(t, entries[2].OnHand.Equal(dec(1)))

	paged, err := f.query.Ledger(ctx, repository.LedgerFilter{ProductID: f.product.ID, Limit: 1, Skip: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.True(t, paged[0].OnHand.Equal(dec(3)))

	_, err = f.query.Ledger(ctx, repository.LedgerFilter{MovementType: "sale"})
	require.ErrorIs(t, err, domain.ErrValidation)
}
