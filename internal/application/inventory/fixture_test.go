package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-engine/internal/application/inventory"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
	"github.com/jhoicas/stock-engine/internal/domain/repository"
	"github.com/jhoicas/stock-engine/internal/infrastructure/memory"
	"github.com/jhoicas/stock-engine/pkg/logger"
)

type fixture struct {
	store   *memory.Store
	repos   inventory.Repos
	svc     *inventory.OperationService
	query   *inventory.StockQueryService
	applier *inventory.MovementApplier

	warehouse *entity.Warehouse
	l1, l2    *entity.Location
	product   *entity.Product
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newFixture(t *testing.T) *fixture {
	return newFixtureWithSequencer(t, memory.NewSequencer())
}

func newFixtureWithSequencer(t *testing.T, seq repository.Sequencer) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	applier := inventory.NewMovementApplier(store)

	f := &fixture{
		store:     store,
		repos:     repos,
		applier:   applier,
		svc:       inventory.NewOperationService(store, repos, seq, applier, logger.Nop()),
		query:     inventory.NewStockQueryService(repos),
		warehouse: &entity.Warehouse{ID: "wh-1", ShortCode: "WH", Name: "Bodega principal"},
		l1:        &entity.Location{ID: "loc-1", WarehouseID: "wh-1", ShortCode: "STOCK", Name: "Stock"},
		l2:        &entity.Location{ID: "loc-2", WarehouseID: "wh-1", ShortCode: "SHELF", Name: "Estantería"},
		product: &entity.Product{
			ID: "prod-1", SKU: "SKU-001", Name: "Tornillo", UnitMeasure: "UND",
			Cost: decimal.RequireFromString("2.5"), MinStockLevel: dec(5),
		},
	}
	require.NoError(t, repos.Warehouses.Create(ctx, f.warehouse))
	require.NoError(t, repos.Locations.Create(ctx, f.l1))
	require.NoError(t, repos.Locations.Create(ctx, f.l2))
	require.NoError(t, repos.Products.Create(ctx, f.product))
	return f
}

func (f *fixture) schedule() *time.Time {
	d := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	return &d
}

func (f *fixture) receipt(t *testing.T, loc *entity.Location, qty int64) *entity.OperationDocument {
	t.Helper()
	doc, err := f.svc.Create(context.Background(), inventory.CreateOperationInput{
		Kind:         entity.OperationReceipt,
		Contact:      "Proveedor SA",
		ToLocationID: loc.ID,
		ScheduleDate: f.schedule(),
		CreatedBy:    "ana",
		Lines:        []inventory.LineInput{{ProductID: f.product.ID, Quantity: dec(qty)}},
	})
	require.NoError(t, err)
	return doc
}

func (f *fixture) delivery(t *testing.T, loc *entity.Location, qty int64) *entity.OperationDocument {
	t.Helper()
	doc, err := f.svc.Create(context.Background(), inventory.CreateOperationInput{
		Kind:            entity.OperationDelivery,
		Contact:         "Cliente SAS",
		FromLocationID:  loc.ID,
		DeliveryAddress: "Calle 1 # 2-3",
		ScheduleDate:    f.schedule(),
		CreatedBy:       "ana",
		Lines:           []inventory.LineInput{{ProductID: f.product.ID, Quantity: dec(qty)}},
	})
	require.NoError(t, err)
	return doc
}

// toReady lleva el documento de draft a ready.
func (f *fixture) toReady(t *testing.T, id string) {
	t.Helper()
	ctx := context.Background()
	_, err := f.svc.ChangeStatus(ctx, id, entity.StatusWaiting, "ana")
	require.NoError(t, err)
	_, err = f.svc.ChangeStatus(ctx, id, entity.StatusReady, "ana")
	require.NoError(t, err)
}

func (f *fixture) complete(t *testing.T, id string) *entity.OperationDocument {
	t.Helper()
	f.toReady(t, id)
	doc, err := f.svc.ChangeStatus(context.Background(), id, entity.StatusDone, "ana")
	require.NoError(t, err)
	return doc
}

// stockIn deja qty unidades del producto en loc mediante una recepción completa.
func (f *fixture) stockIn(t *testing.T, loc *entity.Location, qty int64) {
	t.Helper()
	f.complete(t, f.receipt(t, loc, qty).ID)
}

func (f *fixture) onHand(t *testing.T, loc *entity.Location) decimal.Decimal {
	t.Helper()
	b, err := f.repos.Stock.Get(context.Background(), f.product.ID, loc.ID)
	require.NoError(t, err)
	if b == nil {
		return decimal.Zero
	}
	return b.OnHand
}
