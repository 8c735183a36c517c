package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-engine/internal/application/inventory"
	"github.com/jhoicas/stock-engine/internal/domain"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
	"github.com/jhoicas/stock-engine/internal/domain/repository"
)

func TestReceiptDone_SumaStockYRegistraLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc := f.receipt(t, f.l1, 10)
	assert.Equal(t, entity.StatusDraft, doc.Status)
	assert.Equal(t, "WH/IN/0001", doc.Reference)
	assert.Equal(t, f.warehouse.ID, doc.WarehouseID)
	assert.True(t, doc.Lines[0].FulfilledQuantity.IsZero())

	done := f.complete(t, doc.ID)
	assert.Equal(t, entity.StatusDone, done.Status)
	require.NotNil(t, done.DoneAt)
	assert.True(t, done.Lines[0].FulfilledQuantity.Equal(dec(10)))
	assert.True(t, f.onHand(t, f.l1).Equal(dec(10)))

	entries, err := f.query.Ledger(ctx, repository.LedgerFilter{ProductID: f.product.ID})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, entity.MovementTypeReceipt, e.MovementType)
	assert.True(t, e.Quantity.Equal(dec(10)))
	assert.True(t, e.OnHand.Equal(dec(10)))
	assert.True(t, e.FreeToUse.Equal(dec(10)))
	assert.Equal(t, doc.Reference, e.Reference)
	assert.Equal(t, doc.ID, e.DocumentID)
	assert.Equal(t, f.warehouse.ID, e.WarehouseID)
	assert.Equal(t, "ana", e.Responsible)
	assert.True(t, e.TotalCost.Equal(dec(25)))

	persisted, err := f.svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDone, persisted.Status)
	assert.True(t, persisted.Lines[0].FulfilledQuantity.Equal(dec(10)))
}

func TestDeliveryDone_StockInsuficienteNoCambiaNada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.stockIn(t, f.l1, 3)

	doc := f.delivery(t, f.l1, 5)
	f.toReady(t, doc.ID)
	_, err := f.svc.ChangeStatus(ctx, doc.ID, entity.StatusDone, "ana")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, f.onHand(t, f.l1).Equal(dec(3)))
	got, err := f.svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusReady, got.Status)
	assert.Nil(t, got.DoneAt)
	assert.True(t, got.Lines[0].FulfilledQuantity.IsZero())

	n, err := f.repos.Ledger.Count(ctx, repository.LedgerFilter{DocumentID: doc.ID})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAdjustmentDone_RespetaSignoDelCaller(t *testing.T) {
	f := newFixture(t)
	f.stockIn(t, f.l1, 10)

	doc, err := f.svc.Create(context.Background(), inventory.CreateOperationInput{
		Kind:       entity.OperationAdjustment,
		LocationID: f.l1.ID,
		Reason:     entity.ReasonDamage,
		CreatedBy:  "ana",
		Lines:      []inventory.LineInput{{ProductID: f.product.ID, Quantity: dec(-2)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "WH/ADJ/0001", doc.Reference)

	done := f.complete(t, doc.ID)
	assert.True(t, f.onHand(t, f.l1).Equal(dec(8)))
	assert.True(t, done.Lines[0].FulfilledQuantity.Equal(dec(-2)))
}

func TestTransferDone_ConservaElTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.stockIn(t, f.l1, 10)

	doc, err := f.svc.Create(ctx, inventory.CreateOperationInput{
		Kind:           entity.OperationTransfer,
		FromLocationID: f.l1.ID,
		ToLocationID:   f.l2.ID,
		ScheduleDate:   f.schedule(),
		CreatedBy:      "ana",
		Lines:          []inventory.LineInput{{ProductID: f.product.ID, Quantity: dec(4)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "WH/TRF/0001", doc.Reference)
	before := f.onHand(t, f.l1).Add(f.onHand(t, f.l2))

	f.complete(t, doc.ID)
	assert.True(t, f.onHand(t, f.l1).Equal(dec(6)))
	assert.True(t, f.onHand(t, f.l2).Equal(dec(4)))
	assert.True(t, before.Equal(f.onHand(t, f.l1).Add(f.onHand(t, f.l2))))

	entries, err := f.query.Ledger(ctx, repository.LedgerFilter{DocumentID: doc.ID})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, doc.Reference, e.Reference)
		assert.Equal(t, entity.MovementTypeTransfer, e.MovementType)
	}
}

func TestChangeStatus_DraftAReadyEsInvalido(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc := f.receipt(t, f.l1, 1)

	_, err := f.svc.ChangeStatus(ctx, doc.ID, entity.StatusReady, "ana")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	got, err := f.svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDraft, got.Status)
}

func TestChangeStatus_DoneDosVecesAplicaUnaSola(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc := f.receipt(t, f.l1, 7)
	f.complete(t, doc.ID)

	_, err := f.svc.ChangeStatus(ctx, doc.ID, entity.StatusDone, "ana")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.True(t, f.onHand(t, f.l1).Equal(dec(7)))

	n, err := f.repos.Ledger.Count(ctx, repository.LedgerFilter{DocumentID: doc.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestChangeStatus_DocumentoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ChangeStatus(context.Background(), "nope", entity.StatusWaiting, "ana")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChangeStatus_CanceladoEsTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc := f.receipt(t, f.l1, 3)
	f.toReady(t, doc.ID)

	canceled, err := f.svc.ChangeStatus(ctx, doc.ID, entity.StatusCanceled, "ana")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCanceled, canceled.Status)

	for _, to := range []entity.OperationStatus{entity.StatusDraft, entity.StatusWaiting, entity.StatusReady, entity.StatusDone} {
		_, err := f.svc.ChangeStatus(ctx, doc.ID, to, "ana")
		require.ErrorIs(t, err, domain.ErrInvalidTransition)
	}
	assert.True(t, f.onHand(t, f.l1).IsZero())
}

func TestDone_MultiLineaEsTodoONada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := &entity.Product{ID: "prod-2", SKU: "SKU-002", Name: "Tuerca", Cost: dec(1), MinStockLevel: dec(0)}
	require.NoError(t, f.repos.Products.Create(ctx, other))
	f.stockIn(t, f.l1, 10)

	doc, err := f.svc.Create(ctx, inventory.CreateOperationInput{
		Kind:            entity.OperationDelivery,
		Contact:         "Cliente SAS",
		FromLocationID:  f.l1.ID,
		DeliveryAddress: "Calle 1",
		ScheduleDate:    f.schedule(),
		Lines: []inventory.LineInput{
			{ProductID: f.product.ID, Quantity: dec(4)},
			{ProductID: other.ID, Quantity: dec(1)},
		},
	})
	require.NoError(t, err)
	f.toReady(t, doc.ID)

	_, err = f.svc.ChangeStatus(ctx, doc.ID, entity.StatusDone, "ana")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, f.onHand(t, f.l1).Equal(dec(10)))

	bal, err := f.repos.Stock.Get(ctx, other.ID, f.l1.ID)
	require.NoError(t, err)
	assert.Nil(t, bal)
}

func TestCreate_ReferenciasPorBodegaYTipo(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "WH/IN/0001", f.receipt(t, f.l1, 1).Reference)
	assert.Equal(t, "WH/IN/0002", f.receipt(t, f.l2, 1).Reference)
	assert.Equal(t, "WH/OUT/0001", f.delivery(t, f.l1, 1).Reference)

	// Los números no se reutilizan al eliminar.
	d := f.receipt(t, f.l1, 1)
	require.NoError(t, f.svc.Delete(context.Background(), d.ID))
	assert.Equal(t, "WH/IN/0004", f.receipt(t, f.l1, 1).Reference)
}

type fixedSequencer struct{}

func (fixedSequencer) Next(context.Context, string, entity.OperationKind) (int64, error) {
	return 1, nil
}

func TestCreate_ReferenciaRepetidaEsError(t *testing.T) {
	f := newFixtureWithSequencer(t, fixedSequencer{})
	f.receipt(t, f.l1, 1)

	_, err := f.svc.Create(context.Background(), inventory.CreateOperationInput{
		Kind: entity.OperationReceipt, Contact: "X", ToLocationID: f.l1.ID, ScheduleDate: f.schedule(),
		Lines: []inventory.LineInput{{ProductID: f.product.ID, Quantity: dec(1)}},
	})
	require.ErrorIs(t, err, domain.ErrDuplicateReference)

	docs, err := f.svc.List(context.Background(), repository.OperationFilter{})
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	line := []inventory.LineInput{{ProductID: f.product.ID, Quantity: dec(1)}}

	_, err := f.svc.Create(ctx, inventory.CreateOperationInput{
		Kind: entity.OperationTransfer, FromLocationID: f.l1.ID, ToLocationID: f.l1.ID,
		ScheduleDate: f.schedule(), Lines: line,
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.Create(ctx, inventory.CreateOperationInput{
		Kind: entity.OperationReceipt, Contact: "X", ToLocationID: f.l1.ID, ScheduleDate: f.schedule(),
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.Create(ctx, inventory.CreateOperationInput{
		Kind: entity.OperationReceipt, Contact: "X", ToLocationID: "missing", ScheduleDate: f.schedule(), Lines: line,
	})
	require.ErrorIs(t, err, domain.ErrLocationNotFound)

	_, err = f.svc.Create(ctx, inventory.CreateOperationInput{
		Kind: entity.OperationReceipt, Contact: "X", ToLocationID: f.l1.ID, ScheduleDate: f.schedule(),
		Lines: []inventory.LineInput{{ProductID: "missing", Quantity: dec(1)}},
	})
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestDelete_SoloEstadosNoTerminales(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	draft := f.receipt(t, f.l1, 1)
	require.NoError(t, f.svc.Delete(ctx, draft.ID))
	_, err := f.svc.Get(ctx, draft.ID)
	require.ErrorIs(t, err, domain.ErrDocumentNotFound)

	done := f.receipt(t, f.l1, 1)
	f.complete(t, done.ID)
	require.ErrorIs(t, f.svc.Delete(ctx, done.ID), domain.ErrInvalidState)

	canceled := f.receipt(t, f.l1, 1)
	_, err = f.svc.ChangeStatus(ctx, canceled.ID, entity.StatusCanceled, "ana")
	require.NoError(t, err)
	require.ErrorIs(t, f.svc.Delete(ctx, canceled.ID), domain.ErrInvalidState)

	require.ErrorIs(t, f.svc.Delete(ctx, "missing"), domain.ErrNotFound)
}

func TestList_FiltraPorTipoYEstado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.stockIn(t, f.l1, 5)
	f.receipt(t, f.l1, 1)
	f.delivery(t, f.l1, 1)

	docs, err := f.svc.List(ctx, repository.OperationFilter{Kind: entity.OperationReceipt})
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	docs, err = f.svc.List(ctx, repository.OperationFilter{Status: entity.StatusDone})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "WH/IN/0001", docs[0].Reference)

	_, err = f.svc.List(ctx, repository.OperationFilter{Status: "archived"})
	require.ErrorIs(t, err, domain.ErrValidation)
}

// Entregas concurrentes sobre el mismo par: nunca se vende más de lo que hay.
func TestDone_ConcurrenteNoDejaStockNegativo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.stockIn(t, f.l1, 10)

	const n = 20
	ids := make([]string, n)
	for i := range ids {
		d := f.delivery(t, f.l1, 1)
		f.toReady(t, d.ID)
		ids[i] = d.ID
	}

	var (
		wg                 sync.WaitGroup
		mu                 sync.Mutex
		succeeded, starved int
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := f.svc.ChangeStatus(ctx, id, entity.StatusDone, "worker")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
				starved++
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	assert.Equal(t, 10, starved)
	assert.True(t, f.onHand(t, f.l1).IsZero())

	check, err := f.query.VerifyReplay(ctx, f.product.ID, f.l1.ID)
	require.NoError(t, err)
	assert.True(t, check.Consistent)
}
