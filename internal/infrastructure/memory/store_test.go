package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-engine/internal/application/inventory"
	"github.com/jhoicas/stock-engine/internal/domain"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
	"github.com/jhoicas/stock-engine/internal/domain/repository"
)

var errBoom = errors.New("boom")

func TestStore_RollbackDescartaCambios(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	err := s.Run(ctx, func(ctx context.Context, r inventory.Repos) error {
		b, err := r.Stock.GetOrCreate(ctx, "p1", "l1", "w1")
		require.NoError(t, err)
		b.OnHand = decimal.NewFromInt(7)
		b.FreeToUse = b.OnHand
		require.NoError(t, r.Stock.Save(ctx, b))
		require.NoError(t, r.Ledger.Append(ctx, &entity.StockLedgerEntry{
			ID: "e1", ProductID: "p1", LocationID: "l1", Quantity: decimal.NewFromInt(7),
		}))
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	repos := s.Repos()
	b, err := repos.Stock.Get(ctx, "p1", "l1")
	require.NoError(t, err)
	assert.Nil(t, b)

	n, err := repos.Ledger.Count(ctx, repository.LedgerFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_CommitPublicaCambios(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	err := s.Run(ctx, func(ctx context.Context, r inventory.Repos) error {
		b, err := r.Stock.GetOrCreate(ctx, "p1", "l1", "w1")
		if err != nil {
			return err
		}
		b.OnHand = decimal.NewFromInt(4)
		b.FreeToUse = b.OnHand
		if err := r.Stock.Save(ctx, b); err != nil {
			return err
		}
		return r.Ledger.Append(ctx, &entity.StockLedgerEntry{
			ID: "e1", ProductID: "p1", LocationID: "l1", Quantity: decimal.NewFromInt(4),
		})
	})
	require.NoError(t, err)

	repos := s.Repos()
	b, err := repos.Stock.Get(ctx, "p1", "l1")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.True(t, b.OnHand.Equal(decimal.NewFromInt(4)))

	sum, err := repos.Ledger.SumDelta(ctx, "p1", "l1")
	require.NoError(t, err)
	assert.True(t, sum.Equal(b.OnHand))
}

func TestStore_RollbackConservaLedgerPrevio(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	repos := s.Repos()
	require.NoError(t, repos.Ledger.Append(ctx, &entity.StockLedgerEntry{ID: "e1", ProductID: "p1", LocationID: "l1"}))

	err := s.Run(ctx, func(ctx context.Context, r inventory.Repos) error {
		require.NoError(t, r.Ledger.Append(ctx, &entity.StockLedgerEntry{ID: "e2", ProductID: "p1", LocationID: "l1"}))
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	require.NoError(t, repos.Ledger.Append(ctx, &entity.StockLedgerEntry{ID: "e3", ProductID: "p1", LocationID: "l1"}))
	got, err := repos.Ledger.List(ctx, repository.LedgerFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "e3", got[0].ID)
	assert.Equal(t, "e1", got[1].ID)
}

func TestStore_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewStore().Run(ctx, func(context.Context, inventory.Repos) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestStockRepo_SaveRechazaNegativo(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repos()

	b, err := repos.Stock.GetOrCreate(ctx, "p1", "l1", "w1")
	require.NoError(t, err)
	b.OnHand = decimal.NewFromInt(-1)
	require.ErrorIs(t, repos.Stock.Save(ctx, b), domain.ErrInsufficientStock)

	got, err := repos.Stock.Get(ctx, "p1", "l1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.OnHand.IsZero())
}

func TestProductRepo_SKUDuplicado(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repos()

	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", SKU: "ABC"}))
	assert.ErrorIs(t, repos.Products.Create(ctx, &entity.Product{ID: "p2", SKU: "ABC"}), domain.ErrDuplicate)
	assert.ErrorIs(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", SKU: "XYZ"}), domain.ErrDuplicate)
}

func TestOperationRepo_CrearYTransicion(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repos()

	doc := &entity.OperationDocument{
		ID: "d1", Kind: entity.OperationReceipt, Reference: "WH/IN/0001", Status: entity.StatusReady,
		WarehouseID: "w1", ToLocationID: "l1", CreatedAt: time.Now().UTC(),
		Lines: []entity.OperationLine{{ID: "ln1", DocumentID: "d1", Position: 1, ProductID: "p1", Quantity: decimal.NewFromInt(3)}},
	}
	require.NoError(t, repos.Operations.Create(ctx, doc))

	dup := *doc
	dup.ID = "d2"
	assert.ErrorIs(t, repos.Operations.Create(ctx, &dup), domain.ErrDuplicateReference)

	// La copia devuelta no comparte memoria con la guardada.
	got, err := repos.Operations.GetByID(ctx, "d1")
	require.NoError(t, err)
	got.Lines[0].Quantity = decimal.NewFromInt(99)
	again, err := repos.Operations.GetByID(ctx, "d1")
	require.NoError(t, err)
	assert.True(t, again.Lines[0].Quantity.Equal(decimal.NewFromInt(3)))

	now := time.Now().UTC()
	again.Status = entity.StatusDone
	again.DoneAt = &now
	again.Lines[0].FulfilledQuantity = decimal.NewFromInt(3)
	require.NoError(t, repos.Operations.SaveTransition(ctx, again))

	done, err := repos.Operations.GetByID(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDone, done.Status)
	require.NotNil(t, done.DoneAt)
	assert.True(t, done.Lines[0].FulfilledQuantity.Equal(decimal.NewFromInt(3)))

	missing := &entity.OperationDocument{ID: "nope"}
	assert.ErrorIs(t, repos.Operations.SaveTransition(ctx, missing), domain.ErrNotFound)
	assert.ErrorIs(t, repos.Operations.Delete(ctx, "nope"), domain.ErrNotFound)
}

func TestOperationRepo_ListFiltraYOrdena(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repos()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	docs := []*entity.OperationDocument{
		{ID: "a", Kind: entity.OperationReceipt, Reference: "WH/IN/0001", Status: entity.StatusDraft, WarehouseID: "w1", CreatedAt: base},
		{ID: "b", Kind: entity.OperationReceipt, Reference: "WH/IN/0002", Status: entity.StatusDone, WarehouseID: "w1", CreatedAt: base.Add(time.Hour)},
		{ID: "c", Kind: entity.OperationDelivery, Reference: "WH/OUT/0001", Status: entity.StatusDraft, WarehouseID: "w2", CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, d := range docs {
		require.NoError(t, repos.Operations.Create(ctx, d))
	}

	all, err := repos.Operations.List(ctx, repository.OperationFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].ID)
	assert.Equal(t, "a", all[2].ID)

	receipts, err := repos.Operations.List(ctx, repository.OperationFilter{Kind: entity.OperationReceipt})
	require.NoError(t, err)
	assert.Len(t, receipts, 2)

	drafts, err := repos.Operations.List(ctx, repository.OperationFilter{Status: entity.StatusDraft, WarehouseID: "w1"})
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "a", drafts[0].ID)

	paged, err := repos.Operations.List(ctx, repository.OperationFilter{Limit: 1, Skip: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "b", paged[0].ID)
}

func TestLedgerRepo_MasRecientePrimero(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repos()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repos.Ledger.Append(ctx, &entity.StockLedgerEntry{ID: "old", ProductID: "p1", LocationID: "l1", Date: at.Add(-time.Hour)}))
	require.NoError(t, repos.Ledger.Append(ctx, &entity.StockLedgerEntry{ID: "first", ProductID: "p1", LocationID: "l1", Date: at}))
	require.NoError(t, repos.Ledger.Append(ctx, &entity.StockLedgerEntry{ID: "second", ProductID: "p1", LocationID: "l2", Date: at}))

	got, err := repos.Ledger.List(ctx, repository.LedgerFilter{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"second", "first", "old"}, []string{got[0].ID, got[1].ID, got[2].ID})

	from := at.Add(-time.Minute)
	recent, err := repos.Ledger.List(ctx, repository.LedgerFilter{LocationID: "l1", From: &from})
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "first", recent[0].ID)
}

func TestSequencer_ContadoresIndependientes(t *testing.T) {
	ctx := context.Background()
	s := NewSequencer()

	for want := int64(1); want <= 3; want++ {
		n, err := s.Next(ctx, "w1", entity.OperationReceipt)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
	n, err := s.Next(ctx, "w1", entity.OperationDelivery)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = s.Next(ctx, "w2", entity.OperationReceipt)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.Next(canceled, "w1", entity.OperationReceipt)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSequencer_ConcurrenteSinDuplicados(t *testing.T) {
	ctx := context.Background()
	s := NewSequencer()

	const workers = 40
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[int64]bool, workers)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := s.Next(ctx, "w1", entity.OperationTransfer)
			if err != nil {
				return
			}
			mu.Lock()
			seen[n] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers)
	for i := int64(1); i <= workers; i++ {
		assert.True(t, seen[i], "falta el número %d", i)
	}
}
