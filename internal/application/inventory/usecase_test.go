package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-engine/internal/application/inventory"
	"github.com/jhoicas/stock-engine/internal/domain"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
	"github.com/jhoicas/stock-engine/internal/domain/repository"
)

func TestApply_ConvencionDeSignos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.applier.Apply(ctx, inventory.MovementInput{
		ProductID: f.product.ID, LocationID: f.l1.ID, Quantity: dec(-6), MovementType: entity.MovementTypeReceipt,
	})
	require.NoError(t, err)
	assert.True(t, res.OnHand.Equal(dec(6)), "receipt siempre suma |q|")
	assert.True(t, res.FreeToUse.Equal(res.OnHand))

	res, err = f.applier.Apply(ctx, inventory.MovementInput{
		ProductID: f.product.ID, LocationID: f.l1.ID, Quantity: dec(2), MovementType: entity.MovementTypeDelivery,
	})
	require.NoError(t, err)
	assert.True(t, res.OnHand.Equal(dec(4)), "delivery siempre resta |q|")
	assert.True(t, res.Entry.Quantity.Equal(dec(-2)))
	assert.Equal(t, f.warehouse.ID, res.Entry.WarehouseID)
}

func TestApply_NoNegatividad(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	steps := []struct {
		mt  entity.MovementType
		qty int64
		ok  bool
	}{
		{entity.MovementTypeReceipt, 5, true},
		{entity.MovementTypeDelivery, 6, false},
		{entity.MovementTypeAdjustment, -5, true},
		{entity.MovementTypeAdjustment, -1, false},
		{entity.MovementTypeTransfer, 2, true},
		{entity.MovementTypeTransfer, -3, false},
	}
	for i, s := range steps {
		before := f.onHand(t, f.l1)
		_, err := f.applier.Apply(ctx, inventory.MovementInput{
			ProductID: f.product.ID, LocationID: f.l1.ID, Quantity: dec(s.qty), MovementType: s.mt,
		})
		if s.ok {
			require.NoError(t, err, "paso %d", i)
		} else {
			require.ErrorIs(t, err, domain.ErrInsufficientStock, "paso %d", i)
			assert.True(t, before.Equal(f.onHand(t, f.l1)), "paso %d no debe cambiar el saldo", i)
		}
		assert.False(t, f.onHand(t, f.l1).IsNegative())

		check, err := f.query.VerifyReplay(ctx, f.product.ID, f.l1.ID)
		require.NoError(t, err)
		assert.True(t, check.Consistent, "paso %d: ledger %s vs saldo %s", i, check.LedgerSum, check.OnHand)
	}

	n, err := f.repos.Ledger.Count(ctx, repository.LedgerFilter{ProductID: f.product.ID})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestApply_Errores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.applier.Apply(ctx, inventory.MovementInput{
		ProductID: f.product.ID, LocationID: f.l1.ID, Quantity: dec(0), MovementType: entity.MovementTypeAdjustment,
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.applier.Apply(ctx, inventory.MovementInput{
		ProductID: "missing", LocationID: f.l1.ID, Quantity: dec(1), MovementType: entity.MovementTypeReceipt,
	})
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = f.applier.Apply(ctx, inventory.MovementInput{
		ProductID: f.product.ID, LocationID: "missing", Quantity: dec(1), MovementType: entity.MovementTypeReceipt,
	})
	require.ErrorIs(t, err, domain.ErrLocationNotFound)

	_, err = f.applier.Apply(ctx, inventory.MovementInput{
		ProductID: f.product.ID, LocationID: f.l1.ID, WarehouseID: "other-wh", Quantity: dec(1),
		MovementType: entity.MovementTypeReceipt,
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.applier.Apply(ctx, inventory.MovementInput{
		ProductID: f.product.ID, LocationID: f.l1.ID, Quantity: dec(1), MovementType: "sale",
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	n, err := f.repos.Ledger.Count(ctx, repository.LedgerFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestApply_UsaFechaIndicada(t *testing.T) {
	f := newFixture(t)
	date := time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC)
	res, err := f.applier.Apply(context.Background(), inventory.MovementInput{
		ProductID: f.product.ID, LocationID: f.l2.ID, Quantity: dec(1), MovementType: entity.MovementTypeReceipt,
		Reference: "MANUAL", Responsible: "auditor", Date: &date,
	})
	require.NoError(t, err)
	assert.True(t, res.Entry.Date.Equal(date))
	assert.Equal(t, "auditor", res.Entry.Responsible)
	assert.Equal(t, "MANUAL", res.Entry.Reference)
}
