package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-engine/internal/domain"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestSignedDelta(t *testing.T) {
	cases := []struct {
		mt   entity.MovementType
		in   int64
		want int64
	}{
		{entity.MovementTypeReceipt, 5, 5},
		{entity.MovementTypeReceipt, -5, 5},
		{entity.MovementTypeDelivery, 5, -5},
		{entity.MovementTypeDelivery, -5, -5},
		{entity.MovementTypeAdjustment, -2, -2},
		{entity.MovementTypeAdjustment, 3, 3},
		{entity.MovementTypeTransfer, -4, -4},
	}
	for _, c := range cases {
		got, err := SignedDelta(c.mt, dec(c.in))
		require.NoError(t, err)
		assert.True(t, got.Equal(dec(c.want)), "%s(%d) = %s", c.mt, c.in, got)
	}

	_, err := SignedDelta("sale", dec(1))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPlanMovements_TrasladoGeneraSalidaYEntrada(t *testing.T) {
	doc := &entity.OperationDocument{
		Kind:           entity.OperationTransfer,
		FromLocationID: "L1",
		ToLocationID:   "L2",
		Lines:          []entity.OperationLine{{ProductID: "P", Quantity: dec(4)}},
	}
	movs, err := PlanMovements(doc)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, "L1", movs[0].LocationID)
	assert.True(t, movs[0].Quantity.Equal(dec(-4)))
	assert.Equal(t, "L2", movs[1].LocationID)
	assert.True(t, movs[1].Quantity.Equal(dec(4)))
	assert.Equal(t, entity.MovementTypeTransfer, movs[1].Type)
}

func TestPlanMovements_PorVariante(t *testing.T) {
	lines := []entity.OperationLine{{ProductID: "P", Quantity: dec(3)}}
	receipt, err := PlanMovements(&entity.OperationDocument{Kind: entity.OperationReceipt, ToLocationID: "D", Lines: lines})
	require.NoError(t, err)
	assert.Equal(t, []Movement{{ProductID: "P", LocationID: "D", Quantity: dec(3), Type: entity.MovementTypeReceipt}}, receipt)

	delivery, err := PlanMovements(&entity.OperationDocument{Kind: entity.OperationDelivery, FromLocationID: "S", Lines: lines})
	require.NoError(t, err)
	assert.Equal(t, "S", delivery[0].LocationID)
	assert.Equal(t, entity.MovementTypeDelivery, delivery[0].Type)

	adj, err := PlanMovements(&entity.OperationDocument{
		Kind: entity.OperationAdjustment, LocationID: "A",
		Lines: []entity.OperationLine{{ProductID: "P", Quantity: dec(-2)}},
	})
	require.NoError(t, err)
	assert.True(t, adj[0].Quantity.Equal(dec(-2)))
}

func TestLockOrder_OrdenDeterministaSinDuplicados(t *testing.T) {
	movs := []Movement{
		{ProductID: "B", LocationID: "L2"},
		{ProductID: "A", LocationID: "L2"},
		{ProductID: "B", LocationID: "L1"},
		{ProductID: "A", LocationID: "L2"},
	}
	keys := LockOrder(movs)
	assert.Equal(t, []BalanceKey{
		{ProductID: "B", LocationID: "L1"},
		{ProductID: "A", LocationID: "L2"},
		{ProductID: "B", LocationID: "L2"},
	}, keys)
}

func TestMarkFulfilled(t *testing.T) {
	doc := &entity.OperationDocument{Lines: []entity.OperationLine{
		{Quantity: dec(10), FulfilledQuantity: decimal.Zero},
		{Quantity: dec(-2), FulfilledQuantity: decimal.Zero},
	}}
	MarkFulfilled(doc)
	assert.True(t, doc.Lines[0].FulfilledQuantity.Equal(dec(10)))
	assert.True(t, doc.Lines[1].FulfilledQuantity.Equal(dec(-2)))
}

func TestFormatReference(t *testing.T) {
	assert.Equal(t, "WH/IN/0001", FormatReference("WH", entity.OperationReceipt, 1))
	assert.Equal(t, "MAIN/ADJ/0042", FormatReference("MAIN", entity.OperationAdjustment, 42))
	assert.Equal(t, "WH/TRF/12345", FormatReference("WH", entity.OperationTransfer, 12345))
}

func TestApplyDelta_NoModificaSiQuedaNegativo(t *testing.T) {
	bal := entity.NewStockBalance("P", "L", "W")
	require.NoError(t, ApplyDelta(bal, dec(3)))
	assert.True(t, bal.OnHand.Equal(dec(3)))
	assert.True(t, bal.FreeToUse.Equal(dec(3)))

	err := ApplyDelta(bal, dec(-5))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, bal.OnHand.Equal(dec(3)))

	require.NoError(t, ApplyDelta(bal, dec(-3)))
	assert.True(t, bal.OnHand.IsZero())
}
