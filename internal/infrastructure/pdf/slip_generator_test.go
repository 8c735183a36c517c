package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-engine/internal/application/inventory"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
)

func TestFormatQuantity(t *testing.T) {
	tests := map[string]string{
		"0":       "0",
		"999":     "999",
		"25000":   "25.000",
		"1000000": "1.000.000",
		"-1234.5": "-1.234,5",
		"12.25":   "12,25",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatQuantity(in), in)
	}
}

func TestGenerateSlip(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	data := &inventory.SlipData{
		Document: &entity.OperationDocument{
			ID: "doc-1", Kind: entity.OperationTransfer, Reference: "WH/TRF/0001",
			Status: entity.StatusDone, WarehouseID: "wh-1", Responsible: "Ana",
			CreatedAt: now, DoneAt: &now,
		},
		Warehouse:    &entity.Warehouse{ID: "wh-1", ShortCode: "WH", Name: "Principal"},
		FromLocation: "STOCK",
		ToLocation:   "SHELF",
		Lines: []inventory.SlipLine{{
			Position: 1, SKU: "SKU-001", ProductName: "Tornillo", UnitMeasure: "und",
			Quantity: decimal.NewFromInt(30), Fulfilled: decimal.NewFromInt(30),
		}},
	}

	out, err := NewMarotoSlipGenerator().GenerateSlip(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un PDF")
}

func TestGenerateSlip_NilDocument(t *testing.T) {
	_, err := NewMarotoSlipGenerator().GenerateSlip(context.Background(), &inventory.SlipData{})
	assert.Error(t, err)
}
