package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-engine/internal/application/inventory"
	"github.com/jhoicas/stock-engine/internal/domain"
)

type captureSlip struct{ data *inventory.SlipData }

func (c *captureSlip) GenerateSlip(_ context.Context, data *inventory.SlipData) ([]byte, error) {
	c.data = data
	return []byte("%PDF-1.3"), nil
}

func TestDownloadSlip_EnriqueceDocumento(t *testing.T) {
	f := newFixture(t)
	gen := &captureSlip{}
	uc := inventory.NewSlipUseCase(f.repos, gen)
	doc := f.receipt(t, f.l2, 4)

	pdf, filename, err := uc.DownloadSlip(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), pdf)
	assert.Equal(t, "operacion_WH-IN-0001.pdf", filename)

	require.NotNil(t, gen.data)
	assert.Equal(t, "WH", gen.data.Warehouse.ShortCode)
	assert.Equal(t, "SHELF", gen.data.ToLocation)
	assert.Empty(t, gen.data.FromLocation)
	require.Len(t, gen.data.Lines, 1)
	assert.Equal(t, "SKU-001", gen.data.Lines[0].SKU)
	assert.Equal(t, "Tornillo", gen.data.Lines[0].ProductName)
	assert.Equal(t, 1, gen.data.Lines[0].Position)
}

func TestDownloadSlip_DocumentoInexistente(t *testing.T) {
	f := newFixture(t)
	_, _, err := inventory.NewSlipUseCase(f.repos, &captureSlip{}).DownloadSlip(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
