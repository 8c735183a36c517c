package inventory

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-engine/internal/domain"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
)

func validTransfer() *entity.OperationDocument {
	now := time.Now()
	return &entity.OperationDocument{
		Kind:           entity.OperationTransfer,
		FromLocationID: "L1",
		ToLocationID:   "L2",
		ScheduleDate:   &now,
		Lines:          []entity.OperationLine{{ProductID: "P", Quantity: dec(1)}},
	}
}

func TestValidateDocument_TrasladoValido(t *testing.T) {
	require.NoError(t, ValidateDocument(validTransfer()))
}

func TestValidateDocument_Errores(t *testing.T) {
	cases := map[string]struct {
		mutate func(d *entity.OperationDocument)
		field  string
	}{
		"mismo origen y destino": {func(d *entity.OperationDocument) { d.ToLocationID = "L1" }, "to_location_id"},
		"sin líneas":             {func(d *entity.OperationDocument) { d.Lines = nil }, "lines"},
		"cantidad cero":          {func(d *entity.OperationDocument) { d.Lines[0].Quantity = dec(0) }, "lines[0].quantity"},
		"cantidad negativa":      {func(d *entity.OperationDocument) { d.Lines[0].Quantity = dec(-1) }, "lines[0].quantity"},
		"más de cuatro decimales": {func(d *entity.OperationDocument) {
			d.Lines[0].Quantity = decimal.RequireFromString("0.00001")
		}, "lines[0].quantity"},
		"cantidad fuera de rango": {func(d *entity.OperationDocument) {
			d.Lines[0].Quantity = decimal.New(1, 14)
		}, "lines[0].quantity"},
		"sin fecha":        {func(d *entity.OperationDocument) { d.ScheduleDate = nil }, "schedule_date"},
		"tipo desconocido": {func(d *entity.OperationDocument) { d.Kind = "scrap" }, "type"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			doc := validTransfer()
			c.mutate(doc)
			err := ValidateDocument(doc)
			require.ErrorIs(t, err, domain.ErrValidation)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, c.field, verr.Field)
		})
	}
}

func TestValidateDocument_AjusteAdmiteNegativoPeroNoCero(t *testing.T) {
	doc := &entity.OperationDocument{
		Kind:       entity.OperationAdjustment,
		LocationID: "L1",
		Reason:     entity.ReasonDamage,
		Lines:      []entity.OperationLine{{ProductID: "P", Quantity: dec(-2)}},
	}
	require.NoError(t, ValidateDocument(doc))

	doc.Lines[0].Quantity = dec(0)
	assert.ErrorIs(t, ValidateDocument(doc), domain.ErrValidation)

	doc.Lines[0].Quantity = dec(1)
	doc.Reason = "theft"
	assert.ErrorIs(t, ValidateDocument(doc), domain.ErrValidation)
}

func TestValidateDocument_EntregaRequiereDireccion(t *testing.T) {
	now := time.Now()
	doc := &entity.OperationDocument{
		Kind:           entity.OperationDelivery,
		Contact:        "Cliente",
		FromLocationID: "L1",
		ScheduleDate:   &now,
		Lines:          []entity.OperationLine{{ProductID: "P", Quantity: dec(1)}},
	}
	err := ValidateDocument(doc)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "delivery_address", verr.Field)
}

func TestValidateDocument_CerosFinalesNoCuentanComoDecimales(t *testing.T) {
	doc := validTransfer()
	doc.Lines[0].Quantity = decimal.RequireFromString("1.50000000")
	require.NoError(t, ValidateDocument(doc))

	adj := &entity.OperationDocument{
		Kind:       entity.OperationAdjustment,
		LocationID: "L1",
		Reason:     entity.ReasonCountError,
		Lines:      []entity.OperationLine{{ProductID: "P", Quantity: decimal.RequireFromString("-0.12345")}},
	}
	err := ValidateDocument(adj)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "lines[0].quantity", verr.Field)
}
