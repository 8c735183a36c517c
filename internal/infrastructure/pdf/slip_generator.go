// Package pdf genera el comprobante imprimible de un documento de operación.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Bodega + dirección   │  Tipo + Referencia + Estado  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: Contacto / Ubicaciones / Fecha / Motivo              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | SKU | Producto | Unidad | Cantidad | Cumplida    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR de la referencia + responsable + firmas          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/stock-engine/internal/application/inventory"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var kindTitles = map[entity.OperationKind]string{
	entity.OperationReceipt:    "RECEPCIÓN DE MERCANCÍA",
	entity.OperationDelivery:   "ORDEN DE ENTREGA",
	entity.OperationTransfer:   "TRASLADO INTERNO",
	entity.OperationAdjustment: "AJUSTE DE INVENTARIO",
}

var statusLabels = map[entity.OperationStatus]string{
	entity.StatusDraft:    "Borrador",
	entity.StatusWaiting:  "En espera",
	entity.StatusReady:    "Listo",
	entity.StatusDone:     "Hecho",
	entity.StatusCanceled: "Cancelado",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ inventory.SlipGenerator = (*MarotoSlipGenerator)(nil)

// MarotoSlipGenerator implementa inventory.SlipGenerator usando Maroto v2.
type MarotoSlipGenerator struct{}

// NewMarotoSlipGenerator construye el generador.
func NewMarotoSlipGenerator() *MarotoSlipGenerator { return &MarotoSlipGenerator{} }

// GenerateSlip genera el PDF y devuelve sus bytes.
func (g *MarotoSlipGenerator) GenerateSlip(_ context.Context, data *inventory.SlipData) ([]byte, error) {
	if data == nil || data.Document == nil {
		return nil, fmt.Errorf("pdf: documento vacío")
	}
	doc := data.Document

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(kindTitles[doc.Kind]+" "+doc.Reference, true).
		WithAuthor(nonEmpty(doc.Responsible, "stock-engine"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(detailRows(data)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(data.Lines)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: bodega (izq) y tipo + referencia + estado (der).
func headerRow(data *inventory.SlipData) core.Row {
	doc := data.Document
	whName, whAddr := doc.WarehouseID, ""
	if data.Warehouse != nil {
		whName = data.Warehouse.ShortCode + " · " + data.Warehouse.Name
		whAddr = data.Warehouse.Address
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New(whName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(whAddr, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(kindTitles[doc.Kind], props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(doc.Reference, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Estado: "+statusLabels[doc.Status], props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// detailRows: campos de cabecera propios de cada variante.
func detailRows(data *inventory.SlipData) []core.Row {
	doc := data.Document
	var fields [][2]string
	switch doc.Kind {
	case entity.OperationReceipt:
		fields = [][2]string{{"Proveedor", doc.Contact}, {"Destino", data.ToLocation}}
	case entity.OperationDelivery:
		fields = [][2]string{{"Cliente", doc.Contact}, {"Origen", data.FromLocation}, {"Dirección", doc.DeliveryAddress}}
	case entity.OperationTransfer:
		fields = [][2]string{{"Origen", data.FromLocation}, {"Destino", data.ToLocation}}
	case entity.OperationAdjustment:
		fields = [][2]string{{"Ubicación", data.Location}, {"Motivo", string(doc.Reason)}}
	}
	if doc.ScheduleDate != nil {
		fields = append(fields, [2]string{"Fecha programada", doc.ScheduleDate.Format("02/01/2006")})
	}
	if doc.DoneAt != nil {
		fields = append(fields, [2]string{"Validado", doc.DoneAt.Format("02/01/2006 15:04")})
	}

	rows := make([]core.Row, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, row.New(6).Add(
			col.New(3).Add(text.New(f[0]+":", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
			col.New(9).Add(text.New(nonEmpty(f[1], "—"), props.Text{Size: 8, Top: 1, Color: colorGray})),
		))
	}
	return rows
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("SKU", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Unidad", 1, align.Center),
		h("Cantidad", 2, align.Right),
		h("Cumplida", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableLineRows: una fila por línea del documento.
func tableLineRows(lines []inventory.SlipLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", l.Position),
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(l.SKU,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(4).Add(text.New(l.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(1).Add(text.New(l.UnitMeasure,
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatQuantity(l.Quantity.String()),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatQuantity(l.Fulfilled.String()),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// footerRow: QR con la referencia, responsable y espacio para firma.
func footerRow(doc *entity.OperationDocument) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(doc.Reference, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Responsable: "+nonEmpty(doc.Responsible, "—"), props.Text{
				Size: 9, Top: 4, Left: 3,
			}),
			text.New("Creado: "+doc.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Top: 10, Left: 3, Color: colorGray,
			}),
			text.New("Firma: ______________________________", props.Text{
				Size: 9, Top: 28, Left: 3,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatQuantity inserta puntos de miles en la parte entera y usa coma decimal.
// Ej: "25000" → "25.000", "-1234.5" → "-1.234,5"
func formatQuantity(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := sign + string(buf)
	if hasFrac {
		out += "," + frac
	}
	return out
}
