package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/stock-engine/internal/domain"
)

// SlipUseCase genera el comprobante imprimible de un documento de operación.
type SlipUseCase struct {
	repos     Repos
	generator SlipGenerator
}

// NewSlipUseCase construye el caso de uso.
func NewSlipUseCase(repos Repos, generator SlipGenerator) *SlipUseCase {
	return &SlipUseCase{repos: repos, generator: generator}
}

// DownloadSlip carga el documento, lo enriquece con bodega, ubicaciones y productos y genera el PDF.
func (uc *SlipUseCase) DownloadSlip(ctx context.Context, documentID string) (pdfBytes []byte, filename string, err error) {
	doc, err := uc.repos.Operations.GetByID(ctx, documentID)
	if err != nil {
		return nil, "", fmt.Errorf("slip: obtener documento: %w", err)
	}
	if doc == nil {
		return nil, "", domain.ErrDocumentNotFound
	}

	data := &SlipData{Document: doc}
	if data.Warehouse, err = uc.repos.Warehouses.GetByID(ctx, doc.WarehouseID); err != nil {
		return nil, "", fmt.Errorf("slip: obtener bodega: %w", err)
	}
	if data.FromLocation, err = uc.locationCode(ctx, doc.FromLocationID); err != nil {
		return nil, "", err
	}
	if data.ToLocation, err = uc.locationCode(ctx, doc.ToLocationID); err != nil {
		return nil, "", err
	}
	if data.Location, err = uc.locationCode(ctx, doc.LocationID); err != nil {
		return nil, "", err
	}

	data.Lines = make([]SlipLine, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		line := SlipLine{
			Position:    l.Position,
			SKU:         l.ProductID,
			ProductName: "Producto " + l.ProductID,
			Quantity:    l.Quantity,
			Fulfilled:   l.FulfilledQuantity,
		}
		if p, pErr := uc.repos.Products.GetByID(ctx, l.ProductID); pErr == nil && p != nil {
			line.SKU, line.ProductName, line.UnitMeasure = p.SKU, p.Name, p.UnitMeasure
		}
		data.Lines = append(data.Lines, line)
	}

	pdfBytes, err = uc.generator.GenerateSlip(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("slip: generación fallida: %w", err)
	}
	filename = "operacion_" + strings.ReplaceAll(doc.Reference, "/", "-") + ".pdf"
	return pdfBytes, filename, nil
}

func (uc *SlipUseCase) locationCode(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", nil
	}
	loc, err := uc.repos.Locations.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("slip: obtener ubicación: %w", err)
	}
	if loc == nil {
		return id, nil
	}
	return loc.ShortCode, nil
}
