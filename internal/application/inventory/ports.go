package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-engine/internal/domain/entity"
	"github.com/jhoicas/stock-engine/internal/domain/repository"
)

// Repos agrupa los repositorios que usa el motor. Los que entrega TxRunner.Run están atados a la
// transacción en curso; los que recibe cada servicio en su constructor leen fuera de transacción.
type Repos struct {
	Products   repository.ProductRepository
	Warehouses repository.WarehouseRepository
	Locations  repository.LocationRepository
	Stock      repository.StockRepository
	Ledger     repository.LedgerRepository
	Operations repository.OperationRepository
}

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error se descarta todo lo escrito; si no, se hace commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error
}

// SlipLine línea del comprobante impreso, enriquecida con datos del producto.
type SlipLine struct {
	Position    int
	SKU         string
	ProductName string
	UnitMeasure string
	Quantity    decimal.Decimal
	Fulfilled   decimal.Decimal
}

// SlipData datos completos para imprimir un documento de operación.
type SlipData struct {
	Document     *entity.OperationDocument
	Warehouse    *entity.Warehouse
	FromLocation string
	ToLocation   string
	Location     string
	Lines        []SlipLine
}

// SlipGenerator genera la representación imprimible (PDF) de un documento.
type SlipGenerator interface {
	GenerateSlip(ctx context.Context, data *SlipData) ([]byte, error)
}
