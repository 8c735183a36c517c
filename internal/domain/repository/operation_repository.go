package repository

import (
	"context"

	"github.com/jhoicas/stock-engine/internal/domain/entity"
)

// OperationFilter filtra documentos de operación.
type OperationFilter struct {
	Kind        entity.OperationKind
	Status      entity.OperationStatus
	WarehouseID string
	Limit       int
	Skip        int
}

// OperationRepository persiste documentos de operación con sus líneas.
type OperationRepository interface {
	// Create inserta cabecera y líneas. Una referencia repetida devuelve domain.ErrDuplicateReference.
	Create(ctx context.Context, doc *entity.OperationDocument) error
	GetByID(ctx context.Context, id string) (*entity.OperationDocument, error)
	// GetForUpdate lee el documento bloqueándolo hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.OperationDocument, error)
	// SaveTransition persiste estado, fechas y cantidades cumplidas de las líneas.
	SaveTransition(ctx context.Context, doc *entity.OperationDocument) error
	List(ctx context.Context, filter OperationFilter) ([]*entity.OperationDocument, error)
	Delete(ctx context.Context, id string) error
}

// Sequencer entrega contadores atómicos por (bodega, tipo) para las referencias.
// Los valores empiezan en 1 y nunca se reutilizan.
type Sequencer interface {
	Next(ctx context.Context, warehouseID string, kind entity.OperationKind) (int64, error)
}
