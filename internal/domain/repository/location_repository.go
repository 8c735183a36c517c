package repository

import (
	"context"

	"github.com/jhoicas/stock-engine/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para Location.
// Location es la única fuente de verdad de la relación ubicación -> bodega.
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	GetByCode(ctx context.Context, warehouseID, code string) (*entity.Location, error)
	Update(ctx context.Context, location *entity.Location) error
	ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.Location, error)
	CountByWarehouse(ctx context.Context, warehouseID string) (int, error)
	Delete(ctx context.Context, id string) error
}
