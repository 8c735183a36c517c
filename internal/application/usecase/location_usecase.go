package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-engine/internal/application/dto"
	"github.com/jhoicas/stock-engine/internal/domain"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
	"github.com/jhoicas/stock-engine/internal/domain/repository"
)

// LocationUseCase casos de uso para ubicaciones dentro de una bodega.
type LocationUseCase struct {
	repo       repository.LocationRepository
	warehouses repository.WarehouseRepository
	stock      repository.StockRepository
	ledger     repository.LedgerRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(
	repo repository.LocationRepository,
	warehouses repository.WarehouseRepository,
	stock repository.StockRepository,
	ledger repository.LedgerRepository,
) *LocationUseCase {
	return &LocationUseCase{repo: repo, warehouses: warehouses, stock: stock, ledger: ledger}
}

// Create crea una ubicación. El código corto es único dentro de la bodega.
func (uc *LocationUseCase) Create(ctx context.Context, warehouseID string, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	wh, err := uc.warehouses.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrWarehouseNotFound
	}
	code := strings.ToUpper(strings.TrimSpace(in.ShortCode))
	if code == "" {
		return nil, domain.Invalid("short_code", "código corto requerido")
	}
	existing, err := uc.repo.GetByCode(ctx, warehouseID, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	loc := &entity.Location{
		ID:          uuid.New().String(),
		WarehouseID: warehouseID,
		ShortCode:   code,
		Name:        strings.TrimSpace(in.Name),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, loc); err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// GetByID obtiene una ubicación por ID.
func (uc *LocationUseCase) GetByID(ctx context.Context, id string) (*dto.LocationResponse, error) {
	loc, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

func (uc *LocationUseCase) get(ctx context.Context, id string) (*entity.Location, error) {
	loc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrLocationNotFound
	}
	return loc, nil
}

// ListByWarehouse lista las ubicaciones de una bodega.
func (uc *LocationUseCase) ListByWarehouse(ctx context.Context, warehouseID string) ([]dto.LocationResponse, error) {
	wh, err := uc.warehouses.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrWarehouseNotFound
	}
	list, err := uc.repo.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		out = append(out, *toLocationResponse(l))
	}
	return out, nil
}

// Update renombra la ubicación. Bodega y código no cambian.
func (uc *LocationUseCase) Update(ctx context.Context, id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	loc, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		loc.Name = strings.TrimSpace(*in.Name)
	}
	loc.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, loc); err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// Delete elimina la ubicación si ningún saldo ni entrada del ledger la referencia.
func (uc *LocationUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	if err := ensureUnreferenced(ctx, uc.stock, uc.ledger,
		repository.StockFilter{LocationID: id}, repository.LedgerFilter{LocationID: id}); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:          l.ID,
		WarehouseID: l.WarehouseID,
		ShortCode:   l.ShortCode,
		Name:        l.Name,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}
