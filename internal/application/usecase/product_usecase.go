package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-engine/internal/application/dto"
	"github.com/jhoicas/stock-engine/internal/domain"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
	"github.com/jhoicas/stock-engine/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock se mueve solo con documentos de operación.
type ProductUseCase struct {
	repo   repository.ProductRepository
	stock  repository.StockRepository
	ledger repository.LedgerRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	stock repository.StockRepository,
	ledger repository.LedgerRepository,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, stock: stock, ledger: ledger}
}

// Create crea un nuevo producto con el SKU normalizado a mayúsculas.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku := strings.ToUpper(strings.TrimSpace(in.SKU))
	if sku == "" {
		return nil, domain.Invalid("sku", "SKU requerido")
	}
	if err := checkNonNegative(in.Cost, in.MinStockLevel); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		SKU:           sku,
		Name:          strings.TrimSpace(in.Name),
		Category:      strings.TrimSpace(in.Category),
		UnitMeasure:   strings.TrimSpace(in.UnitMeasure),
		Cost:          in.Cost,
		MinStockLevel: in.MinStockLevel,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

func checkNonNegative(cost, minStock decimal.Decimal) error {
	if cost.IsNegative() {
		return domain.Invalid("cost", "el costo no puede ser negativo")
	}
	if minStock.IsNegative() {
		return domain.Invalid("min_stock_level", "el stock mínimo no puede ser negativo")
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// Update actualiza los campos administrativos. El SKU no se modifica.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.UnitMeasure != nil {
		product.UnitMeasure = strings.TrimSpace(*in.UnitMeasure)
	}
	if in.Cost != nil {
		product.Cost = *in.Cost
	}
	if in.MinStockLevel != nil {
		product.MinStockLevel = *in.MinStockLevel
	}
	if err := checkNonNegative(product.Cost, product.MinStockLevel); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos ordenados por SKU.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Skip)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Skip: page.Skip},
	}, nil
}

// Delete elimina un producto. Si algún saldo o entrada del ledger lo referencia devuelve domain.ErrInUse.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	if err := ensureUnreferenced(ctx, uc.stock, uc.ledger,
		repository.StockFilter{ProductID: id}, repository.LedgerFilter{ProductID: id}); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// ensureUnreferenced devuelve domain.ErrInUse si algún saldo o entrada del ledger cumple los filtros.
func ensureUnreferenced(
	ctx context.Context,
	stock repository.StockRepository,
	ledger repository.LedgerRepository,
	sf repository.StockFilter,
	lf repository.LedgerFilter,
) error {
	n, err := stock.Count(ctx, sf)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrInUse
	}
	n, err = ledger.Count(ctx, lf)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrInUse
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Category:      p.Category,
		UnitMeasure:   p.UnitMeasure,
		Cost:          p.Cost,
		MinStockLevel: p.MinStockLevel,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
