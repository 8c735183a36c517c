package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-engine/internal/application/dto"
	"github.com/jhoicas/stock-engine/internal/application/inventory"
	"github.com/jhoicas/stock-engine/internal/domain"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
	"github.com/jhoicas/stock-engine/internal/domain/repository"
)

// StockHandler expone las consultas de saldos y ledger (solo lectura).
type StockHandler struct {
	query *inventory.StockQueryService
}

// NewStockHandler construye el handler.
func NewStockHandler(query *inventory.StockQueryService) *StockHandler {
	return &StockHandler{query: query}
}

// Balances godoc
// @Summary      Consultar saldos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  false  "Producto"
// @Param        location_id   query  string  false  "Ubicación"
// @Param        warehouse_id  query  string  false  "Bodega"
// @Success      200  {array}   dto.StockBalanceResponse
// @Router       /api/stock [get]
func (h *StockHandler) Balances(c *fiber.Ctx) error {
	var filter repository.StockFilter
	for _, p := range []struct {
		name string
		dst  *string
	}{
		{"product_id", &filter.ProductID},
		{"location_id", &filter.LocationID},
		{"warehouse_id", &filter.WarehouseID},
	} {
		v, err := queryID(c, p.name)
		if err != nil {
			return writeError(c, err)
		}
		*p.dst = v
	}
	list, err := h.query.Stock(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toBalanceResponses(list))
}

// Ledger godoc
// @Summary      Consultar el ledger de movimientos
// @Description  Más recientes primero. from y to en RFC3339.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id     query  string  false  "Producto"
// @Param        location_id    query  string  false  "Ubicación"
// @Param        warehouse_id   query  string  false  "Bodega"
// @Param        movement_type  query  string  false  "receipt | delivery | transfer | adjustment"
// @Param        document_id    query  string  false  "Documento de operación"
// @Param        from           query  string  false  "Desde (RFC3339)"
// @Param        to             query  string  false  "Hasta (RFC3339)"
// @Param        limit          query  int     false  "Límite"  default(50)
// @Param        skip           query  int     false  "Saltar"  default(0)
// @Success      200  {object}  dto.LedgerListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/ledger [get]
func (h *StockHandler) Ledger(c *fiber.Ctx) error {
	var q dto.LedgerQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	if err := validateStruct(q); err != nil {
		return writeError(c, err)
	}
	filter := repository.LedgerFilter{
		ProductID:    q.ProductID,
		LocationID:   q.LocationID,
		WarehouseID:  q.WarehouseID,
		MovementType: entity.MovementType(q.MovementType),
		DocumentID:   q.DocumentID,
		Limit:        q.Limit,
		Skip:         q.Skip,
	}
	var err error
	if filter.From, err = parseTime("from", q.From); err != nil {
		return writeError(c, err)
	}
	if filter.To, err = parseTime("to", q.To); err != nil {
		return writeError(c, err)
	}

	entries, err := h.query.Ledger(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	page := dto.PageRequest{Limit: q.Limit, Skip: q.Skip}
	page.DefaultPage()
	out := dto.LedgerListResponse{
		Items: make([]dto.LedgerEntryResponse, 0, len(entries)),
		Page:  dto.PageResponse{Limit: page.Limit, Skip: page.Skip},
	}
	for _, e := range entries {
		out.Items = append(out.Items, dto.LedgerEntryResponse{
			ID:           e.ID,
			ProductID:    e.ProductID,
			LocationID:   e.LocationID,
			WarehouseID:  e.WarehouseID,
			Quantity:     e.Quantity,
			OnHand:       e.OnHand,
			FreeToUse:    e.FreeToUse,
			UnitCost:     e.UnitCost,
			TotalCost:    e.TotalCost,
			MovementType: string(e.MovementType),
			Reference:    e.Reference,
			DocumentID:   e.DocumentID,
			Date:         e.Date,
			Responsible:  e.Responsible,
		})
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos bajo el umbral de reorden
// @Description  Stock sumado (global o por bodega) menor o igual a min_stock_level, con sugerencia de pedido.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Bodega. Vacío = stock global."
// @Success      200  {array}   dto.LowStockResponse
// @Router       /api/stock/low [get]
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	warehouseID, err := queryID(c, "warehouse_id")
	if err != nil {
		return writeError(c, err)
	}
	reports, err := h.query.LowStock(c.UserContext(), warehouseID)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.LowStockResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, dto.LowStockResponse{
			ProductID:          r.Product.ID,
			SKU:                r.Product.SKU,
			ProductName:        r.Product.Name,
			OnHand:             r.OnHand,
			MinStockLevel:      r.Product.MinStockLevel,
			Deficit:            r.Deficit,
			SuggestedOrderQty:  r.SuggestedOrderQty,
			EstimatedOrderCost: r.EstimatedOrderCost,
		})
	}
	return c.JSON(out)
}

// OutOfStock godoc
// @Summary      Saldos agotados
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Bodega"
// @Success      200  {array}   dto.StockBalanceResponse
// @Router       /api/stock/out [get]
func (h *StockHandler) OutOfStock(c *fiber.Ctx) error {
	warehouseID, err := queryID(c, "warehouse_id")
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.query.OutOfStock(c.UserContext(), warehouseID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toBalanceResponses(list))
}

// Replay godoc
// @Summary      Verificar saldo contra el ledger
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  true  "Producto"
// @Param        location_id  query  string  true  "Ubicación"
// @Success      200  {object}  dto.ReplayCheckResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/replay [get]
func (h *StockHandler) Replay(c *fiber.Ctx) error {
	productID, err := queryID(c, "product_id")
	if err != nil {
		return writeError(c, err)
	}
	locationID, err := queryID(c, "location_id")
	if err != nil {
		return writeError(c, err)
	}
	if productID == "" {
		return writeError(c, domain.Invalid("product_id", "requerido"))
	}
	if locationID == "" {
		return writeError(c, domain.Invalid("location_id", "requerido"))
	}
	check, err := h.query.VerifyReplay(c.UserContext(), productID, locationID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ReplayCheckResponse{
		ProductID:  check.ProductID,
		LocationID: check.LocationID,
		LedgerSum:  check.LedgerSum,
		OnHand:     check.OnHand,
		Consistent: check.Consistent,
	})
}

func parseTime(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, domain.Invalid(field, "fecha inválida, se espera RFC3339")
	}
	return &t, nil
}

func toBalanceResponses(list []*entity.StockBalance) []dto.StockBalanceResponse {
	out := make([]dto.StockBalanceResponse, 0, len(list))
	for _, b := range list {
		out = append(out, dto.StockBalanceResponse{
			ProductID:   b.ProductID,
			LocationID:  b.LocationID,
			WarehouseID: b.WarehouseID,
			OnHand:      b.OnHand,
			FreeToUse:   b.FreeToUse,
			UpdatedAt:   b.UpdatedAt,
		})
	}
	return out
}
