package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-engine/internal/application/analytics"
)

// DashboardHandler expone el resumen operativo del inventario.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen del tablero de inventario
// @Description  Documentos pendientes por tipo, stock bajo, agotados, movimientos del mes y valor del inventario.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Bodega (vacío = todas)"
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	warehouseID, err := queryID(c, "warehouse_id")
	if err != nil {
		return writeError(c, err)
	}
	summary, err := h.uc.GetSummary(c.UserContext(), warehouseID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
