package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-engine/internal/application/dto"
	"github.com/jhoicas/stock-engine/internal/application/inventory"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
	"github.com/jhoicas/stock-engine/internal/domain/repository"
)

// OperationHandler expone el ciclo de vida de los documentos de operación (protegido).
type OperationHandler struct {
	svc   *inventory.OperationService
	slips *inventory.SlipUseCase
}

// NewOperationHandler construye el handler.
func NewOperationHandler(svc *inventory.OperationService, slips *inventory.SlipUseCase) *OperationHandler {
	return &OperationHandler{svc: svc, slips: slips}
}

// operationQuery filtros de GET /api/operations.
type operationQuery struct {
	Type        string `query:"type" validate:"omitempty,oneof=receipt delivery transfer adjustment"`
	Status      string `query:"status" validate:"omitempty,oneof=draft waiting ready done canceled"`
	WarehouseID string `query:"warehouse_id" validate:"omitempty,uuid"`
	Limit       int    `query:"limit" validate:"omitempty,min=1,max=500"`
	Skip        int    `query:"skip" validate:"omitempty,min=0"`
}

// Create godoc
// @Summary      Crear documento de operación
// @Description  Crea el documento en draft y le asigna la referencia {bodega}/{IN|OUT|TRF|ADJ}/{NNNN}.
// @Tags         operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOperationRequest  true  "Cabecera según el tipo y líneas"
// @Success      201   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/operations [post]
func (h *OperationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOperationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validateStruct(in); err != nil {
		return writeError(c, err)
	}

	actor := GetActor(c)
	input := inventory.CreateOperationInput{
		Kind:            entity.OperationKind(in.Type),
		Contact:         in.Contact,
		FromLocationID:  in.FromLocationID,
		ToLocationID:    in.ToLocationID,
		LocationID:      in.LocationID,
		DeliveryAddress: in.DeliveryAddress,
		ScheduleDate:    in.ScheduleDate,
		Reason:          entity.AdjustmentReason(in.Reason),
		Responsible:     in.Responsible,
		CreatedBy:       actor,
		Lines:           make([]inventory.LineInput, 0, len(in.Lines)),
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, inventory.LineInput{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	doc, err := h.svc.Create(c.UserContext(), input)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOperationResponse(doc))
}

// List godoc
// @Summary      Listar documentos de operación
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        type          query  string  false  "receipt | delivery | transfer | adjustment"
// @Param        status        query  string  false  "draft | waiting | ready | done | canceled"
// @Param        warehouse_id  query  string  false  "Bodega"
// @Param        limit         query  int     false  "Límite"  default(50)
// @Param        skip          query  int     false  "Saltar"  default(0)
// @Success      200  {object}  dto.OperationListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/operations [get]
func (h *OperationHandler) List(c *fiber.Ctx) error {
	var q operationQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	if err := validateStruct(q); err != nil {
		return writeError(c, err)
	}
	page := dto.PageRequest{Limit: q.Limit, Skip: q.Skip}
	page.DefaultPage()
	docs, err := h.svc.List(c.UserContext(), repository.OperationFilter{
		Kind:        entity.OperationKind(q.Type),
		Status:      entity.OperationStatus(q.Status),
		WarehouseID: q.WarehouseID,
		Limit:       page.Limit,
		Skip:        page.Skip,
	})
	if err != nil {
		return writeError(c, err)
	}
	out := dto.OperationListResponse{
		Items: make([]dto.OperationResponse, 0, len(docs)),
		Page:  dto.PageResponse{Limit: page.Limit, Skip: page.Skip},
	}
	for _, d := range docs {
		out.Items = append(out.Items, toOperationResponse(d))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener documento de operación
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.OperationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/operations/{id} [get]
func (h *OperationHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	doc, err := h.svc.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toOperationResponse(doc))
}

// ChangeStatus godoc
// @Summary      Cambiar estado del documento
// @Description  ready → done aplica los movimientos de stock en una sola transacción.
// @Tags         operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del documento"
// @Param        body  body  dto.ChangeStatusRequest  true  "Estado destino"
// @Success      200   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/operations/{id}/status [patch]
func (h *OperationHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validateStruct(in); err != nil {
		return writeError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	doc, err := h.svc.ChangeStatus(c.UserContext(), id, entity.OperationStatus(in.Status), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toOperationResponse(doc))
}

// Delete godoc
// @Summary      Eliminar documento
// @Description  Solo en draft, waiting o ready.
// @Tags         operations
// @Security     Bearer
// @Param        id   path  string  true  "ID del documento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/operations/{id} [delete]
func (h *OperationHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err = h.svc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadSlip godoc
// @Summary      Descargar comprobante PDF
// @Tags         operations
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/operations/{id}/slip [get]
func (h *OperationHandler) DownloadSlip(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	pdfBytes, filename, err := h.slips.DownloadSlip(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

func toOperationResponse(d *entity.OperationDocument) dto.OperationResponse {
	out := dto.OperationResponse{
		ID:              d.ID,
		Type:            string(d.Kind),
		Reference:       d.Reference,
		Status:          string(d.Status),
		WarehouseID:     d.WarehouseID,
		Contact:         d.Contact,
		FromLocationID:  d.FromLocationID,
		ToLocationID:    d.ToLocationID,
		LocationID:      d.LocationID,
		DeliveryAddress: d.DeliveryAddress,
		ScheduleDate:    d.ScheduleDate,
		Reason:          string(d.Reason),
		Responsible:     d.Responsible,
		CreatedBy:       d.CreatedBy,
		Lines:           make([]dto.OperationLineResponse, 0, len(d.Lines)),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
		DoneAt:          d.DoneAt,
	}
	for _, l := range d.Lines {
		out.Lines = append(out.Lines, dto.OperationLineResponse{
			ID:                l.ID,
			Position:          l.Position,
			ProductID:         l.ProductID,
			Quantity:          l.Quantity,
			FulfilledQuantity: l.FulfilledQuantity,
		})
	}
	return out
}
