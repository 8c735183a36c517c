package inventory

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-engine/internal/domain"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
)

// Las cantidades se guardan como NUMERIC(18,4).
const quantityScale = 4

var maxQuantity = decimal.New(1, 14)

// ValidateDocument revisa la cabecera y las líneas de un documento nuevo según su variante.
// Devuelve un *domain.ValidationError con el primer campo inválido.
func ValidateDocument(doc *entity.OperationDocument) error {
	if !doc.Kind.IsValid() {
		return domain.Invalid("type", "tipo de documento desconocido")
	}
	switch doc.Kind {
	case entity.OperationReceipt:
		if strings.TrimSpace(doc.Contact) == "" {
			return domain.Invalid("contact", "proveedor requerido")
		}
		if doc.ToLocationID == "" {
			return domain.Invalid("to_location_id", "ubicación destino requerida")
		}
		if doc.ScheduleDate == nil {
			return domain.Invalid("schedule_date", "fecha programada requerida")
		}
	case entity.OperationDelivery:
		if strings.TrimSpace(doc.Contact) == "" {
			return domain.Invalid("contact", "cliente requerido")
		}
		if doc.FromLocationID == "" {
			return domain.Invalid("from_location_id", "ubicación origen requerida")
		}
		if strings.TrimSpace(doc.DeliveryAddress) == "" {
			return domain.Invalid("delivery_address", "dirección de entrega requerida")
		}
		if doc.ScheduleDate == nil {
			return domain.Invalid("schedule_date", "fecha programada requerida")
		}
	case entity.OperationTransfer:
		if doc.FromLocationID == "" {
			return domain.Invalid("from_location_id", "ubicación origen requerida")
		}
		if doc.ToLocationID == "" {
			return domain.Invalid("to_location_id", "ubicación destino requerida")
		}
		if doc.FromLocationID == doc.ToLocationID {
			return domain.Invalid("to_location_id", "origen y destino deben ser distintos")
		}
		if doc.ScheduleDate == nil {
			return domain.Invalid("schedule_date", "fecha programada requerida")
		}
	case entity.OperationAdjustment:
		if doc.LocationID == "" {
			return domain.Invalid("location_id", "ubicación requerida")
		}
		if !doc.Reason.IsValid() {
			return domain.Invalid("reason", "motivo de ajuste inválido")
		}
	}
	if len(doc.Lines) == 0 {
		return domain.Invalid("lines", "el documento debe tener al menos una línea")
	}
	for i, l := range doc.Lines {
		field := "lines[" + strconv.Itoa(i) + "]"
		if l.ProductID == "" {
			return domain.Invalid(field+".product_id", "producto requerido")
		}
		if !l.Quantity.Equal(l.Quantity.Truncate(quantityScale)) {
			return domain.Invalid(field+".quantity", "la cantidad admite máximo 4 decimales")
		}
		if l.Quantity.Abs().GreaterThanOrEqual(maxQuantity) {
			return domain.Invalid(field+".quantity", "la cantidad excede el máximo permitido")
		}
		if doc.Kind == entity.OperationAdjustment {
			if l.Quantity.IsZero() {
				return domain.Invalid(field+".quantity", "el cambio de cantidad no puede ser cero")
			}
			continue
		}
		if !l.Quantity.IsPositive() {
			return domain.Invalid(field+".quantity", "la cantidad debe ser mayor que cero")
		}
	}
	return nil
}
