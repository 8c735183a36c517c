package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationKind es la variante de un documento de operación.
type OperationKind string

const (
	OperationReceipt    OperationKind = "receipt"
	OperationDelivery   OperationKind = "delivery"
	OperationTransfer   OperationKind = "transfer"
	OperationAdjustment OperationKind = "adjustment"
)

// IsValid indica si la variante es conocida.
func (k OperationKind) IsValid() bool {
	switch k {
	case OperationReceipt, OperationDelivery, OperationTransfer, OperationAdjustment:
		return true
	}
	return false
}

// TypeCode devuelve el segmento de tipo usado en la referencia (IN, OUT, TRF, ADJ).
func (k OperationKind) TypeCode() string {
	switch k {
	case OperationReceipt:
		return "IN"
	case OperationDelivery:
		return "OUT"
	case OperationTransfer:
		return "TRF"
	case OperationAdjustment:
		return "ADJ"
	}
	return ""
}

// MovementType devuelve el tipo de movimiento del ledger que genera esta variante.
func (k OperationKind) MovementType() MovementType {
	return MovementType(k)
}

// OperationStatus es el estado del ciclo de vida de un documento.
type OperationStatus string

const (
	StatusDraft    OperationStatus = "draft"
	StatusWaiting  OperationStatus = "waiting"
	StatusReady    OperationStatus = "ready"
	StatusDone     OperationStatus = "done"
	StatusCanceled OperationStatus = "canceled"
)

// IsValid indica si el estado es conocido.
func (s OperationStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusWaiting, StatusReady, StatusDone, StatusCanceled:
		return true
	}
	return false
}

// IsTerminal indica si el documento ya no admite cambios de estado.
func (s OperationStatus) IsTerminal() bool {
	return s == StatusDone || s == StatusCanceled
}

// CanDelete indica si un documento en este estado puede eliminarse.
func (s OperationStatus) CanDelete() bool {
	return s == StatusDraft || s == StatusWaiting || s == StatusReady
}

// AdjustmentReason motivo de un ajuste de inventario.
type AdjustmentReason string

const (
	ReasonDamage     AdjustmentReason = "damage"
	ReasonLoss       AdjustmentReason = "loss"
	ReasonFound      AdjustmentReason = "found"
	ReasonExpired    AdjustmentReason = "expired"
	ReasonCountError AdjustmentReason = "count_error"
	ReasonOther      AdjustmentReason = "other"
)

// IsValid indica si el motivo es conocido.
func (r AdjustmentReason) IsValid() bool {
	switch r {
	case ReasonDamage, ReasonLoss, ReasonFound, ReasonExpired, ReasonCountError, ReasonOther:
		return true
	}
	return false
}

// OperationDocument es el documento de operación (recepción, entrega, traslado o ajuste).
// Los campos de cabecera que usa cada variante:
//
//	receipt:    Contact, ToLocationID, ScheduleDate
//	delivery:   Contact, FromLocationID, DeliveryAddress, ScheduleDate
//	transfer:   FromLocationID, ToLocationID, ScheduleDate
//	adjustment: LocationID, Reason
//
// WarehouseID es la bodega de la ubicación ancla (destino en recepciones, origen en entregas y
// traslados, la única ubicación en ajustes); de ella sale el prefijo de Reference.
type OperationDocument struct {
	ID              string
	Kind            OperationKind
	Reference       string
	Status          OperationStatus
	WarehouseID     string
	Contact         string
	FromLocationID  string
	ToLocationID    string
	LocationID      string
	DeliveryAddress string
	ScheduleDate    *time.Time
	Reason          AdjustmentReason
	Responsible     string
	CreatedBy       string
	Lines           []OperationLine
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DoneAt          *time.Time
}

// AnchorLocationID devuelve la ubicación que determina la bodega del documento.
func (d *OperationDocument) AnchorLocationID() string {
	switch d.Kind {
	case OperationReceipt:
		return d.ToLocationID
	case OperationDelivery, OperationTransfer:
		return d.FromLocationID
	case OperationAdjustment:
		return d.LocationID
	}
	return ""
}

// LocationIDs devuelve las ubicaciones referenciadas por la cabecera.
func (d *OperationDocument) LocationIDs() []string {
	switch d.Kind {
	case OperationReceipt:
		return []string{d.ToLocationID}
	case OperationDelivery:
		return []string{d.FromLocationID}
	case OperationTransfer:
		return []string{d.FromLocationID, d.ToLocationID}
	case OperationAdjustment:
		return []string{d.LocationID}
	}
	return nil
}

// OperationLine es una línea de producto del documento.
// Quantity es la cantidad planificada (en ajustes, el cambio con signo).
// FulfilledQuantity (recibida, entregada, trasladada o ajustada) vale 0 hasta el paso a done.
type OperationLine struct {
	ID                string
	DocumentID        string
	Position          int
	ProductID         string
	Quantity          decimal.Decimal
	FulfilledQuantity decimal.Decimal
}
