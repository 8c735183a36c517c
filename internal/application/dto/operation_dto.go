package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationLineRequest línea de producto. En ajustes Quantity es el cambio con signo.
type OperationLineRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateOperationRequest body para POST /api/operations. Los campos de cabecera requeridos
// dependen de type:
//
//	receipt:    contact, to_location_id, schedule_date
//	delivery:   contact, from_location_id, delivery_address, schedule_date
//	transfer:   from_location_id, to_location_id, schedule_date
//	adjustment: location_id, reason
type CreateOperationRequest struct {
	Type            string                 `json:"type" validate:"required,oneof=receipt delivery transfer adjustment"`
	Contact         string                 `json:"contact" validate:"max=200"`
	FromLocationID  string                 `json:"from_location_id,omitempty" validate:"omitempty,uuid"`
	ToLocationID    string                 `json:"to_location_id,omitempty" validate:"omitempty,uuid"`
	LocationID      string                 `json:"location_id,omitempty" validate:"omitempty,uuid"`
	DeliveryAddress string                 `json:"delivery_address,omitempty" validate:"max=300"`
	ScheduleDate    *time.Time             `json:"schedule_date,omitempty"`
	Reason          string                 `json:"reason,omitempty" validate:"omitempty,oneof=damage loss found expired count_error other"`
	Responsible     string                 `json:"responsible,omitempty" validate:"max=200"`
	Lines           []OperationLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// ChangeStatusRequest body para PATCH /api/operations/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft waiting ready done canceled"`
}

// OperationLineResponse línea de un documento.
type OperationLineResponse struct {
	ID                string          `json:"id"`
	Position          int             `json:"position"`
	ProductID         string          `json:"product_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	FulfilledQuantity decimal.Decimal `json:"fulfilled_quantity"`
}

// OperationResponse salida de un documento de operación.
type OperationResponse struct {
	ID              string                  `json:"id"`
	Type            string                  `json:"type"`
	Reference       string                  `json:"reference"`
	Status          string                  `json:"status"`
	WarehouseID     string                  `json:"warehouse_id"`
	Contact         string                  `json:"contact,omitempty"`
	FromLocationID  string                  `json:"from_location_id,omitempty"`
	ToLocationID    string                  `json:"to_location_id,omitempty"`
	LocationID      string                  `json:"location_id,omitempty"`
	DeliveryAddress string                  `json:"delivery_address,omitempty"`
	ScheduleDate    *time.Time              `json:"schedule_date,omitempty"`
	Reason          string                  `json:"reason,omitempty"`
	Responsible     string                  `json:"responsible"`
	CreatedBy       string                  `json:"created_by"`
	Lines           []OperationLineResponse `json:"lines"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
	DoneAt          *time.Time              `json:"done_at,omitempty"`
}

// OperationListResponse lista paginada de documentos.
type OperationListResponse struct {
	Items []OperationResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
