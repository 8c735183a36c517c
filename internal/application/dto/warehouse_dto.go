package dto

import "time"

// CreateWarehouseRequest entrada para crear una bodega. ShortCode prefija las referencias de documentos.
type CreateWarehouseRequest struct {
	ShortCode string `json:"short_code" validate:"required,alphanum,min=1,max=10"`
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Address   string `json:"address" validate:"max=300"`
}

// UpdateWarehouseRequest entrada para actualizar una bodega (el código corto es inmutable).
type UpdateWarehouseRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address *string `json:"address" validate:"omitempty,max=300"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	ShortCode string    `json:"short_code"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WarehouseListResponse lista paginada de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// CreateLocationRequest entrada para crear una ubicación dentro de una bodega.
type CreateLocationRequest struct {
	ShortCode string `json:"short_code" validate:"required,min=1,max=20"`
	Name      string `json:"name" validate:"required,min=1,max=200"`
}

// UpdateLocationRequest entrada para renombrar una ubicación.
type UpdateLocationRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=200"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID          string    `json:"id"`
	WarehouseID string    `json:"warehouse_id"`
	ShortCode   string    `json:"short_code"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
