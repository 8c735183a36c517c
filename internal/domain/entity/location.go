package entity

import "time"

// Location es una ubicación física dentro de una bodega. El stock siempre se registra contra una Location.
// (WarehouseID, ShortCode) es único.
type Location struct {
	ID          string
	WarehouseID string
	ShortCode   string
	Name        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
