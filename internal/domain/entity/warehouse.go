package entity

import "time"

// Warehouse representa una bodega; es padre de las ubicaciones (Location).
type Warehouse struct {
	ID        string
	ShortCode string // único global; prefijo de las referencias de documentos
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
