package dto

// PageRequest paginación para listados (limit/skip).
type PageRequest struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=500"`
	Skip  int `query:"skip" validate:"omitempty,min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Skip son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Skip < 0 {
		p.Skip = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit int `json:"limit"`
	Skip  int `json:"skip"`
	Total int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}
