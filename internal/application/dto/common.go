package dto

import "math"

// PageResponse metadatos de página en respuestas paginadas (paginación por número de página).
type PageResponse struct {
	Page     int `json:"page"`
	PerPage  int `json:"per_page"`
	Total    int `json:"total"`
	LastPage int `json:"last_page"`
}

// NewPageResponse calcula LastPage a partir del total. Sin resultados LastPage es 1.
func NewPageResponse(page, perPage, total int) PageResponse {
	last := 1
	if perPage > 0 && total > 0 {
		last = (total + perPage - 1) / perPage
	}
	return PageResponse{Page: page, PerPage: perPage, Total: total, LastPage: last}
}

// HasPrev indica si existe una página anterior.
func (p PageResponse) HasPrev() bool { return p.Page > 1 }

// HasNext indica si existe una página siguiente.
func (p PageResponse) HasNext() bool { return p.Page < p.LastPage }

// PrevPage número de la página anterior.
func (p PageResponse) PrevPage() int { return p.Page - 1 }

// NextPage número de la página siguiente.
func (p PageResponse) NextPage() int { return p.Page + 1 }

// Offset devuelve el desplazamiento SQL para page/perPage (page se normaliza a >= 1).
// Si el producto desborda int se satura en math.MaxInt: la página queda vacía.
func Offset(page, perPage int) int {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/perPage {
		return math.MaxInt
	}
	return (page - 1) * perPage
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusResponse cuerpo de las respuestas de estado (DELETE).
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
