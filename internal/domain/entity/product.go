package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// ImagePath es nil si nunca se subió una imagen; si no, apunta a un blob bajo el prefijo "products".
type Product struct {
	ID         string
	Name       string
	Price      decimal.Decimal
	CategoryID string
	ImagePath  *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasImage indica si el producto tiene una imagen asociada.
func (p *Product) HasImage() bool {
	return p.ImagePath != nil && *p.ImagePath != ""
}
