package entity

import "time"

// Category representa una categoría de productos. Solo lectura desde este servicio.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
