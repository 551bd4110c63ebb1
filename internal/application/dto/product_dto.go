package dto

import (
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name       string           `json:"name" validate:"required,min=1,max=200"`
	Price      *decimal.Decimal `json:"price" validate:"required,price"`
	CategoryID string           `json:"category_id" validate:"required,uuid"`
}

// UpdateProductRequest entrada para actualizar un producto. Solo se aplican los campos no nil.
type UpdateProductRequest struct {
	Name       *string          `json:"name" validate:"omitnil,min=1,max=200"`
	Price      *decimal.Decimal `json:"price" validate:"omitnil,price"`
	CategoryID *string          `json:"category_id" validate:"omitnil,uuid"`
}

// ImageUpload archivo de imagen adjunto a un create/update. Un *ImageUpload nil significa "sin archivo".
type ImageUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	ImagePath    *string         `json:"image_path"`
	ImageURL     *string         `json:"image_url"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos (listado de administración, 10 por página).
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductDetailResponse contexto de las vistas show/edit: el producto y todas las categorías.
type ProductDetailResponse struct {
	Product    ProductResponse    `json:"product"`
	Categories []CategoryResponse `json:"categories"`
}

// StorefrontQuery filtros del listado de la tienda (ordenar, por página, categorías, rango de precio).
type StorefrontQuery struct {
	Page        int
	PerPage     int
	Sort        string
	CategoryIDs []string
	PriceMin    *decimal.Decimal
	PriceMax    *decimal.Decimal
}

// StorefrontResponse resultado del listado de la tienda.
type StorefrontResponse struct {
	Items        []ProductResponse `json:"items"`
	ResultsCount int               `json:"results_count"`
	Sort         string            `json:"sort"`
	Page         PageResponse      `json:"page"`
}
