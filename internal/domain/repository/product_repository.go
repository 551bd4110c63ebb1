package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-productos/internal/domain/entity"
)

// Orden del listado público (códigos usados por la vista de la tienda).
const (
	SortDefault   = "D"
	SortNameAsc   = "NA"
	SortNameDesc  = "ND"
	SortPriceAsc  = "PA"
	SortPriceDesc = "PD"
)

// ProductFilter criterios del listado público. Campos vacíos/nil no filtran.
type ProductFilter struct {
	CategoryIDs []string
	PriceMin    *decimal.Decimal
	PriceMax    *decimal.Decimal
	Sort        string
	Limit       int
	Offset      int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y Delete devuelven domain.ErrNotFound si el id no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Count(ctx context.Context) (int, error)
	Search(ctx context.Context, filter ProductFilter) ([]*entity.Product, int, error)
	Delete(ctx context.Context, id string) error
}
