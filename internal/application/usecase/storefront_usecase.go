package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalogo-productos/internal/application/dto"
	"github.com/jhoicas/catalogo-productos/internal/domain"
	"github.com/jhoicas/catalogo-productos/internal/domain/repository"
)

// DefaultStorefrontPerPage tamaño de página por defecto de la tienda.
const DefaultStorefrontPerPage = 9

// StorefrontPerPageOptions tamaños de página que ofrece la vista de la tienda.
var StorefrontPerPageOptions = []int{6, 9, 12, 15}

var storefrontSorts = map[string]bool{
	repository.SortDefault:   true,
	repository.SortNameAsc:   true,
	repository.SortNameDesc:  true,
	repository.SortPriceAsc:  true,
	repository.SortPriceDesc: true,
}

// StorefrontUseCase listado público con orden, filtro por categorías y rango de precio.
type StorefrontUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	images     repository.ImageStore
}

// NewStorefrontUseCase construye el caso de uso.
func NewStorefrontUseCase(repo repository.ProductRepository, categories repository.CategoryRepository, images repository.ImageStore) *StorefrontUseCase {
	return &StorefrontUseCase{repo: repo, categories: categories, images: images}
}

// Search aplica los filtros de la tienda. Valores de per_page u orden desconocidos vuelven al valor
// por defecto; un rango de precio invertido es domain.ErrInvalidInput.
func (uc *StorefrontUseCase) Search(ctx context.Context, q dto.StorefrontQuery) (*dto.StorefrontResponse, error) {
	q = normalizeStorefrontQuery(q)
	if q.PriceMin != nil && q.PriceMax != nil && q.PriceMin.GreaterThan(*q.PriceMax) {
		return nil, fmt.Errorf("%w: price_min mayor que price_max", domain.ErrInvalidInput)
	}
	list, total, err := uc.repo.Search(ctx, repository.ProductFilter{
		CategoryIDs: q.CategoryIDs,
		PriceMin:    q.PriceMin,
		PriceMax:    q.PriceMax,
		Sort:        q.Sort,
		Limit:       q.PerPage,
		Offset:      dto.Offset(q.Page, q.PerPage),
	})
	if err != nil {
		return nil, err
	}
	categories, err := uc.categories.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, categories, uc.images))
	}
	return &dto.StorefrontResponse{
		Items:        items,
		ResultsCount: total,
		Sort:         q.Sort,
		Page:         dto.NewPageResponse(q.Page, q.PerPage, total),
	}, nil
}

func normalizeStorefrontQuery(q dto.StorefrontQuery) dto.StorefrontQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	valid := false
	for _, n := range StorefrontPerPageOptions {
		if q.PerPage == n {
			valid = true
			break
		}
	}
	if !valid {
		q.PerPage = DefaultStorefrontPerPage
	}
	if !storefrontSorts[q.Sort] {
		q.Sort = repository.SortDefault
	}
	ids := make([]string, 0, len(q.CategoryIDs))
	seen := make(map[string]bool, len(q.CategoryIDs))
	for _, id := range q.CategoryIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	q.CategoryIDs = ids
	return q
}
