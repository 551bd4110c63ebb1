// Package memory implementa los repositorios en memoria (modo DB_DRIVER=memory y tests).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/catalogo-productos/internal/domain"
	"github.com/jhoicas/catalogo-productos/internal/domain/entity"
	"github.com/jhoicas/catalogo-productos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo guarda copias de los productos en orden de inserción.
type ProductRepo struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*entity.Product
}

// NewProductRepository construye un repositorio vacío.
func NewProductRepository() *ProductRepo {
	return &ProductRepo{byID: make(map[string]*entity.Product)}
}

// Create persiste una copia del producto.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[product.ID]; ok {
		return domain.ErrInvalidInput
	}
	r.byID[product.ID] = clone(product)
	r.order = append(r.order, product.ID)
	return nil
}

// GetByID devuelve una copia; domain.ErrNotFound si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(p), nil
}

// Update reemplaza el producto guardado conservando CreatedAt.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.byID[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	p := clone(product)
	p.CreatedAt = old.CreatedAt
	r.byID[product.ID] = p
	return nil
}

// List página en orden de inserción.
func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*entity.Product, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, r.byID[id])
	}
	return page(all, limit, offset), nil
}

// Count total de productos.
func (r *ProductRepo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order), nil
}

// Search filtra, ordena y pagina igual que el adaptador PostgreSQL.
func (r *ProductRepo) Search(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cats := make(map[string]bool, len(f.CategoryIDs))
	for _, id := range f.CategoryIDs {
		cats[id] = true
	}
	var matched []*entity.Product
	for _, id := range r.order {
		p := r.byID[id]
		if len(cats) > 0 && !cats[p.CategoryID] {
			continue
		}
		if f.PriceMin != nil && p.Price.LessThan(*f.PriceMin) {
			continue
		}
		if f.PriceMax != nil && p.Price.GreaterThan(*f.PriceMax) {
			continue
		}
		matched = append(matched, p)
	}

	switch f.Sort {
	case repository.SortNameAsc:
		sort.SliceStable(matched, func(i, j int) bool { return strings.Compare(matched[i].Name, matched[j].Name) < 0 })
	case repository.SortNameDesc:
		sort.SliceStable(matched, func(i, j int) bool { return strings.Compare(matched[i].Name, matched[j].Name) > 0 })
	case repository.SortPriceAsc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price.LessThan(matched[j].Price) })
	case repository.SortPriceDesc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price.GreaterThan(matched[j].Price) })
	}
	return page(matched, f.Limit, f.Offset), len(matched), nil
}

// Delete elimina por ID; domain.ErrNotFound si no existía.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func page(list []*entity.Product, limit, offset int) []*entity.Product {
	out := make([]*entity.Product, 0)
	if offset < 0 || offset >= len(list) {
		return out
	}
	end := len(list)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}
	for _, p := range list[offset:end] {
		out = append(out, clone(p))
	}
	return out
}

func clone(p *entity.Product) *entity.Product {
	c := *p
	if p.ImagePath != nil {
		path := *p.ImagePath
		c.ImagePath = &path
	}
	return &c
}
