package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/catalogo-productos/internal/domain"
	"github.com/jhoicas/catalogo-productos/internal/domain/entity"
	"github.com/jhoicas/catalogo-productos/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo categorías en memoria, de solo lectura tras construirse.
type CategoryRepo struct {
	mu   sync.RWMutex
	byID map[string]*entity.Category
}

// NewCategoryRepository construye el repositorio con las categorías dadas.
func NewCategoryRepository(categories ...*entity.Category) *CategoryRepo {
	r := &CategoryRepo{byID: make(map[string]*entity.Category, len(categories))}
	for _, c := range categories {
		cp := *c
		r.byID[c.ID] = &cp
	}
	return r
}

// GetByID obtiene una categoría; domain.ErrNotFound si no existe.
func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

// ListAll todas las categorías ordenadas por nombre.
func (r *CategoryRepo) ListAll(_ context.Context) ([]*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Category, 0, len(r.byID))
	for _, c := range r.byID {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// DefaultCategories categorías de ejemplo para el modo en memoria. IDs fijos para que los
// enlaces sigan siendo válidos entre reinicios.
func DefaultCategories() []*entity.Category {
	now := time.Now()
	names := []struct{ id, name string }{
		{"3f6c1d2e-0000-4000-8000-000000000001", "Krzesła"},
		{"3f6c1d2e-0000-4000-8000-000000000002", "Stoły"},
		{"3f6c1d2e-0000-4000-8000-000000000003", "Szafy"},
	}
	out := make([]*entity.Category, 0, len(names))
	for _, n := range names {
		out = append(out, &entity.Category{ID: n.id, Name: n.name, CreatedAt: now})
	}
	return out
}
