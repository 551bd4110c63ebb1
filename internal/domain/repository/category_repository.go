package repository

import (
	"context"

	"github.com/jhoicas/catalogo-productos/internal/domain/entity"
)

// CategoryRepository define el puerto de lectura para Category (DIP).
// GetByID devuelve domain.ErrNotFound si no existe.
type CategoryRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	ListAll(ctx context.Context) ([]*entity.Category, error)
}
