package usecase

import (
	"context"

	"github.com/jhoicas/catalogo-productos/internal/application/dto"
	"github.com/jhoicas/catalogo-productos/internal/domain/repository"
)

// CategoryUseCase lectura de categorías (la barra lateral de la tienda y los formularios).
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// ListAll devuelve todas las categorías.
func (uc *CategoryUseCase) ListAll(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toCategoryResponses(list), nil
}
