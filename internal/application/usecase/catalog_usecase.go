package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalogo-productos/internal/domain/repository"
)

// catalogBatch filas leídas por consulta al recorrer todo el catálogo.
const catalogBatch = 200

// CatalogUseCase exporta el catálogo completo a PDF.
type CatalogUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	generator  CatalogPDFGenerator
	title      string
}

// NewCatalogUseCase construye el caso de uso. title se imprime en la cabecera del documento.
func NewCatalogUseCase(repo repository.ProductRepository, categories repository.CategoryRepository, generator CatalogPDFGenerator, title string) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, categories: categories, generator: generator, title: title}
}

// DownloadPDF recorre todos los productos en el orden por defecto y genera el PDF.
func (uc *CatalogUseCase) DownloadPDF(ctx context.Context) ([]byte, error) {
	categories, err := uc.categories.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("catálogo: listar categorías: %w", err)
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	var lines []CatalogLine
	for offset := 0; ; offset += catalogBatch {
		batch, err := uc.repo.List(ctx, catalogBatch, offset)
		if err != nil {
			return nil, fmt.Errorf("catálogo: listar productos: %w", err)
		}
		for _, p := range batch {
			lines = append(lines, CatalogLine{Product: p, CategoryName: names[p.CategoryID]})
		}
		if len(batch) < catalogBatch {
			break
		}
	}
	return uc.generator.GenerateCatalogPDF(ctx, uc.title, lines)
}
