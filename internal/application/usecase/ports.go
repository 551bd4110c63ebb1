package usecase

import (
	"context"

	"github.com/jhoicas/catalogo-productos/internal/domain/entity"
)

// CatalogLine una fila del catálogo impreso.
type CatalogLine struct {
	Product      *entity.Product
	CategoryName string
}

// CatalogPDFGenerator puerto para generar el catálogo en PDF (implementado en infrastructure/pdf).
type CatalogPDFGenerator interface {
	GenerateCatalogPDF(ctx context.Context, title string, lines []CatalogLine) ([]byte, error)
}
