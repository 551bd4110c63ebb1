package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-productos/internal/application/usecase"
)

// CatalogHandler descarga del catálogo en PDF.
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// Download GET /products/catalog.pdf
func (h *CatalogHandler) Download(c *fiber.Ctx) error {
	pdf, err := h.uc.DownloadPDF(c.UserContext())
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="catalogo.pdf"`)
	return c.Send(pdf)
}
