package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-productos/internal/application/dto"
	"github.com/jhoicas/catalogo-productos/internal/application/usecase"
	"github.com/jhoicas/catalogo-productos/internal/domain"
	"github.com/jhoicas/catalogo-productos/pkg/logger"
)

// DeleteErrorMessage mensaje genérico de la respuesta de error del borrado.
const DeleteErrorMessage = "Error occured!"

// ProductHandler maneja las vistas HTML de administración de productos.
// Los errores de Create/Update/Show/Edit se propagan al ErrorHandler; Delete responde siempre JSON.
type ProductHandler struct {
	uc  *usecase.ProductUseCase
	log *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: log}
}

// productForm datos que consume la plantilla products/_form.
type productForm struct {
	Name       string
	Price      string
	CategoryID string
	Categories []dto.CategoryResponse
}

// Index GET /products?page=N
func (h *ProductHandler) Index(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.QueryInt("page", 1))
	if err != nil {
		return err
	}
	return c.Render("products/index", fiber.Map{
		"Title":    "Produkty",
		"Products": out,
	}, ViewLayout)
}

// Create GET /products/create
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	categories, err := h.uc.PrepareCreate(c.UserContext())
	if err != nil {
		return err
	}
	return c.Render("products/create", fiber.Map{
		"Title": "Nowy produkt",
		"Form":  productForm{Categories: categories},
	}, ViewLayout)
}

// Store POST /products
func (h *ProductHandler) Store(c *fiber.Ctx) error {
	body, err := readProductBody(c)
	if err != nil {
		return err
	}
	in, err := body.createRequest()
	if err != nil {
		return err
	}
	image, closer, err := body.image()
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	out, err := h.uc.Create(c.UserContext(), in, image)
	if err != nil {
		return err
	}
	h.log.Info().Str("product_id", out.ID).Bool("image", out.ImagePath != nil).Msg("producto creado")
	return c.Redirect("/products", fiber.StatusFound)
}

// Show GET /products/:id
func (h *ProductHandler) Show(c *fiber.Ctx) error {
	out, err := h.uc.Show(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Render("products/show", fiber.Map{
		"Title":      out.Product.Name,
		"Product":    out.Product,
		"Categories": out.Categories,
	}, ViewLayout)
}

// Edit GET /products/:id/edit
func (h *ProductHandler) Edit(c *fiber.Ctx) error {
	out, err := h.uc.PrepareEdit(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Render("products/edit", fiber.Map{
		"Title":   out.Product.Name,
		"Product": out.Product,
		"Form": productForm{
			Name:       out.Product.Name,
			Price:      out.Product.Price.StringFixed(2),
			CategoryID: out.Product.CategoryID,
			Categories: out.Categories,
		},
	}, ViewLayout)
}

// Update PUT|PATCH|POST /products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	body, err := readProductBody(c)
	if err != nil {
		return err
	}
	in, err := body.updateRequest()
	if err != nil {
		return err
	}
	image, closer, err := body.image()
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in, image)
	if err != nil {
		return err
	}
	h.log.Info().Str("product_id", out.ID).Bool("new_image", image != nil).Msg("producto actualizado")
	return c.Redirect("/products", fiber.StatusFound)
}

// Destroy godoc
// @Summary      Eliminar producto
// @Description  Un único intento de borrado; el detalle del error solo va al log.
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.StatusResponse
// @Failure      404  {object}  dto.StatusResponse
// @Failure      500  {object}  dto.StatusResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Destroy(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, domain.ErrNotFound) {
			status = fiber.StatusNotFound
		}
		h.log.Error().Err(err).Str("product_id", id).Int("status", status).Msg("borrado de producto fallido")
		return c.Status(status).JSON(dto.StatusResponse{Status: "error", Message: DeleteErrorMessage})
	}
	h.log.Info().Str("product_id", id).Msg("producto eliminado")
	return c.JSON(dto.StatusResponse{Status: "success"})
}
