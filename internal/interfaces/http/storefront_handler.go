package http

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-productos/internal/application/dto"
	"github.com/jhoicas/catalogo-productos/internal/application/usecase"
	"github.com/jhoicas/catalogo-productos/internal/domain"
	"github.com/jhoicas/catalogo-productos/internal/domain/repository"
)

// storefrontSortLabels etiquetas del selector de orden, en el orden en que se muestran.
var storefrontSortLabels = []struct {
	Code  string
	Label string
}{
	{repository.SortDefault, "Domyślnie"},
	{repository.SortNameAsc, "Nazwa A-Z"},
	{repository.SortNameDesc, "Nazwa Z-A"},
	{repository.SortPriceAsc, "Cena rosnąco"},
	{repository.SortPriceDesc, "Cena malejąco"},
}

type sortOption struct {
	Code     string
	Label    string
	Selected bool
}

type perPageOption struct {
	Value    int
	Selected bool
}

type categoryOption struct {
	ID      string
	Name    string
	Checked bool
}

// StorefrontHandler API JSON pública que alimenta la vista de la tienda (orden, filtros, por página).
type StorefrontHandler struct {
	products   *usecase.ProductUseCase
	storefront *usecase.StorefrontUseCase
	categories *usecase.CategoryUseCase
}

// NewStorefrontHandler construye el handler.
func NewStorefrontHandler(products *usecase.ProductUseCase, storefront *usecase.StorefrontUseCase, categories *usecase.CategoryUseCase) *StorefrontHandler {
	return &StorefrontHandler{products: products, storefront: storefront, categories: categories}
}

// List godoc
// @Summary      Listado de la tienda
// @Tags         storefront
// @Produce      json
// @Param        page        query  int     false  "Página"                       default(1)
// @Param        per_page    query  int     false  "Por página (6, 9, 12, 15)"    default(9)
// @Param        sort        query  string  false  "D, NA, ND, PA, PD"            default(D)
// @Param        categories  query  string  false  "IDs de categoría separados por coma"
// @Param        price_min   query  number  false  "Precio mínimo"
// @Param        price_max   query  number  false  "Precio máximo"
// @Success      200  {object}  dto.StorefrontResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *StorefrontHandler) List(c *fiber.Ctx) error {
	q, err := storefrontQuery(c)
	if err != nil {
		return err
	}
	out, err := h.storefront.Search(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Home página de la tienda: tarjetas de productos, orden, productos por página y filtros
// de categoría y precio. Los controles viajan como query params del formulario GET.
func (h *StorefrontHandler) Home(c *fiber.Ctx) error {
	q, err := storefrontQuery(c)
	if err != nil {
		return err
	}
	out, err := h.storefront.Search(c.UserContext(), q)
	if err != nil {
		return err
	}
	cats, err := h.categories.ListAll(c.UserContext())
	if err != nil {
		return err
	}

	sorts := make([]sortOption, 0, len(storefrontSortLabels))
	current := storefrontSortLabels[0].Label
	for _, s := range storefrontSortLabels {
		sorts = append(sorts, sortOption{Code: s.Code, Label: s.Label, Selected: s.Code == out.Sort})
		if s.Code == out.Sort {
			current = s.Label
		}
	}
	perPage := make([]perPageOption, 0, len(usecase.StorefrontPerPageOptions))
	for _, n := range usecase.StorefrontPerPageOptions {
		perPage = append(perPage, perPageOption{Value: n, Selected: n == out.Page.PerPage})
	}
	selected := make(map[string]bool, len(q.CategoryIDs))
	for _, id := range q.CategoryIDs {
		selected[id] = true
	}
	categories := make([]categoryOption, 0, len(cats))
	for _, cat := range cats {
		categories = append(categories, categoryOption{ID: cat.ID, Name: cat.Name, Checked: selected[cat.ID]})
	}

	return c.Render("storefront/index", fiber.Map{
		"Title":       "Sklep",
		"Result":      out,
		"Sorts":       sorts,
		"CurrentSort": current,
		"PerPage":     perPage,
		"Categories":  categories,
		"PriceMin":    decimalParam(q.PriceMin),
		"PriceMax":    decimalParam(q.PriceMax),
		"PrevURL":     storefrontPageURL(c, out.Page.PrevPage()),
		"NextURL":     storefrontPageURL(c, out.Page.NextPage()),
	}, ViewLayout)
}

// storefrontQuery lee los filtros de la tienda; acepta las claves cortas y las del formulario.
func storefrontQuery(c *fiber.Ctx) (dto.StorefrontQuery, error) {
	q := dto.StorefrontQuery{
		Page:        c.QueryInt("page", 1),
		PerPage:     c.QueryInt("per_page", usecase.DefaultStorefrontPerPage),
		Sort:        strings.ToUpper(strings.TrimSpace(c.Query("sort"))),
		CategoryIDs: queryList(c, "categories", "categories[]", "filter[categories][]"),
	}
	var err error
	if q.PriceMin, err = queryDecimal(c, "price_min", "filter[price_min]"); err != nil {
		return q, err
	}
	if q.PriceMax, err = queryDecimal(c, "price_max", "filter[price_max]"); err != nil {
		return q, err
	}
	return q, nil
}

// storefrontPageURL la misma búsqueda en otra página.
func storefrontPageURL(c *fiber.Ctx, page int) string {
	values, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		values = url.Values{}
	}
	values.Set("page", strconv.Itoa(page))
	return "/?" + values.Encode()
}

func decimalParam(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         storefront
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *StorefrontHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.products.Show(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Listar categorías
// @Tags         storefront
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *StorefrontHandler) Categories(c *fiber.Ctx) error {
	out, err := h.categories.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// queryList junta los valores de varias claves de query (repetidas o separadas por coma).
func queryList(c *fiber.Ctx, keys ...string) []string {
	var out []string
	args := c.Context().QueryArgs()
	for _, key := range keys {
		for _, raw := range args.PeekMulti(key) {
			for _, v := range strings.Split(string(raw), ",") {
				if v = strings.TrimSpace(v); v != "" {
					out = append(out, v)
				}
			}
		}
	}
	return out
}

// queryDecimal primer valor presente entre las claves; nil si ninguna vino o vino vacía.
func queryDecimal(c *fiber.Ctx, keys ...string) (*decimal.Decimal, error) {
	for _, key := range keys {
		raw := strings.TrimSpace(c.Query(key))
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
		if err != nil {
			return nil, fmt.Errorf("%w: %s no es un número válido", domain.ErrInvalidInput, key)
		}
		if d.IsNegative() {
			return nil, fmt.Errorf("%w: %s no puede ser negativo", domain.ErrInvalidInput, key)
		}
		return &d, nil
	}
	return nil, nil
}
