package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-productos/internal/application/dto"
	"github.com/jhoicas/catalogo-productos/internal/application/usecase"
	"github.com/jhoicas/catalogo-productos/internal/domain/entity"
	"github.com/jhoicas/catalogo-productos/internal/domain/repository"
	"github.com/jhoicas/catalogo-productos/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/catalogo-productos/internal/infrastructure/pdf"
	"github.com/jhoicas/catalogo-productos/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/catalogo-productos/internal/interfaces/http"
	"github.com/jhoicas/catalogo-productos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	catChairs = "11111111-1111-4111-8111-111111111111"
	catTables = "22222222-2222-4222-8222-222222222222"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type testEnv struct {
	app      *fiber.App
	products *memory.ProductRepo
	fs       afero.Fs
}

// countingDeleteRepo falla siempre en Delete y cuenta los intentos.
type countingDeleteRepo struct {
	repository.ProductRepository
	calls int
}

func (r *countingDeleteRepo) Delete(context.Context, string) error {
	r.calls++
	return errors.New("conexión perdida con la base de datos")
}

// buildTestApp construye la app completa sobre repositorios en memoria y un MemMapFs.
// wrap permite sustituir el repositorio de productos (p. ej. para inyectar fallos).
func buildTestApp(t *testing.T, wrap func(repository.ProductRepository) repository.ProductRepository) *testEnv {
	t.Helper()
	products := memory.NewProductRepository()
	categories := memory.NewCategoryRepository(
		&entity.Category{ID: catChairs, Name: "Krzesła"},
		&entity.Category{ID: catTables, Name: "Stoły"},
	)
	fs := afero.NewMemMapFs()
	images := storage.NewAferoImageStore(fs, "/storage")

	var repo repository.ProductRepository = products
	if wrap != nil {
		repo = wrap(products)
	}
	app := apphttp.NewApp(apphttp.AppConfig{
		Name:             "catalogo-test",
		BodyLimit:        4 * 1024 * 1024,
		StorageURLPrefix: "/storage",
		View:             apphttp.ViewOptions{Locale: "en", Currency: "PLN", DefaultImage: "/static/no-image.svg"},
	}, apphttp.RouterDeps{
		ProductUC:    usecase.NewProductUseCase(repo, categories, images),
		StorefrontUC: usecase.NewStorefrontUseCase(repo, categories, images),
		CategoryUC:   usecase.NewCategoryUseCase(categories),
		CatalogUC:    usecase.NewCatalogUseCase(repo, categories, infrapdf.NewMarotoCatalogGenerator("PLN"), "Katalog"),
		Images:       images,
		Log:          logger.Nop(),
	})
	return &testEnv{app: app, products: products, fs: fs}
}

func (e *testEnv) seed(t *testing.T, id, name, price, category string) {
	t.Helper()
	require.NoError(t, e.products.Create(context.Background(), &entity.Product{
		ID:         id,
		Name:       name,
		Price:      decimal.RequireFromString(price),
		CategoryID: category,
	}))
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return req
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, image []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if image != nil {
		part, err := w.CreateFormFile("image", "chair.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

func onlyProduct(t *testing.T, repo *memory.ProductRepo) *entity.Product {
	t.Helper()
	list, err := repo.List(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	return list[0]
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado y formularios
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	env := buildTestApp(t, nil)
	resp, body := doRequest(t, env.app, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","service":"catalogo-test"}`, body)
}

func TestIndex_MuestraProductosConPrecioFormateado(t *testing.T) {
	env := buildTestApp(t, nil)
	env.seed(t, "p1", "Chair", "1234.5", catChairs)

	resp, body := doRequest(t, env.app, httptest.NewRequest(http.MethodGet, "/products", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Chair")
	assert.Contains(t, body, "1,234.50 PLN")
	assert.Contains(t, body, "/static/no-image.svg")
	assert.Contains(t, body, "/products/p1/edit")
}

func TestIndex_PaginaMasAllaDeLaUltima(t *testing.T) {
	env := buildTestApp(t, nil)
	env.seed(t, "p1", "Chair", "10", catChairs)

	resp, body := doRequest(t, env.app, httptest.NewRequest(http.MethodGet, "/products?page=5", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "/products/p1/edit")
	assert.Contains(t, body, "Brak produktów.")
}

// Una página desbordada se trata como una página vacía, no como un 500.
func TestIndex_PaginaEnorme(t *testing.T) {
	env := buildTestApp(t, nil)
	env.seed(t, "p1", "Chair", "10", catChairs)

	resp, body := doRequest(t, env.app, httptest.NewRequest(http.MethodGet, "/products?page=1000000000000000000", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Brak produktów.")
}

func TestCreate_FormularioConCategorias(t *testing.T) {
	env := buildTestApp(t, nil)
	resp, body := doRequest(t, env.app, httptest.NewRequest(http.MethodGet, "/products/create", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `value="`+catChairs+`"`)
	assert.Contains(t, body, "Stoły")
}

// ──────────────────────────────────────────────────────────────────────────────
// Store
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_MultipartConImagen(t *testing.T) {
	env := buildTestApp(t, nil)
	req := multipartRequest(t, http.MethodPost, "/products", map[string]string{
		"name":        "Chair",
		"price":       "49.99",
		"category_id": catChairs,
	}, pngBytes)

	resp, _ := doRequest(t, env.app, req)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/products", resp.Header.Get(fiber.HeaderLocation))

	p := onlyProduct(t, env.products)
	assert.Equal(t, "Chair", p.Name)
	assert.Equal(t, "49.99", p.Price.StringFixed(2))
	require.NotNil(t, p.ImagePath)
	assert.True(t, strings.HasPrefix(*p.ImagePath, "products/"))

	// La imagen se sirve bajo el prefijo público.
	resp, body := doRequest(t, env.app, httptest.NewRequest(http.MethodGet, "/storage/"+*p.ImagePath, nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, string(pngBytes), body)
}

func TestStore_UrlencodedSinImagen(t *testing.T) {
	env := buildTestApp(t, nil)
	req := formRequest(http.MethodPost, "/products", url.Values{
		"name":        {"Chair"},
		"price":       {"49,99"},
		"category_id": {catChairs},
	})

	resp, _ := doRequest(t, env.app, req)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)

	p := onlyProduct(t, env.products)
	assert.Nil(t, p.ImagePath)
	assert.Equal(t, "49.99", p.Price.StringFixed(2))
}

func TestStore_EntradaInvalida_Pagina400(t *testing.T) {
	env := buildTestApp(t, nil)
	req := formRequest(http.MethodPost, "/products", url.Values{
		"name":        {"Chair"},
		"price":       {"-3"},
		"category_id": {catChairs},
	})

	resp, body := doRequest(t, env.app, req)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "price")
	n, _ := env.products.Count(context.Background())
	assert.Zero(t, n)
}

func TestStore_ArchivoQueNoEsImagen(t *testing.T) {
	env := buildTestApp(t, nil)
	req := multipartRequest(t, http.MethodPost, "/products", map[string]string{
		"name":        "Chair",
		"price":       "10",
		"category_id": catChairs,
	}, []byte("texto plano"))

	resp, _ := doRequest(t, env.app, req)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Show / Edit / Update
// ──────────────────────────────────────────────────────────────────────────────

func TestShow(t *testing.T) {
	env := buildTestApp(t, nil)
	env.seed(t, "p1", "Stół", "300", catTables)

	resp, body := doRequest(t, env.app, httptest.NewRequest(http.MethodGet, "/products/p1", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Stół")
	assert.Contains(t, body, "Kategoria: Stoły")
	assert.Contains(t, body, "300.00 PLN")
}

func TestShow_NotFound(t *testing.T) {
	env := buildTestApp(t, nil)

	resp, _ := doRequest(t, env.app, httptest.NewRequest(http.MethodGet, "/products/no-existe", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, env.app, httptest.NewRequest(http.MethodGet, "/products/no-existe/edit", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestEdit_FormularioPrecargado(t *testing.T) {
	env := buildTestApp(t, nil)
	env.seed(t, "p1", "Chair", "49.9", catTables)

	resp, body := doRequest(t, env.app, httptest.NewRequest(http.MethodGet, "/products/p1/edit", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `value="Chair"`)
	assert.Contains(t, body, `value="49.90"`)
	assert.Contains(t, body, `value="`+catTables+`" selected`)
}

// Solo cambia el precio; nombre, categoría e imagen quedan igual.
func TestUpdate_FormularioCampoParcial(t *testing.T) {
	env := buildTestApp(t, nil)
	img := "products/old.png"
	require.NoError(t, env.products.Create(context.Background(), &entity.Product{
		ID: "p1", Name: "Chair", Price: decimal.RequireFromString("49.99"), CategoryID: catChairs, ImagePath: &img,
	}))

	resp, _ := doRequest(t, env.app, formRequest(http.MethodPost, "/products/p1", url.Values{"price": {"39.50"}}))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/products", resp.Header.Get(fiber.HeaderLocation))

	p := onlyProduct(t, env.products)
	assert.Equal(t, "Chair", p.Name)
	assert.Equal(t, "39.50", p.Price.StringFixed(2))
	assert.Equal(t, catChairs, p.CategoryID)
	require.NotNil(t, p.ImagePath)
	assert.Equal(t, img, *p.ImagePath)
}

func TestUpdate_PutJSON(t *testing.T) {
	env := buildTestApp(t, nil)
	env.seed(t, "p1", "Chair", "49.99", catChairs)

	req := httptest.NewRequest(http.MethodPut, "/products/p1", strings.NewReader(`{"name":"Armchair","category_id":"`+catTables+`"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, _ := doRequest(t, env.app, req)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)

	p := onlyProduct(t, env.products)
	assert.Equal(t, "Armchair", p.Name)
	assert.Equal(t, catTables, p.CategoryID)
	assert.Equal(t, "49.99", p.Price.StringFixed(2))
}

func TestUpdate_PatchConImagenNueva(t *testing.T) {
	env := buildTestApp(t, nil)
	env.seed(t, "p1", "Chair", "49.99", catChairs)

	resp, _ := doRequest(t, env.app, multipartRequest(t, http.MethodPatch, "/products/p1", nil, pngBytes))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)

	p := onlyProduct(t, env.products)
	require.NotNil(t, p.ImagePath)
	exists, err := afero.Exists(env.fs, *p.ImagePath)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "Chair", p.Name)
}

func TestUpdate_NotFound(t *testing.T) {
	env := buildTestApp(t, nil)
	resp, _ := doRequest(t, env.app, formRequest(http.MethodPut, "/products/no-existe", url.Values{"name": {"X"}}))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// Un id desconocido es 404 aunque la entrada también sea inválida.
func TestUpdate_NotFound_AntesQueValidacion(t *testing.T) {
	env := buildTestApp(t, nil)
	resp, _ := doRequest(t, env.app, formRequest(http.MethodPut, "/products/no-existe", url.Values{"price": {"-3"}}))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, env.app, formRequest(http.MethodPut, "/products/no-existe", url.Values{"name": {" "}}))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// Un multipart sin boundary no se puede leer: 400 y el producto queda igual.
func TestUpdate_MultipartMalformado_400(t *testing.T) {
	env := buildTestApp(t, nil)
	env.seed(t, "p1", "Chair", "49.99", catChairs)

	req := httptest.NewRequest(http.MethodPut, "/products/p1", strings.NewReader("name=Renamed&price=1"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEMultipartForm)
	resp, body := doRequest(t, env.app, req)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "formulario inválido")

	p := onlyProduct(t, env.products)
	assert.Equal(t, "Chair", p.Name)
	assert.Equal(t, "49.99", p.Price.StringFixed(2))
}

func TestStore_MultipartMalformado_400(t *testing.T) {
	env := buildTestApp(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader("name=Chair&price=1&category_id="+catChairs))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEMultipartForm)
	resp, _ := doRequest(t, env.app, req)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	n, _ := env.products.Count(context.Background())
	assert.Zero(t, n)
}

// Un precio que no cabe en la columna es entrada inválida.
func TestStore_PrecioDemasiadoGrande_400(t *testing.T) {
	env := buildTestApp(t, nil)
	req := formRequest(http.MethodPost, "/products", url.Values{
		"name":        {"Chair"},
		"price":       {"10000000000"},
		"category_id": {catChairs},
	})
	resp, _ := doRequest(t, env.app, req)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	n, _ := env.products.Count(context.Background())
	assert.Zero(t, n)
}

// ──────────────────────────────────────────────────────────────────────────────
// Destroy
// ──────────────────────────────────────────────────────────────────────────────

func decodeStatus(t *testing.T, body string) dto.StatusResponse {
	t.Helper()
	var out dto.StatusResponse
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	return out
}

func TestDestroy_Exitoso(t *testing.T) {
	env := buildTestApp(t, nil)
	env.seed(t, "p1", "Chair", "49.99", catChairs)

	resp, body := doRequest(t, env.app, httptest.NewRequest(http.MethodDelete, "/products/p1", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"success"}`, body)

	n, _ := env.products.Count(context.Background())
	assert.Zero(t, n)
}

func TestDestroy_NoExiste_404ConPayloadDeError(t *testing.T) {
	env := buildTestApp(t, nil)

	resp, body := doRequest(t, env.app, httptest.NewRequest(http.MethodDelete, "/products/no-existe", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	out := decodeStatus(t, body)
	assert.Equal(t, "error", out.Status)
	assert.Equal(t, apphttp.DeleteErrorMessage, out.Message)
}

// El backend falla: un solo intento, 500 y mensaje genérico sin el detalle del error.
func TestDestroy_BackendFalla_UnSoloIntento(t *testing.T) {
	var failing *countingDeleteRepo
	env := buildTestApp(t, func(r repository.ProductRepository) repository.ProductRepository {
		failing = &countingDeleteRepo{ProductRepository: r}
		return failing
	})
	env.seed(t, "p1", "Chair", "49.99", catChairs)

	resp, body := doRequest(t, env.app, httptest.NewRequest(http.MethodDelete, "/products/p1", nil))
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"status":"error","message":"Error occured!"}`, body)
	assert.NotContains(t, body, "conexión")
	assert.Equal(t, 1, failing.calls)

	n, _ := env.products.Count(context.Background())
	assert.Equal(t, 1, n)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogPDF(t *testing.T) {
	env := buildTestApp(t, nil)
	env.seed(t, "p1", "Chair", "49.99", catChairs)

	resp, body := doRequest(t, env.app, httptest.NewRequest(http.MethodGet, "/products/catalog.pdf", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.True(t, strings.HasPrefix(body, "%PDF"))
}
