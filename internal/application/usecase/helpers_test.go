package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-productos/internal/application/dto"
	"github.com/jhoicas/catalogo-productos/internal/domain/entity"
	"github.com/jhoicas/catalogo-productos/internal/domain/repository"
	"github.com/jhoicas/catalogo-productos/internal/infrastructure/memory"
	"github.com/jhoicas/catalogo-productos/internal/infrastructure/storage"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	catChairs  = "11111111-1111-4111-8111-111111111111"
	catTables  = "22222222-2222-4222-8222-222222222222"
	catClosets = "33333333-3333-4333-8333-333333333333"
	catMissing = "99999999-9999-4999-8999-999999999999" // UUID válido sin categoría
)

// pngBytes cabecera PNG mínima; mimetype la detecta como image/png.
var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

var errBackend = errors.New("conexión perdida")

type fixture struct {
	products   *memory.ProductRepo
	categories *memory.CategoryRepo
	fs         afero.Fs
	images     *storage.AferoImageStore
}

func newFixture() *fixture {
	fs := afero.NewMemMapFs()
	categories := memory.NewCategoryRepository(
		&entity.Category{ID: catChairs, Name: "Krzesła"},
		&entity.Category{ID: catTables, Name: "Stoły"},
		&entity.Category{ID: catClosets, Name: "Szafy"},
	)
	return &fixture{
		products:   memory.NewProductRepository(),
		categories: categories,
		fs:         fs,
		images:     storage.NewAferoImageStore(fs, "/storage"),
	}
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func str(s string) *string { return &s }

func pngUpload() *dto.ImageUpload {
	return &dto.ImageUpload{Filename: "chair.png", Size: int64(len(pngBytes)), Content: bytes.NewReader(pngBytes)}
}

// addProduct inserta directamente en el repositorio, sin pasar por el caso de uso.
func addProduct(t *testing.T, repo repository.ProductRepository, p *entity.Product) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), p))
}

// countingDeleteRepo falla siempre en Delete y cuenta los intentos.
type countingDeleteRepo struct {
	repository.ProductRepository
	err   error
	calls int
}

func (r *countingDeleteRepo) Delete(_ context.Context, _ string) error {
	r.calls++
	return r.err
}

// failingImageStore rechaza toda escritura.
type failingImageStore struct {
	repository.ImageStore
}

func (failingImageStore) Store(context.Context, string, string, io.Reader) (string, error) {
	return "", errors.New("disco lleno")
}

func (failingImageStore) URL(path string) string { return "/storage/" + path }
