package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/jhoicas/catalogo-productos/internal/application/dto"
	"github.com/jhoicas/catalogo-productos/internal/application/validation"
	"github.com/jhoicas/catalogo-productos/internal/domain"
	"github.com/jhoicas/catalogo-productos/internal/domain/entity"
	"github.com/jhoicas/catalogo-productos/internal/domain/repository"
)

// PerPage tamaño fijo de página del listado de administración.
const PerPage = 10

// ImagePrefix espacio de nombres de las imágenes de producto en el ImageStore.
const ImagePrefix = "products"

// ProductUseCase casos de uso CRUD para productos (listado, alta, detalle, edición, baja).
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	images     repository.ImageStore
	now        func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository, images repository.ImageStore) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories, images: images, now: time.Now}
}

// List devuelve la página solicitada (10 por página, orden por defecto del repositorio).
// Una página posterior a la última devuelve Items vacío.
func (uc *ProductUseCase) List(ctx context.Context, page int) (*dto.ProductListResponse, error) {
	if page < 1 {
		page = 1
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, PerPage, dto.Offset(page, PerPage))
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *uc.toProductResponse(p, nil))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.NewPageResponse(page, PerPage, total),
	}, nil
}

// PrepareCreate devuelve todas las categorías para el formulario de alta.
func (uc *ProductUseCase) PrepareCreate(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.categories.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toCategoryResponses(list), nil
}

// Create valida la entrada, guarda la imagen si viene adjunta y persiste el producto.
// Un fallo al guardar la imagen corta el alta (no se escribe el registro).
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest, image *dto.ImageUpload) (*dto.ProductResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := uc.ensureCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	now := uc.now()
	product := &entity.Product{
		ID:         uuid.New().String(),
		Name:       in.Name,
		Price:      *in.Price,
		CategoryID: in.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if image != nil {
		path, err := uc.storeImage(ctx, image)
		if err != nil {
			return nil, err
		}
		product.ImagePath = &path
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return uc.toProductResponse(product, nil), nil
}

// Show obtiene un producto por ID junto con todas las categorías.
// Devuelve domain.ErrNotFound si el producto no existe.
func (uc *ProductUseCase) Show(ctx context.Context, id string) (*dto.ProductDetailResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	categories, err := uc.categories.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ProductDetailResponse{
		Product:    *uc.toProductResponse(product, categories),
		Categories: toCategoryResponses(categories),
	}, nil
}

// PrepareEdit mismo contexto que Show, para poblar el formulario de edición.
func (uc *ProductUseCase) PrepareEdit(ctx context.Context, id string) (*dto.ProductDetailResponse, error) {
	return uc.Show(ctx, id)
}

// Update aplica solo los campos presentes en la entrada. Si viene una imagen nueva, reemplaza
// ImagePath; el blob anterior no se borra. Un id inexistente es domain.ErrNotFound aunque la
// entrada sea inválida.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest, image *dto.ImageUpload) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		in.Name = &name
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if in.CategoryID != nil && *in.CategoryID != product.CategoryID {
		if err := uc.ensureCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
	}
	applyUpdate(product, in)
	if image != nil {
		path, err := uc.storeImage(ctx, image)
		if err != nil {
			return nil, err
		}
		product.ImagePath = &path
	}
	product.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return uc.toProductResponse(product, nil), nil
}

// Delete elimina un producto por ID con un único intento.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// applyUpdate copia campo por campo lo que trae la entrada; ID, ImagePath y CreatedAt no se tocan aquí.
func applyUpdate(p *entity.Product, in dto.UpdateProductRequest) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.CategoryID != nil {
		p.CategoryID = *in.CategoryID
	}
}

func (uc *ProductUseCase) ensureCategory(ctx context.Context, id string) error {
	if _, err := uc.categories.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: la categoría %s no existe", domain.ErrInvalidInput, id)
		}
		return err
	}
	return nil
}

// storeImage verifica que el archivo sea una imagen y lo guarda bajo ImagePrefix.
func (uc *ProductUseCase) storeImage(ctx context.Context, image *dto.ImageUpload) (string, error) {
	data, err := io.ReadAll(image.Content)
	if err != nil {
		return "", fmt.Errorf("%w: leer archivo: %v", domain.ErrStorage, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: el archivo de imagen está vacío", domain.ErrInvalidInput)
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: el archivo no es una imagen (%s)", domain.ErrInvalidInput, mt.String())
	}
	path, err := uc.images.Store(ctx, ImagePrefix, mt.Extension(), bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	return path, nil
}

func (uc *ProductUseCase) toProductResponse(p *entity.Product, categories []*entity.Category) *dto.ProductResponse {
	return toProductResponse(p, categories, uc.images)
}

func toProductResponse(p *entity.Product, categories []*entity.Category, images repository.ImageStore) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	out := &dto.ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		CategoryID: p.CategoryID,
		ImagePath:  p.ImagePath,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if p.HasImage() && images != nil {
		url := images.URL(*p.ImagePath)
		out.ImageURL = &url
	}
	for _, c := range categories {
		if c.ID == p.CategoryID {
			out.CategoryName = c.Name
			break
		}
	}
	return out
}

func toCategoryResponses(list []*entity.Category) []dto.CategoryResponse {
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return out
}
