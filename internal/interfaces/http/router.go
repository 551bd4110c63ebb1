package http

import (
	"embed"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/catalogo-productos/internal/application/usecase"
	"github.com/jhoicas/catalogo-productos/internal/domain/repository"
	"github.com/jhoicas/catalogo-productos/pkg/logger"
)

//go:embed static
var staticFS embed.FS

// AppConfig opciones de la app Fiber.
type AppConfig struct {
	Name             string
	BodyLimit        int
	StorageURLPrefix string
	View             ViewOptions
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	StorefrontUC *usecase.StorefrontUseCase
	CategoryUC   *usecase.CategoryUseCase
	CatalogUC    *usecase.CatalogUseCase
	Images       repository.ImageStore
	Log          *logger.Logger
}

// NewApp crea la app Fiber con vistas, manejo de errores, middlewares comunes y todas las rutas.
func NewApp(cfg AppConfig, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		BodyLimit:    cfg.BodyLimit,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		Views:        NewViewEngine(cfg.View),
		ErrorHandler: ErrorHandler(deps.Log),
	})
	app.Use(requestid.New())
	app.Use(RequestLogger(deps.Log))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:       http.FS(staticFS),
		PathPrefix: "static",
	}))

	Router(app, cfg.StorageURLPrefix, deps)
	return app
}

// Router registra las rutas HTML (tienda y administración), la API JSON y los archivos subidos.
func Router(app *fiber.App, storagePrefix string, deps RouterDeps) {
	// Tienda (vista HTML)
	storefrontHandler := NewStorefrontHandler(deps.ProductUC, deps.StorefrontUC, deps.CategoryUC)
	app.Get("/", storefrontHandler.Home)

	// Administración de productos (vistas HTML)
	products := app.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	products.Get("/", productHandler.Index)
	products.Get("/create", productHandler.Create)
	products.Get("/catalog.pdf", catalogHandler.Download)
	products.Post("/", productHandler.Store)
	products.Get("/:id", productHandler.Show)
	products.Get("/:id/edit", productHandler.Edit)
	products.Put("/:id", productHandler.Update)
	products.Patch("/:id", productHandler.Update)
	products.Post("/:id", productHandler.Update) // formularios HTML
	products.Delete("/:id", productHandler.Destroy)

	// API de la tienda (JSON)
	api := app.Group("/api")
	api.Get("/products", storefrontHandler.List)
	api.Get("/products/:id", storefrontHandler.GetByID)
	api.Get("/categories", storefrontHandler.Categories)

	// Imágenes subidas
	storageHandler := NewStorageHandler(deps.Images)
	app.Get(storagePrefix+"/*", storageHandler.Serve)
}
