package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/jhoicas/catalogo-productos/internal/application/usecase"
	"github.com/jhoicas/catalogo-productos/internal/domain/repository"
	"github.com/jhoicas/catalogo-productos/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/catalogo-productos/internal/infrastructure/pdf"
	"github.com/jhoicas/catalogo-productos/internal/infrastructure/postgres"
	"github.com/jhoicas/catalogo-productos/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/catalogo-productos/internal/interfaces/http"
	"github.com/jhoicas/catalogo-productos/pkg/config"
	"github.com/jhoicas/catalogo-productos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	var (
		productRepo  repository.ProductRepository
		categoryRepo repository.CategoryRepository
	)
	switch cfg.DB.Driver {
	case config.DriverMemory:
		log.Warn().Msg("usando repositorios en memoria, los datos se pierden al reiniciar")
		productRepo = memory.NewProductRepository()
		categoryRepo = memory.NewCategoryRepository(memory.DefaultCategories()...)
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		productRepo = postgres.NewProductRepository(pool)
		categoryRepo = postgres.NewCategoryRepository(pool)
	}

	images, err := storage.NewLocalImageStore(cfg.Storage.Root, cfg.Storage.URLPrefix)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de imágenes")
	}

	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, images)
	storefrontUC := usecase.NewStorefrontUseCase(productRepo, categoryRepo, images)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	catalogUC := usecase.NewCatalogUseCase(productRepo, categoryRepo,
		infrapdf.NewMarotoCatalogGenerator(cfg.View.Currency), cfg.View.CatalogTitle)

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:             cfg.App.Name,
		BodyLimit:        cfg.HTTP.BodyLimit(),
		StorageURLPrefix: cfg.Storage.URLPrefix,
		View: httpRouter.ViewOptions{
			Locale:       cfg.View.Locale,
			Currency:     cfg.View.Currency,
			DefaultImage: cfg.View.DefaultImage,
		},
	}, httpRouter.RouterDeps{
		ProductUC:    productUC,
		StorefrontUC: storefrontUC,
		CategoryUC:   categoryUC,
		CatalogUC:    catalogUC,
		Images:       images,
		Log:          log,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Catálogo de productos API",
		}))
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
