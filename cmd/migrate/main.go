// migrate aplica el esquema embebido (internal/infrastructure/postgres/migrations) y, opcionalmente,
// siembra categorías.
//
// Uso: go run ./cmd/migrate [-categories "Krzesła,Stoły,Szafy"]
package main

import (
	"context"
	"flag"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/catalogo-productos/internal/domain/entity"
	"github.com/jhoicas/catalogo-productos/internal/infrastructure/postgres"
	"github.com/jhoicas/catalogo-productos/pkg/config"
	"github.com/jhoicas/catalogo-productos/pkg/logger"
)

func main() {
	categories := flag.String("categories", "", "categorías a sembrar, separadas por coma")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Strs("applied", applied).Msg("migraciones aplicadas")

	seed := parseCategories(*categories)
	if len(seed) == 0 {
		return
	}
	n, err := postgres.NewCategoryRepository(pool).Seed(ctx, seed)
	if err != nil {
		log.Fatal().Err(err).Msg("sembrar categorías")
	}
	log.Info().Int("inserted", n).Int("requested", len(seed)).Msg("categorías sembradas")
}

func parseCategories(s string) []*entity.Category {
	now := time.Now()
	var out []*entity.Category
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, &entity.Category{ID: uuid.New().String(), Name: name, CreatedAt: now})
	}
	return out
}
