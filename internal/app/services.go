package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/andescargo/manifiesto-backend/internal/bmsxml"
	"github.com/andescargo/manifiesto-backend/internal/platform/logger"
	"github.com/andescargo/manifiesto-backend/internal/services"
	"github.com/andescargo/manifiesto-backend/internal/validation"
)

type Services struct {
	Catalog    services.CatalogService
	Validation services.ValidationService
	Export     services.ExportService
	Manifiesto services.ManifiestoService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, cache *redis.Client) Services {
	log.Info("Wiring services...")

	catalogService := services.NewCatalogService(db, log, reposet.Puerto, reposet.TipoBulto, cache, cfg.CatalogCacheTTL)

	// El motor y el codec consumen el catalogo como interfaz de solo
	// lectura, resuelta por request a traves del servicio.
	engine := validation.NewEngine(catalogService)
	codec := bmsxml.NewCodec(catalogService)

	validationService := services.NewValidationService(db, log, engine, reposet.BL, reposet.Validacion)
	exportService := services.NewExportService(db, log, engine, codec, reposet.BL, reposet.Validacion, reposet.Manifiesto, reposet.ExportRun, cfg.ExportParallelism)
	manifiestoService := services.NewManifiestoService(db, log, reposet.Manifiesto, reposet.BL, reposet.ExportRun, reposet.Participante)

	return Services{
		Catalog:    catalogService,
		Validation: validationService,
		Export:     exportService,
		Manifiesto: manifiestoService,
	}
}
