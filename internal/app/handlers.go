package app

import (
	"github.com/gin-gonic/gin"

	"github.com/andescargo/manifiesto-backend/internal/http"
	httpH "github.com/andescargo/manifiesto-backend/internal/http/handlers"
	"github.com/andescargo/manifiesto-backend/internal/platform/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	BL         *httpH.BLHandler
	Manifiesto *httpH.ManifiestoHandler
	Catalogo   *httpH.CatalogoHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(),
		BL:         httpH.NewBLHandler(log, serviceset.Validation, serviceset.Export, serviceset.Manifiesto),
		Manifiesto: httpH.NewManifiestoHandler(log, serviceset.Manifiesto, serviceset.Export),
		Catalogo:   httpH.NewCatalogoHandler(log, serviceset.Catalog, serviceset.Manifiesto),
	}
}

func wireRouter(log *logger.Logger, handlers Handlers) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:               log,
		HealthHandler:     handlers.Health,
		BLHandler:         handlers.BL,
		ManifiestoHandler: handlers.Manifiesto,
		CatalogoHandler:   handlers.Catalogo,
	})
}
