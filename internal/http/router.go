package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/andescargo/manifiesto-backend/internal/http/handlers"
	httpMW "github.com/andescargo/manifiesto-backend/internal/http/middleware"
	"github.com/andescargo/manifiesto-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	HealthHandler     *httpH.HealthHandler
	BLHandler         *httpH.BLHandler
	ManifiestoHandler *httpH.ManifiestoHandler
	CatalogoHandler   *httpH.CatalogoHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.CORS())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	// La SPA consulta el snapshot de validaciones sin el prefijo /api.
	if cfg.BLHandler != nil {
		r.GET("/bls/:blNumber/validaciones", cfg.BLHandler.GetValidaciones)
	}

	api := r.Group("/api")
	{
		// BL: validacion + generacion XML
		if cfg.BLHandler != nil {
			api.GET("/bls/:blNumber", cfg.BLHandler.GetBL)
			api.GET("/bls/:blNumber/validaciones", cfg.BLHandler.GetValidaciones)
			api.POST("/bls/:blNumber/revalidar", cfg.BLHandler.Revalidar)
			api.GET("/bls/:blNumber/reconciliacion", cfg.BLHandler.Reconciliacion)
			api.POST("/bls/:blNumber/generar-xml", cfg.BLHandler.GenerarXML)
		}

		// Manifiestos + exportacion masiva
		if cfg.ManifiestoHandler != nil {
			api.GET("/manifiestos", cfg.ManifiestoHandler.List)
			api.POST("/manifiestos", cfg.ManifiestoHandler.Create)
			api.GET("/manifiestos/:id", cfg.ManifiestoHandler.Get)
			api.GET("/manifiestos/:id/bls", cfg.ManifiestoHandler.ListBLs)
			api.GET("/manifiestos/:id/bls-para-xml", cfg.ManifiestoHandler.BLsParaXML)
			api.POST("/manifiestos/:id/generar-xmls-multiples", cfg.ManifiestoHandler.GenerarXMLsMultiples)
			api.GET("/manifiestos/:id/export-runs", cfg.ManifiestoHandler.ExportRuns)
		}

		// Catalogos
		if cfg.CatalogoHandler != nil {
			api.GET("/puertos", cfg.CatalogoHandler.ListPuertos)
			api.POST("/puertos", cfg.CatalogoHandler.CreatePuerto)
			api.PUT("/puertos/:id", cfg.CatalogoHandler.UpdatePuerto)
			api.GET("/tipos-bulto", cfg.CatalogoHandler.ListTiposBulto)
			api.GET("/participantes", cfg.CatalogoHandler.ListParticipantes)
		}
	}

	return r
}
