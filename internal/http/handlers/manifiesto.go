package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/andescargo/manifiesto-backend/internal/domain"
	"github.com/andescargo/manifiesto-backend/internal/export"
	"github.com/andescargo/manifiesto-backend/internal/http/response"
	"github.com/andescargo/manifiesto-backend/internal/platform/logger"
	"github.com/andescargo/manifiesto-backend/internal/services"
)

type ManifiestoHandler struct {
	log               *logger.Logger
	manifiestoService services.ManifiestoService
	exportService     services.ExportService
}

func NewManifiestoHandler(
	log *logger.Logger,
	manifiestoService services.ManifiestoService,
	exportService services.ExportService,
) *ManifiestoHandler {
	return &ManifiestoHandler{
		log:               log.With("handler", "ManifiestoHandler"),
		manifiestoService: manifiestoService,
		exportService:     exportService,
	}
}

func (h *ManifiestoHandler) manifiestoID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "manifiesto_id_invalido", err)
		return uuid.Nil, false
	}
	return id, true
}

func (h *ManifiestoHandler) Create(c *gin.Context) {
	var manifiesto domain.Manifiesto
	if err := c.ShouldBindJSON(&manifiesto); err != nil {
		response.RespondError(c, http.StatusBadRequest, "payload_invalido", err)
		return
	}
	created, err := h.manifiestoService.Create(c.Request.Context(), &manifiesto)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, created)
}

func (h *ManifiestoHandler) List(c *gin.Context) {
	manifiestos, err := h.manifiestoService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"manifiestos": manifiestos})
}

func (h *ManifiestoHandler) Get(c *gin.Context) {
	id, ok := h.manifiestoID(c)
	if !ok {
		return
	}
	manifiesto, err := h.manifiestoService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, manifiesto)
}

func (h *ManifiestoHandler) ListBLs(c *gin.Context) {
	id, ok := h.manifiestoID(c)
	if !ok {
		return
	}
	bls, err := h.manifiestoService.ListBLs(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"bls": bls})
}

// BLsParaXML alimenta la pantalla de seleccion: cada BL con su estado de
// validacion y conteos.
func (h *ManifiestoHandler) BLsParaXML(c *gin.Context) {
	id, ok := h.manifiestoID(c)
	if !ok {
		return
	}
	bls, err := h.manifiestoService.ListBLsParaXML(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"bls": bls})
}

type generarXMLsRequest struct {
	BLNumbers []string `json:"blNumbers" binding:"required"`
}

// GenerarXMLsMultiples corre la exportacion todo-o-nada. Si algun BL del
// lote tiene errores responde 422 con todos los rechazados y no se produce
// archivo.
func (h *ManifiestoHandler) GenerarXMLsMultiples(c *gin.Context) {
	id, ok := h.manifiestoID(c)
	if !ok {
		return
	}
	var req generarXMLsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "payload_invalido", err)
		return
	}

	result, err := h.exportService.ExportBatch(c.Request.Context(), id, req.BLNumbers)
	if err != nil {
		var batchErr *export.BatchValidationError
		if errors.As(err, &batchErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"bls_con_errores": batchErr.BLs})
			return
		}
		h.log.Error("GenerarXMLsMultiples failed", "error", err, "manifiesto_id", id)
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, result.ArchiveName))
	c.Data(http.StatusOK, "application/zip", result.Archive)
}

func (h *ManifiestoHandler) ExportRuns(c *gin.Context) {
	id, ok := h.manifiestoID(c)
	if !ok {
		return
	}
	runs, err := h.manifiestoService.ListExportRuns(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"export_runs": runs})
}
