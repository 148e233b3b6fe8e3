package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andescargo/manifiesto-backend/internal/export"
	"github.com/andescargo/manifiesto-backend/internal/http/response"
	"github.com/andescargo/manifiesto-backend/internal/platform/logger"
	"github.com/andescargo/manifiesto-backend/internal/services"
)

type BLHandler struct {
	log               *logger.Logger
	validationService services.ValidationService
	exportService     services.ExportService
	manifiestoService services.ManifiestoService
}

func NewBLHandler(
	log *logger.Logger,
	validationService services.ValidationService,
	exportService services.ExportService,
	manifiestoService services.ManifiestoService,
) *BLHandler {
	return &BLHandler{
		log:               log.With("handler", "BLHandler"),
		validationService: validationService,
		exportService:     exportService,
		manifiestoService: manifiestoService,
	}
}

func (h *BLHandler) GetBL(c *gin.Context) {
	blNumber := c.Param("blNumber")
	bl, err := h.manifiestoService.GetBLAggregate(c.Request.Context(), blNumber)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, bl)
}

// GetValidaciones devuelve el snapshot persistido, sin recalcular.
func (h *BLHandler) GetValidaciones(c *gin.Context) {
	blNumber := c.Param("blNumber")
	findings, err := h.validationService.GetFindings(c.Request.Context(), blNumber)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"bl_number": blNumber, "validaciones": findings})
}

func (h *BLHandler) Revalidar(c *gin.Context) {
	blNumber := c.Param("blNumber")
	result, err := h.validationService.Revalidate(c.Request.Context(), blNumber)
	if err != nil {
		h.log.Error("Revalidar failed", "error", err, "bl_number", blNumber)
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, result)
}

func (h *BLHandler) Reconciliacion(c *gin.Context) {
	blNumber := c.Param("blNumber")
	discrepancias, err := h.validationService.Reconcile(c.Request.Context(), blNumber)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"bl_number":     blNumber,
		"conciliado":    len(discrepancias) == 0,
		"discrepancias": discrepancias,
	})
}

// GenerarXML devuelve el documento en modo preview. Con hallazgos ERROR
// responde 422 con la lista estructurada, nunca un 500 generico.
func (h *BLHandler) GenerarXML(c *gin.Context) {
	blNumber := c.Param("blNumber")
	docBytes, err := h.exportService.GenerateXML(c.Request.Context(), blNumber)
	if err != nil {
		var blErr *export.BLValidationError
		if errors.As(err, &blErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"bl_number": blErr.BLNumber,
				"errors":    blErr.Errors,
			})
			return
		}
		h.log.Error("GenerarXML failed", "error", err, "bl_number", blNumber)
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xml"`, blNumber))
	c.Data(http.StatusOK, "application/xml; charset=ISO-8859-1", docBytes)
}
