package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/andescargo/manifiesto-backend/internal/domain"
	"github.com/andescargo/manifiesto-backend/internal/http/response"
	"github.com/andescargo/manifiesto-backend/internal/platform/logger"
	"github.com/andescargo/manifiesto-backend/internal/services"
)

type CatalogoHandler struct {
	log               *logger.Logger
	catalogService    services.CatalogService
	manifiestoService services.ManifiestoService
}

func NewCatalogoHandler(
	log *logger.Logger,
	catalogService services.CatalogService,
	manifiestoService services.ManifiestoService,
) *CatalogoHandler {
	return &CatalogoHandler{
		log:               log.With("handler", "CatalogoHandler"),
		catalogService:    catalogService,
		manifiestoService: manifiestoService,
	}
}

func (h *CatalogoHandler) ListPuertos(c *gin.Context) {
	puertos, err := h.catalogService.ListPuertos(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"puertos": puertos})
}

func (h *CatalogoHandler) CreatePuerto(c *gin.Context) {
	var puerto domain.Puerto
	if err := c.ShouldBindJSON(&puerto); err != nil {
		response.RespondError(c, http.StatusBadRequest, "payload_invalido", err)
		return
	}
	created, err := h.catalogService.CreatePuerto(c.Request.Context(), &puerto)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, created)
}

func (h *CatalogoHandler) UpdatePuerto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "puerto_id_invalido", err)
		return
	}
	var puerto domain.Puerto
	if err := c.ShouldBindJSON(&puerto); err != nil {
		response.RespondError(c, http.StatusBadRequest, "payload_invalido", err)
		return
	}
	puerto.ID = id
	if err := h.catalogService.UpdatePuerto(c.Request.Context(), &puerto); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, &puerto)
}

func (h *CatalogoHandler) ListTiposBulto(c *gin.Context) {
	tipos, err := h.catalogService.ListTiposBulto(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"tipos_bulto": tipos})
}

func (h *CatalogoHandler) ListParticipantes(c *gin.Context) {
	participantes, err := h.manifiestoService.ListParticipantes(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"participantes": participantes})
}
