package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andescargo/manifiesto-backend/internal/http/response"
	"github.com/andescargo/manifiesto-backend/internal/platform/apierr"
)

// respondServiceError mapea errores de servicio a HTTP. Las fallas de
// validacion de negocio llegan como tipos propios y se manejan antes en cada
// handler; aca solo se distinguen apierr (not found, bad request) de fallas
// de infraestructura.
func respondServiceError(c *gin.Context, err error) {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		response.RespondError(c, ae.Status, ae.Code, ae)
		return
	}
	response.RespondError(c, http.StatusInternalServerError, "internal_error", err)
}
