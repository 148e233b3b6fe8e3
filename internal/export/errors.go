package export

import (
	"fmt"

	"github.com/andescargo/manifiesto-backend/internal/domain"
)

// BLValidationError es el rechazo estructurado de la generacion de XML para
// un unico BL: lista los hallazgos ERROR que bloquean el documento.
type BLValidationError struct {
	BLNumber string               `json:"bl_number"`
	Errors   []*domain.Validacion `json:"errors"`
}

func (e *BLValidationError) Error() string {
	return fmt.Sprintf("BL %s tiene %d error(es) de validacion", e.BLNumber, len(e.Errors))
}
