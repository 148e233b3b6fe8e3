package validation

import (
	"context"

	"github.com/andescargo/manifiesto-backend/internal/domain"
)

// PortCatalog es la vista de solo lectura del catalogo de puertos que
// consume el motor. Devuelve (nil, nil) cuando el codigo no esta registrado;
// un error significa que la consulta al catalogo fallo, nunca que el puerto
// no existe.
type PortCatalog interface {
	PuertoPorCodigo(ctx context.Context, codigo string) (*domain.Puerto, error)
}

// Catalog es la vista completa de catalogos que consume el motor: puertos mas
// la homologacion tipo de bulto -> tipo de contenedor. Un codigo de bulto sin
// homologacion devuelve cadena vacia sin error.
type Catalog interface {
	PortCatalog
	TipoCNTParaBulto(ctx context.Context, tipoBultoCodigo string) (string, error)
}
