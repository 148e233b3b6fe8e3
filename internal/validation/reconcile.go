package validation

import "github.com/andescargo/manifiesto-backend/internal/domain"

// Discrepancia reporta un item cuya cantidad declarada no cuadra con los
// contenedores asociados. Se recalcula en vivo para la puerta del flujo de
// edicion y nunca se persiste como hallazgo.
type Discrepancia struct {
	NumeroItem int `json:"numero_item"`
	Cantidad   int `json:"cantidad"`
	Asociados  int `json:"asociados"`
	Faltan     int `json:"faltan,omitempty"`
	Sobran     int `json:"sobran,omitempty"`
}

// Reconcile compara la cantidad de cada item con sus contenedores asociados.
// Devuelve solo los items con diferencia; lista vacia significa conciliado.
func Reconcile(bl *domain.BL) []Discrepancia {
	var out []Discrepancia
	if bl == nil {
		return out
	}
	for _, item := range bl.Items {
		if item == nil {
			continue
		}
		asociados := 0
		for _, cnt := range item.Contenedores {
			if cnt != nil {
				asociados++
			}
		}
		if asociados == item.Cantidad {
			continue
		}
		d := Discrepancia{NumeroItem: item.NumeroItem, Cantidad: item.Cantidad, Asociados: asociados}
		if item.Cantidad > asociados {
			d.Faltan = item.Cantidad - asociados
		} else {
			d.Sobran = asociados - item.Cantidad
		}
		out = append(out, d)
	}
	return out
}
