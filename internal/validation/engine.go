package validation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andescargo/manifiesto-backend/internal/domain"
	"github.com/google/uuid"
)

// Engine recorre el agregado de un BL contra el set de reglas y produce la
// lista ordenada de hallazgos. Es puro sobre el agregado ya cargado: el unico
// efecto externo son las consultas al catalogo de puertos inyectado.
type Engine struct {
	catalog Catalog
}

func NewEngine(catalog Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Slots de puerto/lugar del encabezado del BL. Los seis primeros son
// obligatorios; lugar de emision solo participa de la regla de registro.
var portSlots = []struct {
	label    string
	required bool
	value    func(bl *domain.BL) string
}{
	{"Puerto Origen", true, func(bl *domain.BL) string { return bl.PuertoOrigen }},
	{"Puerto Recepcion", true, func(bl *domain.BL) string { return bl.PuertoRecepcion }},
	{"Puerto Embarque", true, func(bl *domain.BL) string { return bl.PuertoEmbarque }},
	{"Puerto Descarga", true, func(bl *domain.BL) string { return bl.PuertoDescarga }},
	{"Puerto Destino", true, func(bl *domain.BL) string { return bl.PuertoDestino }},
	{"Lugar Entrega", true, func(bl *domain.BL) string { return bl.LugarEntrega }},
	{"Lugar Emision", false, func(bl *domain.BL) string { return bl.LugarEmision }},
}

// Validate aplica las reglas 1 a 5 en orden de presentacion. Las violaciones
// de negocio son datos (hallazgos), nunca errores; el error de retorno queda
// reservado para fallas de infraestructura del catalogo.
func (e *Engine) Validate(ctx context.Context, bl *domain.BL) ([]*domain.Validacion, error) {
	if bl == nil {
		return nil, fmt.Errorf("validate: bl aggregate is nil")
	}

	var findings []*domain.Validacion

	findings = append(findings, e.headerRules(bl)...)

	portFindings, err := e.portRegistrationRules(ctx, bl)
	if err != nil {
		return nil, err
	}
	findings = append(findings, portFindings...)

	findings = append(findings, e.itemRules(bl)...)
	findings = append(findings, e.containerIMORules(bl)...)

	typeFindings, err := e.containerTypeRules(ctx, bl)
	if err != nil {
		return nil, err
	}
	findings = append(findings, typeFindings...)

	tbFindings, err := e.transshipmentRules(ctx, bl)
	if err != nil {
		return nil, err
	}
	findings = append(findings, tbFindings...)

	return findings, nil
}

func blError(campo, mensaje string) *domain.Validacion {
	return &domain.Validacion{Nivel: domain.NivelBL, Campo: campo, Severidad: domain.SeveridadError, Mensaje: mensaje}
}

func (e *Engine) headerRules(bl *domain.BL) []*domain.Validacion {
	var out []*domain.Validacion

	if bl.TipoServicio == "" {
		out = append(out, blError("Tipo Servicio", "tipo de servicio es requerido"))
	}

	for _, slot := range portSlots {
		if slot.required && strings.TrimSpace(slot.value(bl)) == "" {
			out = append(out, blError(slot.label, fmt.Sprintf("%s es requerido", strings.ToLower(slot.label))))
		}
	}

	dates := []struct {
		label string
		value *time.Time
	}{
		{"Fecha Emision", bl.FechaEmision},
		{"Fecha Presentacion", bl.FechaPresentacion},
		{"Fecha Zarpe", bl.FechaZarpe},
		{"Fecha Embarque", bl.FechaEmbarque},
	}
	for _, d := range dates {
		if d.value == nil {
			out = append(out, blError(d.label, fmt.Sprintf("%s es requerida", strings.ToLower(d.label))))
		}
	}

	parties := []struct {
		label string
		value string
	}{
		{"Shipper", bl.ShipperNombre},
		{"Consignee", bl.ConsigneeNombre},
		{"Notify", bl.NotifyNombre},
	}
	for _, p := range parties {
		if len(strings.TrimSpace(p.value)) < 5 {
			out = append(out, blError(p.label, fmt.Sprintf("%s debe tener al menos 5 caracteres", strings.ToLower(p.label))))
		}
	}

	out = append(out, weightVolumeRules(bl.TipoServicio, bl.PesoBruto, bl.PesoUnidad, bl.Volumen, bl.VolumenUnidad, "peso bruto", "volumen", domain.NivelBL, nil)...)

	if bl.TotalBultos <= 0 {
		out = append(out, blError("Total Bultos", "total de bultos debe ser mayor a 0"))
	}

	return out
}

// weightVolumeRules concentra la politica numerica: negativos nunca, cero
// solo permitido para servicio MM (vacios).
func weightVolumeRules(tipoServicio string, peso float64, pesoUnidad string, volumen float64, volumenUnidad, pesoLabel, volLabel, nivel string, sec *int) []*domain.Validacion {
	mk := func(campo, mensaje string) *domain.Validacion {
		return &domain.Validacion{Nivel: nivel, Campo: campo, Sec: sec, Severidad: domain.SeveridadError, Mensaje: mensaje}
	}

	var out []*domain.Validacion
	switch {
	case peso < 0:
		out = append(out, mk("Peso", fmt.Sprintf("%s no puede ser negativo", pesoLabel)))
	case peso == 0 && tipoServicio != domain.ServicioMM:
		out = append(out, mk("Peso", fmt.Sprintf("%s debe ser mayor a 0", pesoLabel)))
	}
	if strings.TrimSpace(pesoUnidad) == "" {
		out = append(out, mk("Peso Unidad", fmt.Sprintf("unidad de %s es requerida", pesoLabel)))
	}
	switch {
	case volumen < 0:
		out = append(out, mk("Volumen", fmt.Sprintf("%s no puede ser negativo", volLabel)))
	case volumen == 0 && tipoServicio != domain.ServicioMM:
		out = append(out, mk("Volumen", fmt.Sprintf("%s debe ser mayor a 0", volLabel)))
	}
	if strings.TrimSpace(volumenUnidad) == "" {
		out = append(out, mk("Volumen Unidad", fmt.Sprintf("unidad de %s es requerida", volLabel)))
	}
	return out
}

func (e *Engine) portRegistrationRules(ctx context.Context, bl *domain.BL) ([]*domain.Validacion, error) {
	var out []*domain.Validacion
	for _, slot := range portSlots {
		code := strings.TrimSpace(slot.value(bl))
		if code == "" {
			continue
		}
		puerto, err := e.catalog.PuertoPorCodigo(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("catalogo de puertos (%s): %w", slot.label, err)
		}
		if puerto == nil {
			out = append(out, &domain.Validacion{
				Nivel:     domain.NivelBL,
				Campo:     slot.label,
				Severidad: domain.SeveridadObs,
				Mensaje:   "puerto no registrado",
			})
		}
	}
	return out, nil
}

func (e *Engine) itemRules(bl *domain.BL) []*domain.Validacion {
	var out []*domain.Validacion
	for _, item := range bl.Items {
		if item == nil {
			continue
		}
		sec := item.NumeroItem

		if strings.TrimSpace(item.TipoBultoCodigo) == "" {
			out = append(out, &domain.Validacion{
				Nivel: domain.NivelItem, Campo: "Tipo Bulto", Sec: intPtr(sec),
				Severidad: domain.SeveridadError, Mensaje: "tipo de bulto es requerido",
			})
		}
		if item.Cantidad <= 0 {
			out = append(out, &domain.Validacion{
				Nivel: domain.NivelItem, Campo: "Cantidad", Sec: intPtr(sec),
				Severidad: domain.SeveridadError, Mensaje: "cantidad debe ser mayor a 0",
			})
		}
		out = append(out, weightVolumeRules(bl.TipoServicio, item.Peso, item.PesoUnidad, item.Volumen, item.VolumenUnidad, "peso del item", "volumen del item", domain.NivelItem, intPtr(sec))...)
	}
	return out
}

func (e *Engine) containerIMORules(bl *domain.BL) []*domain.Validacion {
	// Contenedores alcanzados por carga peligrosa, via la asociacion
	// item-contenedor del agregado.
	dangerous := map[uuid.UUID]bool{}
	for _, item := range bl.Items {
		if item == nil || item.CargaPeligrosa != domain.CargaPeligrosaSi {
			continue
		}
		for _, cnt := range item.Contenedores {
			if cnt != nil {
				dangerous[cnt.ID] = true
			}
		}
	}

	var out []*domain.Validacion
	for _, cnt := range bl.Contenedores {
		if cnt == nil || !dangerous[cnt.ID] {
			continue
		}
		if len(cnt.IMOs) == 0 {
			out = append(out, &domain.Validacion{
				Nivel: domain.NivelContenedor, Campo: "imos", Sec: intPtr(cnt.Sec),
				Severidad: domain.SeveridadError,
				Mensaje:   "contenedor con carga peligrosa requiere al menos una entrada IMO",
			})
		}
	}
	return out
}

// containerTypeRules compara el tipo_cnt de cada contenedor contra la
// homologacion del tipo de bulto de sus items asociados.
func (e *Engine) containerTypeRules(ctx context.Context, bl *domain.BL) ([]*domain.Validacion, error) {
	var out []*domain.Validacion
	for _, cnt := range bl.Contenedores {
		if cnt == nil {
			continue
		}
		for _, item := range cnt.Items {
			if item == nil || strings.TrimSpace(item.TipoBultoCodigo) == "" {
				continue
			}
			tipoCNT, err := e.catalog.TipoCNTParaBulto(ctx, item.TipoBultoCodigo)
			if err != nil {
				return nil, fmt.Errorf("homologacion de tipo de bulto (%s): %w", item.TipoBultoCodigo, err)
			}
			// Sin homologacion registrada no hay contra que comparar.
			if tipoCNT == "" {
				continue
			}
			if cnt.TipoCNT != tipoCNT {
				out = append(out, &domain.Validacion{
					Nivel: domain.NivelContenedor, Campo: "tipo_cnt", Sec: intPtr(cnt.Sec),
					Severidad: domain.SeveridadError,
					Mensaje:   fmt.Sprintf("tipo de contenedor %s no corresponde a la homologacion %s del tipo de bulto %s", cnt.TipoCNT, tipoCNT, item.TipoBultoCodigo),
				})
			}
		}
	}
	return out, nil
}

func (e *Engine) transshipmentRules(ctx context.Context, bl *domain.BL) ([]*domain.Validacion, error) {
	var out []*domain.Validacion
	for _, tb := range bl.Transbordos {
		if tb == nil {
			continue
		}
		puerto, err := e.catalog.PuertoPorCodigo(ctx, strings.TrimSpace(tb.PuertoCodigo))
		if err != nil {
			return nil, fmt.Errorf("catalogo de puertos (transbordo %d): %w", tb.Sec, err)
		}
		if puerto == nil {
			out = append(out, &domain.Validacion{
				Nivel: domain.NivelTransbordo, Campo: "puerto_id", Sec: intPtr(tb.Sec),
				Severidad: domain.SeveridadError,
				Mensaje:   "puerto de transbordo no registrado",
			})
		}
	}
	return out, nil
}

func intPtr(v int) *int { return &v }
