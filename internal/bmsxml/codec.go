package bmsxml

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/andescargo/manifiesto-backend/internal/domain"
	"github.com/andescargo/manifiesto-backend/internal/validation"
)

const (
	schemaVersion = "1.0"
	xmlHeader     = `<?xml version="1.0" encoding="ISO-8859-1"?>` + "\n"

	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// Codec serializa un agregado de BL validado al documento BMS/SNA. Es un
// serializador puro: no revalida, el gate de ERROR es responsabilidad del
// llamador. Encode es determinista byte a byte sobre un agregado identico.
type Codec struct {
	catalog validation.PortCatalog
}

func NewCodec(catalog validation.PortCatalog) *Codec {
	return &Codec{catalog: catalog}
}

func (c *Codec) Encode(ctx context.Context, bl *domain.BL) ([]byte, error) {
	if bl == nil {
		return nil, fmt.Errorf("encode: bl aggregate is nil")
	}

	doc, err := c.buildDocument(ctx, bl)
	if err != nil {
		return nil, err
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode bl %s: %w", bl.BLNumber, err)
	}

	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.Write(body)
	buf.WriteByte('\n')

	// Runas fuera de Latin-1 se sustituyen en vez de voltear una exportacion
	// que ya paso la puerta de errores.
	latin1, err := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()).Bytes(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("encode bl %s to ISO-8859-1: %w", bl.BLNumber, err)
	}
	return latin1, nil
}

func (c *Codec) buildDocument(ctx context.Context, bl *domain.BL) (*Documento, error) {
	ruta, err := c.buildRuta(ctx, bl)
	if err != nil {
		return nil, err
	}

	doc := &Documento{
		Version: schemaVersion,
		Encabezado: Encabezado{
			NumeroBL:          bl.BLNumber,
			Viaje:             bl.Viaje,
			TipoServicio:      bl.TipoServicio,
			FechaEmision:      formatTimestamp(bl.FechaEmision),
			FechaPresentacion: formatDate(bl.FechaPresentacion),
			FechaZarpe:        formatDate(bl.FechaZarpe),
			FechaEmbarque:     formatDate(bl.FechaEmbarque),
		},
		Ruta: *ruta,
		Participantes: Participantes{
			Shipper:   strings.TrimSpace(bl.ShipperNombre),
			Consignee: strings.TrimSpace(bl.ConsigneeNombre),
			Notify:    strings.TrimSpace(bl.NotifyNombre),
		},
		Carga: Carga{
			Descripcion:   bl.DescripcionCarga,
			PesoBruto:     formatDecimal(bl.PesoBruto),
			PesoUnidad:    bl.PesoUnidad,
			Volumen:       formatDecimal(bl.Volumen),
			VolumenUnidad: bl.VolumenUnidad,
			TotalBultos:   bl.TotalBultos,
		},
	}

	for _, item := range bl.Items {
		if item == nil {
			continue
		}
		doc.Items.Items = append(doc.Items.Items, ItemRef{
			Sec:            item.NumeroItem,
			Descripcion:    item.Descripcion,
			Marcas:         item.Marcas,
			TipoBulto:      item.TipoBultoCodigo,
			Cantidad:       item.Cantidad,
			Peso:           formatDecimal(item.Peso),
			PesoUnidad:     item.PesoUnidad,
			Volumen:        formatDecimal(item.Volumen),
			VolumenUnidad:  item.VolumenUnidad,
			CargaPeligrosa: item.CargaPeligrosa,
		})
	}

	for _, cnt := range bl.Contenedores {
		if cnt == nil {
			continue
		}
		ref := ContenedorRef{
			Sec:           cnt.Sec,
			Codigo:        cnt.Codigo,
			TipoCNT:       cnt.TipoCNT,
			Peso:          formatDecimal(cnt.Peso),
			PesoUnidad:    cnt.PesoUnidad,
			Volumen:       formatDecimal(cnt.Volumen),
			VolumenUnidad: cnt.VolumenUnidad,
		}
		for _, sello := range cnt.Sellos {
			if sello != nil {
				ref.Sellos.Sellos = append(ref.Sellos.Sellos, sello.Numero)
			}
		}
		for _, imo := range cnt.IMOs {
			if imo != nil {
				ref.IMOs.IMOs = append(ref.IMOs.IMOs, IMORef{Clase: imo.Clase, Numero: imo.Numero})
			}
		}
		doc.Contenedores.Contenedores = append(doc.Contenedores.Contenedores, ref)
	}

	return doc, nil
}

func (c *Codec) buildRuta(ctx context.Context, bl *domain.BL) (*Ruta, error) {
	resolve := func(code string) (PuertoRef, error) {
		ref := PuertoRef{Codigo: strings.TrimSpace(code)}
		if ref.Codigo == "" {
			return ref, nil
		}
		puerto, err := c.catalog.PuertoPorCodigo(ctx, ref.Codigo)
		if err != nil {
			return ref, fmt.Errorf("catalogo de puertos (%s): %w", ref.Codigo, err)
		}
		// Codigo no registrado: se emite el codigo crudo con nombre vacio.
		if puerto != nil {
			ref.Nombre = puerto.Nombre
		}
		return ref, nil
	}

	var ruta Ruta
	var err error
	if ruta.PuertoOrigen, err = resolve(bl.PuertoOrigen); err != nil {
		return nil, err
	}
	if ruta.PuertoRecepcion, err = resolve(bl.PuertoRecepcion); err != nil {
		return nil, err
	}
	if ruta.PuertoEmbarque, err = resolve(bl.PuertoEmbarque); err != nil {
		return nil, err
	}
	for _, tb := range bl.Transbordos {
		if tb == nil {
			continue
		}
		ref, err := resolve(tb.PuertoCodigo)
		if err != nil {
			return nil, err
		}
		ruta.Transbordos = append(ruta.Transbordos, TransbordoRef{Sec: tb.Sec, Codigo: ref.Codigo, Nombre: ref.Nombre})
	}
	if ruta.PuertoDescarga, err = resolve(bl.PuertoDescarga); err != nil {
		return nil, err
	}
	if ruta.PuertoDestino, err = resolve(bl.PuertoDestino); err != nil {
		return nil, err
	}
	if ruta.LugarEntrega, err = resolve(bl.LugarEntrega); err != nil {
		return nil, err
	}
	if ruta.LugarEmision, err = resolve(bl.LugarEmision); err != nil {
		return nil, err
	}
	return &ruta, nil
}

// Pesos y volumenes viajan siempre con 3 decimales fijos.
func formatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timestampLayout)
}
