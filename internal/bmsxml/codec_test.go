package bmsxml

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/andescargo/manifiesto-backend/internal/domain"
)

type fakeCatalog struct {
	puertos map[string]*domain.Puerto
}

func (f *fakeCatalog) PuertoPorCodigo(ctx context.Context, codigo string) (*domain.Puerto, error) {
	return f.puertos[codigo], nil
}

func testCatalog() *fakeCatalog {
	mk := func(codigo, nombre string) *domain.Puerto {
		return &domain.Puerto{ID: uuid.New(), Codigo: codigo, Nombre: nombre}
	}
	return &fakeCatalog{puertos: map[string]*domain.Puerto{
		"CLVAP": mk("CLVAP", "Valparaíso"),
		"NLRTM": mk("NLRTM", "Rotterdam"),
		"PABLB": mk("PABLB", "Balboa"),
		"CLSCL": mk("CLSCL", "Santiago"),
	}}
}

func sampleBL() *domain.BL {
	emision := time.Date(2024, 5, 10, 12, 30, 0, 0, time.UTC)
	zarpe := time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC)

	cnt := &domain.Contenedor{
		ID:            uuid.New(),
		Sec:           1,
		Codigo:        "MSCU1234567",
		TipoCNT:       "40RH",
		Peso:          18250.5,
		PesoUnidad:    "KGM",
		Volumen:       54.2,
		VolumenUnidad: "MTQ",
		Sellos: []*domain.Sello{
			{ID: uuid.New(), Numero: "SEAL-001"},
			{ID: uuid.New(), Numero: "SEAL-002"},
		},
		IMOs: []*domain.ContenedorIMO{
			{ID: uuid.New(), Clase: "3", Numero: "1203"},
		},
	}

	return &domain.BL{
		ID:                uuid.New(),
		BLNumber:          "SCL500494400",
		Viaje:             "V042",
		TipoServicio:      domain.ServicioFF,
		FechaEmision:      &emision,
		FechaPresentacion: &zarpe,
		FechaZarpe:        &zarpe,
		FechaEmbarque:     &zarpe,
		PuertoOrigen:      "CLSCL",
		PuertoRecepcion:   "CLVAP",
		PuertoEmbarque:    "CLVAP",
		PuertoDescarga:    "NLRTM",
		PuertoDestino:     "NLRTM",
		LugarEntrega:      "NLRTM",
		LugarEmision:      "CLSCL",
		ShipperNombre:     "Exportadora Andes Ltda",
		ConsigneeNombre:   "Rotterdam Imports BV",
		NotifyNombre:      "Rotterdam Imports BV",
		DescripcionCarga:  "FRUTA FRESCA",
		PesoBruto:         18250.5,
		PesoUnidad:        "KGM",
		Volumen:           54.2,
		VolumenUnidad:     "MTQ",
		TotalBultos:       920,
		Items: []*domain.Item{{
			ID:              uuid.New(),
			NumeroItem:      1,
			Descripcion:     "CAJAS DE FRUTA",
			TipoBultoCodigo: "CNT40",
			Cantidad:        1,
			Peso:            18250.5,
			PesoUnidad:      "KGM",
			Volumen:         54.2,
			VolumenUnidad:   "MTQ",
			CargaPeligrosa:  domain.CargaPeligrosaNo,
			Contenedores:    []*domain.Contenedor{cnt},
		}},
		Contenedores: []*domain.Contenedor{cnt},
		Transbordos: []*domain.Transbordo{
			{ID: uuid.New(), Sec: 1, PuertoCodigo: "PABLB"},
		},
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	codec := NewCodec(testCatalog())
	bl := sampleBL()

	first, err := codec.Encode(context.Background(), bl)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	second, err := codec.Encode(context.Background(), bl)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("Encode is not deterministic")
	}
}

func TestEncodeDeclaresISO88591(t *testing.T) {
	codec := NewCodec(testCatalog())

	doc, err := codec.Encode(context.Background(), sampleBL())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte(`<?xml version="1.0" encoding="ISO-8859-1"?>`)) {
		t.Fatalf("missing ISO-8859-1 declaration: %q", doc[:60])
	}
	// "Valparaíso" debe salir en Latin-1: la i acentuada es el byte 0xED,
	// nunca la secuencia UTF-8 0xC3 0xAD.
	if !bytes.Contains(doc, []byte{'a', 0xED, 's', 'o'}) {
		t.Fatalf("port name not encoded as Latin-1")
	}
	if bytes.Contains(doc, []byte{0xC3, 0xAD}) {
		t.Fatalf("found UTF-8 bytes in Latin-1 document")
	}
}

func TestEncodeFixedFormats(t *testing.T) {
	codec := NewCodec(testCatalog())

	doc, err := codec.Encode(context.Background(), sampleBL())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	text := string(doc)

	for _, want := range []string{
		"<PESO_BRUTO>18250.500</PESO_BRUTO>",
		"<VOLUMEN>54.200</VOLUMEN>",
		"<FECHA_EMISION>2024-05-10 12:30:00</FECHA_EMISION>",
		"<FECHA_ZARPE>2024-05-12</FECHA_ZARPE>",
		"<NUMERO_BL>SCL500494400</NUMERO_BL>",
		"<TOTAL_BULTOS>920</TOTAL_BULTOS>",
		"<SELLO>SEAL-001</SELLO>",
		"<CLASE>3</CLASE>",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("document missing %q", want)
		}
	}
}

func TestEncodeTransshipmentsBetweenEmbarkationAndDischarge(t *testing.T) {
	codec := NewCodec(testCatalog())

	doc, err := codec.Encode(context.Background(), sampleBL())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	text := string(doc)

	embarque := strings.Index(text, "<PUERTO_EMBARQUE>")
	transbordo := strings.Index(text, `<TRANSBORDO SEC="1">`)
	descarga := strings.Index(text, "<PUERTO_DESCARGA>")
	if embarque < 0 || transbordo < 0 || descarga < 0 {
		t.Fatalf("missing routing sections: %d %d %d", embarque, transbordo, descarga)
	}
	if !(embarque < transbordo && transbordo < descarga) {
		t.Fatalf("transbordo not between embarkation and discharge: %d %d %d", embarque, transbordo, descarga)
	}
}

func TestEncodeReplacesRunesOutsideLatin1(t *testing.T) {
	codec := NewCodec(testCatalog())

	bl := sampleBL()
	bl.DescripcionCarga = "FRUTA € PREMIUM"
	doc, err := codec.Encode(context.Background(), bl)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// El euro no existe en Latin-1: se sustituye, nunca falla ni queda UTF-8.
	if bytes.Contains(doc, []byte("€")) {
		t.Fatalf("found UTF-8 euro sign in Latin-1 document")
	}
	if !bytes.Contains(doc, []byte{0x1A}) {
		t.Fatalf("expected substitute byte for unsupported rune")
	}
}

func TestEncodeUnregisteredPortEmitsRawCode(t *testing.T) {
	codec := NewCodec(testCatalog())

	bl := sampleBL()
	bl.PuertoDestino = "XXYYY"
	doc, err := codec.Encode(context.Background(), bl)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	text := string(doc)
	if !strings.Contains(text, "<CODIGO>XXYYY</CODIGO>") {
		t.Fatalf("raw code not emitted for unregistered port")
	}
}

func TestEncodeNilAggregateFails(t *testing.T) {
	codec := NewCodec(testCatalog())
	if _, err := codec.Encode(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil aggregate")
	}
}
