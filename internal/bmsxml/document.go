package bmsxml

import "encoding/xml"

// Estructura fija del documento BMS/SNA v1.0. El orden de los campos de cada
// struct es el orden de los tags en el documento emitido; los sistemas aguas
// abajo parsean por tag y posicion, asi que cualquier cambio aqui es un
// cambio de contrato.

type Documento struct {
	XMLName       xml.Name      `xml:"DOCUMENTO_BMS"`
	Version       string        `xml:"version,attr"`
	Encabezado    Encabezado    `xml:"ENCABEZADO"`
	Ruta          Ruta          `xml:"RUTA"`
	Participantes Participantes `xml:"PARTICIPANTES"`
	Carga         Carga         `xml:"CARGA"`
	Items         Items         `xml:"ITEMS"`
	Contenedores  Contenedores  `xml:"CONTENEDORES"`
}

type Encabezado struct {
	NumeroBL          string `xml:"NUMERO_BL"`
	Viaje             string `xml:"VIAJE"`
	TipoServicio      string `xml:"TIPO_SERVICIO"`
	FechaEmision      string `xml:"FECHA_EMISION"`
	FechaPresentacion string `xml:"FECHA_PRESENTACION"`
	FechaZarpe        string `xml:"FECHA_ZARPE"`
	FechaEmbarque     string `xml:"FECHA_EMBARQUE"`
}

type PuertoRef struct {
	Codigo string `xml:"CODIGO"`
	Nombre string `xml:"NOMBRE"`
}

// Ruta emite los tramos de transbordo ordenados entre el puerto de embarque
// y el de descarga, como exige el esquema.
type Ruta struct {
	PuertoOrigen    PuertoRef       `xml:"PUERTO_ORIGEN"`
	PuertoRecepcion PuertoRef       `xml:"PUERTO_RECEPCION"`
	PuertoEmbarque  PuertoRef       `xml:"PUERTO_EMBARQUE"`
	Transbordos     []TransbordoRef `xml:"TRANSBORDO"`
	PuertoDescarga  PuertoRef       `xml:"PUERTO_DESCARGA"`
	PuertoDestino   PuertoRef       `xml:"PUERTO_DESTINO"`
	LugarEntrega    PuertoRef       `xml:"LUGAR_ENTREGA"`
	LugarEmision    PuertoRef       `xml:"LUGAR_EMISION"`
}

type TransbordoRef struct {
	Sec    int    `xml:"SEC,attr"`
	Codigo string `xml:"CODIGO"`
	Nombre string `xml:"NOMBRE"`
}

type Participantes struct {
	Shipper   string `xml:"SHIPPER"`
	Consignee string `xml:"CONSIGNEE"`
	Notify    string `xml:"NOTIFY"`
}

type Carga struct {
	Descripcion   string `xml:"DESCRIPCION"`
	PesoBruto     string `xml:"PESO_BRUTO"`
	PesoUnidad    string `xml:"PESO_UNIDAD"`
	Volumen       string `xml:"VOLUMEN"`
	VolumenUnidad string `xml:"VOLUMEN_UNIDAD"`
	TotalBultos   int    `xml:"TOTAL_BULTOS"`
}

type Items struct {
	Items []ItemRef `xml:"ITEM"`
}

type ItemRef struct {
	Sec            int    `xml:"SEC,attr"`
	Descripcion    string `xml:"DESCRIPCION"`
	Marcas         string `xml:"MARCAS"`
	TipoBulto      string `xml:"TIPO_BULTO"`
	Cantidad       int    `xml:"CANTIDAD"`
	Peso           string `xml:"PESO"`
	PesoUnidad     string `xml:"PESO_UNIDAD"`
	Volumen        string `xml:"VOLUMEN"`
	VolumenUnidad  string `xml:"VOLUMEN_UNIDAD"`
	CargaPeligrosa string `xml:"CARGA_PELIGROSA"`
}

type Contenedores struct {
	Contenedores []ContenedorRef `xml:"CONTENEDOR"`
}

type ContenedorRef struct {
	Sec           int    `xml:"SEC,attr"`
	Codigo        string `xml:"CODIGO"`
	TipoCNT       string `xml:"TIPO_CNT"`
	Peso          string `xml:"PESO"`
	PesoUnidad    string `xml:"PESO_UNIDAD"`
	Volumen       string `xml:"VOLUMEN"`
	VolumenUnidad string `xml:"VOLUMEN_UNIDAD"`
	Sellos        Sellos `xml:"SELLOS"`
	IMOs          IMOs   `xml:"IMOS"`
}

type Sellos struct {
	Sellos []string `xml:"SELLO"`
}

type IMOs struct {
	IMOs []IMORef `xml:"IMO"`
}

type IMORef struct {
	Clase  string `xml:"CLASE"`
	Numero string `xml:"NUMERO"`
}
