package validation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/andescargo/manifiesto-backend/internal/domain"
)

type fakeCatalog struct {
	puertos   map[string]*domain.Puerto
	tiposCNT  map[string]string
	failCodes map[string]bool
}

func (f *fakeCatalog) PuertoPorCodigo(ctx context.Context, codigo string) (*domain.Puerto, error) {
	if f.failCodes[codigo] {
		return nil, fmt.Errorf("lookup failed")
	}
	return f.puertos[codigo], nil
}

func (f *fakeCatalog) TipoCNTParaBulto(ctx context.Context, tipoBultoCodigo string) (string, error) {
	if f.failCodes[tipoBultoCodigo] {
		return "", fmt.Errorf("lookup failed")
	}
	return f.tiposCNT[tipoBultoCodigo], nil
}

func registeredCatalog() *fakeCatalog {
	mk := func(codigo, nombre string) *domain.Puerto {
		return &domain.Puerto{ID: uuid.New(), Codigo: codigo, Nombre: nombre}
	}
	return &fakeCatalog{
		puertos: map[string]*domain.Puerto{
			"CLVAP": mk("CLVAP", "Valparaiso"),
			"CLSAI": mk("CLSAI", "San Antonio"),
			"NLRTM": mk("NLRTM", "Rotterdam"),
			"PABLB": mk("PABLB", "Balboa"),
			"CLSCL": mk("CLSCL", "Santiago"),
		},
		tiposCNT: map[string]string{"CNT40": "40RH"},
	}
}

func fecha() *time.Time {
	t := time.Date(2024, 5, 10, 12, 30, 0, 0, time.UTC)
	return &t
}

func validBL() *domain.BL {
	return &domain.BL{
		ID:                uuid.New(),
		BLNumber:          "SCL500494400",
		Viaje:             "V042",
		TipoServicio:      domain.ServicioFF,
		FechaEmision:      fecha(),
		FechaPresentacion: fecha(),
		FechaZarpe:        fecha(),
		FechaEmbarque:     fecha(),
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
	}
}

func countBySeverity(findings []*domain.Validacion, severidad string) int {
	n := 0
	for _, f := range findings {
		if f.Severidad == severidad {
			n++
		}
	}
	return n
}

func findCampo(findings []*domain.Validacion, nivel, campo string) *domain.Validacion {
	for _, f := range findings {
		if f.Nivel == nivel && f.Campo == campo {
			return f
		}
	}
	return nil
}

func TestValidateCompleteBLHasNoErrors(t *testing.T) {
	engine := NewEngine(registeredCatalog())

	findings, err := engine.Validate(context.Background(), validBL())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if n := countBySeverity(findings, domain.SeveridadError); n != 0 {
		t.Fatalf("expected no errors, got %d: %+v", n, findings)
	}
	if got := Aggregate(findings).Status; got == domain.ValidError {
		t.Fatalf("status should never be ERROR for a complete BL, got %s", got)
	}
}

func TestValidateMissingHeaderFields(t *testing.T) {
	cases := []struct {
		campo  string
		mutate func(bl *domain.BL)
	}{
		{"Tipo Servicio", func(bl *domain.BL) { bl.TipoServicio = "" }},
		{"Puerto Origen", func(bl *domain.BL) { bl.PuertoOrigen = "" }},
		{"Puerto Embarque", func(bl *domain.BL) { bl.PuertoEmbarque = "" }},
		{"Lugar Entrega", func(bl *domain.BL) { bl.LugarEntrega = "" }},
		{"Fecha Emision", func(bl *domain.BL) { bl.FechaEmision = nil }},
		{"Fecha Zarpe", func(bl *domain.BL) { bl.FechaZarpe = nil }},
		{"Shipper", func(bl *domain.BL) { bl.ShipperNombre = "ab" }},
		{"Total Bultos", func(bl *domain.BL) { bl.TotalBultos = 0 }},
	}

	engine := NewEngine(registeredCatalog())
	for _, tc := range cases {
		bl := validBL()
		tc.mutate(bl)
		findings, err := engine.Validate(context.Background(), bl)
		if err != nil {
			t.Fatalf("%s: Validate: %v", tc.campo, err)
		}
		f := findCampo(findings, domain.NivelBL, tc.campo)
		if f == nil || f.Severidad != domain.SeveridadError {
			t.Fatalf("%s: expected BL-level ERROR, findings=%+v", tc.campo, findings)
		}
	}
}

func TestValidateWeightZeroDependsOnService(t *testing.T) {
	engine := NewEngine(registeredCatalog())

	bl := validBL()
	bl.PesoBruto = 0
	findings, err := engine.Validate(context.Background(), bl)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	f := findCampo(findings, domain.NivelBL, "Peso")
	if f == nil || f.Mensaje != "peso bruto debe ser mayor a 0" {
		t.Fatalf("FF con peso 0: expected weight error, got %+v", f)
	}

	bl = validBL()
	bl.TipoServicio = domain.ServicioMM
	bl.PesoBruto = 0
	bl.Volumen = 0
	findings, err = engine.Validate(context.Background(), bl)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if f := findCampo(findings, domain.NivelBL, "Peso"); f != nil {
		t.Fatalf("MM con peso 0: unexpected weight error %+v", f)
	}
	if f := findCampo(findings, domain.NivelBL, "Volumen"); f != nil {
		t.Fatalf("MM con volumen 0: unexpected volume error %+v", f)
	}
}

func TestValidateNegativeWeightAlwaysErrors(t *testing.T) {
	engine := NewEngine(registeredCatalog())

	bl := validBL()
	bl.TipoServicio = domain.ServicioMM
	bl.PesoBruto = -1
	findings, err := engine.Validate(context.Background(), bl)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if f := findCampo(findings, domain.NivelBL, "Peso"); f == nil {
		t.Fatalf("expected negative weight error, findings=%+v", findings)
	}
}

func TestValidateUnregisteredPortIsObservation(t *testing.T) {
	engine := NewEngine(registeredCatalog())

	bl := validBL()
	bl.PuertoEmbarque = "XXYYY"
	findings, err := engine.Validate(context.Background(), bl)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	f := findCampo(findings, domain.NivelBL, "Puerto Embarque")
	if f == nil || f.Severidad != domain.SeveridadObs || f.Mensaje != "puerto no registrado" {
		t.Fatalf("expected OBS puerto no registrado, got %+v", f)
	}
	// Una OBS no bloquea: el estado agregado queda en OBS, no ERROR.
	if got := Aggregate(findings).Status; got != domain.ValidOBS {
		t.Fatalf("status: got %s want %s", got, domain.ValidOBS)
	}
}

func TestValidateItemRules(t *testing.T) {
	engine := NewEngine(registeredCatalog())

	bl := validBL()
	bl.Items = []*domain.Item{{
		ID:         uuid.New(),
		NumeroItem: 2,
		Cantidad:   0,
		Peso:       100,
		PesoUnidad: "KGM",
		Volumen:    1,
		// Sin tipo de bulto ni unidad de volumen.
	}}
	findings, err := engine.Validate(context.Background(), bl)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	for _, campo := range []string{"Tipo Bulto", "Cantidad", "Volumen Unidad"} {
		f := findCampo(findings, domain.NivelItem, campo)
		if f == nil || f.Severidad != domain.SeveridadError {
			t.Fatalf("%s: expected ITEM-level ERROR, findings=%+v", campo, findings)
		}
		if f.Sec == nil || *f.Sec != 2 {
			t.Fatalf("%s: expected sec=2, got %+v", campo, f.Sec)
		}
	}
	// La descripcion no es obligatoria.
	if f := findCampo(findings, domain.NivelItem, "Descripcion"); f != nil {
		t.Fatalf("descripcion should not be required, got %+v", f)
	}
}

func blWithContainer(peligrosa string, imos []*domain.ContenedorIMO) *domain.BL {
	bl := validBL()
	cnt := &domain.Contenedor{
		ID:            uuid.New(),
		Sec:           1,
		Codigo:        "MSCU1234567",
		TipoCNT:       "40RH",
		Peso:          18250.5,
		PesoUnidad:    "KGM",
		Volumen:       54.2,
		VolumenUnidad: "MTQ",
		IMOs:          imos,
	}
	item := &domain.Item{
		ID:              uuid.New(),
		NumeroItem:      1,
		TipoBultoCodigo: "CNT40",
		Cantidad:        1,
		Peso:            18250.5,
		PesoUnidad:      "KGM",
		Volumen:         54.2,
		VolumenUnidad:   "MTQ",
		CargaPeligrosa:  peligrosa,
		Contenedores:    []*domain.Contenedor{cnt},
	}
	bl.Items = []*domain.Item{item}
	cnt.Items = []*domain.Item{item}
	bl.Contenedores = []*domain.Contenedor{cnt}
	return bl
}

func TestValidateDangerousContainerRequiresIMO(t *testing.T) {
	engine := NewEngine(registeredCatalog())

	bl := blWithContainer(domain.CargaPeligrosaSi, nil)
	findings, err := engine.Validate(context.Background(), bl)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	var imoErrors []*domain.Validacion
	for _, f := range findings {
		if f.Nivel == domain.NivelContenedor && f.Campo == "imos" {
			imoErrors = append(imoErrors, f)
		}
	}
	if len(imoErrors) != 1 {
		t.Fatalf("expected exactly one IMO error, got %d: %+v", len(imoErrors), imoErrors)
	}
	if imoErrors[0].Sec == nil || *imoErrors[0].Sec != 1 {
		t.Fatalf("expected sec=1, got %+v", imoErrors[0].Sec)
	}
}

func TestValidateDangerousContainerWithIMOPasses(t *testing.T) {
	engine := NewEngine(registeredCatalog())

	bl := blWithContainer(domain.CargaPeligrosaSi, []*domain.ContenedorIMO{
		{ID: uuid.New(), Clase: "3", Numero: "1203"},
	})
	findings, err := engine.Validate(context.Background(), bl)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if f := findCampo(findings, domain.NivelContenedor, "imos"); f != nil {
		t.Fatalf("unexpected IMO error: %+v", f)
	}
}

func TestValidateNonDangerousContainerNeedsNoIMO(t *testing.T) {
	engine := NewEngine(registeredCatalog())

	bl := blWithContainer(domain.CargaPeligrosaNo, nil)
	findings, err := engine.Validate(context.Background(), bl)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if f := findCampo(findings, domain.NivelContenedor, "imos"); f != nil {
		t.Fatalf("unexpected IMO requirement for non-dangerous cargo: %+v", f)
	}
}

func TestValidateContainerTypeMismatch(t *testing.T) {
	engine := NewEngine(registeredCatalog())

	bl := blWithContainer(domain.CargaPeligrosaNo, nil)
	bl.Contenedores[0].TipoCNT = "20GP"
	findings, err := engine.Validate(context.Background(), bl)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	f := findCampo(findings, domain.NivelContenedor, "tipo_cnt")
	if f == nil || f.Severidad != domain.SeveridadError {
		t.Fatalf("expected CONTENEDOR tipo_cnt ERROR, findings=%+v", findings)
	}
	if f.Sec == nil || *f.Sec != 1 {
		t.Fatalf("expected sec=1, got %+v", f.Sec)
	}
}

func TestValidateContainerTypeMatchesMapping(t *testing.T) {
	engine := NewEngine(registeredCatalog())

	// CNT40 homologa a 40RH, que es el tipo del contenedor.
	findings, err := engine.Validate(context.Background(), blWithContainer(domain.CargaPeligrosaNo, nil))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if f := findCampo(findings, domain.NivelContenedor, "tipo_cnt"); f != nil {
		t.Fatalf("unexpected tipo_cnt finding: %+v", f)
	}
}

func TestValidateUnmappedPackageTypeSkipsTypeCheck(t *testing.T) {
	engine := NewEngine(registeredCatalog())

	bl := blWithContainer(domain.CargaPeligrosaNo, nil)
	bl.Items[0].TipoBultoCodigo = "PALLET"
	findings, err := engine.Validate(context.Background(), bl)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if f := findCampo(findings, domain.NivelContenedor, "tipo_cnt"); f != nil {
		t.Fatalf("code without mapping must not be compared, got %+v", f)
	}
}

func TestValidateUnregisteredTransshipmentPortIsError(t *testing.T) {
	engine := NewEngine(registeredCatalog())

	bl := validBL()
	bl.Transbordos = []*domain.Transbordo{
		{ID: uuid.New(), Sec: 1, PuertoCodigo: "PABLB"},
		{ID: uuid.New(), Sec: 2, PuertoCodigo: "XXYYY"},
	}
	findings, err := engine.Validate(context.Background(), bl)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	f := findCampo(findings, domain.NivelTransbordo, "puerto_id")
	if f == nil || f.Severidad != domain.SeveridadError {
		t.Fatalf("expected TRANSBORDO ERROR, findings=%+v", findings)
	}
	if f.Sec == nil || *f.Sec != 2 {
		t.Fatalf("expected sec=2 flagging the second leg, got %+v", f.Sec)
	}
}

func TestValidateCatalogFailurePropagates(t *testing.T) {
	catalog := registeredCatalog()
	catalog.failCodes = map[string]bool{"CLVAP": true}
	engine := NewEngine(catalog)

	if _, err := engine.Validate(context.Background(), validBL()); err == nil {
		t.Fatalf("expected infrastructure error from catalog lookup")
	}
}

func TestValidateNilAggregateIsProgrammerError(t *testing.T) {
	engine := NewEngine(registeredCatalog())
	if _, err := engine.Validate(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil aggregate")
	}
}
