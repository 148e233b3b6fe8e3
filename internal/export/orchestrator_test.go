package export

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/andescargo/manifiesto-backend/internal/bmsxml"
	"github.com/andescargo/manifiesto-backend/internal/domain"
	"github.com/andescargo/manifiesto-backend/internal/platform/logger"
	"github.com/andescargo/manifiesto-backend/internal/validation"
)

type fakeCatalog struct {
	puertos map[string]*domain.Puerto
}

func (f *fakeCatalog) PuertoPorCodigo(ctx context.Context, codigo string) (*domain.Puerto, error) {
	return f.puertos[codigo], nil
}

func (f *fakeCatalog) TipoCNTParaBulto(ctx context.Context, tipoBultoCodigo string) (string, error) {
	return "", nil
}

type fakeLoader struct {
	bls map[string]*domain.BL
}

func (f *fakeLoader) LoadAggregate(ctx context.Context, blNumber string) (*domain.BL, error) {
	return f.bls[blNumber], nil
}

type fakeStore struct {
	saved map[string][]*domain.Validacion
}

func (f *fakeStore) SaveSnapshot(ctx context.Context, bl *domain.BL, findings []*domain.Validacion) error {
	if f.saved == nil {
		f.saved = map[string][]*domain.Validacion{}
	}
	f.saved[bl.BLNumber] = findings
	return nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func testCatalog() *fakeCatalog {
	mk := func(codigo, nombre string) *domain.Puerto {
		return &domain.Puerto{ID: uuid.New(), Codigo: codigo, Nombre: nombre}
	}
	return &fakeCatalog{puertos: map[string]*domain.Puerto{
		"CLVAP": mk("CLVAP", "Valparaiso"),
		"NLRTM": mk("NLRTM", "Rotterdam"),
		"CLSCL": mk("CLSCL", "Santiago"),
	}}
}

func completeBL(blNumber string) *domain.BL {
	fecha := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	return &domain.BL{
		ID:                uuid.New(),
		BLNumber:          blNumber,
		Viaje:             "V042",
		TipoServicio:      domain.ServicioFF,
		FechaEmision:      &fecha,
		FechaPresentacion: &fecha,
		FechaZarpe:        &fecha,
		FechaEmbarque:     &fecha,
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
		PesoBruto:         1000,
		PesoUnidad:        "KGM",
		Volumen:           10,
		VolumenUnidad:     "MTQ",
		TotalBultos:       50,
	}
}

func newTestOrchestrator(t *testing.T, loader AggregateLoader) (*Orchestrator, *fakeStore) {
	t.Helper()
	catalog := testCatalog()
	store := &fakeStore{}
	return NewOrchestrator(loader, store, validation.NewEngine(catalog), bmsxml.NewCodec(catalog), testLogger(t), 2), store
}

func TestExportBatchProducesOneEntryPerBL(t *testing.T) {
	loader := &fakeLoader{bls: map[string]*domain.BL{
		"BL001": completeBL("BL001"),
		"BL002": completeBL("BL002"),
	}}
	o, _ := newTestOrchestrator(t, loader)

	result, err := o.ExportBatch(context.Background(), "M-77", []string{"BL002", "BL001"})
	if err != nil {
		t.Fatalf("ExportBatch: %v", err)
	}
	if result.ArchiveName != "BLs_Manifiesto_M-77.zip" {
		t.Fatalf("archive name: got %q", result.ArchiveName)
	}
	if result.BLCount != 2 {
		t.Fatalf("bl count: got %d", result.BLCount)
	}

	zr, err := zip.NewReader(bytes.NewReader(result.Archive), int64(len(result.Archive)))
	if err != nil {
		t.Fatalf("zip reader: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(zr.File))
	}
	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	if !names["BL001.xml"] || !names["BL002.xml"] {
		t.Fatalf("entry names: %v", names)
	}
}

func TestExportBatchAllOrNothing(t *testing.T) {
	broken := completeBL("BL002")
	broken.PesoBruto = 0
	loader := &fakeLoader{bls: map[string]*domain.BL{
		"BL001": completeBL("BL001"),
		"BL002": broken,
	}}
	o, _ := newTestOrchestrator(t, loader)

	result, err := o.ExportBatch(context.Background(), "M-77", []string{"BL001", "BL002"})
	if result != nil {
		t.Fatalf("expected no archive at all, got %d bytes", len(result.Archive))
	}
	batchErr, ok := err.(*BatchValidationError)
	if !ok {
		t.Fatalf("expected BatchValidationError, got %T: %v", err, err)
	}
	if len(batchErr.BLs) != 1 || batchErr.BLs[0].BLNumber != "BL002" {
		t.Fatalf("rejected set: %+v", batchErr.BLs)
	}
	if len(batchErr.BLs[0].Errors) == 0 {
		t.Fatalf("rejected BL must carry its ERROR findings")
	}
}

func TestExportBatchListsEveryOffendingBL(t *testing.T) {
	brokenA := completeBL("BL001")
	brokenA.ShipperNombre = ""
	brokenB := completeBL("BL003")
	brokenB.PesoBruto = 0
	loader := &fakeLoader{bls: map[string]*domain.BL{
		"BL001": brokenA,
		"BL002": completeBL("BL002"),
		"BL003": brokenB,
	}}
	o, _ := newTestOrchestrator(t, loader)

	_, err := o.ExportBatch(context.Background(), "M-77", []string{"BL001", "BL002", "BL003"})
	batchErr, ok := err.(*BatchValidationError)
	if !ok {
		t.Fatalf("expected BatchValidationError, got %T", err)
	}
	if len(batchErr.BLs) != 2 {
		t.Fatalf("expected both offending BLs reported, got %+v", batchErr.BLs)
	}
}

func TestExportBatchUnknownBLIsRejected(t *testing.T) {
	loader := &fakeLoader{bls: map[string]*domain.BL{"BL001": completeBL("BL001")}}
	o, store := newTestOrchestrator(t, loader)

	_, err := o.ExportBatch(context.Background(), "M-77", []string{"BL001", "NOPE"})
	batchErr, ok := err.(*BatchValidationError)
	if !ok {
		t.Fatalf("expected BatchValidationError, got %T: %v", err, err)
	}
	if len(batchErr.BLs) != 1 || batchErr.BLs[0].BLNumber != "NOPE" {
		t.Fatalf("rejected set: %+v", batchErr.BLs)
	}
	if _, ok := store.saved["NOPE"]; ok {
		t.Fatalf("nonexistent BL must not get a persisted snapshot")
	}
}

func TestExportBatchEmptyRequestFails(t *testing.T) {
	o, _ := newTestOrchestrator(t, &fakeLoader{})
	if _, err := o.ExportBatch(context.Background(), "M-77", nil); err == nil {
		t.Fatalf("expected error for empty request")
	}
}

func TestExportBatchPersistsRecomputedSnapshots(t *testing.T) {
	broken := completeBL("BL002")
	broken.PesoBruto = 0
	loader := &fakeLoader{bls: map[string]*domain.BL{
		"BL001": completeBL("BL001"),
		"BL002": broken,
	}}
	o, store := newTestOrchestrator(t, loader)

	// Lote rechazado: el estado recalculado queda persistido igual.
	if _, err := o.ExportBatch(context.Background(), "M-77", []string{"BL001", "BL002"}); err == nil {
		t.Fatalf("expected batch rejection")
	}
	if len(store.saved) != 2 {
		t.Fatalf("expected snapshots for both BLs, got %v", store.saved)
	}
	if n := countErrors(store.saved["BL002"]); n == 0 {
		t.Fatalf("broken BL snapshot must carry its ERROR findings")
	}
	if n := countErrors(store.saved["BL001"]); n != 0 {
		t.Fatalf("clean BL snapshot must have no ERROR findings, got %d", n)
	}

	// Lote aceptado: tambien persiste.
	loader.bls["BL002"] = completeBL("BL002")
	store.saved = nil
	if _, err := o.ExportBatch(context.Background(), "M-77", []string{"BL001", "BL002"}); err != nil {
		t.Fatalf("ExportBatch: %v", err)
	}
	if len(store.saved) != 2 {
		t.Fatalf("accepted batch must persist snapshots too, got %v", store.saved)
	}
}

func countErrors(findings []*domain.Validacion) int {
	n := 0
	for _, f := range findings {
		if f.Severidad == domain.SeveridadError {
			n++
		}
	}
	return n
}
