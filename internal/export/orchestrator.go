package export

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/andescargo/manifiesto-backend/internal/bmsxml"
	"github.com/andescargo/manifiesto-backend/internal/domain"
	"github.com/andescargo/manifiesto-backend/internal/platform/logger"
	"github.com/andescargo/manifiesto-backend/internal/validation"
)

// AggregateLoader es la vista minima del repositorio de BLs que necesita el
// orquestador: cargar el agregado completo por numero de BL.
type AggregateLoader interface {
	LoadAggregate(ctx context.Context, blNumber string) (*domain.BL, error)
}

// SnapshotStore persiste el snapshot de hallazgos recalculado de un BL junto
// con su estado derivado. La puerta de exportacion es un punto de recomputo
// igual que una revalidacion explicita: persiste antes de decidir.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, bl *domain.BL, findings []*domain.Validacion) error
}

// BLErrors agrupa los hallazgos ERROR de un BL rechazado.
type BLErrors struct {
	BLNumber string               `json:"bl_number"`
	Errors   []*domain.Validacion `json:"errors"`
}

// BatchValidationError es la falla estructurada del lote: lista todos los
// BLs con ERROR, no solo el primero. Ningun archivo se produce.
type BatchValidationError struct {
	BLs []BLErrors `json:"bls_con_errores"`
}

func (e *BatchValidationError) Error() string {
	return fmt.Sprintf("exportacion rechazada: %d BL(s) con errores de validacion", len(e.BLs))
}

type BatchResult struct {
	ArchiveName string
	Archive     []byte
	BLCount     int
}

// Orchestrator corre el motor de validacion por BL, aplica la puerta
// todo-o-nada sobre los hallazgos ERROR y empaqueta los XML en un unico zip.
type Orchestrator struct {
	loader      AggregateLoader
	store       SnapshotStore
	engine      *validation.Engine
	codec       *bmsxml.Codec
	log         *logger.Logger
	parallelism int
}

func NewOrchestrator(loader AggregateLoader, store SnapshotStore, engine *validation.Engine, codec *bmsxml.Codec, baseLog *logger.Logger, parallelism int) *Orchestrator {
	if parallelism <= 0 {
		parallelism = 4
	}
	return &Orchestrator{
		loader:      loader,
		store:       store,
		engine:      engine,
		codec:       codec,
		log:         baseLog.With("component", "ExportOrchestrator"),
		parallelism: parallelism,
	}
}

// ExportBatch valida todos los BLs solicitados antes de decidir: la puerta es
// sobre el lote completo, nunca se emite un archivo parcial. Los hallazgos
// OBS no bloquean. Los agregados cargados al inicio del lote son los que se
// validan y serializan, asi el resultado es internamente consistente aunque
// haya ediciones concurrentes.
func (o *Orchestrator) ExportBatch(ctx context.Context, manifiestoNumero string, blNumbers []string) (*BatchResult, error) {
	if len(blNumbers) == 0 {
		return nil, fmt.Errorf("exportacion sin BLs solicitados")
	}

	numbers := dedupeSorted(blNumbers)

	type loaded struct {
		bl       *domain.BL
		findings []*domain.Validacion
	}
	results := make([]loaded, len(numbers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.parallelism)
	for i, number := range numbers {
		i, number := i, number
		g.Go(func() error {
			bl, err := o.loader.LoadAggregate(gctx, number)
			if err != nil {
				return fmt.Errorf("cargar BL %s: %w", number, err)
			}
			if bl == nil {
				results[i] = loaded{findings: []*domain.Validacion{{
					Nivel:     domain.NivelBL,
					Campo:     "bl_number",
					Severidad: domain.SeveridadError,
					Mensaje:   "BL no existe",
				}}}
				return nil
			}
			findings, err := o.engine.Validate(gctx, bl)
			if err != nil {
				return fmt.Errorf("validar BL %s: %w", number, err)
			}
			results[i] = loaded{bl: bl, findings: findings}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// El snapshot y el estado de cada BL existente se persisten antes de
	// decidir; un lote rechazado deja igualmente el estado recalculado a la
	// vista de la pantalla de seleccion.
	for i, number := range numbers {
		if results[i].bl == nil {
			continue
		}
		if err := o.store.SaveSnapshot(ctx, results[i].bl, results[i].findings); err != nil {
			return nil, fmt.Errorf("persistir snapshot de %s: %w", number, err)
		}
	}

	// Puerta todo-o-nada: se juntan primero todos los resultados, recien
	// entonces se decide.
	var rejected []BLErrors
	for i, number := range numbers {
		var errs []*domain.Validacion
		for _, f := range results[i].findings {
			if f.Severidad == domain.SeveridadError {
				errs = append(errs, f)
			}
		}
		if len(errs) > 0 {
			rejected = append(rejected, BLErrors{BLNumber: number, Errors: errs})
		}
	}
	if len(rejected) > 0 {
		o.log.Warn("Exportacion rechazada por errores de validacion",
			"manifiesto", manifiestoNumero, "bls_rechazados", len(rejected))
		return nil, &BatchValidationError{BLs: rejected}
	}

	var buf bytes.Buffer
	zipw := zip.NewWriter(&buf)
	for i, number := range numbers {
		docBytes, err := o.codec.Encode(ctx, results[i].bl)
		if err != nil {
			return nil, fmt.Errorf("generar XML de %s: %w", number, err)
		}
		entry, err := zipw.Create(number + ".xml")
		if err != nil {
			return nil, fmt.Errorf("crear entrada %s: %w", number, err)
		}
		if _, err := entry.Write(docBytes); err != nil {
			return nil, fmt.Errorf("escribir entrada %s: %w", number, err)
		}
	}
	if err := zipw.Close(); err != nil {
		return nil, fmt.Errorf("cerrar archivo zip: %w", err)
	}

	o.log.Info("Exportacion completada",
		"manifiesto", manifiestoNumero, "bls", len(numbers), "bytes", buf.Len())

	return &BatchResult{
		ArchiveName: fmt.Sprintf("BLs_Manifiesto_%s.zip", manifiestoNumero),
		Archive:     buf.Bytes(),
		BLCount:     len(numbers),
	}, nil
}

func dedupeSorted(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
