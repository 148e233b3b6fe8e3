package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/andescargo/manifiesto-backend/internal/bmsxml"
	"github.com/andescargo/manifiesto-backend/internal/data/repos"
	"github.com/andescargo/manifiesto-backend/internal/domain"
	"github.com/andescargo/manifiesto-backend/internal/export"
	"github.com/andescargo/manifiesto-backend/internal/platform/apierr"
	"github.com/andescargo/manifiesto-backend/internal/platform/logger"
	"github.com/andescargo/manifiesto-backend/internal/validation"
)

type ExportService interface {
	// GenerateXML genera el documento de un BL en modo preview: mismos bytes
	// que la exportacion, sin efectos colaterales. Con hallazgos ERROR
	// devuelve *export.BLValidationError.
	GenerateXML(ctx context.Context, blNumber string) ([]byte, error)
	// ExportBatch corre la puerta todo-o-nada del lote y devuelve el zip, o
	// *export.BatchValidationError con todos los BLs rechazados. Cada
	// intento queda registrado como ExportRun.
	ExportBatch(ctx context.Context, manifiestoID uuid.UUID, blNumbers []string) (*export.BatchResult, error)
}

type exportService struct {
	db             *gorm.DB
	log            *logger.Logger
	engine         *validation.Engine
	codec          *bmsxml.Codec
	orchestrator   *export.Orchestrator
	blRepo         repos.BLRepo
	manifiestoRepo repos.ManifiestoRepo
	exportRunRepo  repos.ExportRunRepo
}

func NewExportService(
	db *gorm.DB,
	baseLog *logger.Logger,
	engine *validation.Engine,
	codec *bmsxml.Codec,
	blRepo repos.BLRepo,
	validacionRepo repos.ValidacionRepo,
	manifiestoRepo repos.ManifiestoRepo,
	exportRunRepo repos.ExportRunRepo,
	exportParallelism int,
) ExportService {
	loader := &blAggregateLoader{repo: blRepo}
	store := &blSnapshotStore{db: db, blRepo: blRepo, validacionRepo: validacionRepo}
	return &exportService{
		db:             db,
		log:            baseLog.With("service", "ExportService"),
		engine:         engine,
		codec:          codec,
		orchestrator:   export.NewOrchestrator(loader, store, engine, codec, baseLog, exportParallelism),
		blRepo:         blRepo,
		manifiestoRepo: manifiestoRepo,
		exportRunRepo:  exportRunRepo,
	}
}

// blAggregateLoader adapta BLRepo a la vista minima del orquestador.
type blAggregateLoader struct {
	repo repos.BLRepo
}

func (l *blAggregateLoader) LoadAggregate(ctx context.Context, blNumber string) (*domain.BL, error) {
	return l.repo.GetAggregateByNumber(ctx, nil, blNumber)
}

// blSnapshotStore persiste el resultado de la puerta con la misma transaccion
// que una revalidacion explicita: reemplazo del snapshot + estado
// denormalizado del BL.
type blSnapshotStore struct {
	db             *gorm.DB
	blRepo         repos.BLRepo
	validacionRepo repos.ValidacionRepo
}

func (s *blSnapshotStore) SaveSnapshot(ctx context.Context, bl *domain.BL, findings []*domain.Validacion) error {
	summary := validation.Aggregate(findings)
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.validacionRepo.ReplaceForBL(ctx, tx, bl.ID, findings); err != nil {
			return err
		}
		return s.blRepo.UpdateValidStatus(ctx, tx, bl.ID, summary.Status, summary.CountError, summary.CountObs)
	})
}

func (s *exportService) GenerateXML(ctx context.Context, blNumber string) ([]byte, error) {
	bl, err := s.blRepo.GetAggregateByNumber(ctx, nil, blNumber)
	if err != nil {
		return nil, err
	}
	if bl == nil {
		return nil, apierr.New(http.StatusNotFound, "bl_not_found", fmt.Errorf("BL %s no existe", blNumber))
	}

	findings, err := s.engine.Validate(ctx, bl)
	if err != nil {
		return nil, err
	}
	var errs []*domain.Validacion
	for _, f := range findings {
		if f.Severidad == domain.SeveridadError {
			errs = append(errs, f)
		}
	}
	if len(errs) > 0 {
		return nil, &export.BLValidationError{BLNumber: blNumber, Errors: errs}
	}

	return s.codec.Encode(ctx, bl)
}

func (s *exportService) ExportBatch(ctx context.Context, manifiestoID uuid.UUID, blNumbers []string) (*export.BatchResult, error) {
	manifiestos, err := s.manifiestoRepo.GetByIDs(ctx, nil, []uuid.UUID{manifiestoID})
	if err != nil {
		return nil, err
	}
	if len(manifiestos) == 0 {
		return nil, apierr.New(http.StatusNotFound, "manifiesto_not_found", fmt.Errorf("manifiesto %s no existe", manifiestoID))
	}
	manifiesto := manifiestos[0]

	result, err := s.orchestrator.ExportBatch(ctx, manifiesto.Numero, blNumbers)
	if batchErr, ok := err.(*export.BatchValidationError); ok {
		s.recordRun(ctx, manifiestoID, blNumbers, domain.ExportResultadoRechazado, "")
		return nil, batchErr
	}
	if err != nil {
		return nil, err
	}

	s.recordRun(ctx, manifiestoID, blNumbers, domain.ExportResultadoOK, result.ArchiveName)
	return result, nil
}

// recordRun deja la bitacora del intento; un fallo aca no voltea la
// exportacion ya resuelta.
func (s *exportService) recordRun(ctx context.Context, manifiestoID uuid.UUID, blNumbers []string, resultado, archivoNombre string) {
	payload, err := json.Marshal(map[string]interface{}{"blNumbers": blNumbers})
	if err != nil {
		payload = []byte("{}")
	}
	_, err = s.exportRunRepo.Create(ctx, nil, []*domain.ExportRun{{
		ManifiestoID:  manifiestoID,
		Payload:       datatypes.JSON(payload),
		Resultado:     resultado,
		ArchivoNombre: archivoNombre,
	}})
	if err != nil {
		s.log.Warn("No se pudo registrar export run", "error", err, "manifiesto_id", manifiestoID)
	}
}
