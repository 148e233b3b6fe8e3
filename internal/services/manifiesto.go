package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andescargo/manifiesto-backend/internal/data/repos"
	"github.com/andescargo/manifiesto-backend/internal/domain"
	"github.com/andescargo/manifiesto-backend/internal/platform/apierr"
	"github.com/andescargo/manifiesto-backend/internal/platform/logger"
)

// BLParaXML es la fila de la pantalla de seleccion de exportacion: el BL con
// su estado de validacion denormalizado.
type BLParaXML struct {
	BLNumber        string `json:"bl_number"`
	Estado          string `json:"estado"`
	ValidStatus     string `json:"valid_status"`
	ValidCountError int    `json:"valid_count_error"`
	ValidCountObs   int    `json:"valid_count_obs"`
}

type ManifiestoService interface {
	Create(ctx context.Context, manifiesto *domain.Manifiesto) (*domain.Manifiesto, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Manifiesto, error)
	List(ctx context.Context) ([]*domain.Manifiesto, error)
	ListBLs(ctx context.Context, manifiestoID uuid.UUID) ([]*domain.BL, error)
	ListBLsParaXML(ctx context.Context, manifiestoID uuid.UUID) ([]BLParaXML, error)
	GetBLAggregate(ctx context.Context, blNumber string) (*domain.BL, error)
	ListExportRuns(ctx context.Context, manifiestoID uuid.UUID) ([]*domain.ExportRun, error)
	ListParticipantes(ctx context.Context) ([]*domain.Participante, error)
}

type manifiestoService struct {
	db               *gorm.DB
	log              *logger.Logger
	manifiestoRepo   repos.ManifiestoRepo
	blRepo           repos.BLRepo
	exportRunRepo    repos.ExportRunRepo
	participanteRepo repos.ParticipanteRepo
}

func NewManifiestoService(
	db *gorm.DB,
	baseLog *logger.Logger,
	manifiestoRepo repos.ManifiestoRepo,
	blRepo repos.BLRepo,
	exportRunRepo repos.ExportRunRepo,
	participanteRepo repos.ParticipanteRepo,
) ManifiestoService {
	return &manifiestoService{
		db:               db,
		log:              baseLog.With("service", "ManifiestoService"),
		manifiestoRepo:   manifiestoRepo,
		blRepo:           blRepo,
		exportRunRepo:    exportRunRepo,
		participanteRepo: participanteRepo,
	}
}

func (s *manifiestoService) Create(ctx context.Context, manifiesto *domain.Manifiesto) (*domain.Manifiesto, error) {
	if manifiesto == nil || manifiesto.Numero == "" {
		return nil, apierr.New(http.StatusBadRequest, "manifiesto_invalido", fmt.Errorf("manifiesto requiere numero"))
	}
	created, err := s.manifiestoRepo.Create(ctx, nil, []*domain.Manifiesto{manifiesto})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

func (s *manifiestoService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Manifiesto, error) {
	manifiestos, err := s.manifiestoRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(manifiestos) == 0 {
		return nil, apierr.New(http.StatusNotFound, "manifiesto_not_found", fmt.Errorf("manifiesto %s no existe", id))
	}
	return manifiestos[0], nil
}

func (s *manifiestoService) List(ctx context.Context) ([]*domain.Manifiesto, error) {
	return s.manifiestoRepo.List(ctx, nil)
}

func (s *manifiestoService) ListBLs(ctx context.Context, manifiestoID uuid.UUID) ([]*domain.BL, error) {
	if _, err := s.GetByID(ctx, manifiestoID); err != nil {
		return nil, err
	}
	return s.blRepo.GetByManifiestoID(ctx, nil, manifiestoID)
}

func (s *manifiestoService) ListBLsParaXML(ctx context.Context, manifiestoID uuid.UUID) ([]BLParaXML, error) {
	bls, err := s.ListBLs(ctx, manifiestoID)
	if err != nil {
		return nil, err
	}
	out := make([]BLParaXML, 0, len(bls))
	for _, bl := range bls {
		out = append(out, BLParaXML{
			BLNumber:        bl.BLNumber,
			Estado:          bl.Estado,
			ValidStatus:     bl.ValidStatus,
			ValidCountError: bl.ValidCountError,
			ValidCountObs:   bl.ValidCountObs,
		})
	}
	return out, nil
}

func (s *manifiestoService) GetBLAggregate(ctx context.Context, blNumber string) (*domain.BL, error) {
	bl, err := s.blRepo.GetAggregateByNumber(ctx, nil, blNumber)
	if err != nil {
		return nil, err
	}
	if bl == nil {
		return nil, apierr.New(http.StatusNotFound, "bl_not_found", fmt.Errorf("BL %s no existe", blNumber))
	}
	return bl, nil
}

func (s *manifiestoService) ListExportRuns(ctx context.Context, manifiestoID uuid.UUID) ([]*domain.ExportRun, error) {
	if _, err := s.GetByID(ctx, manifiestoID); err != nil {
		return nil, err
	}
	return s.exportRunRepo.GetByManifiestoID(ctx, nil, manifiestoID)
}

func (s *manifiestoService) ListParticipantes(ctx context.Context) ([]*domain.Participante, error) {
	return s.participanteRepo.List(ctx, nil)
}
