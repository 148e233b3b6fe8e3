package services

import (
	"context"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"github.com/andescargo/manifiesto-backend/internal/data/repos"
	"github.com/andescargo/manifiesto-backend/internal/domain"
	"github.com/andescargo/manifiesto-backend/internal/platform/apierr"
	"github.com/andescargo/manifiesto-backend/internal/platform/logger"
	"github.com/andescargo/manifiesto-backend/internal/validation"
)

type RevalidateResult struct {
	BLNumber string                   `json:"bl_number"`
	Status   validation.StatusSummary `json:"status"`
	Findings []*domain.Validacion     `json:"validaciones"`
}

type ValidationService interface {
	// GetFindings devuelve el snapshot persistido actual, sin recalcular.
	GetFindings(ctx context.Context, blNumber string) ([]*domain.Validacion, error)
	// Revalidate recalcula el snapshot, lo reemplaza y actualiza el estado
	// denormalizado del BL en una sola transaccion.
	Revalidate(ctx context.Context, blNumber string) (*RevalidateResult, error)
	// Reconcile recalcula en vivo las discrepancias cantidad/contenedores.
	// Nunca persiste.
	Reconcile(ctx context.Context, blNumber string) ([]validation.Discrepancia, error)
}

type validationService struct {
	db             *gorm.DB
	log            *logger.Logger
	engine         *validation.Engine
	blRepo         repos.BLRepo
	validacionRepo repos.ValidacionRepo
}

func NewValidationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	engine *validation.Engine,
	blRepo repos.BLRepo,
	validacionRepo repos.ValidacionRepo,
) ValidationService {
	return &validationService{
		db:             db,
		log:            baseLog.With("service", "ValidationService"),
		engine:         engine,
		blRepo:         blRepo,
		validacionRepo: validacionRepo,
	}
}

func (s *validationService) GetFindings(ctx context.Context, blNumber string) ([]*domain.Validacion, error) {
	bl, err := s.blRepo.GetByNumber(ctx, nil, blNumber)
	if err != nil {
		return nil, err
	}
	if bl == nil {
		return nil, apierr.New(http.StatusNotFound, "bl_not_found", fmt.Errorf("BL %s no existe", blNumber))
	}
	return s.validacionRepo.GetByBLID(ctx, nil, bl.ID)
}

func (s *validationService) Revalidate(ctx context.Context, blNumber string) (*RevalidateResult, error) {
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
	summary := validation.Aggregate(findings)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.validacionRepo.ReplaceForBL(ctx, tx, bl.ID, findings); err != nil {
			return err
		}
		return s.blRepo.UpdateValidStatus(ctx, tx, bl.ID, summary.Status, summary.CountError, summary.CountObs)
	})
	if err != nil {
		s.log.Error("Revalidate: persistir snapshot fallo", "error", err, "bl_number", blNumber)
		return nil, err
	}

	s.log.Info("BL revalidado",
		"bl_number", blNumber,
		"valid_status", summary.Status,
		"errores", summary.CountError,
		"obs", summary.CountObs)

	return &RevalidateResult{BLNumber: blNumber, Status: summary, Findings: findings}, nil
}

func (s *validationService) Reconcile(ctx context.Context, blNumber string) ([]validation.Discrepancia, error) {
	bl, err := s.blRepo.GetAggregateByNumber(ctx, nil, blNumber)
	if err != nil {
		return nil, err
	}
	if bl == nil {
		return nil, apierr.New(http.StatusNotFound, "bl_not_found", fmt.Errorf("BL %s no existe", blNumber))
	}
	return validation.Reconcile(bl), nil
}
