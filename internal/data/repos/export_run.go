package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andescargo/manifiesto-backend/internal/domain"
	"github.com/andescargo/manifiesto-backend/internal/platform/logger"
)

type ExportRunRepo interface {
	Create(ctx context.Context, tx *gorm.DB, runs []*domain.ExportRun) ([]*domain.ExportRun, error)
	GetByManifiestoID(ctx context.Context, tx *gorm.DB, manifiestoID uuid.UUID) ([]*domain.ExportRun, error)
}

type exportRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExportRunRepo(db *gorm.DB, baseLog *logger.Logger) ExportRunRepo {
	return &exportRunRepo{db: db, log: baseLog.With("repo", "ExportRunRepo")}
}

func (r *exportRunRepo) Create(ctx context.Context, tx *gorm.DB, runs []*domain.ExportRun) ([]*domain.ExportRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(runs) == 0 {
		return []*domain.ExportRun{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *exportRunRepo) GetByManifiestoID(ctx context.Context, tx *gorm.DB, manifiestoID uuid.UUID) ([]*domain.ExportRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.ExportRun
	if err := transaction.WithContext(ctx).
		Where("manifiesto_id = ?", manifiestoID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
