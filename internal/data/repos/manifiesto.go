package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andescargo/manifiesto-backend/internal/domain"
	"github.com/andescargo/manifiesto-backend/internal/platform/logger"
)

type ManifiestoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, manifiestos []*domain.Manifiesto) ([]*domain.Manifiesto, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Manifiesto, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Manifiesto, error)
}

type manifiestoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewManifiestoRepo(db *gorm.DB, baseLog *logger.Logger) ManifiestoRepo {
	return &manifiestoRepo{db: db, log: baseLog.With("repo", "ManifiestoRepo")}
}

func (r *manifiestoRepo) Create(ctx context.Context, tx *gorm.DB, manifiestos []*domain.Manifiesto) ([]*domain.Manifiesto, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(manifiestos) == 0 {
		return []*domain.Manifiesto{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&manifiestos).Error; err != nil {
		return nil, err
	}
	return manifiestos, nil
}

func (r *manifiestoRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Manifiesto, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Manifiesto
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *manifiestoRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Manifiesto, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Manifiesto
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
