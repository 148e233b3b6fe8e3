package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/andescargo/manifiesto-backend/internal/domain"
	"github.com/andescargo/manifiesto-backend/internal/platform/logger"
)

type TipoBultoRepo interface {
	GetByCodigo(ctx context.Context, tx *gorm.DB, tipoBultoCodigo string) (*domain.TipoBultoCNT, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.TipoBultoCNT, error)
}

type tipoBultoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTipoBultoRepo(db *gorm.DB, baseLog *logger.Logger) TipoBultoRepo {
	return &tipoBultoRepo{db: db, log: baseLog.With("repo", "TipoBultoRepo")}
}

func (r *tipoBultoRepo) GetByCodigo(ctx context.Context, tx *gorm.DB, tipoBultoCodigo string) (*domain.TipoBultoCNT, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result domain.TipoBultoCNT
	err := transaction.WithContext(ctx).
		Where("tipo_bulto_codigo = ?", tipoBultoCodigo).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *tipoBultoRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.TipoBultoCNT, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.TipoBultoCNT
	if err := transaction.WithContext(ctx).
		Order("tipo_bulto_codigo ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
