package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andescargo/manifiesto-backend/internal/domain"
	"github.com/andescargo/manifiesto-backend/internal/platform/logger"
)

type ValidacionRepo interface {
	GetByBLID(ctx context.Context, tx *gorm.DB, blID uuid.UUID) ([]*domain.Validacion, error)
	// ReplaceForBL reemplaza el snapshot completo de hallazgos del BL. Nunca
	// acumula: cada recalculo borra el snapshot anterior.
	ReplaceForBL(ctx context.Context, tx *gorm.DB, blID uuid.UUID, findings []*domain.Validacion) error
}

type validacionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewValidacionRepo(db *gorm.DB, baseLog *logger.Logger) ValidacionRepo {
	return &validacionRepo{db: db, log: baseLog.With("repo", "ValidacionRepo")}
}

func (r *validacionRepo) GetByBLID(ctx context.Context, tx *gorm.DB, blID uuid.UUID) ([]*domain.Validacion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Validacion
	if err := transaction.WithContext(ctx).
		Where("bl_id = ?", blID).
		Order("orden ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *validacionRepo) ReplaceForBL(ctx context.Context, tx *gorm.DB, blID uuid.UUID, findings []*domain.Validacion) error {
	run := func(transaction *gorm.DB) error {
		if err := transaction.WithContext(ctx).
			Where("bl_id = ?", blID).
			Delete(&domain.Validacion{}).Error; err != nil {
			return err
		}
		if len(findings) == 0 {
			return nil
		}
		for i, f := range findings {
			f.BLID = blID
			f.Orden = i
		}
		return transaction.WithContext(ctx).Create(&findings).Error
	}

	if tx != nil {
		return run(tx)
	}
	return r.db.Transaction(run)
}
