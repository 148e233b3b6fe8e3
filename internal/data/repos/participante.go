package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andescargo/manifiesto-backend/internal/domain"
	"github.com/andescargo/manifiesto-backend/internal/platform/logger"
)

type ParticipanteRepo interface {
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Participante, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Participante, error)
}

type participanteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewParticipanteRepo(db *gorm.DB, baseLog *logger.Logger) ParticipanteRepo {
	return &participanteRepo{db: db, log: baseLog.With("repo", "ParticipanteRepo")}
}

func (r *participanteRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Participante, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Participante
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

func (r *participanteRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Participante, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Participante
	if err := transaction.WithContext(ctx).
		Order("nombre ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
