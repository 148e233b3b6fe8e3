package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andescargo/manifiesto-backend/internal/domain"
	"github.com/andescargo/manifiesto-backend/internal/platform/logger"
)

type BLRepo interface {
	Create(ctx context.Context, tx *gorm.DB, bls []*domain.BL) ([]*domain.BL, error)
	GetByNumber(ctx context.Context, tx *gorm.DB, blNumber string) (*domain.BL, error)
	// GetAggregateByNumber carga el agregado completo: items con sus
	// contenedores asociados, contenedores con sellos e IMOs, y transbordos,
	// en orden estable de secuencia.
	GetAggregateByNumber(ctx context.Context, tx *gorm.DB, blNumber string) (*domain.BL, error)
	GetByManifiestoID(ctx context.Context, tx *gorm.DB, manifiestoID uuid.UUID) ([]*domain.BL, error)
	UpdateValidStatus(ctx context.Context, tx *gorm.DB, blID uuid.UUID, status string, countError, countObs int) error
}

type blRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBLRepo(db *gorm.DB, baseLog *logger.Logger) BLRepo {
	return &blRepo{db: db, log: baseLog.With("repo", "BLRepo")}
}

func (r *blRepo) Create(ctx context.Context, tx *gorm.DB, bls []*domain.BL) ([]*domain.BL, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(bls) == 0 {
		return []*domain.BL{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&bls).Error; err != nil {
		return nil, err
	}
	return bls, nil
}

func (r *blRepo) GetByNumber(ctx context.Context, tx *gorm.DB, blNumber string) (*domain.BL, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result domain.BL
	err := transaction.WithContext(ctx).
		Where("bl_number = ?", blNumber).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *blRepo) GetAggregateByNumber(ctx context.Context, tx *gorm.DB, blNumber string) (*domain.BL, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result domain.BL
	err := transaction.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("item.numero_item ASC")
		}).
		Preload("Items.Contenedores").
		Preload("Contenedores", func(db *gorm.DB) *gorm.DB {
			return db.Order("contenedor.sec ASC")
		}).
		Preload("Contenedores.Sellos").
		Preload("Contenedores.IMOs").
		Preload("Contenedores.Items").
		Preload("Transbordos", func(db *gorm.DB) *gorm.DB {
			return db.Order("transbordo.sec ASC")
		}).
		Where("bl_number = ?", blNumber).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *blRepo) GetByManifiestoID(ctx context.Context, tx *gorm.DB, manifiestoID uuid.UUID) ([]*domain.BL, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.BL
	if err := transaction.WithContext(ctx).
		Where("manifiesto_id = ?", manifiestoID).
		Order("bl_number ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *blRepo) UpdateValidStatus(ctx context.Context, tx *gorm.DB, blID uuid.UUID, status string, countError, countObs int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&domain.BL{}).
		Where("id = ?", blID).
		Updates(map[string]interface{}{
			"valid_status":      status,
			"valid_count_error": countError,
			"valid_count_obs":   countObs,
		}).Error
}
