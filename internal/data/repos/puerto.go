package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andescargo/manifiesto-backend/internal/domain"
	"github.com/andescargo/manifiesto-backend/internal/platform/logger"
)

type PuertoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, puertos []*domain.Puerto) ([]*domain.Puerto, error)
	Update(ctx context.Context, tx *gorm.DB, puerto *domain.Puerto) error
	// GetByCodigo devuelve (nil, nil) cuando el codigo no existe en el
	// catalogo; un error no-nil significa que la consulta fallo, nunca que el
	// puerto no esta registrado.
	GetByCodigo(ctx context.Context, tx *gorm.DB, codigo string) (*domain.Puerto, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Puerto, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Puerto, error)
}

type puertoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPuertoRepo(db *gorm.DB, baseLog *logger.Logger) PuertoRepo {
	return &puertoRepo{db: db, log: baseLog.With("repo", "PuertoRepo")}
}

func (r *puertoRepo) Create(ctx context.Context, tx *gorm.DB, puertos []*domain.Puerto) ([]*domain.Puerto, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(puertos) == 0 {
		return []*domain.Puerto{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&puertos).Error; err != nil {
		return nil, err
	}
	return puertos, nil
}

func (r *puertoRepo) Update(ctx context.Context, tx *gorm.DB, puerto *domain.Puerto) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Save(puerto).Error
}

func (r *puertoRepo) GetByCodigo(ctx context.Context, tx *gorm.DB, codigo string) (*domain.Puerto, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result domain.Puerto
	err := transaction.WithContext(ctx).
		Where("codigo = ?", codigo).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *puertoRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Puerto, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Puerto
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

func (r *puertoRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Puerto, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Puerto
	if err := transaction.WithContext(ctx).
		Order("codigo ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
