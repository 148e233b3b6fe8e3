package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/andescargo/manifiesto-backend/internal/data/repos"
	"github.com/andescargo/manifiesto-backend/internal/domain"
	"github.com/andescargo/manifiesto-backend/internal/platform/logger"
)

// CatalogService resuelve catalogos (puertos, homologacion de tipos de
// bulto) para el motor de validacion y el codec. Lleva un cache opcional en
// redis con TTL corto; las mutaciones de puertos invalidan la clave, asi el
// cache nunca queda indefinidamente desactualizado. Sin redis configurado
// lee directo de la base.
type CatalogService interface {
	PuertoPorCodigo(ctx context.Context, codigo string) (*domain.Puerto, error)
	ListPuertos(ctx context.Context) ([]*domain.Puerto, error)
	CreatePuerto(ctx context.Context, puerto *domain.Puerto) (*domain.Puerto, error)
	UpdatePuerto(ctx context.Context, puerto *domain.Puerto) error
	TipoCNTParaBulto(ctx context.Context, tipoBultoCodigo string) (string, error)
	ListTiposBulto(ctx context.Context) ([]*domain.TipoBultoCNT, error)
}

type catalogService struct {
	db            *gorm.DB
	log           *logger.Logger
	puertoRepo    repos.PuertoRepo
	tipoBultoRepo repos.TipoBultoRepo
	cache         *redis.Client
	cacheTTL      time.Duration
}

func NewCatalogService(
	db *gorm.DB,
	baseLog *logger.Logger,
	puertoRepo repos.PuertoRepo,
	tipoBultoRepo repos.TipoBultoRepo,
	cache *redis.Client,
	cacheTTL time.Duration,
) CatalogService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &catalogService{
		db:            db,
		log:           baseLog.With("service", "CatalogService"),
		puertoRepo:    puertoRepo,
		tipoBultoRepo: tipoBultoRepo,
		cache:         cache,
		cacheTTL:      cacheTTL,
	}
}

func puertoCacheKey(codigo string) string { return "catalogo:puerto:" + codigo }

func (s *catalogService) PuertoPorCodigo(ctx context.Context, codigo string) (*domain.Puerto, error) {
	if codigo == "" {
		return nil, nil
	}

	if s.cache != nil {
		raw, err := s.cache.Get(ctx, puertoCacheKey(codigo)).Bytes()
		if err == nil {
			var puerto domain.Puerto
			if uerr := json.Unmarshal(raw, &puerto); uerr == nil {
				return &puerto, nil
			}
		} else if err != redis.Nil {
			s.log.Warn("Cache de puertos no disponible, leyendo de base", "error", err, "codigo", codigo)
		}
	}

	puerto, err := s.puertoRepo.GetByCodigo(ctx, nil, codigo)
	if err != nil {
		return nil, fmt.Errorf("consultar puerto %s: %w", codigo, err)
	}
	if puerto == nil {
		return nil, nil
	}

	if s.cache != nil {
		if raw, merr := json.Marshal(puerto); merr == nil {
			if err := s.cache.Set(ctx, puertoCacheKey(codigo), raw, s.cacheTTL).Err(); err != nil {
				s.log.Warn("No se pudo cachear puerto", "error", err, "codigo", codigo)
			}
		}
	}
	return puerto, nil
}

func (s *catalogService) ListPuertos(ctx context.Context) ([]*domain.Puerto, error) {
	return s.puertoRepo.List(ctx, nil)
}

func (s *catalogService) CreatePuerto(ctx context.Context, puerto *domain.Puerto) (*domain.Puerto, error) {
	if puerto == nil || puerto.Codigo == "" || puerto.Nombre == "" {
		return nil, fmt.Errorf("puerto requiere codigo y nombre")
	}
	created, err := s.puertoRepo.Create(ctx, nil, []*domain.Puerto{puerto})
	if err != nil {
		return nil, err
	}
	s.bustPuerto(ctx, puerto.Codigo)
	return created[0], nil
}

func (s *catalogService) UpdatePuerto(ctx context.Context, puerto *domain.Puerto) error {
	if puerto == nil || puerto.Codigo == "" {
		return fmt.Errorf("puerto requiere codigo")
	}
	if err := s.puertoRepo.Update(ctx, nil, puerto); err != nil {
		return err
	}
	s.bustPuerto(ctx, puerto.Codigo)
	return nil
}

func (s *catalogService) bustPuerto(ctx context.Context, codigo string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, puertoCacheKey(codigo)).Err(); err != nil {
		s.log.Warn("No se pudo invalidar cache de puerto", "error", err, "codigo", codigo)
	}
}

func (s *catalogService) TipoCNTParaBulto(ctx context.Context, tipoBultoCodigo string) (string, error) {
	mapping, err := s.tipoBultoRepo.GetByCodigo(ctx, nil, tipoBultoCodigo)
	if err != nil {
		return "", fmt.Errorf("consultar homologacion %s: %w", tipoBultoCodigo, err)
	}
	if mapping == nil {
		return "", nil
	}
	return mapping.TipoCNT, nil
}

func (s *catalogService) ListTiposBulto(ctx context.Context) ([]*domain.TipoBultoCNT, error) {
	return s.tipoBultoRepo.List(ctx, nil)
}
