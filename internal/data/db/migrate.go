package db

import (
	"gorm.io/gorm"

	"github.com/andescargo/manifiesto-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// =========================
		// Catalogos
		// =========================
		&domain.Puerto{},
		&domain.TipoBultoCNT{},
		&domain.Participante{},

		// =========================
		// Manifiesto + agregado BL
		// =========================
		&domain.Manifiesto{},
		&domain.BL{},
		&domain.Item{},
		&domain.Contenedor{},
		&domain.Sello{},
		&domain.ContenedorIMO{},
		&domain.Transbordo{},

		// =========================
		// Validacion + exportacion
		// =========================
		&domain.Validacion{},
		&domain.ExportRun{},
	)
}
