package app

import (
	"gorm.io/gorm"

	"github.com/andescargo/manifiesto-backend/internal/data/repos"
	"github.com/andescargo/manifiesto-backend/internal/platform/logger"
)

type Repos struct {
	Manifiesto   repos.ManifiestoRepo
	BL           repos.BLRepo
	Puerto       repos.PuertoRepo
	TipoBulto    repos.TipoBultoRepo
	Validacion   repos.ValidacionRepo
	Participante repos.ParticipanteRepo
	ExportRun    repos.ExportRunRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Manifiesto:   repos.NewManifiestoRepo(db, log),
		BL:           repos.NewBLRepo(db, log),
		Puerto:       repos.NewPuertoRepo(db, log),
		TipoBulto:    repos.NewTipoBultoRepo(db, log),
		Validacion:   repos.NewValidacionRepo(db, log),
		Participante: repos.NewParticipanteRepo(db, log),
		ExportRun:    repos.NewExportRunRepo(db, log),
	}
}
