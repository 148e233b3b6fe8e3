package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Nivel de la entidad a la que refiere un hallazgo de validacion.
const (
	NivelBL         = "BL"
	NivelItem       = "ITEM"
	NivelContenedor = "CONTENEDOR"
	NivelTransbordo = "TRANSBORDO"
)

// Severidad del hallazgo. ERROR bloquea la generacion de XML; OBS es
// informativa y no bloquea.
const (
	SeveridadError = "ERROR"
	SeveridadObs   = "OBS"
)

// Validacion es un hallazgo del motor de validacion. El conjunto para un BL
// es un snapshot: se reemplaza completo en cada recalculo, nunca se acumula.
type Validacion struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	BLID      uuid.UUID `gorm:"type:char(36);not null;index" json:"bl_id"`
	Nivel     string    `gorm:"column:nivel;not null" json:"nivel"`
	Campo     string    `gorm:"column:campo;not null" json:"campo"`
	Sec       *int      `gorm:"column:sec" json:"sec,omitempty"`
	Severidad string    `gorm:"column:severidad;not null" json:"severidad"`
	Mensaje   string    `gorm:"column:mensaje;not null" json:"mensaje"`
	// Posicion del hallazgo dentro del snapshot, preserva el orden de
	// presentacion del motor.
	Orden int `gorm:"column:orden;not null;default:0" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (Validacion) TableName() string { return "validacion" }

func (v *Validacion) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
