package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ParticipanteShipper   = "SHIPPER"
	ParticipanteConsignee = "CONSIGNEE"
	ParticipanteNotify    = "NOTIFY"
)

type Participante struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Nombre    string    `gorm:"column:nombre;not null" json:"nombre"`
	Direccion string    `gorm:"column:direccion" json:"direccion"`
	Tipo      string    `gorm:"column:tipo;not null" json:"tipo"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Participante) TableName() string { return "participante" }

func (p *Participante) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
