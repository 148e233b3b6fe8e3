package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Transbordo struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	BLID         uuid.UUID `gorm:"type:char(36);not null;index" json:"bl_id"`
	Sec          int       `gorm:"column:sec;not null" json:"sec"`
	// Nombre del puerto no se persiste: el codec y la validacion lo resuelven
	// en vivo contra el catalogo.
	PuertoCodigo string `gorm:"column:puerto_codigo;not null" json:"puerto_codigo"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Transbordo) TableName() string { return "transbordo" }

func (t *Transbordo) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
