package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Manifiesto struct {
	ID            uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	Numero        string         `gorm:"uniqueIndex;not null;column:numero" json:"numero"`
	Nave          string         `gorm:"column:nave" json:"nave"`
	Viaje         string         `gorm:"column:viaje" json:"viaje"`
	PuertoOrigen  string         `gorm:"column:puerto_origen" json:"puerto_origen"`
	PuertoDestino string         `gorm:"column:puerto_destino" json:"puerto_destino"`
	FechaZarpe    *time.Time     `gorm:"column:fecha_zarpe" json:"fecha_zarpe,omitempty"`
	Estado        string         `gorm:"column:estado;not null;default:CREADO" json:"estado"`
	BLs           []*BL          `gorm:"foreignKey:ManifiestoID;references:ID" json:"bls,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Manifiesto) TableName() string { return "manifiesto" }

func (m *Manifiesto) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
