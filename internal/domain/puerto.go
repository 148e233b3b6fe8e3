package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Puerto struct {
	ID     uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Codigo string    `gorm:"uniqueIndex;not null;column:codigo" json:"codigo"`
	Nombre string    `gorm:"column:nombre;not null" json:"nombre"`
	Pais   string    `gorm:"column:pais" json:"pais"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Puerto) TableName() string { return "puerto" }

func (p *Puerto) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TipoBultoCNT homologa un codigo de tipo de bulto con el tipo de contenedor
// que exige el esquema aduanero.
type TipoBultoCNT struct {
	ID              uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	TipoBultoCodigo string    `gorm:"uniqueIndex;not null;column:tipo_bulto_codigo" json:"tipo_bulto_codigo"`
	TipoCNT         string    `gorm:"column:tipo_cnt;not null" json:"tipo_cnt"`
	Descripcion     string    `gorm:"column:descripcion" json:"descripcion"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TipoBultoCNT) TableName() string { return "tipo_bulto_cnt" }

func (t *TipoBultoCNT) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
