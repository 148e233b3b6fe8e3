package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Contenedor struct {
	ID   uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	BLID uuid.UUID `gorm:"type:char(36);not null;index" json:"bl_id"`
	Sec  int       `gorm:"column:sec;not null" json:"sec"`

	// Codigo de 11 caracteres: 4 letras + 7 digitos.
	Codigo string `gorm:"column:codigo;not null" json:"codigo"`
	// Derivado del tipo de bulto del item asociado via tabla de homologacion,
	// no editable por el usuario.
	TipoCNT       string  `gorm:"column:tipo_cnt" json:"tipo_cnt"`
	Peso          float64 `gorm:"column:peso" json:"peso"`
	PesoUnidad    string  `gorm:"column:peso_unidad" json:"peso_unidad"`
	Volumen       float64 `gorm:"column:volumen" json:"volumen"`
	VolumenUnidad string  `gorm:"column:volumen_unidad" json:"volumen_unidad"`

	Sellos []*Sello         `gorm:"foreignKey:ContenedorID;references:ID" json:"sellos,omitempty"`
	IMOs   []*ContenedorIMO `gorm:"foreignKey:ContenedorID;references:ID" json:"imos,omitempty"`
	Items  []*Item          `gorm:"many2many:item_contenedor" json:"items,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Contenedor) TableName() string { return "contenedor" }

func (c *Contenedor) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Sello struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	ContenedorID uuid.UUID `gorm:"type:char(36);not null;index" json:"contenedor_id"`
	Numero       string    `gorm:"column:numero;size:35;not null" json:"numero"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Sello) TableName() string { return "sello" }

func (s *Sello) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type ContenedorIMO struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	ContenedorID uuid.UUID `gorm:"type:char(36);not null;index" json:"contenedor_id"`
	Clase        string    `gorm:"column:clase;not null" json:"clase"`
	Numero       string    `gorm:"column:numero;not null" json:"numero"`
	CreatedAt    time.Time `json:"created_at"`
}

func (ContenedorIMO) TableName() string { return "contenedor_imo" }

func (m *ContenedorIMO) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
