package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Marca de carga peligrosa en los items ("S"/"N").
const (
	CargaPeligrosaSi = "S"
	CargaPeligrosaNo = "N"
)

type Item struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	BLID       uuid.UUID `gorm:"type:char(36);not null;index" json:"bl_id"`
	NumeroItem int       `gorm:"column:numero_item;not null" json:"numero_item"`

	Descripcion     string  `gorm:"column:descripcion" json:"descripcion"`
	Marcas          string  `gorm:"column:marcas" json:"marcas"`
	TipoBultoCodigo string  `gorm:"column:tipo_bulto_codigo" json:"tipo_bulto_codigo"`
	Cantidad        int     `gorm:"column:cantidad" json:"cantidad"`
	Peso            float64 `gorm:"column:peso" json:"peso"`
	PesoUnidad      string  `gorm:"column:peso_unidad" json:"peso_unidad"`
	Volumen         float64 `gorm:"column:volumen" json:"volumen"`
	VolumenUnidad   string  `gorm:"column:volumen_unidad" json:"volumen_unidad"`
	CargaPeligrosa  string  `gorm:"column:carga_peligrosa;not null;default:N" json:"carga_peligrosa"`

	Contenedores []*Contenedor `gorm:"many2many:item_contenedor" json:"contenedores,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Item) TableName() string { return "item" }

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
