package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ExportResultadoOK        = "OK"
	ExportResultadoRechazado = "RECHAZADO"
)

// ExportRun registra cada intento de exportacion masiva de XMLs para un
// manifiesto, con los bl_numbers solicitados y el desenlace.
type ExportRun struct {
	ID            uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	ManifiestoID  uuid.UUID      `gorm:"type:char(36);not null;index" json:"manifiesto_id"`
	Payload       datatypes.JSON `gorm:"column:payload" json:"payload"`
	Resultado     string         `gorm:"column:resultado;not null" json:"resultado"`
	ArchivoNombre string         `gorm:"column:archivo_nombre" json:"archivo_nombre"`

	CreatedAt time.Time `json:"created_at"`
}

func (ExportRun) TableName() string { return "export_run" }

func (e *ExportRun) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
