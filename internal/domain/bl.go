package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tipo de servicio del BL. MM corresponde a contenedores vacios, por lo que
// peso y volumen pueden ser cero.
const (
	ServicioFF = "FF"
	ServicioMM = "MM"
)

// Ciclo de vida del BL.
const (
	EstadoCreado   = "CREADO"
	EstadoValidado = "VALIDADO"
	EstadoEnviado  = "ENVIADO"
	EstadoAnulado  = "ANULADO"
)

// Estado de validacion derivado del snapshot de hallazgos.
const (
	ValidOK    = "OK"
	ValidOBS   = "OBS"
	ValidError = "ERROR"
)

type BL struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	BLNumber     string    `gorm:"uniqueIndex;not null;column:bl_number" json:"bl_number"`
	ManifiestoID uuid.UUID `gorm:"type:char(36);not null;index" json:"manifiesto_id"`
	Viaje        string    `gorm:"column:viaje" json:"viaje"`
	TipoServicio string    `gorm:"column:tipo_servicio" json:"tipo_servicio"`

	FechaEmision      *time.Time `gorm:"column:fecha_emision" json:"fecha_emision,omitempty"`
	FechaPresentacion *time.Time `gorm:"column:fecha_presentacion" json:"fecha_presentacion,omitempty"`
	FechaZarpe        *time.Time `gorm:"column:fecha_zarpe" json:"fecha_zarpe,omitempty"`
	FechaEmbarque     *time.Time `gorm:"column:fecha_embarque" json:"fecha_embarque,omitempty"`

	PuertoOrigen    string `gorm:"column:puerto_origen" json:"puerto_origen"`
	PuertoRecepcion string `gorm:"column:puerto_recepcion" json:"puerto_recepcion"`
	PuertoEmbarque  string `gorm:"column:puerto_embarque" json:"puerto_embarque"`
	PuertoDescarga  string `gorm:"column:puerto_descarga" json:"puerto_descarga"`
	PuertoDestino   string `gorm:"column:puerto_destino" json:"puerto_destino"`
	LugarEntrega    string `gorm:"column:lugar_entrega" json:"lugar_entrega"`
	LugarEmision    string `gorm:"column:lugar_emision" json:"lugar_emision"`

	ShipperNombre   string     `gorm:"column:shipper_nombre" json:"shipper_nombre"`
	ShipperID       *uuid.UUID `gorm:"type:char(36);column:shipper_id" json:"shipper_id,omitempty"`
	ConsigneeNombre string     `gorm:"column:consignee_nombre" json:"consignee_nombre"`
	ConsigneeID     *uuid.UUID `gorm:"type:char(36);column:consignee_id" json:"consignee_id,omitempty"`
	NotifyNombre    string     `gorm:"column:notify_nombre" json:"notify_nombre"`
	NotifyID        *uuid.UUID `gorm:"type:char(36);column:notify_id" json:"notify_id,omitempty"`

	DescripcionCarga string  `gorm:"column:descripcion_carga" json:"descripcion_carga"`
	PesoBruto        float64 `gorm:"column:peso_bruto" json:"peso_bruto"`
	PesoUnidad       string  `gorm:"column:peso_unidad" json:"peso_unidad"`
	Volumen          float64 `gorm:"column:volumen" json:"volumen"`
	VolumenUnidad    string  `gorm:"column:volumen_unidad" json:"volumen_unidad"`
	TotalBultos      int     `gorm:"column:total_bultos" json:"total_bultos"`

	Estado          string `gorm:"column:estado;not null;default:CREADO" json:"estado"`
	ValidStatus     string `gorm:"column:valid_status;not null;default:OK" json:"valid_status"`
	ValidCountError int    `gorm:"column:valid_count_error;not null;default:0" json:"valid_count_error"`
	ValidCountObs   int    `gorm:"column:valid_count_obs;not null;default:0" json:"valid_count_obs"`

	Items        []*Item       `gorm:"foreignKey:BLID;references:ID" json:"items,omitempty"`
	Contenedores []*Contenedor `gorm:"foreignKey:BLID;references:ID" json:"contenedores,omitempty"`
	Transbordos  []*Transbordo `gorm:"foreignKey:BLID;references:ID" json:"transbordos,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (BL) TableName() string { return "bl" }

func (b *BL) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
