package model

import (
	"time"

	"github.com/google/uuid"
)

// MovimientoStock registra cada cambio de cantidad de un producto.
// Lo escribe el motor de reconciliación en la misma transacción que el
// cambio de stock; los ajustes administrativos directos también dejan rastro.
type MovimientoStock struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoDocID    string    `gorm:"not null;index"`
	Tipo             string    `gorm:"not null"` // "venta" | "edicion_venta" | "anulacion_venta" | "compra" | "anulacion_compra" | "ajuste_manual"
	Cantidad         int       `gorm:"not null"` // positive = entrada, negative = salida
	CantidadAnterior int       `gorm:"not null"`
	CantidadNueva    int       `gorm:"not null"`
	Motivo           string
	ReferenciaID     *uuid.UUID `gorm:"type:uuid"` // venta_enc.id o compras.id
	UsuarioID        *uuid.UUID `gorm:"type:uuid"`
	CreatedAt        time.Time
}

// TableName overrides GORM's default pluralization (movimiento_stocks → movimientos_stock).
func (MovimientoStock) TableName() string { return "movimientos_stock" }
