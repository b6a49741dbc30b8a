package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VentaEnc is a sale header. Mutable only through the reconciled edit flow,
// which re-diffs line quantities and recomputes Total in the same transaction.
// Estado: "completada" | (rows are physically deleted on reversal, so no
// "anulada" state survives).
type VentaEnc struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NombreCliente string    `gorm:"not null"`
	FechaHora     time.Time `gorm:"index;not null"`
	TipoEntrega   string    `gorm:"type:varchar(20);not null"` // "local" | "domicilio"
	TipoPago      string    `gorm:"type:varchar(20);not null"` // "efectivo" | "tarjeta" | "transferencia"
	Banco         *string
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Observaciones *string
	UsuarioID     uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Detalles []VentaDet `gorm:"foreignKey:VentaEncID;constraint:OnDelete:CASCADE"`
}

func (VentaEnc) TableName() string { return "venta_enc" }

// VentaDet is one sale line, owned exclusively by its header.
// ProductoDocID references inventario.id (the stable storage id);
// ProductoID keeps the business code as it read at sale time.
type VentaDet struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaEncID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     string          `gorm:"not null"`
	ProductoDocID  string          `gorm:"index;not null"`
	Nombre         string          `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Cantidad       int             `gorm:"not null"`
	CreatedAt      time.Time
}

func (VentaDet) TableName() string { return "venta_det" }
