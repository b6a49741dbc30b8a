package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Compra is a supplier purchase header. Its lines are owned rows, never
// addressed outside the header (deleted in cascade with it).
type Compra struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProveedorID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	NombreProveedor string          `gorm:"not null"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FechaHora       time.Time       `gorm:"index;not null"`
	UsuarioID       uuid.UUID       `gorm:"type:uuid;index"`
	CreatedAt       time.Time

	Detalles  []CompraDet `gorm:"foreignKey:CompraID;constraint:OnDelete:CASCADE"`
	Proveedor *Proveedor  `gorm:"foreignKey:ProveedorID"`
}

func (Compra) TableName() string { return "compras" }

// CompraDet is one purchase line. EsNuevo marks "introduce this code as a new
// product" (the product is created with id == ProductoID) versus an additive
// restock of an existing code.
type CompraDet struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompraID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID string          `gorm:"not null"`
	Nombre     string          `gorm:"not null"`
	Cantidad   int             `gorm:"not null"`
	Costo      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Precio     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	EsNuevo    bool            `gorm:"not null;default:false"`
}

func (CompraDet) TableName() string { return "compra_det" }
