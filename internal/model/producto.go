package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto is the inventory record for one sellable item.
//
// ID is the storage document id: a generated UUID string for products created
// manually, or the business code itself for products first introduced through
// a purchase line (esNuevo). Ledger rows always reference ID, never Codigo —
// Codigo is the mutable barcode/business code printed on labels.
type Producto struct {
	ID          string `gorm:"primaryKey"`
	Codigo      string `gorm:"uniqueIndex;not null"`
	Nombre      string `gorm:"index;not null"`
	Descripcion *string
	Categoria   string          `gorm:"not null"`
	Costo       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// Precio may stay at zero for items registered via purchase only, until
	// an admin sets the selling price.
	Precio      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Cantidad    int             `gorm:"not null;default:0;check:cantidad >= 0"`
	StockMinimo int             `gorm:"not null;default:5"`
	Activo      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	// UpdatedAt doubles as ultima_actualizacion: GORM touches it on every mutation.
	UpdatedAt time.Time `gorm:"column:ultima_actualizacion"`
}

func (Producto) TableName() string { return "inventario" }
