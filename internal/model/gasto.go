package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Gasto is an expense entry. Purchase-derived expenses carry CompraID, so the
// mirror can be removed by direct lookup when its purchase is deleted —
// no heuristic matching by provider/amount/time window.
// Categoria: "inventario" for purchase mirrors, free-form for manual expenses.
type Gasto struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Descripcion string          `gorm:"not null"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Categoria   string          `gorm:"index;not null"`
	Tipo        string          `gorm:"type:varchar(20);not null"` // "compra" | "operativo"
	ProveedorID *uuid.UUID      `gorm:"type:uuid;index"`
	CompraID    *uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	FechaHora   time.Time       `gorm:"index;not null"`
	UsuarioID   uuid.UUID       `gorm:"type:uuid"`
	CreatedAt   time.Time
}

func (Gasto) TableName() string { return "gastos" }
