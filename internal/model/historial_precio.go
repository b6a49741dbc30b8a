package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HistorialPrecio registra cada cambio de costo o precio de un producto.
// Los registros son inmutables — nunca se eliminan ni modifican.
// Motivo: "compra" (restock con costo distinto) | "manual" (edición directa).
type HistorialPrecio struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoDocID string          `gorm:"not null;index"`
	ProveedorID   *uuid.UUID      `gorm:"type:uuid;index"`
	CostoAntes    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CostoDespues  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecioAntes   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecioDespues decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Motivo        string          `gorm:"not null;default:'manual'"`
	CreatedAt     time.Time
}

func (HistorialPrecio) TableName() string { return "historial_precios" }
