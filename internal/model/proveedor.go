package model

import (
	"time"

	"github.com/google/uuid"
)

// Proveedor represents a supplier referenced by purchases.
type Proveedor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	RUC       *string   `gorm:"column:ruc"`
	Telefono  *string
	Email     *string
	Direccion *string
	Notas     *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Contactos []ContactoProveedor `gorm:"foreignKey:ProveedorID"`
}

func (Proveedor) TableName() string { return "proveedores" }
