package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// LineaCompraRequest is one purchase line. EsNuevo=true introduces ProductoID
// as a brand-new code (Nombre and Costo required); EsNuevo=false restocks the
// existing product with that code.
type LineaCompraRequest struct {
	ProductoID string          `json:"producto_id" validate:"required,min=3,max=40"`
	Nombre     string          `json:"nombre"      validate:"required_if=EsNuevo true,omitempty,min=2,max=120"`
	Cantidad   int             `json:"cantidad"    validate:"required,min=1"`
	Costo      decimal.Decimal `json:"costo"       validate:"required"`
	Precio     decimal.Decimal `json:"precio"      validate:"min=0"`
	EsNuevo    bool            `json:"es_nuevo"`
}

type RegistrarCompraRequest struct {
	ProveedorID string               `json:"proveedor_id" validate:"required,uuid"`
	Items       []LineaCompraRequest `json:"items"        validate:"required,min=1,dive"`
}

// ─── Filter / List ──────────────────────────────────────────────────────────

type CompraFilter struct {
	ProveedorID string `form:"proveedor_id"`
	Desde       string `form:"desde"`
	Hasta       string `form:"hasta"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LineaCompraResponse struct {
	ProductoID string          `json:"producto_id"`
	Nombre     string          `json:"nombre"`
	Cantidad   int             `json:"cantidad"`
	Costo      decimal.Decimal `json:"costo"`
	Precio     decimal.Decimal `json:"precio"`
	EsNuevo    bool            `json:"es_nuevo"`
}

type CompraResponse struct {
	ID              string                `json:"id"`
	ProveedorID     string                `json:"proveedor_id"`
	NombreProveedor string                `json:"nombre_proveedor"`
	Total           decimal.Decimal       `json:"total"`
	FechaHora       string                `json:"fecha_hora"`
	Items           []LineaCompraResponse `json:"items"`
	GastoID         *string               `json:"gasto_id"`
}

type CompraListResponse struct {
	Data  []CompraResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
