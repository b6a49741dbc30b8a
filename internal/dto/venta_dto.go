package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// LineaVentaRequest is one line of a new sale. PrecioUnitario is optional:
// when zero the current selling price of the product is used.
type LineaVentaRequest struct {
	ProductoDocID  string          `json:"producto_doc_id" validate:"required"`
	Cantidad       int             `json:"cantidad"        validate:"required,min=1"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"min=0"`
}

type CrearVentaRequest struct {
	NombreCliente string              `json:"nombre_cliente" validate:"required,min=2,max=120"`
	TipoEntrega   string              `json:"tipo_entrega"   validate:"required,oneof=local domicilio"`
	TipoPago      string              `json:"tipo_pago"      validate:"required,oneof=efectivo tarjeta transferencia"`
	Banco         *string             `json:"banco"`
	Observaciones *string             `json:"observaciones"`
	Items         []LineaVentaRequest `json:"items" validate:"required,min=1,dive"`
}

// LineaVentaEdit is one entry of the replacement line set of an edit.
// ID present       → existing line, delta-reconciled against its stored quantity.
// ID absent        → line added during the edit.
// Cantidad == 0    → line removed (full stock restoration).
type LineaVentaEdit struct {
	ID             *string         `json:"id"              validate:"omitempty,uuid"`
	ProductoDocID  string          `json:"producto_doc_id" validate:"required"`
	Cantidad       int             `json:"cantidad"        validate:"min=0"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"min=0"`
}

type ActualizarVentaRequest struct {
	NombreCliente *string          `json:"nombre_cliente" validate:"omitempty,min=2,max=120"`
	TipoEntrega   *string          `json:"tipo_entrega"   validate:"omitempty,oneof=local domicilio"`
	TipoPago      *string          `json:"tipo_pago"      validate:"omitempty,oneof=efectivo tarjeta transferencia"`
	Banco         *string          `json:"banco"`
	Observaciones *string          `json:"observaciones"`
	Items         []LineaVentaEdit `json:"items" validate:"required,dive"`
}

// ─── Filter / List ──────────────────────────────────────────────────────────

// VentaFilter is bound from query string of GET /v1/ventas.
type VentaFilter struct {
	Desde string `form:"desde"` // YYYY-MM-DD; empty = today
	Hasta string `form:"hasta"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LineaVentaResponse struct {
	ID             string          `json:"id"`
	ProductoID     string          `json:"producto_id"`
	ProductoDocID  string          `json:"producto_doc_id"`
	Nombre         string          `json:"nombre"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Cantidad       int             `json:"cantidad"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID            string               `json:"id"`
	NombreCliente string               `json:"nombre_cliente"`
	FechaHora     string               `json:"fecha_hora"`
	TipoEntrega   string               `json:"tipo_entrega"`
	TipoPago      string               `json:"tipo_pago"`
	Banco         *string              `json:"banco"`
	Total         decimal.Decimal      `json:"total"`
	Observaciones *string              `json:"observaciones"`
	Items         []LineaVentaResponse `json:"items"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
