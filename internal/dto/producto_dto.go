package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Codigo      string          `json:"codigo"       validate:"required,min=3,max=40"`
	Nombre      string          `json:"nombre"       validate:"required,min=2,max=120"`
	Descripcion *string         `json:"descripcion"`
	Categoria   string          `json:"categoria"    validate:"required"`
	Costo       decimal.Decimal `json:"costo"        validate:"min=0"`
	Precio      decimal.Decimal `json:"precio"       validate:"min=0"`
	Cantidad    int             `json:"cantidad"     validate:"min=0"`
	StockMinimo int             `json:"stock_minimo" validate:"min=0"`
}

// ActualizarProductoRequest is the administrative edit. Cantidad writes the
// quantity directly, outside the reconciliation engine — the override is
// audited through a movimiento_stock row, never merged into the sale flow.
type ActualizarProductoRequest struct {
	Codigo      *string          `json:"codigo"       validate:"omitempty,min=3,max=40"`
	Nombre      *string          `json:"nombre"       validate:"omitempty,min=2,max=120"`
	Descripcion *string          `json:"descripcion"`
	Categoria   *string          `json:"categoria"`
	Costo       *decimal.Decimal `json:"costo"`
	Precio      *decimal.Decimal `json:"precio"`
	Cantidad    *int             `json:"cantidad"     validate:"omitempty,min=0"`
	StockMinimo *int             `json:"stock_minimo" validate:"omitempty,min=0"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductoFilter struct {
	Codigo    string `form:"codigo"`
	Nombre    string `form:"nombre"`
	Categoria string `form:"categoria"`
	Activo    string `form:"activo"` // "" = activos, "false" = inactivos, "all" = todos
	Page      int    `form:"page,default=1"  validate:"min=1"`
	Limit     int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID                  string          `json:"id"`
	Codigo              string          `json:"codigo"`
	Nombre              string          `json:"nombre"`
	Descripcion         *string         `json:"descripcion"`
	Categoria           string          `json:"categoria"`
	Costo               decimal.Decimal `json:"costo"`
	Precio              decimal.Decimal `json:"precio"`
	Cantidad            int             `json:"cantidad"`
	StockMinimo         int             `json:"stock_minimo"`
	Activo              bool            `json:"activo"`
	UltimaActualizacion string          `json:"ultima_actualizacion"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// ConsultaPreciosResponse is returned by the public price check endpoint.
type ConsultaPreciosResponse struct {
	Nombre          string          `json:"nombre"`
	Precio          decimal.Decimal `json:"precio"`
	StockDisponible int             `json:"stock_disponible"`
	Categoria       string          `json:"categoria"`
}
