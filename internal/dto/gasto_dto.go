package dto

import "github.com/shopspring/decimal"

type CrearGastoRequest struct {
	Descripcion string          `json:"descripcion"  validate:"required,min=3,max=200"`
	Monto       decimal.Decimal `json:"monto"        validate:"required"`
	Categoria   string          `json:"categoria"    validate:"required"`
	ProveedorID *string         `json:"proveedor_id" validate:"omitempty,uuid"`
	FechaHora   *string         `json:"fecha_hora"` // RFC 3339; empty = now
}

type GastoFilter struct {
	Categoria string `form:"categoria"`
	Tipo      string `form:"tipo"` // compra | operativo | "" = todos
	Desde     string `form:"desde"`
	Hasta     string `form:"hasta"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type GastoResponse struct {
	ID          string          `json:"id"`
	Descripcion string          `json:"descripcion"`
	Monto       decimal.Decimal `json:"monto"`
	Categoria   string          `json:"categoria"`
	Tipo        string          `json:"tipo"`
	ProveedorID *string         `json:"proveedor_id"`
	CompraID    *string         `json:"compra_id"`
	FechaHora   string          `json:"fecha_hora"`
}

type GastoListResponse struct {
	Data  []GastoResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
