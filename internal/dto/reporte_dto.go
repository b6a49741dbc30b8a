package dto

import "github.com/shopspring/decimal"

// RangoFilter bounds every report to a date range (inclusive).
// Empty bounds default to the current month.
type RangoFilter struct {
	Desde string `form:"desde"`
	Hasta string `form:"hasta"`
}

type TopProductoResponse struct {
	ProductoDocID string          `json:"producto_doc_id"`
	Nombre        string          `json:"nombre"`
	Unidades      int             `json:"unidades"`
	Ingresos      decimal.Decimal `json:"ingresos"`
}

type ResumenVentasResponse struct {
	Desde        string                `json:"desde"`
	Hasta        string                `json:"hasta"`
	NumVentas    int64                 `json:"num_ventas"`
	Unidades     int64                 `json:"unidades"`
	Total        decimal.Decimal       `json:"total"`
	TopProductos []TopProductoResponse `json:"top_productos"`
}

type ResumenComprasResponse struct {
	Desde      string          `json:"desde"`
	Hasta      string          `json:"hasta"`
	NumCompras int64           `json:"num_compras"`
	Total      decimal.Decimal `json:"total"`
}

type ResumenGastosResponse struct {
	Desde        string                     `json:"desde"`
	Hasta        string                     `json:"hasta"`
	Total        decimal.Decimal            `json:"total"`
	PorCategoria map[string]decimal.Decimal `json:"por_categoria"`
}

type HistorialPrecioResponse struct {
	ID            string          `json:"id"`
	ProductoDocID string          `json:"producto_doc_id"`
	CostoAntes    decimal.Decimal `json:"costo_antes"`
	CostoDespues  decimal.Decimal `json:"costo_despues"`
	PrecioAntes   decimal.Decimal `json:"precio_antes"`
	PrecioDespues decimal.Decimal `json:"precio_despues"`
	Motivo        string          `json:"motivo"`
	CreatedAt     string          `json:"created_at"`
}
