package dto

// AjusteStockRequest is the audited administrative stock override.
type AjusteStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Motivo string `json:"motivo" validate:"required,min=5,max=200"`
}

type MovimientoStockFilter struct {
	ProductoDocID string `form:"producto_doc_id"`
	Tipo          string `form:"tipo"`
	Page          int    `form:"page,default=1"    validate:"min=1"`
	Limit         int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type MovimientoStockResponse struct {
	ID               string  `json:"id"`
	ProductoDocID    string  `json:"producto_doc_id"`
	Tipo             string  `json:"tipo"`
	Cantidad         int     `json:"cantidad"`
	CantidadAnterior int     `json:"cantidad_anterior"`
	CantidadNueva    int     `json:"cantidad_nueva"`
	Motivo           string  `json:"motivo"`
	ReferenciaID     *string `json:"referencia_id"`
	CreatedAt        string  `json:"created_at"`
}

type MovimientoStockListResponse struct {
	Data  []MovimientoStockResponse `json:"data"`
	Total int64                     `json:"total"`
	Page  int                       `json:"page"`
	Limit int                       `json:"limit"`
}

type AlertaStockResponse struct {
	ProductoDocID string `json:"producto_doc_id"`
	Codigo        string `json:"codigo"`
	Nombre        string `json:"nombre"`
	Cantidad      int    `json:"cantidad"`
	StockMinimo   int    `json:"stock_minimo"`
}
