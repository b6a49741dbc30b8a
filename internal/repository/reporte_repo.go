package repository

import (
	"context"

	"maquillarte/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TotalVentas aggregates sale headers in a date range.
type TotalVentas struct {
	NumVentas int64
	Unidades  int64
	Total     decimal.Decimal
}

// TopProducto is one row of the best-sellers ranking.
type TopProducto struct {
	ProductoDocID string
	Nombre        string
	Unidades      int
	Ingresos      decimal.Decimal
}

// TotalPorCategoria is one row of the expense-by-category breakdown.
type TotalPorCategoria struct {
	Categoria string
	Total     decimal.Decimal
}

// ReporteRepository runs the read-only aggregate queries behind the reports.
// All ranges are inclusive dates (YYYY-MM-DD).
type ReporteRepository interface {
	ResumenVentas(ctx context.Context, desde, hasta string) (*TotalVentas, error)
	TopProductos(ctx context.Context, desde, hasta string, limit int) ([]TopProducto, error)
	VentasEnRango(ctx context.Context, desde, hasta string) ([]model.VentaEnc, error)
	ResumenCompras(ctx context.Context, desde, hasta string) (int64, decimal.Decimal, error)
	ResumenGastos(ctx context.Context, desde, hasta string) (decimal.Decimal, []TotalPorCategoria, error)
}

type reporteRepo struct{ db *gorm.DB }

func NewReporteRepository(db *gorm.DB) ReporteRepository { return &reporteRepo{db: db} }

func (r *reporteRepo) ResumenVentas(ctx context.Context, desde, hasta string) (*TotalVentas, error) {
	var out TotalVentas
	err := r.db.WithContext(ctx).
		Model(&model.VentaEnc{}).
		Select("COUNT(*) AS num_ventas, COALESCE(SUM(total), 0) AS total").
		Where("DATE(fecha_hora) BETWEEN ? AND ?", desde, hasta).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Model(&model.VentaDet{}).
		Select("COALESCE(SUM(venta_det.cantidad), 0)").
		Joins("JOIN venta_enc ON venta_enc.id = venta_det.venta_enc_id").
		Where("DATE(venta_enc.fecha_hora) BETWEEN ? AND ?", desde, hasta).
		Scan(&out.Unidades).Error
	return &out, err
}

func (r *reporteRepo) TopProductos(ctx context.Context, desde, hasta string, limit int) ([]TopProducto, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	var top []TopProducto
	err := r.db.WithContext(ctx).
		Model(&model.VentaDet{}).
		Select(`venta_det.producto_doc_id,
			MAX(venta_det.nombre) AS nombre,
			SUM(venta_det.cantidad) AS unidades,
			SUM(venta_det.precio_unitario * venta_det.cantidad) AS ingresos`).
		Joins("JOIN venta_enc ON venta_enc.id = venta_det.venta_enc_id").
		Where("DATE(venta_enc.fecha_hora) BETWEEN ? AND ?", desde, hasta).
		Group("venta_det.producto_doc_id").
		Order("unidades DESC").
		Limit(limit).
		Scan(&top).Error
	return top, err
}

func (r *reporteRepo) VentasEnRango(ctx context.Context, desde, hasta string) ([]model.VentaEnc, error) {
	var ventas []model.VentaEnc
	err := r.db.WithContext(ctx).
		Preload("Detalles").
		Where("DATE(fecha_hora) BETWEEN ? AND ?", desde, hasta).
		Order("fecha_hora ASC").
		Find(&ventas).Error
	return ventas, err
}

func (r *reporteRepo) ResumenCompras(ctx context.Context, desde, hasta string) (int64, decimal.Decimal, error) {
	var out struct {
		NumCompras int64
		Total      decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&model.Compra{}).
		Select("COUNT(*) AS num_compras, COALESCE(SUM(total), 0) AS total").
		Where("DATE(fecha_hora) BETWEEN ? AND ?", desde, hasta).
		Scan(&out).Error
	return out.NumCompras, out.Total, err
}

func (r *reporteRepo) ResumenGastos(ctx context.Context, desde, hasta string) (decimal.Decimal, []TotalPorCategoria, error) {
	var porCategoria []TotalPorCategoria
	err := r.db.WithContext(ctx).
		Model(&model.Gasto{}).
		Select("categoria, COALESCE(SUM(monto), 0) AS total").
		Where("DATE(fecha_hora) BETWEEN ? AND ?", desde, hasta).
		Group("categoria").
		Order("total DESC").
		Scan(&porCategoria).Error
	if err != nil {
		return decimal.Zero, nil, err
	}
	total := decimal.Zero
	for _, c := range porCategoria {
		total = total.Add(c.Total)
	}
	return total, porCategoria, nil
}
