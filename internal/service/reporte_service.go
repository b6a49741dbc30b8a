package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"maquillarte/internal/dto"
	"maquillarte/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ReporteService builds the sales/purchases/expenses summaries and the file
// exports. Everything is read-only over the ledgers.
type ReporteService interface {
	ResumenVentas(ctx context.Context, filter dto.RangoFilter) (*dto.ResumenVentasResponse, error)
	ResumenCompras(ctx context.Context, filter dto.RangoFilter) (*dto.ResumenComprasResponse, error)
	ResumenGastos(ctx context.Context, filter dto.RangoFilter) (*dto.ResumenGastosResponse, error)
	ExportarVentasCSV(ctx context.Context, filter dto.RangoFilter) ([]byte, error)
	ExportarVentasExcel(ctx context.Context, filter dto.RangoFilter) ([]byte, error)
}

type reporteService struct {
	repo repository.ReporteRepository
}

func NewReporteService(repo repository.ReporteRepository) ReporteService {
	return &reporteService{repo: repo}
}

func (s *reporteService) ResumenVentas(ctx context.Context, filter dto.RangoFilter) (*dto.ResumenVentasResponse, error) {
	totales, err := s.repo.ResumenVentas(ctx, filter.Desde, filter.Hasta)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.TopProductos(ctx, filter.Desde, filter.Hasta, 10)
	if err != nil {
		return nil, err
	}
	topResp := make([]dto.TopProductoResponse, 0, len(top))
	for _, t := range top {
		topResp = append(topResp, dto.TopProductoResponse{
			ProductoDocID: t.ProductoDocID,
			Nombre:        t.Nombre,
			Unidades:      t.Unidades,
			Ingresos:      t.Ingresos,
		})
	}
	return &dto.ResumenVentasResponse{
		Desde:        filter.Desde,
		Hasta:        filter.Hasta,
		NumVentas:    totales.NumVentas,
		Unidades:     totales.Unidades,
		Total:        totales.Total,
		TopProductos: topResp,
	}, nil
}

func (s *reporteService) ResumenCompras(ctx context.Context, filter dto.RangoFilter) (*dto.ResumenComprasResponse, error) {
	numCompras, total, err := s.repo.ResumenCompras(ctx, filter.Desde, filter.Hasta)
	if err != nil {
		return nil, err
	}
	return &dto.ResumenComprasResponse{
		Desde:      filter.Desde,
		Hasta:      filter.Hasta,
		NumCompras: numCompras,
		Total:      total,
	}, nil
}

func (s *reporteService) ResumenGastos(ctx context.Context, filter dto.RangoFilter) (*dto.ResumenGastosResponse, error) {
	total, porCategoria, err := s.repo.ResumenGastos(ctx, filter.Desde, filter.Hasta)
	if err != nil {
		return nil, err
	}
	desglose := make(map[string]decimal.Decimal, len(porCategoria))
	for _, c := range porCategoria {
		desglose[c.Categoria] = c.Total
	}
	return &dto.ResumenGastosResponse{
		Desde:        filter.Desde,
		Hasta:        filter.Hasta,
		Total:        total,
		PorCategoria: desglose,
	}, nil
}

func (s *reporteService) ExportarVentasCSV(ctx context.Context, filter dto.RangoFilter) ([]byte, error) {
	ventas, err := s.repo.VentasEnRango(ctx, filter.Desde, filter.Hasta)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"fecha", "cliente", "tipo_entrega", "tipo_pago", "producto", "cantidad", "precio_unitario", "subtotal", "total_venta"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, v := range ventas {
		for _, det := range v.Detalles {
			subtotal := det.PrecioUnitario.Mul(decimal.NewFromInt(int64(det.Cantidad)))
			row := []string{
				v.FechaHora.Format(time.RFC3339),
				v.NombreCliente,
				v.TipoEntrega,
				v.TipoPago,
				det.Nombre,
				fmt.Sprintf("%d", det.Cantidad),
				det.PrecioUnitario.StringFixed(2),
				subtotal.StringFixed(2),
				v.Total.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *reporteService) ExportarVentasExcel(ctx context.Context, filter dto.RangoFilter) ([]byte, error) {
	ventas, err := s.repo.VentasEnRango(ctx, filter.Desde, filter.Hasta)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const hoja = "Ventas"
	f.SetSheetName("Sheet1", hoja)

	encabezados := []string{"Fecha", "Cliente", "Entrega", "Pago", "Producto", "Cantidad", "Precio", "Subtotal", "Total venta"}
	for i, h := range encabezados {
		celda, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(hoja, celda, h); err != nil {
			return nil, err
		}
	}

	fila := 2
	for _, v := range ventas {
		for _, det := range v.Detalles {
			subtotal := det.PrecioUnitario.Mul(decimal.NewFromInt(int64(det.Cantidad)))
			valores := []interface{}{
				v.FechaHora.Format("2006-01-02 15:04"),
				v.NombreCliente,
				v.TipoEntrega,
				v.TipoPago,
				det.Nombre,
				det.Cantidad,
				det.PrecioUnitario.InexactFloat64(),
				subtotal.InexactFloat64(),
				v.Total.InexactFloat64(),
			}
			for col, val := range valores {
				celda, _ := excelize.CoordinatesToCellName(col+1, fila)
				if err := f.SetCellValue(hoja, celda, val); err != nil {
					return nil, err
				}
			}
			fila++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
