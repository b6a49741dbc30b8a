package service

import (
	"context"
	"time"

	"maquillarte/internal/dto"
	"maquillarte/internal/model"
	"maquillarte/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventarioService exposes the audit side of the inventory: the direct stock
// adjustment (always with a motivo), the movement log and the low-stock list.
type InventarioService interface {
	AjustarStock(ctx context.Context, usuarioID uuid.UUID, productoID string, req dto.AjusteStockRequest) (*dto.ProductoResponse, error)
	ListarMovimientos(ctx context.Context, filter dto.MovimientoStockFilter) (*dto.MovimientoStockListResponse, error)
	AlertasStockBajo(ctx context.Context) ([]dto.AlertaStockResponse, error)
}

type inventarioService struct {
	productoRepo repository.ProductoRepository
	movRepo      repository.MovimientoStockRepository
}

func NewInventarioService(productoRepo repository.ProductoRepository, movRepo repository.MovimientoStockRepository) InventarioService {
	return &inventarioService{productoRepo: productoRepo, movRepo: movRepo}
}

// AjustarStock applies a signed delta under the same locking discipline as the
// reconciliation engine. A delta that would leave the quantity negative fails.
func (s *inventarioService) AjustarStock(ctx context.Context, usuarioID uuid.UUID, productoID string, req dto.AjusteStockRequest) (*dto.ProductoResponse, error) {
	var actualizado model.Producto
	txErr := runTx(ctx, s.productoRepo.DB(), func(tx *gorm.DB) error {
		p, err := s.productoRepo.FindByIDTx(tx, productoID)
		if err != nil {
			if esNoEncontrado(err) {
				return ErrProductoNoEncontrado
			}
			return err
		}
		if p.Cantidad+req.Delta < 0 {
			return &StockInsuficienteError{Nombre: p.Nombre, Solicitado: -req.Delta, Disponible: p.Cantidad}
		}
		if err := s.productoRepo.UpdateStockTx(tx, p.ID, req.Delta); err != nil {
			return err
		}
		mov := &model.MovimientoStock{
			ProductoDocID:    p.ID,
			Tipo:             "ajuste_manual",
			Cantidad:         req.Delta,
			CantidadAnterior: p.Cantidad,
			CantidadNueva:    p.Cantidad + req.Delta,
			Motivo:           req.Motivo,
			UsuarioID:        &usuarioID,
		}
		if err := s.movRepo.CreateTx(tx, mov); err != nil {
			return err
		}
		actualizado = *p
		actualizado.Cantidad = p.Cantidad + req.Delta
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return productoToResponse(&actualizado), nil
}

func (s *inventarioService) ListarMovimientos(ctx context.Context, filter dto.MovimientoStockFilter) (*dto.MovimientoStockListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	movimientos, total, err := s.movRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MovimientoStockResponse, 0, len(movimientos))
	for _, m := range movimientos {
		var ref *string
		if m.ReferenciaID != nil {
			v := m.ReferenciaID.String()
			ref = &v
		}
		data = append(data, dto.MovimientoStockResponse{
			ID:               m.ID.String(),
			ProductoDocID:    m.ProductoDocID,
			Tipo:             m.Tipo,
			Cantidad:         m.Cantidad,
			CantidadAnterior: m.CantidadAnterior,
			CantidadNueva:    m.CantidadNueva,
			Motivo:           m.Motivo,
			ReferenciaID:     ref,
			CreatedAt:        m.CreatedAt.Format(time.RFC3339),
		})
	}
	return &dto.MovimientoStockListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *inventarioService) AlertasStockBajo(ctx context.Context) ([]dto.AlertaStockResponse, error) {
	productos, err := s.productoRepo.ListBajoStockMinimo(ctx)
	if err != nil {
		return nil, err
	}
	alertas := make([]dto.AlertaStockResponse, 0, len(productos))
	for _, p := range productos {
		alertas = append(alertas, dto.AlertaStockResponse{
			ProductoDocID: p.ID,
			Codigo:        p.Codigo,
			Nombre:        p.Nombre,
			Cantidad:      p.Cantidad,
			StockMinimo:   p.StockMinimo,
		})
	}
	return alertas, nil
}
