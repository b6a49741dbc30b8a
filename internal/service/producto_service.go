package service

import (
	"context"
	"time"

	"maquillarte/internal/dto"
	"maquillarte/internal/model"
	"maquillarte/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ProductoService covers the product catalog CRUD. Quantity writes here are
// the audited administrative override; the normal quantity flow lives in the
// reconciliation engine.
type ProductoService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id string) (*dto.ProductoResponse, error)
	ObtenerPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, usuarioID uuid.UUID, id string, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id string) error
	Reactivar(ctx context.Context, id string) error
	HistorialPrecios(ctx context.Context, id string, limit int) ([]dto.HistorialPrecioResponse, error)
}

type productoService struct {
	repo          repository.ProductoRepository
	movRepo       repository.MovimientoStockRepository
	historialRepo repository.HistorialPrecioRepository
	rdb           *redis.Client
}

func NewProductoService(
	repo repository.ProductoRepository,
	movRepo repository.MovimientoStockRepository,
	historialRepo repository.HistorialPrecioRepository,
	rdb *redis.Client,
) ProductoService {
	return &productoService{repo: repo, movRepo: movRepo, historialRepo: historialRepo, rdb: rdb}
}

func (s *productoService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if _, err := s.repo.FindByCodigo(ctx, req.Codigo); err == nil {
		return nil, &CodigoDuplicadoError{Codigo: req.Codigo}
	} else if !esNoEncontrado(err) {
		return nil, err
	}

	stockMinimo := req.StockMinimo
	if stockMinimo == 0 {
		stockMinimo = 5
	}
	p := model.Producto{
		ID:          uuid.New().String(),
		Codigo:      req.Codigo,
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Categoria:   req.Categoria,
		Costo:       req.Costo,
		Precio:      req.Precio,
		Cantidad:    req.Cantidad,
		StockMinimo: stockMinimo,
		Activo:      true,
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}

	if req.Cantidad > 0 {
		_ = s.movRepo.Create(ctx, &model.MovimientoStock{
			ProductoDocID:    p.ID,
			Tipo:             "ajuste_manual",
			Cantidad:         req.Cantidad,
			CantidadAnterior: 0,
			CantidadNueva:    req.Cantidad,
			Motivo:           "Stock inicial de alta manual",
			UsuarioID:        &usuarioID,
		})
	}
	s.invalidarCachePrecio(ctx, p.Codigo)
	return productoToResponse(&p), nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id string) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if esNoEncontrado(err) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) ObtenerPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByCodigo(ctx, codigo)
	if err != nil {
		if esNoEncontrado(err) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, *productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// Actualizar applies an administrative edit. A Cantidad override and a price
// change both leave an audit trail (movimiento "ajuste_manual" / historial
// "manual") in the same transaction as the update itself.
func (s *productoService) Actualizar(ctx context.Context, usuarioID uuid.UUID, id string, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if esNoEncontrado(err) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}

	codigoAnterior := p.Codigo
	if req.Codigo != nil && *req.Codigo != p.Codigo {
		if _, err := s.repo.FindByCodigo(ctx, *req.Codigo); err == nil {
			return nil, &CodigoDuplicadoError{Codigo: *req.Codigo}
		} else if !esNoEncontrado(err) {
			return nil, err
		}
		p.Codigo = *req.Codigo
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.Categoria != nil {
		p.Categoria = *req.Categoria
	}
	if req.StockMinimo != nil {
		p.StockMinimo = *req.StockMinimo
	}

	cambioPrecio := false
	costoAntes, precioAntes := p.Costo, p.Precio
	if req.Costo != nil && !req.Costo.Equal(p.Costo) {
		p.Costo = *req.Costo
		cambioPrecio = true
	}
	if req.Precio != nil && !req.Precio.Equal(p.Precio) {
		p.Precio = *req.Precio
		cambioPrecio = true
	}

	cantidadAnterior := p.Cantidad
	overrideCantidad := req.Cantidad != nil && *req.Cantidad != p.Cantidad
	if overrideCantidad {
		p.Cantidad = *req.Cantidad
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		save := func() error {
			if tx == nil {
				return s.repo.Update(ctx, p)
			}
			return tx.Save(p).Error
		}
		if err := save(); err != nil {
			return err
		}
		if overrideCantidad {
			mov := &model.MovimientoStock{
				ProductoDocID:    p.ID,
				Tipo:             "ajuste_manual",
				Cantidad:         p.Cantidad - cantidadAnterior,
				CantidadAnterior: cantidadAnterior,
				CantidadNueva:    p.Cantidad,
				Motivo:           "Ajuste administrativo de inventario",
				UsuarioID:        &usuarioID,
			}
			if err := s.movRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		if cambioPrecio {
			h := &model.HistorialPrecio{
				ProductoDocID: p.ID,
				CostoAntes:    costoAntes,
				CostoDespues:  p.Costo,
				PrecioAntes:   precioAntes,
				PrecioDespues: p.Precio,
				Motivo:        "manual",
			}
			if err := s.historialRepo.CreateTx(tx, h); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.invalidarCachePrecio(ctx, codigoAnterior)
	s.invalidarCachePrecio(ctx, p.Codigo)
	return productoToResponse(p), nil
}

func (s *productoService) Desactivar(ctx context.Context, id string) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if esNoEncontrado(err) {
			return ErrProductoNoEncontrado
		}
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidarCachePrecio(ctx, p.Codigo)
	return nil
}

func (s *productoService) Reactivar(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if esNoEncontrado(err) {
			return ErrProductoNoEncontrado
		}
		return err
	}
	return s.repo.Reactivar(ctx, id)
}

func (s *productoService) HistorialPrecios(ctx context.Context, id string, limit int) ([]dto.HistorialPrecioResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if esNoEncontrado(err) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}
	historial, err := s.historialRepo.ListByProducto(ctx, id, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HistorialPrecioResponse, 0, len(historial))
	for _, h := range historial {
		out = append(out, dto.HistorialPrecioResponse{
			ID:            h.ID.String(),
			ProductoDocID: h.ProductoDocID,
			CostoAntes:    h.CostoAntes,
			CostoDespues:  h.CostoDespues,
			PrecioAntes:   h.PrecioAntes,
			PrecioDespues: h.PrecioDespues,
			Motivo:        h.Motivo,
			CreatedAt:     h.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

// invalidarCachePrecio drops the public price cache entry. Best effort.
func (s *productoService) invalidarCachePrecio(ctx context.Context, codigo string) {
	if s.rdb == nil {
		return
	}
	_ = s.rdb.Del(ctx, "precio:"+codigo).Err()
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:                  p.ID,
		Codigo:              p.Codigo,
		Nombre:              p.Nombre,
		Descripcion:         p.Descripcion,
		Categoria:           p.Categoria,
		Costo:               p.Costo,
		Precio:              p.Precio,
		Cantidad:            p.Cantidad,
		StockMinimo:         p.StockMinimo,
		Activo:              p.Activo,
		UltimaActualizacion: p.UpdatedAt.Format(time.RFC3339),
	}
}
