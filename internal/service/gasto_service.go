package service

import (
	"context"
	"errors"
	"time"

	"maquillarte/internal/dto"
	"maquillarte/internal/model"
	"maquillarte/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrGastoNoEncontrado = errors.New("gasto no encontrado")
	// ErrGastoDeCompra rejects direct deletion of a purchase mirror: the
	// expense lives and dies with its purchase.
	ErrGastoDeCompra = errors.New("el gasto pertenece a una compra, elimine la compra")
)

// GastoService manages manual operating expenses. Purchase mirrors are created
// and deleted exclusively by the reconciliation engine.
type GastoService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearGastoRequest) (*dto.GastoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.GastoResponse, error)
	Listar(ctx context.Context, filter dto.GastoFilter) (*dto.GastoListResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type gastoService struct {
	repo repository.GastoRepository
}

func NewGastoService(repo repository.GastoRepository) GastoService {
	return &gastoService{repo: repo}
}

func (s *gastoService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearGastoRequest) (*dto.GastoResponse, error) {
	fechaHora := time.Now()
	if req.FechaHora != nil && *req.FechaHora != "" {
		parsed, err := time.Parse(time.RFC3339, *req.FechaHora)
		if err != nil {
			return nil, errors.New("fecha_hora inválida, use RFC 3339")
		}
		fechaHora = parsed
	}

	var proveedorID *uuid.UUID
	if req.ProveedorID != nil && *req.ProveedorID != "" {
		id, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, errors.New("proveedor_id inválido")
		}
		proveedorID = &id
	}

	g := model.Gasto{
		Descripcion: req.Descripcion,
		Monto:       req.Monto,
		Categoria:   req.Categoria,
		Tipo:        "operativo",
		ProveedorID: proveedorID,
		FechaHora:   fechaHora,
		UsuarioID:   usuarioID,
	}
	if err := s.repo.Create(ctx, &g); err != nil {
		return nil, err
	}
	return gastoToResponse(&g), nil
}

func (s *gastoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.GastoResponse, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if esNoEncontrado(err) {
			return nil, ErrGastoNoEncontrado
		}
		return nil, err
	}
	return gastoToResponse(g), nil
}

func (s *gastoService) Listar(ctx context.Context, filter dto.GastoFilter) (*dto.GastoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	gastos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.GastoResponse, 0, len(gastos))
	for i := range gastos {
		data = append(data, *gastoToResponse(&gastos[i]))
	}
	return &dto.GastoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *gastoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if esNoEncontrado(err) {
			return ErrGastoNoEncontrado
		}
		return err
	}
	if g.CompraID != nil {
		return ErrGastoDeCompra
	}
	return s.repo.Delete(ctx, id)
}

func gastoToResponse(g *model.Gasto) *dto.GastoResponse {
	var proveedorID, compraID *string
	if g.ProveedorID != nil {
		v := g.ProveedorID.String()
		proveedorID = &v
	}
	if g.CompraID != nil {
		v := g.CompraID.String()
		compraID = &v
	}
	return &dto.GastoResponse{
		ID:          g.ID.String(),
		Descripcion: g.Descripcion,
		Monto:       g.Monto,
		Categoria:   g.Categoria,
		Tipo:        g.Tipo,
		ProveedorID: proveedorID,
		CompraID:    compraID,
		FechaHora:   g.FechaHora.Format(time.RFC3339),
	}
}
