package service

import (
	"context"
	"errors"

	"maquillarte/internal/dto"
	"maquillarte/internal/model"
	"maquillarte/internal/repository"

	"github.com/google/uuid"
)

var ErrProveedorNoEncontrado = errors.New("proveedor no encontrado")

type ProveedorService interface {
	Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error)
	Listar(ctx context.Context) ([]dto.ProveedorResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type proveedorService struct {
	repo repository.ProveedorRepository
}

func NewProveedorService(repo repository.ProveedorRepository) ProveedorService {
	return &proveedorService{repo: repo}
}

func (s *proveedorService) Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	p := model.Proveedor{
		Nombre:    req.Nombre,
		RUC:       req.RUC,
		Telefono:  req.Telefono,
		Email:     req.Email,
		Direccion: req.Direccion,
		Notas:     req.Notas,
		Activo:    true,
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	if len(req.Contactos) > 0 {
		contactos := contactosFromRequest(p.ID, req.Contactos)
		if err := s.repo.ReplaceContactos(ctx, p.ID, contactos); err != nil {
			return nil, err
		}
		p.Contactos = contactos
	}
	return proveedorToResponse(&p), nil
}

func (s *proveedorService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if esNoEncontrado(err) {
			return nil, ErrProveedorNoEncontrado
		}
		return nil, err
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) Listar(ctx context.Context) ([]dto.ProveedorResponse, error) {
	proveedores, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProveedorResponse, 0, len(proveedores))
	for i := range proveedores {
		out = append(out, *proveedorToResponse(&proveedores[i]))
	}
	return out, nil
}

func (s *proveedorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if esNoEncontrado(err) {
			return nil, ErrProveedorNoEncontrado
		}
		return nil, err
	}

	p.Nombre = req.Nombre
	p.RUC = req.RUC
	p.Telefono = req.Telefono
	p.Email = req.Email
	p.Direccion = req.Direccion
	p.Notas = req.Notas
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	contactos := contactosFromRequest(p.ID, req.Contactos)
	if err := s.repo.ReplaceContactos(ctx, p.ID, contactos); err != nil {
		return nil, err
	}
	p.Contactos = contactos
	return proveedorToResponse(p), nil
}

func (s *proveedorService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if esNoEncontrado(err) {
			return ErrProveedorNoEncontrado
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func contactosFromRequest(proveedorID uuid.UUID, reqs []dto.ContactoProveedorRequest) []model.ContactoProveedor {
	contactos := make([]model.ContactoProveedor, 0, len(reqs))
	for _, c := range reqs {
		contactos = append(contactos, model.ContactoProveedor{
			ProveedorID: proveedorID,
			Nombre:      c.Nombre,
			Cargo:       c.Cargo,
			Telefono:    c.Telefono,
			Email:       c.Email,
		})
	}
	return contactos
}

func proveedorToResponse(p *model.Proveedor) *dto.ProveedorResponse {
	contactos := make([]dto.ContactoProveedorResponse, 0, len(p.Contactos))
	for _, c := range p.Contactos {
		contactos = append(contactos, dto.ContactoProveedorResponse{
			ID:       c.ID.String(),
			Nombre:   c.Nombre,
			Cargo:    c.Cargo,
			Telefono: c.Telefono,
			Email:    c.Email,
		})
	}
	return &dto.ProveedorResponse{
		ID:        p.ID.String(),
		Nombre:    p.Nombre,
		RUC:       p.RUC,
		Telefono:  p.Telefono,
		Email:     p.Email,
		Direccion: p.Direccion,
		Notas:     p.Notas,
		Activo:    p.Activo,
		Contactos: contactos,
	}
}
