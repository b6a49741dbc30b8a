package service_test

import (
	"context"
	"testing"

	"maquillarte/internal/dto"
	"maquillarte/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrearProveedor_ConContactos(t *testing.T) {
	repo := newStubProveedorRepo()
	svc := service.NewProveedorService(repo)

	cargo := "Ventas"
	resp, err := svc.Crear(context.Background(), dto.CrearProveedorRequest{
		Nombre: "Distribuidora Belleza SA",
		Contactos: []dto.ContactoProveedorRequest{
			{Nombre: "Julia Fernández", Cargo: &cargo},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Activo)
	require.Len(t, resp.Contactos, 1)
	assert.Equal(t, "Julia Fernández", resp.Contactos[0].Nombre)

	stored := repo.proveedores[uuid.MustParse(resp.ID)]
	require.NotNil(t, stored)
	assert.Len(t, stored.Contactos, 1)
}

func TestActualizarProveedor_ReemplazaContactos(t *testing.T) {
	repo := newStubProveedorRepo()
	svc := service.NewProveedorService(repo)
	p := seedProveedor(repo, "Importadora Glam")

	resp, err := svc.Actualizar(context.Background(), p.ID, dto.CrearProveedorRequest{
		Nombre: "Importadora Glam SRL",
		Contactos: []dto.ContactoProveedorRequest{
			{Nombre: "Contacto Nuevo"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Importadora Glam SRL", resp.Nombre)
	require.Len(t, resp.Contactos, 1)
	assert.Equal(t, "Contacto Nuevo", resp.Contactos[0].Nombre)
}

func TestDesactivarProveedor(t *testing.T) {
	repo := newStubProveedorRepo()
	svc := service.NewProveedorService(repo)
	p := seedProveedor(repo, "Proveedor Saliente")

	require.NoError(t, svc.Desactivar(context.Background(), p.ID))
	assert.False(t, repo.proveedores[p.ID].Activo)

	// La lista solo devuelve activos.
	lista, err := svc.Listar(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lista)
}

func TestObtenerProveedor_NoEncontrado(t *testing.T) {
	svc := service.NewProveedorService(newStubProveedorRepo())
	_, err := svc.Obtener(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrProveedorNoEncontrado)
}
