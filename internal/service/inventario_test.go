package service_test

import (
	"context"
	"testing"

	"maquillarte/internal/dto"
	"maquillarte/internal/model"
	"maquillarte/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildInventario() (service.InventarioService, *stubProductoRepo, *stubMovimientoRepo) {
	productoRepo := newStubProductoRepo()
	movRepo := &stubMovimientoRepo{}
	return service.NewInventarioService(productoRepo, movRepo), productoRepo, movRepo
}

func TestAjustarStock_DeltaPositivo(t *testing.T) {
	svc, productoRepo, movRepo := buildInventario()
	p := seedProducto(productoRepo, "Paleta Correctora", "PAL-300", 3, 2)
	usuarioID := uuid.New()

	resp, err := svc.AjustarStock(context.Background(), usuarioID, p.ID, dto.AjusteStockRequest{
		Delta:  7,
		Motivo: "Conteo físico de fin de mes",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Cantidad)
	assert.Equal(t, 10, productoRepo.productos[p.ID].Cantidad)

	movs := movRepo.porTipo("ajuste_manual")
	require.Len(t, movs, 1)
	assert.Equal(t, 7, movs[0].Cantidad)
	assert.Equal(t, 3, movs[0].CantidadAnterior)
	assert.Equal(t, 10, movs[0].CantidadNueva)
	assert.Equal(t, "Conteo físico de fin de mes", movs[0].Motivo)
	require.NotNil(t, movs[0].UsuarioID)
	assert.Equal(t, usuarioID, *movs[0].UsuarioID)
}

func TestAjustarStock_DeltaNegativo(t *testing.T) {
	svc, productoRepo, _ := buildInventario()
	p := seedProducto(productoRepo, "Esponja de Maquillaje", "ESP-310", 8, 2)

	resp, err := svc.AjustarStock(context.Background(), uuid.New(), p.ID, dto.AjusteStockRequest{
		Delta:  -3,
		Motivo: "Unidades dañadas en depósito",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Cantidad)
}

func TestAjustarStock_NoPermiteNegativo(t *testing.T) {
	svc, productoRepo, movRepo := buildInventario()
	p := seedProducto(productoRepo, "Pinza de Cejas", "PIN-320", 2, 1)

	_, err := svc.AjustarStock(context.Background(), uuid.New(), p.ID, dto.AjusteStockRequest{
		Delta:  -5,
		Motivo: "Ajuste imposible de prueba",
	})
	var stockErr *service.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, productoRepo.productos[p.ID].Cantidad)
	assert.Empty(t, movRepo.movimientos)
}

func TestAjustarStock_ProductoInexistente(t *testing.T) {
	svc, _, _ := buildInventario()
	_, err := svc.AjustarStock(context.Background(), uuid.New(), "no-existe", dto.AjusteStockRequest{
		Delta:  1,
		Motivo: "Ajuste sobre producto inexistente",
	})
	assert.ErrorIs(t, err, service.ErrProductoNoEncontrado)
}

func TestAlertasStockBajo(t *testing.T) {
	svc, productoRepo, _ := buildInventario()
	bajo := seedProducto(productoRepo, "Delineador Café", "DEL-330", 2, 5)
	seedProducto(productoRepo, "Rubor Rosado", "RUB-331", 20, 5)
	inactivo := seedProducto(productoRepo, "Crema Retirada", "CRE-332", 0, 5)
	inactivo.Activo = false

	alertas, err := svc.AlertasStockBajo(context.Background())
	require.NoError(t, err)
	require.Len(t, alertas, 1)
	assert.Equal(t, bajo.ID, alertas[0].ProductoDocID)
	assert.Equal(t, 2, alertas[0].Cantidad)
	assert.Equal(t, 5, alertas[0].StockMinimo)
}

func TestListarMovimientos_FiltraPorTipo(t *testing.T) {
	svc, productoRepo, movRepo := buildInventario()
	p := seedProducto(productoRepo, "Sérum de Pestañas", "SER-340", 5, 2)

	_, err := svc.AjustarStock(context.Background(), uuid.New(), p.ID, dto.AjusteStockRequest{
		Delta:  2,
		Motivo: "Reposición de mostrador",
	})
	require.NoError(t, err)
	require.NoError(t, movRepo.Create(context.Background(), &model.MovimientoStock{
		ProductoDocID: p.ID,
		Tipo:          "venta",
		Cantidad:      -1,
	}))

	resp, err := svc.ListarMovimientos(context.Background(), dto.MovimientoStockFilter{Tipo: "ajuste_manual"})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "ajuste_manual", resp.Data[0].Tipo)
	assert.Equal(t, "Reposición de mostrador", resp.Data[0].Motivo)
}
