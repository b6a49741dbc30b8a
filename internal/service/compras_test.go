package service_test

import (
	"context"
	"testing"

	"maquillarte/internal/dto"
	"maquillarte/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── RegistrarCompra ───────────────────────────────────────────────────────────

func TestRegistrarCompra_ProductoNuevo(t *testing.T) {
	env := buildReconciliacion()
	prov := seedProveedor(env.proveedorRepo, "Distribuidora Belleza SA")

	resp, err := env.svc.RegistrarCompra(context.Background(), uuid.New(), dto.RegistrarCompraRequest{
		ProveedorID: prov.ID.String(),
		Items: []dto.LineaCompraRequest{
			{
				ProductoID: "GLOSS-200",
				Nombre:     "Gloss Transparente",
				Cantidad:   12,
				Costo:      decimal.NewFromInt(45),
				Precio:     decimal.NewFromInt(90),
				EsNuevo:    true,
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "540", resp.Total.String()) // 45 × 12

	// El producto nace con id de documento igual a su código de negocio.
	p, ok := env.productoRepo.productos["GLOSS-200"]
	require.True(t, ok)
	assert.Equal(t, "GLOSS-200", p.Codigo)
	assert.Equal(t, 12, p.Cantidad)
	assert.Equal(t, "general", p.Categoria)
	assert.Equal(t, "90", p.Precio.String())
	assert.True(t, p.Activo)

	movs := env.movRepo.porTipo("compra")
	require.Len(t, movs, 1)
	assert.Equal(t, 0, movs[0].CantidadAnterior)
	assert.Equal(t, 12, movs[0].CantidadNueva)

	// Espejo en gastos, enlazado por compra_id.
	require.NotNil(t, resp.GastoID)
	gasto := env.gastoRepo.porCompra(uuid.MustParse(resp.ID))
	require.NotNil(t, gasto)
	assert.Equal(t, "540", gasto.Monto.String())
	assert.Equal(t, "inventario", gasto.Categoria)
	assert.Equal(t, "compra", gasto.Tipo)
}

func TestRegistrarCompra_ReabastecimientoEsAditivo(t *testing.T) {
	env := buildReconciliacion()
	prov := seedProveedor(env.proveedorRepo, "Importadora Glam")
	p := seedProducto(env.productoRepo, "Labial Nude", "LAB-210", 4, 2)
	p.Costo = decimal.NewFromInt(60)

	_, err := env.svc.RegistrarCompra(context.Background(), uuid.New(), dto.RegistrarCompraRequest{
		ProveedorID: prov.ID.String(),
		Items: []dto.LineaCompraRequest{
			{ProductoID: p.Codigo, Cantidad: 6, Costo: decimal.NewFromInt(60)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 10, env.productoRepo.productos[p.ID].Cantidad) // 4 + 6

	movs := env.movRepo.porTipo("compra")
	require.Len(t, movs, 1)
	assert.Equal(t, 4, movs[0].CantidadAnterior)
	assert.Equal(t, 10, movs[0].CantidadNueva)

	// Mismo costo y sin precio nuevo: no hay entrada de historial.
	assert.Empty(t, env.historialRepo.entradas)
}

func TestRegistrarCompra_CambioDeCostoGeneraHistorial(t *testing.T) {
	env := buildReconciliacion()
	prov := seedProveedor(env.proveedorRepo, "Cosmética del Norte")
	p := seedProducto(env.productoRepo, "Base Matte", "BAS-220", 5, 2)
	p.Costo = decimal.NewFromInt(60)
	p.Precio = decimal.NewFromInt(100)

	_, err := env.svc.RegistrarCompra(context.Background(), uuid.New(), dto.RegistrarCompraRequest{
		ProveedorID: prov.ID.String(),
		Items: []dto.LineaCompraRequest{
			// Costo sube, la línea no trae precio: el de venta se mantiene.
			{ProductoID: p.Codigo, Cantidad: 3, Costo: decimal.NewFromInt(75)},
		},
	})
	require.NoError(t, err)

	actualizado := env.productoRepo.productos[p.ID]
	assert.Equal(t, "75", actualizado.Costo.String())
	assert.Equal(t, "100", actualizado.Precio.String())

	require.Len(t, env.historialRepo.entradas, 1)
	h := env.historialRepo.entradas[0]
	assert.Equal(t, "60", h.CostoAntes.String())
	assert.Equal(t, "75", h.CostoDespues.String())
	assert.Equal(t, "100", h.PrecioAntes.String())
	assert.Equal(t, "100", h.PrecioDespues.String())
	assert.Equal(t, "compra", h.Motivo)
	require.NotNil(t, h.ProveedorID)
	assert.Equal(t, prov.ID, *h.ProveedorID)
}

func TestRegistrarCompra_CodigoDuplicado(t *testing.T) {
	env := buildReconciliacion()
	prov := seedProveedor(env.proveedorRepo, "Proveedor Duplicados")
	seedProducto(env.productoRepo, "Rímel Existente", "RIM-230", 3, 1)

	_, err := env.svc.RegistrarCompra(context.Background(), uuid.New(), dto.RegistrarCompraRequest{
		ProveedorID: prov.ID.String(),
		Items: []dto.LineaCompraRequest{
			{ProductoID: "RIM-230", Nombre: "Rímel Otra Marca", Cantidad: 5, Costo: decimal.NewFromInt(40), EsNuevo: true},
		},
	})

	var dupErr *service.CodigoDuplicadoError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "RIM-230", dupErr.Codigo)
	assert.Empty(t, env.compraRepo.compras)
	assert.Empty(t, env.gastoRepo.gastos)
}

func TestRegistrarCompra_RestockDeCodigoInexistente(t *testing.T) {
	env := buildReconciliacion()
	prov := seedProveedor(env.proveedorRepo, "Proveedor Fantasma")

	_, err := env.svc.RegistrarCompra(context.Background(), uuid.New(), dto.RegistrarCompraRequest{
		ProveedorID: prov.ID.String(),
		Items: []dto.LineaCompraRequest{
			{ProductoID: "NO-EXISTE", Cantidad: 2, Costo: decimal.NewFromInt(10)},
		},
	})
	assert.ErrorIs(t, err, service.ErrProductoNoEncontrado)
}

func TestRegistrarCompra_ProveedorInexistente(t *testing.T) {
	env := buildReconciliacion()

	_, err := env.svc.RegistrarCompra(context.Background(), uuid.New(), dto.RegistrarCompraRequest{
		ProveedorID: uuid.New().String(),
		Items: []dto.LineaCompraRequest{
			{ProductoID: "X-1", Nombre: "X", Cantidad: 1, Costo: decimal.NewFromInt(1), EsNuevo: true},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "proveedor no encontrado")
}

func TestRegistrarCompra_LineaFallidaNoDejaNada(t *testing.T) {
	env := buildReconciliacion()
	prov := seedProveedor(env.proveedorRepo, "Proveedor Mixto")

	// La segunda línea referencia un código inexistente: la compra entera
	// debe rechazarse, incluida el alta de la primera línea.
	_, err := env.svc.RegistrarCompra(context.Background(), uuid.New(), dto.RegistrarCompraRequest{
		ProveedorID: prov.ID.String(),
		Items: []dto.LineaCompraRequest{
			{ProductoID: "NUEVO-240", Nombre: "Exfoliante", Cantidad: 5, Costo: decimal.NewFromInt(30), EsNuevo: true},
			{ProductoID: "ROTO-241", Cantidad: 2, Costo: decimal.NewFromInt(15)},
		},
	})
	require.ErrorIs(t, err, service.ErrProductoNoEncontrado)
	assert.Empty(t, env.compraRepo.compras)
	assert.Empty(t, env.productoRepo.productos) // ni siquiera el alta de la primera línea
	assert.Empty(t, env.movRepo.movimientos)
	assert.Empty(t, env.gastoRepo.gastos)
	assert.Empty(t, env.historialRepo.entradas)
}

// ── EliminarCompra ────────────────────────────────────────────────────────────

func TestEliminarCompra_RevierteStockYBorraEspejo(t *testing.T) {
	env := buildReconciliacion()
	prov := seedProveedor(env.proveedorRepo, "Distribuidora Central")
	p := seedProducto(env.productoRepo, "Quitaesmalte", "QUI-250", 4, 1)

	resp, err := env.svc.RegistrarCompra(context.Background(), uuid.New(), dto.RegistrarCompraRequest{
		ProveedorID: prov.ID.String(),
		Items: []dto.LineaCompraRequest{
			{ProductoID: p.Codigo, Cantidad: 6, Costo: decimal.NewFromInt(60)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 10, env.productoRepo.productos[p.ID].Cantidad)

	compraID := uuid.MustParse(resp.ID)
	require.NoError(t, env.svc.EliminarCompra(context.Background(), compraID))

	assert.Equal(t, 4, env.productoRepo.productos[p.ID].Cantidad)
	assert.Empty(t, env.compraRepo.compras)
	assert.Nil(t, env.gastoRepo.porCompra(compraID))

	movs := env.movRepo.porTipo("anulacion_compra")
	require.Len(t, movs, 1)
	assert.Equal(t, -6, movs[0].Cantidad)

	_, err = env.svc.ObtenerCompra(context.Background(), compraID)
	assert.ErrorIs(t, err, service.ErrCompraNoEncontrada)
}

func TestEliminarCompra_UnidadesYaVendidas(t *testing.T) {
	env := buildReconciliacion()
	prov := seedProveedor(env.proveedorRepo, "Proveedor Express")
	p := seedProducto(env.productoRepo, "Sombra Dorada", "SOM-260", 0, 1)

	resp, err := env.svc.RegistrarCompra(context.Background(), uuid.New(), dto.RegistrarCompraRequest{
		ProveedorID: prov.ID.String(),
		Items: []dto.LineaCompraRequest{
			{ProductoID: p.Codigo, Cantidad: 5, Costo: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)

	// Se venden 3 de las 5 unidades compradas.
	_, err = env.svc.CrearVenta(context.Background(), uuid.New(), dto.CrearVentaRequest{
		NombreCliente: "Clienta Rápida",
		TipoEntrega:   "local",
		TipoPago:      "efectivo",
		Items:         []dto.LineaVentaRequest{{ProductoDocID: p.ID, Cantidad: 3}},
	})
	require.NoError(t, err)
	require.Equal(t, 2, env.productoRepo.productos[p.ID].Cantidad)

	// Revertir la compra exigiría quitar 5 con solo 2 disponibles.
	compraID := uuid.MustParse(resp.ID)
	err = env.svc.EliminarCompra(context.Background(), compraID)
	var stockErr *service.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)

	// La compra y su gasto espejo siguen intactos.
	assert.Len(t, env.compraRepo.compras, 1)
	assert.NotNil(t, env.gastoRepo.porCompra(compraID))
}

func TestEliminarCompra_ProductoEliminadoSeOmite(t *testing.T) {
	env := buildReconciliacion()
	prov := seedProveedor(env.proveedorRepo, "Proveedor Saliente")
	p := seedProducto(env.productoRepo, "Perfume Mini", "PER-270", 2, 1)

	resp, err := env.svc.RegistrarCompra(context.Background(), uuid.New(), dto.RegistrarCompraRequest{
		ProveedorID: prov.ID.String(),
		Items: []dto.LineaCompraRequest{
			{ProductoID: p.Codigo, Cantidad: 3, Costo: decimal.NewFromInt(80)},
		},
	})
	require.NoError(t, err)

	delete(env.productoRepo.productos, p.ID)

	require.NoError(t, env.svc.EliminarCompra(context.Background(), uuid.MustParse(resp.ID)))
	assert.Empty(t, env.compraRepo.compras)
}

func TestEliminarCompra_NoEncontrada(t *testing.T) {
	env := buildReconciliacion()
	err := env.svc.EliminarCompra(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrCompraNoEncontrada)
}
