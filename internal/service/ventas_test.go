package service_test

import (
	"context"
	"errors"
	"testing"

	"maquillarte/internal/dto"
	"maquillarte/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reconciliacionEnv struct {
	svc           service.ReconciliacionService
	ventaRepo     *stubVentaRepo
	compraRepo    *stubCompraRepo
	productoRepo  *stubProductoRepo
	gastoRepo     *stubGastoRepo
	movRepo       *stubMovimientoRepo
	historialRepo *stubHistorialRepo
	proveedorRepo *stubProveedorRepo
}

func buildReconciliacion() *reconciliacionEnv {
	env := &reconciliacionEnv{
		ventaRepo:     newStubVentaRepo(),
		compraRepo:    newStubCompraRepo(),
		productoRepo:  newStubProductoRepo(),
		gastoRepo:     newStubGastoRepo(),
		movRepo:       &stubMovimientoRepo{},
		historialRepo: &stubHistorialRepo{},
		proveedorRepo: newStubProveedorRepo(),
	}
	env.svc = service.NewReconciliacionService(
		env.ventaRepo, env.compraRepo, env.productoRepo, env.gastoRepo,
		env.movRepo, env.historialRepo, env.proveedorRepo, nil,
	)
	return env
}

// ── CrearVenta ────────────────────────────────────────────────────────────────

func TestCrearVenta_DescuentaStockYRegistraMovimiento(t *testing.T) {
	env := buildReconciliacion()
	p := seedProducto(env.productoRepo, "Labial Rojo Intenso", "LAB-001", 10, 2)
	p.Precio = decimal.NewFromInt(150)

	resp, err := env.svc.CrearVenta(context.Background(), uuid.New(), dto.CrearVentaRequest{
		NombreCliente: "Carla Méndez",
		TipoEntrega:   "local",
		TipoPago:      "efectivo",
		Items: []dto.LineaVentaRequest{
			{ProductoDocID: p.ID, Cantidad: 3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "450", resp.Total.String())
	assert.Equal(t, 7, env.productoRepo.productos[p.ID].Cantidad)

	movs := env.movRepo.porTipo("venta")
	require.Len(t, movs, 1)
	assert.Equal(t, -3, movs[0].Cantidad)
	assert.Equal(t, 10, movs[0].CantidadAnterior)
	assert.Equal(t, 7, movs[0].CantidadNueva)
	require.NotNil(t, movs[0].ReferenciaID)
	assert.Equal(t, resp.ID, movs[0].ReferenciaID.String())
}

func TestCrearVenta_LineasDuplicadasSeValidanAgregadas(t *testing.T) {
	env := buildReconciliacion()
	// 5 en stock: dos líneas de 3 suman 6 y deben rechazarse juntas, aunque
	// cada línea por separado tendría stock.
	p := seedProducto(env.productoRepo, "Base Líquida 30ml", "BAS-010", 5, 1)

	_, err := env.svc.CrearVenta(context.Background(), uuid.New(), dto.CrearVentaRequest{
		NombreCliente: "Lucía Paredes",
		TipoEntrega:   "local",
		TipoPago:      "tarjeta",
		Items: []dto.LineaVentaRequest{
			{ProductoDocID: p.ID, Cantidad: 3},
			{ProductoDocID: p.ID, Cantidad: 3},
		},
	})

	var stockErr *service.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 6, stockErr.Solicitado)
	assert.Equal(t, 5, stockErr.Disponible)

	// Nada quedó escrito.
	assert.Equal(t, 5, env.productoRepo.productos[p.ID].Cantidad)
	assert.Empty(t, env.ventaRepo.ventas)
	assert.Empty(t, env.movRepo.movimientos)
}

func TestCrearVenta_StockInsuficienteNoTocaOtrosProductos(t *testing.T) {
	env := buildReconciliacion()
	pOK := seedProducto(env.productoRepo, "Rímel Waterproof", "RIM-002", 20, 2)
	pCorto := seedProducto(env.productoRepo, "Delineador Negro", "DEL-003", 1, 1)

	_, err := env.svc.CrearVenta(context.Background(), uuid.New(), dto.CrearVentaRequest{
		NombreCliente: "Sofía Ruiz",
		TipoEntrega:   "domicilio",
		TipoPago:      "transferencia",
		Items: []dto.LineaVentaRequest{
			{ProductoDocID: pOK.ID, Cantidad: 5},
			{ProductoDocID: pCorto.ID, Cantidad: 4},
		},
	})

	var stockErr *service.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 20, env.productoRepo.productos[pOK.ID].Cantidad)
	assert.Equal(t, 1, env.productoRepo.productos[pCorto.ID].Cantidad)
	assert.Empty(t, env.ventaRepo.ventas)
}

func TestCrearVenta_ProductoInactivo(t *testing.T) {
	env := buildReconciliacion()
	p := seedProducto(env.productoRepo, "Sombra Descontinuada", "SOM-099", 8, 1)
	p.Activo = false

	_, err := env.svc.CrearVenta(context.Background(), uuid.New(), dto.CrearVentaRequest{
		NombreCliente: "Ana Torres",
		TipoEntrega:   "local",
		TipoPago:      "efectivo",
		Items:         []dto.LineaVentaRequest{{ProductoDocID: p.ID, Cantidad: 1}},
	})
	assert.ErrorIs(t, err, service.ErrProductoInactivo)
}

func TestCrearVenta_ProductoInexistente(t *testing.T) {
	env := buildReconciliacion()

	_, err := env.svc.CrearVenta(context.Background(), uuid.New(), dto.CrearVentaRequest{
		NombreCliente: "Ana Torres",
		TipoEntrega:   "local",
		TipoPago:      "efectivo",
		Items:         []dto.LineaVentaRequest{{ProductoDocID: "no-existe", Cantidad: 1}},
	})
	assert.ErrorIs(t, err, service.ErrProductoNoEncontrado)
}

func TestCrearVenta_PrecioPorDefectoYExplicito(t *testing.T) {
	env := buildReconciliacion()
	p := seedProducto(env.productoRepo, "Paleta de Sombras", "PAL-020", 10, 2)
	p.Precio = decimal.NewFromInt(320)

	resp, err := env.svc.CrearVenta(context.Background(), uuid.New(), dto.CrearVentaRequest{
		NombreCliente: "Valeria Gómez",
		TipoEntrega:   "local",
		TipoPago:      "efectivo",
		Items: []dto.LineaVentaRequest{
			{ProductoDocID: p.ID, Cantidad: 1},                                          // precio de lista
			{ProductoDocID: p.ID, Cantidad: 1, PrecioUnitario: decimal.NewFromInt(280)}, // precio negociado
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "600", resp.Total.String())
	assert.Equal(t, 8, env.productoRepo.productos[p.ID].Cantidad)
}

// ── EliminarVenta ─────────────────────────────────────────────────────────────

func TestEliminarVenta_RestauraStock(t *testing.T) {
	env := buildReconciliacion()
	p := seedProducto(env.productoRepo, "Corrector Tono 3", "COR-030", 12, 2)

	resp, err := env.svc.CrearVenta(context.Background(), uuid.New(), dto.CrearVentaRequest{
		NombreCliente: "Rosa Díaz",
		TipoEntrega:   "local",
		TipoPago:      "efectivo",
		Items:         []dto.LineaVentaRequest{{ProductoDocID: p.ID, Cantidad: 4}},
	})
	require.NoError(t, err)
	require.Equal(t, 8, env.productoRepo.productos[p.ID].Cantidad)

	ventaID := uuid.MustParse(resp.ID)
	require.NoError(t, env.svc.EliminarVenta(context.Background(), ventaID))

	assert.Equal(t, 12, env.productoRepo.productos[p.ID].Cantidad)
	assert.Empty(t, env.ventaRepo.ventas)

	movs := env.movRepo.porTipo("anulacion_venta")
	require.Len(t, movs, 1)
	assert.Equal(t, 4, movs[0].Cantidad)

	_, err = env.svc.ObtenerVenta(context.Background(), ventaID)
	assert.ErrorIs(t, err, service.ErrVentaNoEncontrada)
}

func TestEliminarVenta_ProductoEliminadoSeOmite(t *testing.T) {
	env := buildReconciliacion()
	p := seedProducto(env.productoRepo, "Esmalte Coral", "ESM-040", 6, 1)

	resp, err := env.svc.CrearVenta(context.Background(), uuid.New(), dto.CrearVentaRequest{
		NombreCliente: "Mariana López",
		TipoEntrega:   "local",
		TipoPago:      "efectivo",
		Items:         []dto.LineaVentaRequest{{ProductoDocID: p.ID, Cantidad: 2}},
	})
	require.NoError(t, err)

	// El producto desaparece antes de anular la venta histórica.
	delete(env.productoRepo.productos, p.ID)

	require.NoError(t, env.svc.EliminarVenta(context.Background(), uuid.MustParse(resp.ID)))
	assert.Empty(t, env.ventaRepo.ventas)
	assert.Empty(t, env.movRepo.porTipo("anulacion_venta"))
}

func TestEliminarVenta_NoEncontrada(t *testing.T) {
	env := buildReconciliacion()
	err := env.svc.EliminarVenta(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrVentaNoEncontrada)
}

// ── ActualizarVenta ───────────────────────────────────────────────────────────

func crearVentaBase(t *testing.T, env *reconciliacionEnv, docID string, cantidad int) *dto.VentaResponse {
	t.Helper()
	resp, err := env.svc.CrearVenta(context.Background(), uuid.New(), dto.CrearVentaRequest{
		NombreCliente: "Cliente Base",
		TipoEntrega:   "local",
		TipoPago:      "efectivo",
		Items:         []dto.LineaVentaRequest{{ProductoDocID: docID, Cantidad: cantidad}},
	})
	require.NoError(t, err)
	return resp
}

func TestActualizarVenta_AumentaCantidad(t *testing.T) {
	env := buildReconciliacion()
	p := seedProducto(env.productoRepo, "Rubor Compacto", "RUB-050", 10, 2)
	venta := crearVentaBase(t, env, p.ID, 2) // stock 10 → 8

	lineaID := venta.Items[0].ID
	resp, err := env.svc.ActualizarVenta(context.Background(), uuid.MustParse(venta.ID), dto.ActualizarVentaRequest{
		Items: []dto.LineaVentaEdit{
			{ID: &lineaID, ProductoDocID: p.ID, Cantidad: 5},
		},
	})
	require.NoError(t, err)

	// Solo el delta (+3) se descuenta, no la cantidad completa.
	assert.Equal(t, 5, env.productoRepo.productos[p.ID].Cantidad)
	assert.Equal(t, "500", resp.Total.String())

	movs := env.movRepo.porTipo("edicion_venta")
	require.Len(t, movs, 1)
	assert.Equal(t, -3, movs[0].Cantidad)
}

func TestActualizarVenta_ReduceCantidad(t *testing.T) {
	env := buildReconciliacion()
	p := seedProducto(env.productoRepo, "Máscara de Pestañas", "MAS-060", 10, 2)
	venta := crearVentaBase(t, env, p.ID, 6) // stock 10 → 4

	lineaID := venta.Items[0].ID
	resp, err := env.svc.ActualizarVenta(context.Background(), uuid.MustParse(venta.ID), dto.ActualizarVentaRequest{
		Items: []dto.LineaVentaEdit{
			{ID: &lineaID, ProductoDocID: p.ID, Cantidad: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 8, env.productoRepo.productos[p.ID].Cantidad) // devolvió 4
	assert.Equal(t, "200", resp.Total.String())
}

func TestActualizarVenta_CantidadCeroEliminaLinea(t *testing.T) {
	env := buildReconciliacion()
	p := seedProducto(env.productoRepo, "Iluminador Líquido", "ILU-070", 10, 2)
	q := seedProducto(env.productoRepo, "Fijador en Spray", "FIJ-071", 10, 2)

	resp, err := env.svc.CrearVenta(context.Background(), uuid.New(), dto.CrearVentaRequest{
		NombreCliente: "Paula Vera",
		TipoEntrega:   "local",
		TipoPago:      "efectivo",
		Items: []dto.LineaVentaRequest{
			{ProductoDocID: p.ID, Cantidad: 3},
			{ProductoDocID: q.ID, Cantidad: 2},
		},
	})
	require.NoError(t, err)

	var lineaP, lineaQ string
	for _, item := range resp.Items {
		if item.ProductoDocID == p.ID {
			lineaP = item.ID
		} else {
			lineaQ = item.ID
		}
	}

	editada, err := env.svc.ActualizarVenta(context.Background(), uuid.MustParse(resp.ID), dto.ActualizarVentaRequest{
		Items: []dto.LineaVentaEdit{
			{ID: &lineaP, ProductoDocID: p.ID, Cantidad: 0}, // fuera
			{ID: &lineaQ, ProductoDocID: q.ID, Cantidad: 2}, // igual
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 10, env.productoRepo.productos[p.ID].Cantidad)
	assert.Equal(t, 8, env.productoRepo.productos[q.ID].Cantidad)
	require.Len(t, editada.Items, 1)
	assert.Equal(t, q.ID, editada.Items[0].ProductoDocID)
	assert.Equal(t, "200", editada.Total.String())
}

func TestActualizarVenta_LineaOmitidaSeRestaura(t *testing.T) {
	env := buildReconciliacion()
	p := seedProducto(env.productoRepo, "Bálsamo Labial", "BAL-080", 10, 2)
	q := seedProducto(env.productoRepo, "Crema Hidratante", "CRE-081", 10, 2)

	resp, err := env.svc.CrearVenta(context.Background(), uuid.New(), dto.CrearVentaRequest{
		NombreCliente: "Inés Romero",
		TipoEntrega:   "local",
		TipoPago:      "efectivo",
		Items: []dto.LineaVentaRequest{
			{ProductoDocID: p.ID, Cantidad: 2},
			{ProductoDocID: q.ID, Cantidad: 3},
		},
	})
	require.NoError(t, err)

	var lineaQ string
	for _, item := range resp.Items {
		if item.ProductoDocID == q.ID {
			lineaQ = item.ID
		}
	}

	// El payload solo trae la línea de q: la de p debe restaurarse y borrarse.
	editada, err := env.svc.ActualizarVenta(context.Background(), uuid.MustParse(resp.ID), dto.ActualizarVentaRequest{
		Items: []dto.LineaVentaEdit{
			{ID: &lineaQ, ProductoDocID: q.ID, Cantidad: 3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 10, env.productoRepo.productos[p.ID].Cantidad)
	require.Len(t, editada.Items, 1)
	assert.Equal(t, "300", editada.Total.String())
}

func TestActualizarVenta_AgregaLinea(t *testing.T) {
	env := buildReconciliacion()
	p := seedProducto(env.productoRepo, "Polvo Traslúcido", "POL-090", 10, 2)
	q := seedProducto(env.productoRepo, "Brocha Difuminadora", "BRO-091", 10, 2)
	venta := crearVentaBase(t, env, p.ID, 2)

	lineaID := venta.Items[0].ID
	resp, err := env.svc.ActualizarVenta(context.Background(), uuid.MustParse(venta.ID), dto.ActualizarVentaRequest{
		Items: []dto.LineaVentaEdit{
			{ID: &lineaID, ProductoDocID: p.ID, Cantidad: 2},
			{ProductoDocID: q.ID, Cantidad: 3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 7, env.productoRepo.productos[q.ID].Cantidad)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "500", resp.Total.String())
}

func TestActualizarVenta_ReemplazaLineaMismoProducto(t *testing.T) {
	env := buildReconciliacion()
	p := seedProducto(env.productoRepo, "Bruma Fijadora", "BRU-095", 5, 1)
	venta := crearVentaBase(t, env, p.ID, 5) // stock 5 → 0

	// La línea original se omite y entra una línea nueva del mismo producto
	// por 3: el delta neto (+2) cabe en el stock una vez restaurada la vieja.
	resp, err := env.svc.ActualizarVenta(context.Background(), uuid.MustParse(venta.ID), dto.ActualizarVentaRequest{
		Items: []dto.LineaVentaEdit{
			{ProductoDocID: p.ID, Cantidad: 3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, env.productoRepo.productos[p.ID].Cantidad)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 3, resp.Items[0].Cantidad)
	assert.Equal(t, "300", resp.Total.String())
}

func TestActualizarVenta_AumentoSinStock(t *testing.T) {
	env := buildReconciliacion()
	p := seedProducto(env.productoRepo, "Serum Facial", "SER-100", 5, 1)
	venta := crearVentaBase(t, env, p.ID, 3) // stock 5 → 2

	lineaID := venta.Items[0].ID
	_, err := env.svc.ActualizarVenta(context.Background(), uuid.MustParse(venta.ID), dto.ActualizarVentaRequest{
		Items: []dto.LineaVentaEdit{
			{ID: &lineaID, ProductoDocID: p.ID, Cantidad: 8}, // delta +5, solo hay 2
		},
	})
	var stockErr *service.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 5, stockErr.Solicitado)
	assert.Equal(t, 2, stockErr.Disponible)
}

func TestActualizarVenta_LineaAjenaEsError(t *testing.T) {
	env := buildReconciliacion()
	p := seedProducto(env.productoRepo, "Tónico Facial", "TON-110", 10, 2)
	venta := crearVentaBase(t, env, p.ID, 1)

	ajena := uuid.New().String()
	_, err := env.svc.ActualizarVenta(context.Background(), uuid.MustParse(venta.ID), dto.ActualizarVentaRequest{
		Items: []dto.LineaVentaEdit{
			{ID: &ajena, ProductoDocID: p.ID, Cantidad: 2},
		},
	})
	require.Error(t, err)
	assert.False(t, errors.Is(err, service.ErrVentaNoEncontrada))
	assert.Contains(t, err.Error(), "no pertenece")
}

func TestActualizarVenta_ActualizaCabecera(t *testing.T) {
	env := buildReconciliacion()
	p := seedProducto(env.productoRepo, "Agua Micelar", "AGU-120", 10, 2)
	venta := crearVentaBase(t, env, p.ID, 1)

	lineaID := venta.Items[0].ID
	nombre := "Cliente Corregido"
	pago := "transferencia"
	resp, err := env.svc.ActualizarVenta(context.Background(), uuid.MustParse(venta.ID), dto.ActualizarVentaRequest{
		NombreCliente: &nombre,
		TipoPago:      &pago,
		Items: []dto.LineaVentaEdit{
			{ID: &lineaID, ProductoDocID: p.ID, Cantidad: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Cliente Corregido", resp.NombreCliente)
	assert.Equal(t, "transferencia", resp.TipoPago)
}
