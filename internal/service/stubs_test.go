package service_test

// In-memory repository stubs. runTx runs the closure directly when the
// repository reports a nil *gorm.DB, so the whole reconciliation engine can be
// exercised without Postgres. Missing records return gorm.ErrRecordNotFound,
// matching what the real repositories surface.

import (
	"context"
	"sort"

	"maquillarte/internal/dto"
	"maquillarte/internal/model"
	"maquillarte/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Productos ────────────────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[string]*model.Producto // by doc id
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[string]*model.Producto)}
}

func (r *stubProductoRepo) byCodigo(codigo string) *model.Producto {
	for _, p := range r.productos {
		if p.Codigo == codigo {
			return p
		}
	}
	return nil
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	return r.CreateTx(nil, p)
}

func (r *stubProductoRepo) CreateTx(_ *gorm.DB, p *model.Producto) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id string) (*model.Producto, error) {
	return r.FindByIDTx(nil, id)
}

func (r *stubProductoRepo) FindByIDTx(_ *gorm.DB, id string) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductoRepo) FindByCodigo(_ context.Context, codigo string) (*model.Producto, error) {
	return r.FindByCodigoTx(nil, codigo)
}

func (r *stubProductoRepo) FindByCodigoTx(_ *gorm.DB, codigo string) (*model.Producto, error) {
	p := r.byCodigo(codigo)
	if p == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) ListBajoStockMinimo(_ context.Context) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Activo && p.Cantidad <= p.StockMinimo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	if _, ok := r.productos[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id string) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

func (r *stubProductoRepo) Reactivar(_ context.Context, id string) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = true
	return nil
}

func (r *stubProductoRepo) UpdateStockTx(_ *gorm.DB, id string, delta int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Cantidad += delta
	return nil
}

func (r *stubProductoRepo) UpdatePreciosTx(_ *gorm.DB, id string, costo, precio decimal.Decimal) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Costo = costo
	p.Precio = precio
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// seedProducto registers an active product and returns the stored record.
func seedProducto(repo *stubProductoRepo, nombre, codigo string, cantidad, stockMinimo int) *model.Producto {
	p := &model.Producto{
		ID:          uuid.New().String(),
		Codigo:      codigo,
		Nombre:      nombre,
		Categoria:   "maquillaje",
		Costo:       decimal.NewFromInt(60),
		Precio:      decimal.NewFromInt(100),
		Cantidad:    cantidad,
		StockMinimo: stockMinimo,
		Activo:      true,
	}
	repo.productos[p.ID] = p
	return p
}

// ── Ventas ───────────────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas map[uuid.UUID]*model.VentaEnc
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.VentaEnc)}
}

func (r *stubVentaRepo) CreateTx(_ *gorm.DB, v *model.VentaEnc) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	for i := range v.Detalles {
		if v.Detalles[i].ID == uuid.Nil {
			v.Detalles[i].ID = uuid.New()
		}
		v.Detalles[i].VentaEncID = v.ID
	}
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.VentaEnc, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) List(_ context.Context, _ dto.VentaFilter) ([]model.VentaEnc, int64, error) {
	out := make([]model.VentaEnc, 0, len(r.ventas))
	for _, v := range r.ventas {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) UpdateHeaderTx(_ *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	v, ok := r.ventas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, val := range fields {
		switch k {
		case "total":
			v.Total = val.(decimal.Decimal)
		case "nombre_cliente":
			v.NombreCliente = val.(string)
		case "tipo_entrega":
			v.TipoEntrega = val.(string)
		case "tipo_pago":
			v.TipoPago = val.(string)
		case "banco":
			s := val.(string)
			v.Banco = &s
		case "observaciones":
			s := val.(string)
			v.Observaciones = &s
		}
	}
	return nil
}

func (r *stubVentaRepo) CreateDetalleTx(_ *gorm.DB, d *model.VentaDet) error {
	v, ok := r.ventas[d.VentaEncID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	v.Detalles = append(v.Detalles, *d)
	return nil
}

func (r *stubVentaRepo) UpdateDetalleTx(_ *gorm.DB, id uuid.UUID, cantidad int, precio decimal.Decimal) error {
	for _, v := range r.ventas {
		for i := range v.Detalles {
			if v.Detalles[i].ID == id {
				v.Detalles[i].Cantidad = cantidad
				v.Detalles[i].PrecioUnitario = precio
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubVentaRepo) DeleteDetalleTx(_ *gorm.DB, id uuid.UUID) error {
	for _, v := range r.ventas {
		for i := range v.Detalles {
			if v.Detalles[i].ID == id {
				v.Detalles = append(v.Detalles[:i], v.Detalles[i+1:]...)
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubVentaRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.ventas, id)
	return nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// ── Compras ──────────────────────────────────────────────────────────────────

type stubCompraRepo struct {
	compras map[uuid.UUID]*model.Compra
}

func newStubCompraRepo() *stubCompraRepo {
	return &stubCompraRepo{compras: make(map[uuid.UUID]*model.Compra)}
}

func (r *stubCompraRepo) CreateTx(_ *gorm.DB, c *model.Compra) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	for i := range c.Detalles {
		if c.Detalles[i].ID == uuid.Nil {
			c.Detalles[i].ID = uuid.New()
		}
		c.Detalles[i].CompraID = c.ID
	}
	r.compras[c.ID] = c
	return nil
}

func (r *stubCompraRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Compra, error) {
	c, ok := r.compras[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCompraRepo) List(_ context.Context, _ dto.CompraFilter) ([]model.Compra, int64, error) {
	out := make([]model.Compra, 0, len(r.compras))
	for _, c := range r.compras {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCompraRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.compras, id)
	return nil
}

func (r *stubCompraRepo) DB() *gorm.DB { return nil }

var _ repository.CompraRepository = (*stubCompraRepo)(nil)

// ── Gastos ───────────────────────────────────────────────────────────────────

type stubGastoRepo struct {
	gastos map[uuid.UUID]*model.Gasto
}

func newStubGastoRepo() *stubGastoRepo {
	return &stubGastoRepo{gastos: make(map[uuid.UUID]*model.Gasto)}
}

func (r *stubGastoRepo) Create(_ context.Context, g *model.Gasto) error {
	return r.CreateTx(nil, g)
}

func (r *stubGastoRepo) CreateTx(_ *gorm.DB, g *model.Gasto) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	r.gastos[g.ID] = g
	return nil
}

func (r *stubGastoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Gasto, error) {
	g, ok := r.gastos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return g, nil
}

func (r *stubGastoRepo) List(_ context.Context, _ dto.GastoFilter) ([]model.Gasto, int64, error) {
	out := make([]model.Gasto, 0, len(r.gastos))
	for _, g := range r.gastos {
		out = append(out, *g)
	}
	return out, int64(len(out)), nil
}

func (r *stubGastoRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.gastos[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.gastos, id)
	return nil
}

func (r *stubGastoRepo) DeleteByCompraTx(_ *gorm.DB, compraID uuid.UUID) error {
	for id, g := range r.gastos {
		if g.CompraID != nil && *g.CompraID == compraID {
			delete(r.gastos, id)
		}
	}
	return nil
}

var _ repository.GastoRepository = (*stubGastoRepo)(nil)

func (r *stubGastoRepo) porCompra(compraID uuid.UUID) *model.Gasto {
	for _, g := range r.gastos {
		if g.CompraID != nil && *g.CompraID == compraID {
			return g
		}
	}
	return nil
}

// ── Movimientos de stock ─────────────────────────────────────────────────────

type stubMovimientoRepo struct {
	movimientos []model.MovimientoStock
}

func (r *stubMovimientoRepo) Create(_ context.Context, m *model.MovimientoStock) error {
	return r.CreateTx(nil, m)
}

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubMovimientoRepo) List(_ context.Context, filter dto.MovimientoStockFilter) ([]model.MovimientoStock, int64, error) {
	var out []model.MovimientoStock
	for _, m := range r.movimientos {
		if filter.ProductoDocID != "" && m.ProductoDocID != filter.ProductoDocID {
			continue
		}
		if filter.Tipo != "" && m.Tipo != filter.Tipo {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

var _ repository.MovimientoStockRepository = (*stubMovimientoRepo)(nil)

func (r *stubMovimientoRepo) porTipo(tipo string) []model.MovimientoStock {
	var out []model.MovimientoStock
	for _, m := range r.movimientos {
		if m.Tipo == tipo {
			out = append(out, m)
		}
	}
	return out
}

// ── Historial de precios ─────────────────────────────────────────────────────

type stubHistorialRepo struct {
	entradas []model.HistorialPrecio
}

func (r *stubHistorialRepo) CreateTx(_ *gorm.DB, h *model.HistorialPrecio) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	r.entradas = append(r.entradas, *h)
	return nil
}

func (r *stubHistorialRepo) ListByProducto(_ context.Context, productoDocID string, _ int) ([]model.HistorialPrecio, error) {
	var out []model.HistorialPrecio
	for _, h := range r.entradas {
		if h.ProductoDocID == productoDocID {
			out = append(out, h)
		}
	}
	return out, nil
}

var _ repository.HistorialPrecioRepository = (*stubHistorialRepo)(nil)

// ── Proveedores ──────────────────────────────────────────────────────────────

type stubProveedorRepo struct {
	proveedores map[uuid.UUID]*model.Proveedor
}

func newStubProveedorRepo() *stubProveedorRepo {
	return &stubProveedorRepo{proveedores: make(map[uuid.UUID]*model.Proveedor)}
}

func (r *stubProveedorRepo) Create(_ context.Context, p *model.Proveedor) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, ok := r.proveedores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProveedorRepo) List(_ context.Context) ([]model.Proveedor, error) {
	var out []model.Proveedor
	for _, p := range r.proveedores {
		if p.Activo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProveedorRepo) Update(_ context.Context, p *model.Proveedor) error {
	if _, ok := r.proveedores[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.proveedores[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

func (r *stubProveedorRepo) ReplaceContactos(_ context.Context, proveedorID uuid.UUID, contactos []model.ContactoProveedor) error {
	p, ok := r.proveedores[proveedorID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range contactos {
		if contactos[i].ID == uuid.Nil {
			contactos[i].ID = uuid.New()
		}
	}
	p.Contactos = contactos
	return nil
}

var _ repository.ProveedorRepository = (*stubProveedorRepo)(nil)

func seedProveedor(repo *stubProveedorRepo, nombre string) *model.Proveedor {
	p := &model.Proveedor{ID: uuid.New(), Nombre: nombre, Activo: true}
	repo.proveedores[p.ID] = p
	return p
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username && u.Activo {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) List(_ context.Context, incluirInactivos bool) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.Activo || incluirInactivos {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	if _, ok := r.usuarios[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) SetActivo(_ context.Context, id uuid.UUID, activo bool) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = activo
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)
