package service

import (
	"context"
	"fmt"
	"time"

	"maquillarte/internal/dto"
	"maquillarte/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── RegistrarCompra ───────────────────────────────────────────────────────────
// One atomic transaction covering header + lines, product creation/restock,
// audit movimientos, price history and the mirrored expense. Every line is
// validated before the first write; a failure after that rolls everything
// back, so a purchase never lands half-applied.

func (s *reconciliacionService) RegistrarCompra(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarCompraRequest) (*dto.CompraResponse, error) {
	proveedorID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, fmt.Errorf("proveedor_id inválido: %w", err)
	}
	proveedor, err := s.proveedorRepo.FindByID(ctx, proveedorID)
	if err != nil {
		if esNoEncontrado(err) {
			return nil, fmt.Errorf("proveedor no encontrado: %s", req.ProveedorID)
		}
		return nil, err
	}

	var compra model.Compra
	var gasto model.Gasto
	txErr := runTx(ctx, s.compraRepo.DB(), func(tx *gorm.DB) error {
		// Validación previa a cualquier escritura: la compra entera se
		// rechaza antes de crear cabecera, stock o gasto espejo.
		nuevos := make(map[string]bool, len(req.Items))
		for _, item := range req.Items {
			if item.EsNuevo {
				if nuevos[item.ProductoID] {
					return &CodigoDuplicadoError{Codigo: item.ProductoID}
				}
				if _, err := s.productoRepo.FindByCodigoTx(tx, item.ProductoID); err == nil {
					return &CodigoDuplicadoError{Codigo: item.ProductoID}
				} else if !esNoEncontrado(err) {
					return err
				}
				nuevos[item.ProductoID] = true
				continue
			}
			if _, err := s.productoRepo.FindByCodigoTx(tx, item.ProductoID); err != nil {
				if !esNoEncontrado(err) {
					return err
				}
				// Un código dado de alta por una línea es_nuevo anterior de
				// esta misma compra puede reabastecerse a continuación.
				if !nuevos[item.ProductoID] {
					return fmt.Errorf("%w: %s", ErrProductoNoEncontrado, item.ProductoID)
				}
			}
		}

		total := decimal.Zero
		detalles := make([]model.CompraDet, 0, len(req.Items))
		for _, item := range req.Items {
			detalles = append(detalles, model.CompraDet{
				ProductoID: item.ProductoID,
				Nombre:     item.Nombre,
				Cantidad:   item.Cantidad,
				Costo:      item.Costo,
				Precio:     item.Precio,
				EsNuevo:    item.EsNuevo,
			})
			total = total.Add(item.Costo.Mul(decimal.NewFromInt(int64(item.Cantidad))))
		}

		compra = model.Compra{
			ProveedorID:     proveedorID,
			NombreProveedor: proveedor.Nombre,
			Total:           total,
			FechaHora:       time.Now(),
			UsuarioID:       usuarioID,
			Detalles:        detalles,
		}
		if err := s.compraRepo.CreateTx(tx, &compra); err != nil {
			return err
		}

		compraRef := compra.ID
		for _, item := range req.Items {
			if item.EsNuevo {
				if err := s.crearProductoDeCompra(tx, &item, proveedorID, compraRef, usuarioID); err != nil {
					return err
				}
				continue
			}
			if err := s.reabastecerProducto(tx, &item, proveedorID, compraRef, usuarioID); err != nil {
				return err
			}
		}

		// Espejo en gastos: la compra aparece en el reporte de egresos sin
		// cargarse dos veces (compra_id es único).
		gasto = model.Gasto{
			Descripcion: fmt.Sprintf("Compra a %s", proveedor.Nombre),
			Monto:       total,
			Categoria:   "inventario",
			Tipo:        "compra",
			ProveedorID: &proveedorID,
			CompraID:    &compraRef,
			FechaHora:   compra.FechaHora,
			UsuarioID:   usuarioID,
		}
		return s.gastoRepo.CreateTx(tx, &gasto)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := compraToResponse(&compra)
	gastoID := gasto.ID.String()
	resp.GastoID = &gastoID
	return resp, nil
}

// crearProductoDeCompra da de alta un producto introducido por una línea
// es_nuevo. El id del documento es el propio código de negocio.
func (s *reconciliacionService) crearProductoDeCompra(tx *gorm.DB, item *dto.LineaCompraRequest, proveedorID, compraRef uuid.UUID, usuarioID uuid.UUID) error {
	if _, err := s.productoRepo.FindByCodigoTx(tx, item.ProductoID); err == nil {
		return &CodigoDuplicadoError{Codigo: item.ProductoID}
	} else if !esNoEncontrado(err) {
		return err
	}

	p := model.Producto{
		ID:        item.ProductoID,
		Codigo:    item.ProductoID,
		Nombre:    item.Nombre,
		Categoria: "general",
		Costo:     item.Costo,
		Precio:    item.Precio,
		Cantidad:  item.Cantidad,
		Activo:    true,
	}
	if err := s.productoRepo.CreateTx(tx, &p); err != nil {
		return err
	}
	mov := &model.MovimientoStock{
		ProductoDocID:    p.ID,
		Tipo:             "compra",
		Cantidad:         item.Cantidad,
		CantidadAnterior: 0,
		CantidadNueva:    item.Cantidad,
		Motivo:           "Alta de producto por compra",
		ReferenciaID:     &compraRef,
		UsuarioID:        &usuarioID,
	}
	return s.movRepo.CreateTx(tx, mov)
}

// reabastecerProducto suma la cantidad comprada al stock existente y registra
// el cambio de costo/precio cuando la compra trae valores distintos.
func (s *reconciliacionService) reabastecerProducto(tx *gorm.DB, item *dto.LineaCompraRequest, proveedorID, compraRef uuid.UUID, usuarioID uuid.UUID) error {
	p, err := s.productoRepo.FindByCodigoTx(tx, item.ProductoID)
	if err != nil {
		if esNoEncontrado(err) {
			return fmt.Errorf("%w: %s", ErrProductoNoEncontrado, item.ProductoID)
		}
		return err
	}

	if err := s.productoRepo.UpdateStockTx(tx, p.ID, item.Cantidad); err != nil {
		return err
	}
	mov := &model.MovimientoStock{
		ProductoDocID:    p.ID,
		Tipo:             "compra",
		Cantidad:         item.Cantidad,
		CantidadAnterior: p.Cantidad,
		CantidadNueva:    p.Cantidad + item.Cantidad,
		Motivo:           "Reabastecimiento por compra",
		ReferenciaID:     &compraRef,
		UsuarioID:        &usuarioID,
	}
	if err := s.movRepo.CreateTx(tx, mov); err != nil {
		return err
	}

	nuevoPrecio := p.Precio
	if item.Precio.IsPositive() {
		nuevoPrecio = item.Precio
	}
	if !item.Costo.Equal(p.Costo) || !nuevoPrecio.Equal(p.Precio) {
		if err := s.productoRepo.UpdatePreciosTx(tx, p.ID, item.Costo, nuevoPrecio); err != nil {
			return err
		}
		h := &model.HistorialPrecio{
			ProductoDocID: p.ID,
			ProveedorID:   &proveedorID,
			CostoAntes:    p.Costo,
			CostoDespues:  item.Costo,
			PrecioAntes:   p.Precio,
			PrecioDespues: nuevoPrecio,
			Motivo:        "compra",
		}
		if err := s.historialRepo.CreateTx(tx, h); err != nil {
			return err
		}
	}
	return nil
}

// ── EliminarCompra ────────────────────────────────────────────────────────────
// Full reversal: every line's quantity is subtracted back out, returning each
// product exactly to its pre-purchase stock. Units already sold make the
// reversal fail with StockInsuficienteError rather than go negative. Products
// that no longer exist are logged and skipped. The expense mirror and the
// purchase itself are removed in the same transaction.

func (s *reconciliacionService) EliminarCompra(ctx context.Context, id uuid.UUID) error {
	compra, err := s.compraRepo.FindByID(ctx, id)
	if err != nil {
		if esNoEncontrado(err) {
			return ErrCompraNoEncontrada
		}
		return err
	}

	return runTx(ctx, s.compraRepo.DB(), func(tx *gorm.DB) error {
		compraRef := compra.ID
		for _, det := range compra.Detalles {
			p, err := s.productoRepo.FindByCodigoTx(tx, det.ProductoID)
			if err != nil {
				if esNoEncontrado(err) {
					log.Warn().
						Str("compra_id", id.String()).
						Str("producto_id", det.ProductoID).
						Msg("producto inexistente al anular compra, se omite la reversión")
					continue
				}
				return err
			}
			if p.Cantidad < det.Cantidad {
				return &StockInsuficienteError{Nombre: p.Nombre, Solicitado: det.Cantidad, Disponible: p.Cantidad}
			}
			if err := s.productoRepo.UpdateStockTx(tx, p.ID, -det.Cantidad); err != nil {
				return err
			}
			mov := &model.MovimientoStock{
				ProductoDocID:    p.ID,
				Tipo:             "anulacion_compra",
				Cantidad:         -det.Cantidad,
				CantidadAnterior: p.Cantidad,
				CantidadNueva:    p.Cantidad - det.Cantidad,
				Motivo:           fmt.Sprintf("Anulación de compra a %s", compra.NombreProveedor),
				ReferenciaID:     &compraRef,
			}
			if err := s.movRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		if err := s.gastoRepo.DeleteByCompraTx(tx, id); err != nil {
			return err
		}
		return s.compraRepo.DeleteTx(tx, id)
	})
}

// ── Lectura ───────────────────────────────────────────────────────────────────

func (s *reconciliacionService) ObtenerCompra(ctx context.Context, id uuid.UUID) (*dto.CompraResponse, error) {
	compra, err := s.compraRepo.FindByID(ctx, id)
	if err != nil {
		if esNoEncontrado(err) {
			return nil, ErrCompraNoEncontrada
		}
		return nil, err
	}
	return compraToResponse(compra), nil
}

func (s *reconciliacionService) ListarCompras(ctx context.Context, filter dto.CompraFilter) (*dto.CompraListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	compras, total, err := s.compraRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CompraResponse, 0, len(compras))
	for i := range compras {
		data = append(data, *compraToResponse(&compras[i]))
	}
	return &dto.CompraListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func compraToResponse(c *model.Compra) *dto.CompraResponse {
	items := make([]dto.LineaCompraResponse, 0, len(c.Detalles))
	for _, det := range c.Detalles {
		items = append(items, dto.LineaCompraResponse{
			ProductoID: det.ProductoID,
			Nombre:     det.Nombre,
			Cantidad:   det.Cantidad,
			Costo:      det.Costo,
			Precio:     det.Precio,
			EsNuevo:    det.EsNuevo,
		})
	}
	return &dto.CompraResponse{
		ID:              c.ID.String(),
		ProveedorID:     c.ProveedorID.String(),
		NombreProveedor: c.NombreProveedor,
		Total:           c.Total,
		FechaHora:       c.FechaHora.Format(time.RFC3339),
		Items:           items,
	}
}
