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

// ── CrearVenta ────────────────────────────────────────────────────────────────
// One transaction: re-read every referenced product under lock, validate the
// aggregated requested quantity per product, create header + lines, decrement
// stock and write the audit movimientos. Either all writes land or none do.

func (s *reconciliacionService) CrearVenta(ctx context.Context, usuarioID uuid.UUID, req dto.CrearVentaRequest) (*dto.VentaResponse, error) {
	// Aggregate per product: two lines of the same item must be validated
	// against stock as a single requested quantity.
	solicitado := make(map[string]int)
	for _, item := range req.Items {
		solicitado[item.ProductoDocID] += item.Cantidad
	}

	var venta model.VentaEnc
	txErr := runTx(ctx, s.ventaRepo.DB(), func(tx *gorm.DB) error {
		productos := make(map[string]*model.Producto, len(solicitado))
		anterior := make(map[string]int, len(solicitado))

		for docID, cantidad := range solicitado {
			p, err := s.productoRepo.FindByIDTx(tx, docID)
			if err != nil {
				if esNoEncontrado(err) {
					return fmt.Errorf("%w: %s", ErrProductoNoEncontrado, docID)
				}
				return err
			}
			if !p.Activo {
				return fmt.Errorf("%w: %s", ErrProductoInactivo, p.Nombre)
			}
			if p.Cantidad < cantidad {
				return &StockInsuficienteError{Nombre: p.Nombre, Solicitado: cantidad, Disponible: p.Cantidad}
			}
			productos[docID] = p
			anterior[docID] = p.Cantidad
		}

		// Build header + lines. Line price defaults to the product's current
		// selling price when the caller leaves it at zero.
		total := decimal.Zero
		detalles := make([]model.VentaDet, 0, len(req.Items))
		for _, item := range req.Items {
			p := productos[item.ProductoDocID]
			precio := item.PrecioUnitario
			if precio.IsZero() {
				precio = p.Precio
			}
			detalles = append(detalles, model.VentaDet{
				ProductoID:     p.Codigo,
				ProductoDocID:  p.ID,
				Nombre:         p.Nombre,
				PrecioUnitario: precio,
				Cantidad:       item.Cantidad,
			})
			total = total.Add(precio.Mul(decimal.NewFromInt(int64(item.Cantidad))))
		}

		venta = model.VentaEnc{
			NombreCliente: req.NombreCliente,
			FechaHora:     time.Now(),
			TipoEntrega:   req.TipoEntrega,
			TipoPago:      req.TipoPago,
			Banco:         req.Banco,
			Total:         total,
			Observaciones: req.Observaciones,
			UsuarioID:     usuarioID,
			Detalles:      detalles,
		}
		if err := s.ventaRepo.CreateTx(tx, &venta); err != nil {
			return err
		}

		ventaRef := venta.ID
		for docID, cantidad := range solicitado {
			if err := s.productoRepo.UpdateStockTx(tx, docID, -cantidad); err != nil {
				return fmt.Errorf("error descontando stock de %s: %w", productos[docID].Nombre, err)
			}
			mov := &model.MovimientoStock{
				ProductoDocID:    docID,
				Tipo:             "venta",
				Cantidad:         -cantidad,
				CantidadAnterior: anterior[docID],
				CantidadNueva:    anterior[docID] - cantidad,
				Motivo:           fmt.Sprintf("Venta a %s", req.NombreCliente),
				ReferenciaID:     &ventaRef,
				UsuarioID:        &usuarioID,
			}
			if err := s.movRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Async ticket PDF — best-effort, fire & forget.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueTicket(ctx, map[string]interface{}{"venta_id": venta.ID.String()})
	}

	return ventaToResponse(&venta), nil
}

// ── EliminarVenta ─────────────────────────────────────────────────────────────
// Two-phase: the line set is read outside the transaction (only ids and
// product references are taken from it); restorations, line deletions and the
// header deletion then commit together. A product deleted since the sale was
// recorded is logged and skipped — historical sales must stay deletable.

func (s *reconciliacionService) EliminarVenta(ctx context.Context, id uuid.UUID) error {
	venta, err := s.ventaRepo.FindByID(ctx, id)
	if err != nil {
		if esNoEncontrado(err) {
			return ErrVentaNoEncontrada
		}
		return err
	}

	return runTx(ctx, s.ventaRepo.DB(), func(tx *gorm.DB) error {
		ventaRef := venta.ID
		for _, det := range venta.Detalles {
			p, err := s.productoRepo.FindByIDTx(tx, det.ProductoDocID)
			if err != nil {
				if esNoEncontrado(err) {
					log.Warn().
						Str("venta_id", id.String()).
						Str("producto_doc_id", det.ProductoDocID).
						Msg("producto inexistente al anular venta, se omite la restauracion")
					continue
				}
				return err
			}
			if err := s.productoRepo.UpdateStockTx(tx, det.ProductoDocID, det.Cantidad); err != nil {
				return err
			}
			mov := &model.MovimientoStock{
				ProductoDocID:    det.ProductoDocID,
				Tipo:             "anulacion_venta",
				Cantidad:         det.Cantidad,
				CantidadAnterior: p.Cantidad,
				CantidadNueva:    p.Cantidad + det.Cantidad,
				Motivo:           fmt.Sprintf("Anulación de venta a %s", venta.NombreCliente),
				ReferenciaID:     &ventaRef,
			}
			if err := s.movRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return s.ventaRepo.DeleteTx(tx, id)
	})
}

// ── ActualizarVenta ───────────────────────────────────────────────────────────
// Delta reconciliation: lines matched by id apply the signed difference
// between new and stored quantity; original lines missing from the set (or
// set to zero) restore their full quantity and disappear; id-less entries are
// validated and inserted as new lines. Restorations run before additions, so
// swapping a line for a new one of the same product validates against the
// restored stock. The header total is recomputed over the surviving lines
// inside the same transaction.

func (s *reconciliacionService) ActualizarVenta(ctx context.Context, id uuid.UUID, req dto.ActualizarVentaRequest) (*dto.VentaResponse, error) {
	venta, err := s.ventaRepo.FindByID(ctx, id)
	if err != nil {
		if esNoEncontrado(err) {
			return nil, ErrVentaNoEncontrada
		}
		return nil, err
	}

	originales := make(map[uuid.UUID]model.VentaDet, len(venta.Detalles))
	for _, det := range venta.Detalles {
		originales[det.ID] = det
	}

	txErr := runTx(ctx, s.ventaRepo.DB(), func(tx *gorm.DB) error {
		ventaRef := venta.ID

		// Primera pasada: validar los ids y marcar qué líneas originales
		// sobreviven a la edición.
		vistos := make(map[uuid.UUID]bool, len(req.Items))
		for _, item := range req.Items {
			if item.ID == nil {
				continue
			}
			lineaID, err := uuid.Parse(*item.ID)
			if err != nil {
				return fmt.Errorf("id de línea inválido: %w", err)
			}
			if _, ok := originales[lineaID]; !ok {
				return fmt.Errorf("la línea %s no pertenece a la venta", lineaID)
			}
			if item.Cantidad > 0 {
				vistos[lineaID] = true
			}
		}

		// Devolver primero las unidades de las líneas eliminadas o puestas
		// en cero: una línea reemplazada por otra del mismo producto valida
		// contra el stock ya restaurado.
		for lineaID, original := range originales {
			if vistos[lineaID] {
				continue
			}
			if err := s.restaurarLinea(tx, &original, ventaRef); err != nil {
				return err
			}
			if err := s.ventaRepo.DeleteDetalleTx(tx, lineaID); err != nil {
				return err
			}
		}

		total := decimal.Zero
		for _, item := range req.Items {
			if item.Cantidad == 0 {
				continue
			}
			if item.ID != nil {
				lineaID, _ := uuid.Parse(*item.ID) // validado arriba
				original := originales[lineaID]

				precio := item.PrecioUnitario
				if precio.IsZero() {
					precio = original.PrecioUnitario
				}
				delta := item.Cantidad - original.Cantidad
				if delta != 0 {
					if err := s.aplicarDelta(tx, &original, delta, ventaRef); err != nil {
						return err
					}
				}
				if err := s.ventaRepo.UpdateDetalleTx(tx, lineaID, item.Cantidad, precio); err != nil {
					return err
				}
				total = total.Add(precio.Mul(decimal.NewFromInt(int64(item.Cantidad))))
				continue
			}

			// Line added during the edit.
			p, err := s.productoRepo.FindByIDTx(tx, item.ProductoDocID)
			if err != nil {
				if esNoEncontrado(err) {
					return fmt.Errorf("%w: %s", ErrProductoNoEncontrado, item.ProductoDocID)
				}
				return err
			}
			if p.Cantidad < item.Cantidad {
				return &StockInsuficienteError{Nombre: p.Nombre, Solicitado: item.Cantidad, Disponible: p.Cantidad}
			}
			precio := item.PrecioUnitario
			if precio.IsZero() {
				precio = p.Precio
			}
			nueva := model.VentaDet{
				VentaEncID:     venta.ID,
				ProductoID:     p.Codigo,
				ProductoDocID:  p.ID,
				Nombre:         p.Nombre,
				PrecioUnitario: precio,
				Cantidad:       item.Cantidad,
			}
			if err := s.ventaRepo.CreateDetalleTx(tx, &nueva); err != nil {
				return err
			}
			if err := s.productoRepo.UpdateStockTx(tx, p.ID, -item.Cantidad); err != nil {
				return err
			}
			mov := &model.MovimientoStock{
				ProductoDocID:    p.ID,
				Tipo:             "edicion_venta",
				Cantidad:         -item.Cantidad,
				CantidadAnterior: p.Cantidad,
				CantidadNueva:    p.Cantidad - item.Cantidad,
				Motivo:           "Línea agregada en edición de venta",
				ReferenciaID:     &ventaRef,
			}
			if err := s.movRepo.CreateTx(tx, mov); err != nil {
				return err
			}
			total = total.Add(precio.Mul(decimal.NewFromInt(int64(item.Cantidad))))
		}

		campos := map[string]interface{}{"total": total}
		if req.NombreCliente != nil {
			campos["nombre_cliente"] = *req.NombreCliente
		}
		if req.TipoEntrega != nil {
			campos["tipo_entrega"] = *req.TipoEntrega
		}
		if req.TipoPago != nil {
			campos["tipo_pago"] = *req.TipoPago
		}
		if req.Banco != nil {
			campos["banco"] = *req.Banco
		}
		if req.Observaciones != nil {
			campos["observaciones"] = *req.Observaciones
		}
		return s.ventaRepo.UpdateHeaderTx(tx, id, campos)
	})
	if txErr != nil {
		return nil, txErr
	}

	actualizada, err := s.ventaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ventaToResponse(actualizada), nil
}

// restaurarLinea devuelve al producto la cantidad completa de una línea
// eliminada. Producto inexistente: se registra y se omite, nunca es fatal.
func (s *reconciliacionService) restaurarLinea(tx *gorm.DB, det *model.VentaDet, ventaRef uuid.UUID) error {
	p, err := s.productoRepo.FindByIDTx(tx, det.ProductoDocID)
	if err != nil {
		if esNoEncontrado(err) {
			log.Warn().
				Str("producto_doc_id", det.ProductoDocID).
				Msg("producto inexistente al restaurar línea, se omite")
			return nil
		}
		return err
	}
	if err := s.productoRepo.UpdateStockTx(tx, det.ProductoDocID, det.Cantidad); err != nil {
		return err
	}
	mov := &model.MovimientoStock{
		ProductoDocID:    det.ProductoDocID,
		Tipo:             "edicion_venta",
		Cantidad:         det.Cantidad,
		CantidadAnterior: p.Cantidad,
		CantidadNueva:    p.Cantidad + det.Cantidad,
		Motivo:           "Línea eliminada en edición de venta",
		ReferenciaID:     &ventaRef,
	}
	return s.movRepo.CreateTx(tx, mov)
}

// aplicarDelta reconcilia el cambio de cantidad de una línea existente.
// delta > 0 exige stock disponible; delta < 0 devuelve unidades.
func (s *reconciliacionService) aplicarDelta(tx *gorm.DB, det *model.VentaDet, delta int, ventaRef uuid.UUID) error {
	p, err := s.productoRepo.FindByIDTx(tx, det.ProductoDocID)
	if err != nil {
		if esNoEncontrado(err) {
			if delta > 0 {
				return fmt.Errorf("%w: %s", ErrProductoNoEncontrado, det.ProductoDocID)
			}
			log.Warn().
				Str("producto_doc_id", det.ProductoDocID).
				Msg("producto inexistente al devolver unidades, se omite")
			return nil
		}
		return err
	}
	if delta > 0 && p.Cantidad < delta {
		return &StockInsuficienteError{Nombre: p.Nombre, Solicitado: delta, Disponible: p.Cantidad}
	}
	if err := s.productoRepo.UpdateStockTx(tx, det.ProductoDocID, -delta); err != nil {
		return err
	}
	mov := &model.MovimientoStock{
		ProductoDocID:    det.ProductoDocID,
		Tipo:             "edicion_venta",
		Cantidad:         -delta,
		CantidadAnterior: p.Cantidad,
		CantidadNueva:    p.Cantidad - delta,
		Motivo:           "Cantidad modificada en edición de venta",
		ReferenciaID:     &ventaRef,
	}
	return s.movRepo.CreateTx(tx, mov)
}

// ── Lectura ───────────────────────────────────────────────────────────────────

func (s *reconciliacionService) ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.ventaRepo.FindByID(ctx, id)
	if err != nil {
		if esNoEncontrado(err) {
			return nil, ErrVentaNoEncontrada
		}
		return nil, err
	}
	return ventaToResponse(venta), nil
}

func (s *reconciliacionService) ListarVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.ventaRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		data = append(data, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func ventaToResponse(v *model.VentaEnc) *dto.VentaResponse {
	items := make([]dto.LineaVentaResponse, 0, len(v.Detalles))
	for _, det := range v.Detalles {
		items = append(items, dto.LineaVentaResponse{
			ID:             det.ID.String(),
			ProductoID:     det.ProductoID,
			ProductoDocID:  det.ProductoDocID,
			Nombre:         det.Nombre,
			PrecioUnitario: det.PrecioUnitario,
			Cantidad:       det.Cantidad,
			Subtotal:       det.PrecioUnitario.Mul(decimal.NewFromInt(int64(det.Cantidad))),
		})
	}
	return &dto.VentaResponse{
		ID:            v.ID.String(),
		NombreCliente: v.NombreCliente,
		FechaHora:     v.FechaHora.Format(time.RFC3339),
		TipoEntrega:   v.TipoEntrega,
		TipoPago:      v.TipoPago,
		Banco:         v.Banco,
		Total:         v.Total,
		Observaciones: v.Observaciones,
		Items:         items,
	}
}
