package service

import (
	"errors"
	"fmt"
)

var (
	ErrVentaNoEncontrada    = errors.New("venta no encontrada")
	ErrCompraNoEncontrada   = errors.New("compra no encontrada")
	ErrProductoNoEncontrado = errors.New("producto no encontrado")
	ErrProductoInactivo     = errors.New("el producto está inactivo y no puede venderse")
	// ErrConflictoTransaccion surfaces after the bounded retry on concurrent
	// serialization conflicts is exhausted.
	ErrConflictoTransaccion = errors.New("conflicto entre operaciones concurrentes, intente nuevamente")
)

// StockInsuficienteError aborts an operation that would drive a product's
// quantity negative. Disponible is included so the UI can show the user how
// many units can actually be sold.
type StockInsuficienteError struct {
	Nombre     string
	Solicitado int
	Disponible int
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q: solicitado %d, disponible %d",
		e.Nombre, e.Solicitado, e.Disponible)
}

// CodigoDuplicadoError rejects the creation of a product whose business code
// is already registered.
type CodigoDuplicadoError struct {
	Codigo string
}

func (e *CodigoDuplicadoError) Error() string {
	return fmt.Sprintf("el código %q ya está registrado", e.Codigo)
}
