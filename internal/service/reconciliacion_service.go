package service

import (
	"context"
	"database/sql"
	"errors"

	"maquillarte/internal/dto"
	"maquillarte/internal/repository"
	"maquillarte/internal/worker"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ReconciliacionService is the single choke point for every operation that
// both touches inventory quantities and writes a ledger record (sale or
// purchase). Each operation validates stock, applies quantity deltas and
// writes the ledger rows as one all-or-nothing transaction; quantities are
// always re-read inside the transaction under a row lock, never taken from a
// value fetched earlier.
type ReconciliacionService interface {
	// Ventas
	CrearVenta(ctx context.Context, usuarioID uuid.UUID, req dto.CrearVentaRequest) (*dto.VentaResponse, error)
	ActualizarVenta(ctx context.Context, id uuid.UUID, req dto.ActualizarVentaRequest) (*dto.VentaResponse, error)
	EliminarVenta(ctx context.Context, id uuid.UUID) error
	ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	ListarVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)

	// Compras
	RegistrarCompra(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarCompraRequest) (*dto.CompraResponse, error)
	EliminarCompra(ctx context.Context, id uuid.UUID) error
	ObtenerCompra(ctx context.Context, id uuid.UUID) (*dto.CompraResponse, error)
	ListarCompras(ctx context.Context, filter dto.CompraFilter) (*dto.CompraListResponse, error)
}

type reconciliacionService struct {
	ventaRepo     repository.VentaRepository
	compraRepo    repository.CompraRepository
	productoRepo  repository.ProductoRepository
	gastoRepo     repository.GastoRepository
	movRepo       repository.MovimientoStockRepository
	historialRepo repository.HistorialPrecioRepository
	proveedorRepo repository.ProveedorRepository
	dispatcher    *worker.Dispatcher
}

func NewReconciliacionService(
	ventaRepo repository.VentaRepository,
	compraRepo repository.CompraRepository,
	productoRepo repository.ProductoRepository,
	gastoRepo repository.GastoRepository,
	movRepo repository.MovimientoStockRepository,
	historialRepo repository.HistorialPrecioRepository,
	proveedorRepo repository.ProveedorRepository,
	dispatcher *worker.Dispatcher,
) ReconciliacionService {
	return &reconciliacionService{
		ventaRepo:     ventaRepo,
		compraRepo:    compraRepo,
		productoRepo:  productoRepo,
		gastoRepo:     gastoRepo,
		movRepo:       movRepo,
		historialRepo: historialRepo,
		proveedorRepo: proveedorRepo,
		dispatcher:    dispatcher,
	}
}

const maxReintentosTx = 3

// runTx executes fn inside a serializable GORM transaction, retrying a
// bounded number of times when Postgres reports a serialization conflict
// (SQLSTATE 40001) between concurrent terminals. With a nil db (unit test
// mode, in-memory stubs) fn runs directly.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	var err error
	for intento := 1; intento <= maxReintentosTx; intento++ {
		err = db.WithContext(ctx).Transaction(fn, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if !esConflictoSerializacion(err) {
			return err
		}
		log.Warn().Int("intento", intento).Msg("transaccion en conflicto, reintentando")
	}
	return ErrConflictoTransaccion
}

func esConflictoSerializacion(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "40001"
}

func esNoEncontrado(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
