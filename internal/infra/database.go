package infra

import (
	"fmt"

	"maquillarte/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate for
// every table and then applies the idempotent patches AutoMigrate cannot
// express (partial indexes, check constraints on pre-existing tables).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates/updates the schema. Also used by integration tests
// against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Producto{},
		&model.Usuario{},
		&model.VentaEnc{},
		&model.VentaDet{},
		&model.Compra{},
		&model.CompraDet{},
		&model.Gasto{},
		&model.MovimientoStock{},
		&model.HistorialPrecio{},
		&model.Proveedor{},
		&model.ContactoProveedor{},
		&model.Categoria{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate skips on existing
// databases. Safe to re-run on an already patched schema.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// The non-negative stock guard must exist even on databases created
		// before the check tag was added to the model.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_inventario_cantidad') THEN
		    ALTER TABLE inventario ADD CONSTRAINT chk_inventario_cantidad CHECK (cantidad >= 0);
		  END IF;
		END $$`,
		// Partial index for the low-stock alert query.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_inventario_stock_bajo') THEN
		    CREATE INDEX idx_inventario_stock_bajo
		        ON inventario (cantidad)
		        WHERE activo = true AND cantidad < stock_minimo;
		  END IF;
		END $$`,
		// One expense mirror per purchase.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_gastos_compra_unica') THEN
		    CREATE UNIQUE INDEX idx_gastos_compra_unica ON gastos (compra_id) WHERE compra_id IS NOT NULL;
		  END IF;
		END $$`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
