package repository

import (
	"context"

	"maquillarte/internal/dto"
	"maquillarte/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaRepository interface {
	CreateTx(tx *gorm.DB, v *model.VentaEnc) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.VentaEnc, error)
	List(ctx context.Context, filter dto.VentaFilter) ([]model.VentaEnc, int64, error)

	// Line-level mutations used by the edit flow — all within the caller's tx.
	UpdateHeaderTx(tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
	CreateDetalleTx(tx *gorm.DB, d *model.VentaDet) error
	UpdateDetalleTx(tx *gorm.DB, id uuid.UUID, cantidad int, precio decimal.Decimal) error
	DeleteDetalleTx(tx *gorm.DB, id uuid.UUID) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) CreateTx(tx *gorm.DB, v *model.VentaEnc) error {
	return tx.Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.VentaEnc, error) {
	var v model.VentaEnc
	err := r.db.WithContext(ctx).Preload("Detalles").First(&v, "id = ?", id).Error
	return &v, err
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.VentaEnc, int64, error) {
	var ventas []model.VentaEnc
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.VentaEnc{})

	if filter.Desde != "" {
		q = q.Where("DATE(fecha_hora) >= ?", filter.Desde)
	}
	if filter.Hasta != "" {
		q = q.Where("DATE(fecha_hora) <= ?", filter.Hasta)
	}
	if filter.Desde == "" && filter.Hasta == "" {
		// Default: today
		q = q.Where("DATE(fecha_hora) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Detalles").
		Order("fecha_hora DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventas).Error

	return ventas, total, err
}

func (r *ventaRepo) UpdateHeaderTx(tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	return tx.Model(&model.VentaEnc{}).Where("id = ?", id).Updates(fields).Error
}

func (r *ventaRepo) CreateDetalleTx(tx *gorm.DB, d *model.VentaDet) error {
	return tx.Create(d).Error
}

func (r *ventaRepo) UpdateDetalleTx(tx *gorm.DB, id uuid.UUID, cantidad int, precio decimal.Decimal) error {
	return tx.Model(&model.VentaDet{}).Where("id = ?", id).Updates(map[string]interface{}{
		"cantidad":        cantidad,
		"precio_unitario": precio,
	}).Error
}

func (r *ventaRepo) DeleteDetalleTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.VentaDet{}, "id = ?", id).Error
}

// DeleteTx removes the header and all its lines. Lines go first so the
// delete works the same on stores without cascading foreign keys.
func (r *ventaRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Delete(&model.VentaDet{}, "venta_enc_id = ?", id).Error; err != nil {
		return err
	}
	return tx.Delete(&model.VentaEnc{}, "id = ?", id).Error
}
