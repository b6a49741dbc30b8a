package repository

import (
	"context"

	"maquillarte/internal/model"

	"gorm.io/gorm"
)

type HistorialPrecioRepository interface {
	CreateTx(tx *gorm.DB, h *model.HistorialPrecio) error
	ListByProducto(ctx context.Context, productoDocID string, limit int) ([]model.HistorialPrecio, error)
}

type historialPrecioRepo struct{ db *gorm.DB }

func NewHistorialPrecioRepository(db *gorm.DB) HistorialPrecioRepository {
	return &historialPrecioRepo{db: db}
}

func (r *historialPrecioRepo) CreateTx(tx *gorm.DB, h *model.HistorialPrecio) error {
	return tx.Create(h).Error
}

func (r *historialPrecioRepo) ListByProducto(ctx context.Context, productoDocID string, limit int) ([]model.HistorialPrecio, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	var historial []model.HistorialPrecio
	err := r.db.WithContext(ctx).
		Where("producto_doc_id = ?", productoDocID).
		Order("created_at DESC").
		Limit(limit).
		Find(&historial).Error
	return historial, err
}
