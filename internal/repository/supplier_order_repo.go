package repository

import (
	"context"

	"shopstock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupplierOrderRepository interface {
	Create(ctx context.Context, order *model.SupplierOrder) error
	CreateItems(ctx context.Context, items []model.SupplierOrderItem) error
	Update(ctx context.Context, order *model.SupplierOrder) error
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.SupplierOrder, error)
	List(ctx context.Context, page, limit int, status string, supplierID *uuid.UUID) ([]model.SupplierOrder, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	DeleteItemsByOrderID(ctx context.Context, orderID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type supplierOrderRepository struct {
	db *gorm.DB
}

func NewSupplierOrderRepository(db *gorm.DB) SupplierOrderRepository {
	return &supplierOrderRepository{db: db}
}

func (r *supplierOrderRepository) Create(ctx context.Context, order *model.SupplierOrder) error {
	return GetDB(ctx, r.db).Create(order).Error
}

func (r *supplierOrderRepository) CreateItems(ctx context.Context, items []model.SupplierOrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Create(&items).Error
}

func (r *supplierOrderRepository) Update(ctx context.Context, order *model.SupplierOrder) error {
	return GetDB(ctx, r.db).Save(order).Error
}

func (r *supplierOrderRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.SupplierOrder, error) {
	var order model.SupplierOrder
	if err := GetDB(ctx, r.db).
		Preload("Supplier").
		Preload("Items").
		Preload("Items.Product").
		First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *supplierOrderRepository) List(ctx context.Context, page, limit int, status string, supplierID *uuid.UUID) ([]model.SupplierOrder, int64, error) {
	var orders []model.SupplierOrder
	var total int64

	db := GetDB(ctx, r.db).Model(&model.SupplierOrder{})
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if supplierID != nil {
		db = db.Where("supplier_id = ?", *supplierID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.
		Preload("Supplier").
		Preload("Items").
		Preload("Items.Product").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *supplierOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return GetDB(ctx, r.db).Model(&model.SupplierOrder{}).Where("id = ?", id).Update("status", status).Error
}

func (r *supplierOrderRepository) DeleteItemsByOrderID(ctx context.Context, orderID uuid.UUID) error {
	return GetDB(ctx, r.db).Where("supplier_order_id = ?", orderID).Delete(&model.SupplierOrderItem{}).Error
}

func (r *supplierOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.SupplierOrder{}).Error
}
