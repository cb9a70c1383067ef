package repository

import (
	"lingo_edu_backend/internal/model"

	"gorm.io/gorm"
)

type PurchaseRepository struct {
	DB *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{DB: db}
}

// Create 记录充值订单，OrderNo 唯一索引承担回调去重
func (r *PurchaseRepository) Create(tx *gorm.DB, order *model.PurchaseOrder) error {
	return tx.Create(order).Error
}

func (r *PurchaseRepository) FindByOrderNo(orderNo string) (*model.PurchaseOrder, error) {
	var order model.PurchaseOrder
	err := r.DB.Where("order_no = ?", orderNo).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}
