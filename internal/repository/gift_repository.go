package repository

import (
	"lingo_edu_backend/internal/model"

	"gorm.io/gorm"
)

type GiftRepository struct {
	DB *gorm.DB
}

func NewGiftRepository(db *gorm.DB) *GiftRepository {
	return &GiftRepository{DB: db}
}

func (r *GiftRepository) Create(gift *model.Gift) error {
	return r.DB.Create(gift).Error
}

func (r *GiftRepository) FindByID(id uint) (*model.Gift, error) {
	var gift model.Gift
	err := r.DB.First(&gift, id).Error
	if err != nil {
		return nil, err
	}
	return &gift, nil
}

func (r *GiftRepository) FindByIDTx(tx *gorm.DB, id uint) (*model.Gift, error) {
	var gift model.Gift
	err := tx.First(&gift, id).Error
	if err != nil {
		return nil, err
	}
	return &gift, nil
}

func (r *GiftRepository) Update(gift *model.Gift) error {
	return r.DB.Save(gift).Error
}

func (r *GiftRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Gift{}, id).Error
}

// ListActive 商城展示用：上架且有库存
func (r *GiftRepository) ListActive() ([]model.Gift, error) {
	var gifts []model.Gift
	err := r.DB.Where("is_active = ? AND stock > 0", true).
		Order("coins ASC").
		Find(&gifts).Error
	return gifts, err
}

// ListAll 管理端列表
func (r *GiftRepository) ListAll(page, limit int) ([]model.Gift, int64, error) {
	var gifts []model.Gift
	var total int64

	if err := r.DB.Model(&model.Gift{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&gifts).Error
	return gifts, total, err
}

// DecrementStock 条件扣库存：stock > 0 才命中，命中0行即售罄
func (r *GiftRepository) DecrementStock(tx *gorm.DB, id uint) (bool, error) {
	res := tx.Model(&model.Gift{}).
		Where("id = ? AND stock > 0", id).
		Update("stock", gorm.Expr("stock - 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// IncrementStock 取消兑换时回补库存
func (r *GiftRepository) IncrementStock(tx *gorm.DB, id uint) error {
	return tx.Model(&model.Gift{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + 1")).
		Error
}
