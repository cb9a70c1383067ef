package repository

import (
	"lingo_edu_backend/internal/model"

	"gorm.io/gorm"
)

type RedemptionRepository struct {
	DB *gorm.DB
}

func NewRedemptionRepository(db *gorm.DB) *RedemptionRepository {
	return &RedemptionRepository{DB: db}
}

func (r *RedemptionRepository) Create(tx *gorm.DB, redemption *model.Redemption) error {
	return tx.Create(redemption).Error
}

func (r *RedemptionRepository) FindByID(tx *gorm.DB, id uint) (*model.Redemption, error) {
	var redemption model.Redemption
	err := tx.First(&redemption, id).Error
	if err != nil {
		return nil, err
	}
	return &redemption, nil
}

// UpdateStatusFrom 带前置状态守卫的状态变更，
// 命中0行说明状态已被并发修改，调用方应视为冲突。
func (r *RedemptionRepository) UpdateStatusFrom(tx *gorm.DB, id uint, from, to model.RedemptionStatus) (bool, error) {
	res := tx.Model(&model.Redemption{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListByUser 用户自己的兑换记录
func (r *RedemptionRepository) ListByUser(userID uint, page, limit int) ([]model.Redemption, int64, error) {
	var redemptions []model.Redemption
	var total int64

	query := r.DB.Model(&model.Redemption{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&redemptions).Error
	return redemptions, total, err
}

// ListAll 管理端订单列表，可按状态过滤
func (r *RedemptionRepository) ListAll(page, limit int, status string) ([]model.Redemption, int64, error) {
	var redemptions []model.Redemption
	var total int64

	query := r.DB.Model(&model.Redemption{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&redemptions).Error
	return redemptions, total, err
}

// CountByStatus 管理端看板统计
func (r *RedemptionRepository) CountByStatus() (map[model.RedemptionStatus]int64, error) {
	type row struct {
		Status model.RedemptionStatus
		Count  int64
	}
	var rows []row
	err := r.DB.Model(&model.Redemption{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.RedemptionStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
