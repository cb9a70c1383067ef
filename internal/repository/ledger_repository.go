package repository

import (
	"time"

	"lingo_edu_backend/internal/model"

	"gorm.io/gorm"
)

type LedgerRepository struct {
	DB *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{DB: db}
}

func (r *LedgerRepository) Create(tx *gorm.DB, entry *model.CoinTransaction) error {
	return tx.Create(entry).Error
}

// History 用户流水，新的在前，offset 分页
func (r *LedgerRepository) History(userID uint, page, limit int) ([]model.CoinTransaction, int64, error) {
	var entries []model.CoinTransaction
	var total int64

	query := r.DB.Model(&model.CoinTransaction{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&entries).Error
	return entries, total, err
}

// SumByUser 用户全部流水之和，用于对账校验
func (r *LedgerRepository) SumByUser(userID uint) (int64, error) {
	var sum int64
	err := r.DB.Model(&model.CoinTransaction{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

// ExistsKindSince 用户在 since 之后是否已有某类流水。
// 练习奖励的"今天是否已发过"直接看账本，与练习时长统计同源。
func (r *LedgerRepository) ExistsKindSince(tx *gorm.DB, userID uint, kind model.CoinTxKind, since time.Time) (bool, error) {
	var count int64
	err := tx.Model(&model.CoinTransaction{}).
		Where("user_id = ? AND kind = ? AND created_at >= ?", userID, kind, since).
		Count(&count).Error
	return count > 0, err
}

// ListAll 管理端流水审查
func (r *LedgerRepository) ListAll(page, limit int, kind string) ([]model.CoinTransaction, int64, error) {
	var entries []model.CoinTransaction
	var total int64

	query := r.DB.Model(&model.CoinTransaction{})
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&entries).Error
	return entries, total, err
}

// SumByDirection 汇总发放/消耗总额，amount 正负各算一边
func (r *LedgerRepository) SumByDirection() (issued int64, spent int64, err error) {
	err = r.DB.Model(&model.CoinTransaction{}).
		Where("amount > 0").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&issued).Error
	if err != nil {
		return 0, 0, err
	}
	err = r.DB.Model(&model.CoinTransaction{}).
		Where("amount < 0").
		Select("COALESCE(SUM(-amount), 0)").
		Scan(&spent).Error
	return issued, spent, err
}
