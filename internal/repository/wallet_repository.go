package repository

import (
	"lingo_edu_backend/internal/model"

	"gorm.io/gorm"
)

type WalletRepository struct {
	DB *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{DB: db}
}

// GetOrCreate 取出用户钱包，首次活动时隐式建账（余额0）
func (r *WalletRepository) GetOrCreate(tx *gorm.DB, userID uint) (*model.Wallet, error) {
	var wallet model.Wallet
	err := tx.Where(model.Wallet{UserID: userID}).FirstOrCreate(&wallet).Error
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// Find 只读查询，不建账
func (r *WalletRepository) Find(userID uint) (*model.Wallet, error) {
	var wallet model.Wallet
	err := r.DB.Where("user_id = ?", userID).First(&wallet).Error
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// AddBalance 条件更新余额：扣减时带 balance + delta >= 0 守卫，
// 命中0行说明余额不足（或并发下被抢先），由调用方处理。
func (r *WalletRepository) AddBalance(tx *gorm.DB, userID uint, delta int) (bool, error) {
	res := tx.Model(&model.Wallet{}).
		Where("user_id = ? AND balance + ? >= 0", userID, delta).
		Update("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
