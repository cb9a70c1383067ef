package repository

import (
	"time"

	"lingo_edu_backend/internal/model"

	"gorm.io/gorm"
)

type CheckinRepository struct {
	DB *gorm.DB
}

func NewCheckinRepository(db *gorm.DB) *CheckinRepository {
	return &CheckinRepository{DB: db}
}

// Create 写入签到记录，同日重复会触发唯一索引冲突
func (r *CheckinRepository) Create(tx *gorm.DB, checkin *model.Checkin) error {
	return tx.Create(checkin).Error
}

func (r *CheckinRepository) FindByUserAndDate(userID uint, date time.Time) (*model.Checkin, error) {
	var checkin model.Checkin
	err := r.DB.Where("user_id = ? AND checkin_date = ?", userID, date).First(&checkin).Error
	if err != nil {
		return nil, err
	}
	return &checkin, nil
}

func (r *CheckinRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Checkin{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// ListRecent 最近的签到记录，用于签到日历展示
func (r *CheckinRepository) ListRecent(userID uint, limit int) ([]model.Checkin, error) {
	var checkins []model.Checkin
	err := r.DB.Where("user_id = ?", userID).
		Order("checkin_date DESC").
		Limit(limit).
		Find(&checkins).Error
	return checkins, err
}
