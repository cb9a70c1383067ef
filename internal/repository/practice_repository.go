package repository

import (
	"time"

	"lingo_edu_backend/internal/model"

	"gorm.io/gorm"
)

type PracticeRepository struct {
	DB *gorm.DB
}

func NewPracticeRepository(db *gorm.DB) *PracticeRepository {
	return &PracticeRepository{DB: db}
}

func (r *PracticeRepository) Create(tx *gorm.DB, session *model.PracticeSession) error {
	return tx.Create(session).Error
}

// SumSecondsByDate 用户某个日历日的累计练习秒数
func (r *PracticeRepository) SumSecondsByDate(tx *gorm.DB, userID uint, date time.Time) (int, error) {
	var sum int64
	err := tx.Model(&model.PracticeSession{}).
		Where("user_id = ? AND practice_date = ?", userID, date).
		Select("COALESCE(SUM(seconds), 0)").
		Scan(&sum).Error
	return int(sum), err
}
