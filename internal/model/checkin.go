package model

import "time"

// Checkin 每日签到记录。(user_id, checkin_date) 唯一索引是
// 防止同日重复签到的硬约束，并发下只会有一条成功。
// swagger:model Checkin
type Checkin struct {
	BaseModel
	UserID      uint      `gorm:"uniqueIndex:idx_user_checkin_date;not null" json:"userId"`
	CheckinDate time.Time `gorm:"uniqueIndex:idx_user_checkin_date;not null" json:"checkinDate"`
	CoinsEarned int       `gorm:"not null" json:"coinsEarned"`
	StreakBonus int       `gorm:"not null" json:"streakBonus"`
	StreakDays  int       `gorm:"not null" json:"streakDays"` // 签到后的连续天数
}

func (Checkin) TableName() string {
	return "checkins"
}
