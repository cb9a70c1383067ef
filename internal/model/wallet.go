package model

import "time"

// Wallet 用户金币账户。余额只允许通过账本服务变更，
// 任何时刻余额都等于该用户全部流水金额之和，且不为负。
// swagger:model Wallet
type Wallet struct {
	BaseModel
	UserID            uint       `gorm:"uniqueIndex;not null" json:"userId"`
	Balance           int        `gorm:"not null;default:0" json:"balance"`
	StreakDays        int        `gorm:"not null;default:0" json:"streakDays"`        // 当前连续签到天数
	LastCheckinDate   *time.Time `json:"lastCheckinDate"`                             // 最近一次签到的日期（按业务时区取整到天）
	TotalStudySeconds int64      `gorm:"not null;default:0" json:"totalStudySeconds"` // 累计练习时长
}

func (Wallet) TableName() string {
	return "wallets"
}
