package model

import "time"

// PracticeSession 一次上报的练习时段。PracticeDate 由服务端时钟
// 按业务时区取整得到，不信任客户端给的日期。
// swagger:model PracticeSession
type PracticeSession struct {
	BaseModel
	UserID       uint      `gorm:"index:idx_user_practice_date;not null" json:"userId"`
	Seconds      int       `gorm:"not null" json:"seconds"`
	PracticeDate time.Time `gorm:"index:idx_user_practice_date;not null" json:"practiceDate"`
}

func (PracticeSession) TableName() string {
	return "practice_sessions"
}
