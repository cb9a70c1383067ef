package model

// Gift 礼品商城条目，由管理员维护。Stock 只能通过兑换/取消
// 流程里的条件更新增减，避免超卖。
// swagger:model Gift
type Gift struct {
	BaseModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:500" json:"description"`
	ImageURL    string `gorm:"size:255" json:"imageUrl"`
	Coins       int    `gorm:"not null" json:"coins"` // 兑换所需金币
	Stock       int    `gorm:"not null;default:0" json:"stock"`
	IsActive    bool   `gorm:"not null;default:true" json:"isActive"`
}

func (Gift) TableName() string {
	return "gifts"
}
