package model

// PurchaseOrder 金币充值到账记录。OrderNo 来自支付网关回调，
// 唯一索引保证回调重放不会重复入账。
// swagger:model PurchaseOrder
type PurchaseOrder struct {
	BaseModel
	OrderNo string `gorm:"size:64;uniqueIndex;not null" json:"orderNo"`
	UserID  uint   `gorm:"index;not null" json:"userId"`
	Coins   int    `gorm:"not null" json:"coins"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}
