package model

type RedemptionStatus string

const (
	RedemptionPending    RedemptionStatus = "pending"    // 已下单，待发货
	RedemptionProcessing RedemptionStatus = "processing" // 发货处理中
	RedemptionCompleted  RedemptionStatus = "completed"  // 已完成
	RedemptionCancelled  RedemptionStatus = "cancelled"  // 已取消
)

// Redemption 礼品兑换订单。GiftName/CoinsSpent 是下单时的快照，
// 后续礼品改价不影响历史订单。
// swagger:model Redemption
type Redemption struct {
	BaseModel
	OrderNo       string           `gorm:"size:36;uniqueIndex;not null" json:"orderNo"`
	UserID        uint             `gorm:"index;not null" json:"userId"`
	GiftID        uint             `gorm:"index;not null" json:"giftId"`
	GiftName      string           `gorm:"size:100;not null" json:"giftName"`
	CoinsSpent    int              `gorm:"not null" json:"coinsSpent"`
	Status        RedemptionStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ReceiverName  string           `gorm:"size:50" json:"receiverName"`
	ReceiverPhone string           `gorm:"size:20" json:"receiverPhone"`
	Address       string           `gorm:"size:255" json:"address"`
}

func (Redemption) TableName() string {
	return "redemptions"
}

// CanTransition 订单状态机：pending -> processing -> completed，
// pending/processing 可转 cancelled，终态不再变更。
func (s RedemptionStatus) CanTransition(to RedemptionStatus) bool {
	switch s {
	case RedemptionPending:
		return to == RedemptionProcessing || to == RedemptionCompleted || to == RedemptionCancelled
	case RedemptionProcessing:
		return to == RedemptionCompleted || to == RedemptionCancelled
	default:
		return false
	}
}

// IsTerminal 是否为终态
func (s RedemptionStatus) IsTerminal() bool {
	return s == RedemptionCompleted || s == RedemptionCancelled
}

// ValidStatus 校验外部传入的状态值
func ValidStatus(s string) bool {
	switch RedemptionStatus(s) {
	case RedemptionPending, RedemptionProcessing, RedemptionCompleted, RedemptionCancelled:
		return true
	}
	return false
}
