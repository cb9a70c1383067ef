package model

type CoinTxKind string

const (
	TxEarnPractice CoinTxKind = "earn_practice" // 每日练习达标奖励
	TxEarnCheckin  CoinTxKind = "earn_checkin"  // 每日签到奖励
	TxSpendRedeem  CoinTxKind = "spend_redeem"  // 兑换礼品扣减
	TxRefundCancel CoinTxKind = "refund_cancel" // 取消兑换退款
	TxPurchase     CoinTxKind = "purchase"      // 充值到账
)

// CoinTransaction 金币流水，只增不改不删。
// Amount 为有符号金额：正数入账，负数出账。
// swagger:model CoinTransaction
type CoinTransaction struct {
	BaseModel
	UserID       uint       `gorm:"index;not null" json:"userId"`
	Amount       int        `gorm:"not null" json:"amount"`
	Kind         CoinTxKind `gorm:"size:20;not null;index" json:"kind"`
	Description  string     `gorm:"size:255" json:"description"`
	ReferenceID  string     `gorm:"size:64;index" json:"referenceId"` // 关联兑换单号/充值单号，可为空
	BalanceAfter int        `gorm:"not null" json:"balanceAfter"`     // 本笔流水后的余额快照
}

func (CoinTransaction) TableName() string {
	return "coin_transactions"
}
