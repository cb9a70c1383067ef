package util

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrGiftNotFound       = errors.New("礼品不存在")
	ErrGiftInactive       = errors.New("礼品已下架")
	ErrGiftOutOfStock     = errors.New("礼品库存不足")
	ErrRedemptionNotFound = errors.New("兑换订单不存在")
	ErrNotCancellable     = errors.New("只有待发货订单可以取消")
	ErrInvalidTransition  = errors.New("订单状态不允许该变更")
	ErrAlreadyCheckedIn   = errors.New("今天已经签到过了，明天再来吧")
	ErrOrderProcessed     = errors.New("该充值订单已处理")
	ErrInvalidSeconds     = errors.New("练习时长必须为正数")
)

// InsufficientCoinsError 余额不足，携带差额用于前端提示"还差N金币"
type InsufficientCoinsError struct {
	Need    int // 本次需要的金币
	Balance int // 当前余额
}

func (e *InsufficientCoinsError) Error() string {
	return fmt.Sprintf("金币不足，还差%d金币", e.Shortfall())
}

func (e *InsufficientCoinsError) Shortfall() int {
	return e.Need - e.Balance
}
