package service

import (
	"testing"

	"lingo_edu_backend/internal/model"
	"lingo_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redeemReq(giftID uint) RedeemRequest {
	return RedeemRequest{
		GiftID:        giftID,
		ReceiverName:  "小李",
		ReceiverPhone: "13800138000",
		Address:       "上海市徐汇区",
	}
}

func TestRedeemHappyPath(t *testing.T) {
	f := newFixture(t)
	gift := f.seedGift(t, 500, 3)
	f.credit(t, 1, 600)

	red, err := f.redemption.Redeem(1, redeemReq(gift.ID))
	require.NoError(t, err)
	assert.Equal(t, model.RedemptionPending, red.Status)
	assert.Equal(t, 500, red.CoinsSpent)
	assert.Equal(t, gift.Name, red.GiftName)
	assert.NotEmpty(t, red.OrderNo)

	balance, err := f.ledger.GetBalance(1)
	require.NoError(t, err)
	assert.Equal(t, 100, balance)

	updated, err := f.giftRepo.FindByID(gift.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Stock)

	f.assertReconciled(t, 1)
}

func TestRedeemInsufficientCoins(t *testing.T) {
	f := newFixture(t)
	gift := f.seedGift(t, 500, 3)
	f.credit(t, 1, 100)

	_, err := f.redemption.Redeem(1, redeemReq(gift.ID))
	var insufficient *util.InsufficientCoinsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 400, insufficient.Shortfall())

	// 失败的兑换不扣库存不建单
	updated, err := f.giftRepo.FindByID(gift.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Stock)

	var count int64
	require.NoError(t, f.db.Model(&model.Redemption{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	balance, err := f.ledger.GetBalance(1)
	require.NoError(t, err)
	assert.Equal(t, 100, balance)
	f.assertReconciled(t, 1)
}

func TestRedeemOutOfStock(t *testing.T) {
	f := newFixture(t)
	gift := f.seedGift(t, 100, 1)
	f.credit(t, 1, 1000)

	_, err := f.redemption.Redeem(1, redeemReq(gift.ID))
	require.NoError(t, err)

	_, err = f.redemption.Redeem(1, redeemReq(gift.ID))
	require.ErrorIs(t, err, util.ErrGiftOutOfStock)

	balance, err := f.ledger.GetBalance(1)
	require.NoError(t, err)
	assert.Equal(t, 900, balance)
}

func TestRedeemInactiveGift(t *testing.T) {
	f := newFixture(t)
	gift := f.seedGift(t, 100, 5)
	gift.IsActive = false
	require.NoError(t, f.giftRepo.Update(gift))
	f.credit(t, 1, 1000)

	_, err := f.redemption.Redeem(1, redeemReq(gift.ID))
	require.ErrorIs(t, err, util.ErrGiftInactive)
}

func TestRedeemUnknownGift(t *testing.T) {
	f := newFixture(t)
	f.credit(t, 1, 1000)

	_, err := f.redemption.Redeem(1, redeemReq(999))
	require.ErrorIs(t, err, util.ErrGiftNotFound)
}

func TestCancelRefundsAndRestocks(t *testing.T) {
	f := newFixture(t)
	gift := f.seedGift(t, 500, 3)
	f.credit(t, 1, 600)

	red, err := f.redemption.Redeem(1, redeemReq(gift.ID))
	require.NoError(t, err)

	cancelled, err := f.redemption.Cancel(1, red.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RedemptionCancelled, cancelled.Status)

	// 余额和库存回到兑换前
	balance, err := f.ledger.GetBalance(1)
	require.NoError(t, err)
	assert.Equal(t, 600, balance)

	updated, err := f.giftRepo.FindByID(gift.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Stock)

	// 账本留下一扣一退两笔，合计为零
	entries, _, err := f.ledger.GetHistory(1, 1, 10)
	require.NoError(t, err)
	var spend, refund *model.CoinTransaction
	for i := range entries {
		switch entries[i].Kind {
		case model.TxSpendRedeem:
			spend = &entries[i]
		case model.TxRefundCancel:
			refund = &entries[i]
		}
	}
	require.NotNil(t, spend)
	require.NotNil(t, refund)
	assert.Equal(t, 0, spend.Amount+refund.Amount)
	assert.Equal(t, red.OrderNo, spend.ReferenceID)
	assert.Equal(t, red.OrderNo, refund.ReferenceID)

	f.assertReconciled(t, 1)
}

func TestCancelOnlyPending(t *testing.T) {
	f := newFixture(t)
	gift := f.seedGift(t, 100, 3)
	f.credit(t, 1, 500)

	red, err := f.redemption.Redeem(1, redeemReq(gift.ID))
	require.NoError(t, err)

	_, err = f.redemption.SetStatus(red.ID, model.RedemptionProcessing)
	require.NoError(t, err)

	_, err = f.redemption.Cancel(1, red.ID)
	require.ErrorIs(t, err, util.ErrNotCancellable)

	// 重复取消同样失败
	red2, err := f.redemption.Redeem(1, redeemReq(gift.ID))
	require.NoError(t, err)
	_, err = f.redemption.Cancel(1, red2.ID)
	require.NoError(t, err)
	_, err = f.redemption.Cancel(1, red2.ID)
	require.ErrorIs(t, err, util.ErrNotCancellable)
}

func TestCancelOtherUsersOrder(t *testing.T) {
	f := newFixture(t)
	gift := f.seedGift(t, 100, 3)
	f.credit(t, 1, 500)

	red, err := f.redemption.Redeem(1, redeemReq(gift.ID))
	require.NoError(t, err)

	// 他人订单表现为不存在
	_, err = f.redemption.Cancel(2, red.ID)
	require.ErrorIs(t, err, util.ErrRedemptionNotFound)
}

func TestSetStatusTransitions(t *testing.T) {
	f := newFixture(t)
	gift := f.seedGift(t, 100, 3)
	f.credit(t, 1, 500)

	red, err := f.redemption.Redeem(1, redeemReq(gift.ID))
	require.NoError(t, err)

	updated, err := f.redemption.SetStatus(red.ID, model.RedemptionProcessing)
	require.NoError(t, err)
	assert.Equal(t, model.RedemptionProcessing, updated.Status)

	updated, err = f.redemption.SetStatus(red.ID, model.RedemptionCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.RedemptionCompleted, updated.Status)

	// 终态不可再变
	_, err = f.redemption.SetStatus(red.ID, model.RedemptionCancelled)
	require.ErrorIs(t, err, util.ErrInvalidTransition)

	// 完成的订单不退款
	balance, err := f.ledger.GetBalance(1)
	require.NoError(t, err)
	assert.Equal(t, 400, balance)
}

func TestSetStatusAdminCancelRefunds(t *testing.T) {
	f := newFixture(t)
	gift := f.seedGift(t, 200, 2)
	f.credit(t, 1, 500)

	red, err := f.redemption.Redeem(1, redeemReq(gift.ID))
	require.NoError(t, err)
	_, err = f.redemption.SetStatus(red.ID, model.RedemptionProcessing)
	require.NoError(t, err)

	// 管理员从 processing 取消，同样退款回补库存
	updated, err := f.redemption.SetStatus(red.ID, model.RedemptionCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.RedemptionCancelled, updated.Status)

	balance, err := f.ledger.GetBalance(1)
	require.NoError(t, err)
	assert.Equal(t, 500, balance)

	g, err := f.giftRepo.FindByID(gift.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Stock)

	f.assertReconciled(t, 1)
}

func TestSetStatusUnknownOrder(t *testing.T) {
	f := newFixture(t)
	_, err := f.redemption.SetStatus(999, model.RedemptionProcessing)
	require.ErrorIs(t, err, util.ErrRedemptionNotFound)
}

func TestListByUser(t *testing.T) {
	f := newFixture(t)
	gift := f.seedGift(t, 100, 10)
	f.credit(t, 1, 1000)
	f.credit(t, 2, 1000)

	_, err := f.redemption.Redeem(1, redeemReq(gift.ID))
	require.NoError(t, err)
	_, err = f.redemption.Redeem(1, redeemReq(gift.ID))
	require.NoError(t, err)
	_, err = f.redemption.Redeem(2, redeemReq(gift.ID))
	require.NoError(t, err)

	mine, total, err := f.redemption.ListByUser(1, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, mine, 2)
	for _, r := range mine {
		assert.EqualValues(t, 1, r.UserID)
	}

	all, total, err := f.redemption.ListAll(1, 10, "")
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 3)
}
