package service

import (
	"testing"

	"lingo_edu_backend/internal/model"
	"lingo_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerCreditAndDebit(t *testing.T) {
	f := newFixture(t)

	entry, err := f.ledger.ApplyEntry(1, 100, model.TxEarnPractice, "练习奖励", "")
	require.NoError(t, err)
	assert.Equal(t, 100, entry.Amount)
	assert.Equal(t, 100, entry.BalanceAfter)

	entry, err = f.ledger.ApplyEntry(1, -30, model.TxSpendRedeem, "兑换", "order-1")
	require.NoError(t, err)
	assert.Equal(t, 70, entry.BalanceAfter)

	balance, err := f.ledger.GetBalance(1)
	require.NoError(t, err)
	assert.Equal(t, 70, balance)

	f.assertReconciled(t, 1)
}

func TestLedgerInsufficientBalance(t *testing.T) {
	f := newFixture(t)
	f.credit(t, 1, 50)

	_, err := f.ledger.ApplyEntry(1, -80, model.TxSpendRedeem, "兑换", "")
	require.Error(t, err)

	var insufficient *util.InsufficientCoinsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 80, insufficient.Need)
	assert.Equal(t, 50, insufficient.Balance)
	assert.Equal(t, 30, insufficient.Shortfall())

	// 失败的扣减不留任何痕迹
	balance, err := f.ledger.GetBalance(1)
	require.NoError(t, err)
	assert.Equal(t, 50, balance)

	_, total, err := f.ledger.GetHistory(1, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	f.assertReconciled(t, 1)
}

func TestLedgerUnknownUserBalanceIsZero(t *testing.T) {
	f := newFixture(t)

	balance, err := f.ledger.GetBalance(42)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)
}

func TestLedgerHistoryNewestFirst(t *testing.T) {
	f := newFixture(t)
	f.credit(t, 1, 10)
	f.credit(t, 1, 20)
	f.credit(t, 1, 30)

	entries, total, err := f.ledger.GetHistory(1, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, entries, 3)
	assert.Equal(t, 30, entries[0].Amount)
	assert.Equal(t, 10, entries[2].Amount)

	// 每条流水都带余额快照
	assert.Equal(t, 60, entries[0].BalanceAfter)
	assert.Equal(t, 30, entries[1].BalanceAfter)
	assert.Equal(t, 10, entries[2].BalanceAfter)
}

func TestLedgerHistoryIsolatedPerUser(t *testing.T) {
	f := newFixture(t)
	f.credit(t, 1, 100)
	f.credit(t, 2, 200)

	entries, total, err := f.ledger.GetHistory(1, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, 100, entries[0].Amount)
}

func TestCreditPurchaseIdempotent(t *testing.T) {
	f := newFixture(t)

	entry, err := f.ledger.CreditPurchase(1, 500, "wx-20260310-001")
	require.NoError(t, err)
	assert.Equal(t, 500, entry.BalanceAfter)

	// 网关重放同一单号，不重复加币
	_, err = f.ledger.CreditPurchase(1, 500, "wx-20260310-001")
	require.ErrorIs(t, err, util.ErrOrderProcessed)

	balance, err := f.ledger.GetBalance(1)
	require.NoError(t, err)
	assert.Equal(t, 500, balance)

	// 换个单号正常入账
	_, err = f.ledger.CreditPurchase(1, 300, "wx-20260310-002")
	require.NoError(t, err)

	balance, err = f.ledger.GetBalance(1)
	require.NoError(t, err)
	assert.Equal(t, 800, balance)

	f.assertReconciled(t, 1)
}

func TestCreditPurchaseRejectsNonPositive(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.CreditPurchase(1, 0, "wx-1")
	require.Error(t, err)
	_, err = f.ledger.CreditPurchase(1, -10, "wx-2")
	require.Error(t, err)
}
