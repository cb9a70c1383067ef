package service

import (
	"testing"

	"lingo_edu_backend/internal/model"
	"lingo_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportSessionAccumulatesAndAwards(t *testing.T) {
	f := newFixture(t)

	report, err := f.practice.ReportSession(1, 900)
	require.NoError(t, err)
	assert.Equal(t, 900, report.TodaySeconds)
	assert.Equal(t, 0, report.CoinsEarned)
	assert.False(t, report.EarnedToday)

	// 第二段跨过30分钟阈值
	report, err = f.practice.ReportSession(1, 900)
	require.NoError(t, err)
	assert.Equal(t, 1800, report.TodaySeconds)
	assert.Equal(t, 100, report.CoinsEarned)
	assert.True(t, report.CrossedThreshold)
	assert.True(t, report.EarnedToday)

	balance, err := f.ledger.GetBalance(1)
	require.NoError(t, err)
	assert.Equal(t, 100, balance)

	f.assertReconciled(t, 1)
}

func TestReportSessionSingleLongSession(t *testing.T) {
	f := newFixture(t)

	report, err := f.practice.ReportSession(1, 3600)
	require.NoError(t, err)
	assert.Equal(t, 100, report.CoinsEarned)
	assert.True(t, report.CrossedThreshold)
}

func TestReportSessionAwardAtMostOncePerDay(t *testing.T) {
	f := newFixture(t)

	_, err := f.practice.ReportSession(1, 1800)
	require.NoError(t, err)

	// 继续练习不再触发
	report, err := f.practice.ReportSession(1, 1800)
	require.NoError(t, err)
	assert.Equal(t, 0, report.CoinsEarned)
	assert.False(t, report.CrossedThreshold)
	assert.True(t, report.EarnedToday)

	balance, err := f.ledger.GetBalance(1)
	require.NoError(t, err)
	assert.Equal(t, 100, balance)

	var count int64
	require.NoError(t, f.db.Model(&model.CoinTransaction{}).
		Where("user_id = ? AND kind = ?", 1, model.TxEarnPractice).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestReportSessionNewDayAwardsAgain(t *testing.T) {
	f := newFixture(t)

	_, err := f.practice.ReportSession(1, 1800)
	require.NoError(t, err)

	f.advanceDays(1)
	report, err := f.practice.ReportSession(1, 1800)
	require.NoError(t, err)
	assert.Equal(t, 100, report.CoinsEarned)
	assert.Equal(t, 1800, report.TodaySeconds) // 跨天后从零累计

	balance, err := f.ledger.GetBalance(1)
	require.NoError(t, err)
	assert.Equal(t, 200, balance)
	f.assertReconciled(t, 1)
}

func TestReportSessionRejectsNonPositive(t *testing.T) {
	f := newFixture(t)

	_, err := f.practice.ReportSession(1, 0)
	require.ErrorIs(t, err, util.ErrInvalidSeconds)
	_, err = f.practice.ReportSession(1, -60)
	require.ErrorIs(t, err, util.ErrInvalidSeconds)
}

func TestReportSessionUpdatesTotalStudySeconds(t *testing.T) {
	f := newFixture(t)

	_, err := f.practice.ReportSession(1, 600)
	require.NoError(t, err)
	_, err = f.practice.ReportSession(1, 300)
	require.NoError(t, err)

	wallet, err := f.walletRepo.Find(1)
	require.NoError(t, err)
	assert.EqualValues(t, 900, wallet.TotalStudySeconds)
}

func TestTodayProgress(t *testing.T) {
	f := newFixture(t)

	progress, err := f.practice.TodayProgress(1)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.TodaySeconds)
	assert.Equal(t, 1800, progress.ThresholdSeconds)
	assert.False(t, progress.EarnedToday)

	_, err = f.practice.ReportSession(1, 2000)
	require.NoError(t, err)

	progress, err = f.practice.TodayProgress(1)
	require.NoError(t, err)
	assert.Equal(t, 2000, progress.TodaySeconds)
	assert.True(t, progress.EarnedToday)
}
