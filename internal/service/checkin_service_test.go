package service

import (
	"sync"
	"testing"

	"lingo_edu_backend/internal/model"
	"lingo_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInFirstDay(t *testing.T) {
	f := newFixture(t)

	result, err := f.checkin.CheckIn(1)
	require.NoError(t, err)
	assert.Equal(t, 10, result.CoinsEarned)
	assert.Equal(t, 0, result.StreakBonus)
	assert.Equal(t, 1, result.StreakDays)
	assert.Equal(t, 10, result.Balance)
	assert.Equal(t, util.DayStart(f.now, f.loc), result.CheckinDate)

	f.assertReconciled(t, 1)
}

func TestCheckInConsecutiveDays(t *testing.T) {
	f := newFixture(t)

	_, err := f.checkin.CheckIn(1)
	require.NoError(t, err)

	f.advanceDays(1)
	result, err := f.checkin.CheckIn(1)
	require.NoError(t, err)
	assert.Equal(t, 14, result.CoinsEarned) // 10 + 2*2
	assert.Equal(t, 4, result.StreakBonus)
	assert.Equal(t, 2, result.StreakDays)

	f.advanceDays(1)
	result, err = f.checkin.CheckIn(1)
	require.NoError(t, err)
	assert.Equal(t, 16, result.CoinsEarned) // 10 + 3*2
	assert.Equal(t, 3, result.StreakDays)

	assert.Equal(t, 10+14+16, result.Balance)
	f.assertReconciled(t, 1)
}

func TestCheckInBonusCapped(t *testing.T) {
	f := newFixture(t)

	var last *CheckinResult
	for i := 0; i < 12; i++ {
		var err error
		last, err = f.checkin.CheckIn(1)
		require.NoError(t, err)
		f.advanceDays(1)
	}

	assert.Equal(t, 12, last.StreakDays)
	assert.Equal(t, 20, last.StreakBonus)
	assert.Equal(t, 30, last.CoinsEarned)
}

func TestCheckInGapResetsStreak(t *testing.T) {
	f := newFixture(t)

	_, err := f.checkin.CheckIn(1)
	require.NoError(t, err)
	f.advanceDays(1)
	_, err = f.checkin.CheckIn(1)
	require.NoError(t, err)

	// 断签两天
	f.advanceDays(3)
	result, err := f.checkin.CheckIn(1)
	require.NoError(t, err)
	assert.Equal(t, 1, result.StreakDays)
	assert.Equal(t, 0, result.StreakBonus)
	assert.Equal(t, 10, result.CoinsEarned)
}

func TestCheckInTwiceSameDay(t *testing.T) {
	f := newFixture(t)

	_, err := f.checkin.CheckIn(1)
	require.NoError(t, err)

	_, err = f.checkin.CheckIn(1)
	require.ErrorIs(t, err, util.ErrAlreadyCheckedIn)

	// 重复签到不加币也不多记录
	balance, err := f.ledger.GetBalance(1)
	require.NoError(t, err)
	assert.Equal(t, 10, balance)

	var count int64
	require.NoError(t, f.db.Model(&model.Checkin{}).Where("user_id = ?", 1).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	f.assertReconciled(t, 1)
}

func TestCheckInConcurrentSingleWinner(t *testing.T) {
	f := newFixture(t)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.checkin.CheckIn(1)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			require.ErrorIs(t, err, util.ErrAlreadyCheckedIn)
		}
	}
	assert.Equal(t, 1, winners)

	balance, err := f.ledger.GetBalance(1)
	require.NoError(t, err)
	assert.Equal(t, 10, balance)
	f.assertReconciled(t, 1)
}

func TestCheckinStatus(t *testing.T) {
	f := newFixture(t)

	status, err := f.checkin.Status(1)
	require.NoError(t, err)
	assert.False(t, status.CheckedInToday)
	assert.Equal(t, 0, status.StreakDays)
	assert.EqualValues(t, 0, status.TotalCheckins)

	_, err = f.checkin.CheckIn(1)
	require.NoError(t, err)

	status, err = f.checkin.Status(1)
	require.NoError(t, err)
	assert.True(t, status.CheckedInToday)
	assert.Equal(t, 1, status.StreakDays)
	assert.EqualValues(t, 1, status.TotalCheckins)
	require.Len(t, status.Recent, 1)

	// 第二天未签到：今天为false但连签还在
	f.advanceDays(1)
	status, err = f.checkin.Status(1)
	require.NoError(t, err)
	assert.False(t, status.CheckedInToday)
	assert.Equal(t, 1, status.StreakDays)
}
