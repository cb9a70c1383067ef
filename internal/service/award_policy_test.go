package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultRules() CoinRules {
	return RulesFromConfig(testCoinConfig())
}

func TestEvaluatePracticeAward(t *testing.T) {
	rules := defaultRules()

	tests := []struct {
		name    string
		session int
		prior   int
		already bool
		want    PracticeAwardResult
	}{
		{
			name:    "crosses threshold",
			session: 900,
			prior:   900,
			want:    PracticeAwardResult{Award: 100, CrossesThreshold: true},
		},
		{
			name:    "single long session crosses",
			session: 3600,
			prior:   0,
			want:    PracticeAwardResult{Award: 100, CrossesThreshold: true},
		},
		{
			name:    "exactly at threshold",
			session: 1800,
			prior:   0,
			want:    PracticeAwardResult{Award: 100, CrossesThreshold: true},
		},
		{
			name:    "below threshold",
			session: 600,
			prior:   600,
			want:    PracticeAwardResult{},
		},
		{
			name:    "already above threshold before session",
			session: 600,
			prior:   2000,
			want:    PracticeAwardResult{},
		},
		{
			name:    "crosses but already earned today",
			session: 1800,
			prior:   0,
			already: true,
			want:    PracticeAwardResult{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluatePracticeAward(rules, tt.session, tt.prior, tt.already)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateCheckinAward(t *testing.T) {
	rules := defaultRules()
	loc, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)

	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 0, 0, 0, 0, loc)
	}

	t.Run("first checkin ever", func(t *testing.T) {
		got := EvaluateCheckinAward(rules, nil, day(10), 0, loc)
		assert.Equal(t, CheckinAwardResult{Award: 10, NewStreakDays: 1, StreakBonus: 0}, got)
	})

	t.Run("second consecutive day", func(t *testing.T) {
		last := day(9)
		got := EvaluateCheckinAward(rules, &last, day(10), 1, loc)
		assert.Equal(t, CheckinAwardResult{Award: 14, NewStreakDays: 2, StreakBonus: 4}, got)
	})

	t.Run("bonus capped at 20", func(t *testing.T) {
		last := day(9)
		got := EvaluateCheckinAward(rules, &last, day(10), 9, loc)
		assert.Equal(t, CheckinAwardResult{Award: 30, NewStreakDays: 10, StreakBonus: 20}, got)
	})

	t.Run("still capped far beyond", func(t *testing.T) {
		last := day(9)
		got := EvaluateCheckinAward(rules, &last, day(10), 99, loc)
		assert.Equal(t, 30, got.Award)
		assert.Equal(t, 20, got.StreakBonus)
	})

	t.Run("gap resets streak", func(t *testing.T) {
		last := day(7)
		got := EvaluateCheckinAward(rules, &last, day(10), 5, loc)
		assert.Equal(t, CheckinAwardResult{Award: 10, NewStreakDays: 1, StreakBonus: 0}, got)
	})
}

func TestRulesHolderUpdate(t *testing.T) {
	holder := NewRulesHolder(testCoinConfig())

	rules, loc := holder.Snapshot()
	assert.Equal(t, 100, rules.PracticeAward)
	assert.Equal(t, "Asia/Shanghai", loc.String())

	cfg := testCoinConfig()
	cfg.PracticeAward = 50
	cfg.Timezone = "UTC"
	holder.Update(cfg)

	rules, loc = holder.Snapshot()
	assert.Equal(t, 50, rules.PracticeAward)
	assert.Equal(t, "UTC", loc.String())
}
