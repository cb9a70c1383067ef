package service

import (
	"sync"
	"time"

	"lingo_edu_backend/internal/config"
	"lingo_edu_backend/internal/util"
)

// CoinRules 奖励规则参数，来自配置，默认值即产品规则：
// 当日练习满30分钟奖励100金币；签到基础10金币，
// 连续签到加成 min(连续天数*2, 20)。
type CoinRules struct {
	PracticeThresholdSecs int
	PracticeAward         int
	CheckinBaseAward      int
	StreakBonusStep       int
	StreakBonusCap        int
}

func RulesFromConfig(cfg config.CoinConfig) CoinRules {
	return CoinRules{
		PracticeThresholdSecs: cfg.PracticeThresholdSecs,
		PracticeAward:         cfg.PracticeAward,
		CheckinBaseAward:      cfg.CheckinBaseAward,
		StreakBonusStep:       cfg.CheckinStreakBonusStep,
		StreakBonusCap:        cfg.CheckinStreakBonusCap,
	}
}

type PracticeAwardResult struct {
	Award            int  `json:"award"`
	CrossesThreshold bool `json:"crossesThreshold"`
}

// EvaluatePracticeAward 练习奖励判定。纯函数，不做任何 I/O。
//
// 奖励只在"当日累计时长跨过阈值的那一刻"发放一次：
// priorDailySeconds < 阈值 <= priorDailySeconds + sessionSeconds，
// 且当天还没有发过。跨过之后的上报不再触发，单次超长的
// 上报也只发一次。
func EvaluatePracticeAward(rules CoinRules, sessionSeconds, priorDailySeconds int, alreadyEarnedToday bool) PracticeAwardResult {
	crosses := priorDailySeconds < rules.PracticeThresholdSecs &&
		priorDailySeconds+sessionSeconds >= rules.PracticeThresholdSecs

	if !crosses || alreadyEarnedToday {
		return PracticeAwardResult{}
	}

	return PracticeAwardResult{
		Award:            rules.PracticeAward,
		CrossesThreshold: true,
	}
}

type CheckinAwardResult struct {
	Award         int `json:"award"`
	NewStreakDays int `json:"newStreakDays"`
	StreakBonus   int `json:"streakBonus"`
}

// EvaluateCheckinAward 签到奖励判定。纯函数。
//
// 昨天签过则连签+1并按新天数计加成（封顶），断签或首签
// 则连签重置为1、无加成。同日重复签到不会走到这里——
// 上游由 (user_id, checkin_date) 唯一索引拦截。
func EvaluateCheckinAward(rules CoinRules, lastCheckinDate *time.Time, today time.Time, currentStreakDays int, loc *time.Location) CheckinAwardResult {
	newStreak := 1
	bonus := 0

	if lastCheckinDate != nil && util.DaysBetween(*lastCheckinDate, today, loc) == 1 {
		newStreak = currentStreakDays + 1
		bonus = newStreak * rules.StreakBonusStep
		if bonus > rules.StreakBonusCap {
			bonus = rules.StreakBonusCap
		}
	}

	return CheckinAwardResult{
		Award:         rules.CheckinBaseAward + bonus,
		NewStreakDays: newStreak,
		StreakBonus:   bonus,
	}
}

// RulesHolder 配置热更新时规则会被整体替换，读写加锁
type RulesHolder struct {
	mu    sync.RWMutex
	rules CoinRules
	loc   *time.Location
}

func NewRulesHolder(cfg config.CoinConfig) *RulesHolder {
	return &RulesHolder{
		rules: RulesFromConfig(cfg),
		loc:   cfg.Location(),
	}
}

func (h *RulesHolder) Snapshot() (CoinRules, *time.Location) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rules, h.loc
}

func (h *RulesHolder) Update(cfg config.CoinConfig) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rules = RulesFromConfig(cfg)
	h.loc = cfg.Location()
}
