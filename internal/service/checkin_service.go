package service

import (
	"errors"
	"fmt"
	"time"

	"lingo_edu_backend/internal/model"
	"lingo_edu_backend/internal/repository"
	"lingo_edu_backend/internal/util"
	"lingo_edu_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// CheckinService 每日签到。同一用户同一天只能成功一次，
// 由 (user_id, checkin_date) 唯一索引硬约束，并发请求
// 只会有一个赢家，输家拿到 ErrAlreadyCheckedIn。
type CheckinService struct {
	CheckinRepo *repository.CheckinRepository
	WalletRepo  *repository.WalletRepository
	Ledger      *LedgerService
	Rules       *RulesHolder
	DB          *gorm.DB
	Locker      *util.UserLocker

	now func() time.Time
}

func NewCheckinService(checkinRepo *repository.CheckinRepository, walletRepo *repository.WalletRepository, ledger *LedgerService, rules *RulesHolder, db *gorm.DB, locker *util.UserLocker) *CheckinService {
	return &CheckinService{
		CheckinRepo: checkinRepo,
		WalletRepo:  walletRepo,
		Ledger:      ledger,
		Rules:       rules,
		DB:          db,
		Locker:      locker,
		now:         time.Now,
	}
}

// CheckinResult 签到结果
type CheckinResult struct {
	CoinsEarned int       `json:"coinsEarned"`
	StreakBonus int       `json:"streakBonus"`
	StreakDays  int       `json:"streakDays"`
	Balance     int       `json:"balance"`
	CheckinDate time.Time `json:"checkinDate"`
}

// CheckIn 执行签到：写签到记录、更新连签状态、入账奖励，一个事务完成
func (s *CheckinService) CheckIn(userID uint) (*CheckinResult, error) {
	unlock := s.Locker.Lock(userID)
	defer unlock()

	rules, loc := s.Rules.Snapshot()
	today := util.DayStart(s.now(), loc)

	var result *CheckinResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		wallet, err := s.WalletRepo.GetOrCreate(tx, userID)
		if err != nil {
			return err
		}

		award := EvaluateCheckinAward(rules, wallet.LastCheckinDate, today, wallet.StreakDays, loc)

		checkin := &model.Checkin{
			UserID:      userID,
			CheckinDate: today,
			CoinsEarned: award.Award,
			StreakBonus: award.StreakBonus,
			StreakDays:  award.NewStreakDays,
		}
		if err := s.CheckinRepo.Create(tx, checkin); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return util.ErrAlreadyCheckedIn
			}
			return err
		}

		if err := tx.Model(&model.Wallet{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{
				"streak_days":       award.NewStreakDays,
				"last_checkin_date": today,
			}).Error; err != nil {
			return err
		}

		desc := fmt.Sprintf("每日签到，连续%d天", award.NewStreakDays)
		entry, err := s.Ledger.applyEntryTx(tx, userID, award.Award, model.TxEarnCheckin, desc, "")
		if err != nil {
			return err
		}

		result = &CheckinResult{
			CoinsEarned: award.Award,
			StreakBonus: award.StreakBonus,
			StreakDays:  award.NewStreakDays,
			Balance:     entry.BalanceAfter,
			CheckinDate: today,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.RecordCoinFlow(string(model.TxEarnCheckin), result.CoinsEarned)
	return result, nil
}

// CheckinStatus 签到状态（日历页展示用）
type CheckinStatus struct {
	CheckedInToday bool            `json:"checkedInToday"`
	StreakDays     int             `json:"streakDays"`
	TotalCheckins  int64           `json:"totalCheckins"`
	Recent         []model.Checkin `json:"recent"`
}

func (s *CheckinService) Status(userID uint) (*CheckinStatus, error) {
	_, loc := s.Rules.Snapshot()
	today := util.DayStart(s.now(), loc)

	status := &CheckinStatus{}

	if _, err := s.CheckinRepo.FindByUserAndDate(userID, today); err == nil {
		status.CheckedInToday = true
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	wallet, err := s.WalletRepo.Find(userID)
	if err == nil {
		status.StreakDays = wallet.StreakDays
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	total, err := s.CheckinRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	status.TotalCheckins = total

	recent, err := s.CheckinRepo.ListRecent(userID, 30)
	if err != nil {
		return nil, err
	}
	status.Recent = recent

	return status, nil
}
