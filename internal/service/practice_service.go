package service

import (
	"time"

	"lingo_edu_backend/internal/model"
	"lingo_edu_backend/internal/repository"
	"lingo_edu_backend/internal/util"
	"lingo_edu_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// PracticeService 练习时长上报与达标奖励。
// "今天是否已发过奖励"直接查账本流水，与时长统计同一事务
// 读取，不维护第二份聚合，避免两处数据漂移。
type PracticeService struct {
	PracticeRepo *repository.PracticeRepository
	WalletRepo   *repository.WalletRepository
	Ledger       *LedgerService
	Rules        *RulesHolder
	DB           *gorm.DB
	Locker       *util.UserLocker

	now func() time.Time
}

func NewPracticeService(practiceRepo *repository.PracticeRepository, walletRepo *repository.WalletRepository, ledger *LedgerService, rules *RulesHolder, db *gorm.DB, locker *util.UserLocker) *PracticeService {
	return &PracticeService{
		PracticeRepo: practiceRepo,
		WalletRepo:   walletRepo,
		Ledger:       ledger,
		Rules:        rules,
		DB:           db,
		Locker:       locker,
		now:          time.Now,
	}
}

// PracticeReport 上报结果
type PracticeReport struct {
	TodaySeconds     int  `json:"todaySeconds"`
	ThresholdSeconds int  `json:"thresholdSeconds"`
	CoinsEarned      int  `json:"coinsEarned"`
	CrossedThreshold bool `json:"crossedThreshold"`
	EarnedToday      bool `json:"earnedToday"`
}

// ReportSession 上报一段练习时长。只校验非负，时长真实性由客户端保证。
func (s *PracticeService) ReportSession(userID uint, seconds int) (*PracticeReport, error) {
	if seconds <= 0 {
		return nil, util.ErrInvalidSeconds
	}

	unlock := s.Locker.Lock(userID)
	defer unlock()

	rules, loc := s.Rules.Snapshot()
	day := util.DayStart(s.now(), loc)

	var report *PracticeReport
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		prior, err := s.PracticeRepo.SumSecondsByDate(tx, userID, day)
		if err != nil {
			return err
		}

		session := &model.PracticeSession{
			UserID:       userID,
			Seconds:      seconds,
			PracticeDate: day,
		}
		if err := s.PracticeRepo.Create(tx, session); err != nil {
			return err
		}

		if _, err := s.WalletRepo.GetOrCreate(tx, userID); err != nil {
			return err
		}
		if err := tx.Model(&model.Wallet{}).
			Where("user_id = ?", userID).
			Update("total_study_seconds", gorm.Expr("total_study_seconds + ?", seconds)).
			Error; err != nil {
			return err
		}

		already, err := s.Ledger.LedgerRepo.ExistsKindSince(tx, userID, model.TxEarnPractice, day)
		if err != nil {
			return err
		}

		res := EvaluatePracticeAward(rules, seconds, prior, already)
		if res.Award > 0 {
			if _, err := s.Ledger.applyEntryTx(tx, userID, res.Award, model.TxEarnPractice, "每日练习达标奖励", ""); err != nil {
				return err
			}
		}

		report = &PracticeReport{
			TodaySeconds:     prior + seconds,
			ThresholdSeconds: rules.PracticeThresholdSecs,
			CoinsEarned:      res.Award,
			CrossedThreshold: res.CrossesThreshold,
			EarnedToday:      already || res.Award > 0,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if report.CoinsEarned > 0 {
		monitoring.RecordCoinFlow(string(model.TxEarnPractice), report.CoinsEarned)
	}
	return report, nil
}

// TodayProgress 今日练习进度（钱包页展示用）
func (s *PracticeService) TodayProgress(userID uint) (*PracticeReport, error) {
	rules, loc := s.Rules.Snapshot()
	day := util.DayStart(s.now(), loc)

	seconds, err := s.PracticeRepo.SumSecondsByDate(s.DB, userID, day)
	if err != nil {
		return nil, err
	}
	already, err := s.Ledger.LedgerRepo.ExistsKindSince(s.DB, userID, model.TxEarnPractice, day)
	if err != nil {
		return nil, err
	}

	return &PracticeReport{
		TodaySeconds:     seconds,
		ThresholdSeconds: rules.PracticeThresholdSecs,
		EarnedToday:      already,
	}, nil
}
