package service

import (
	"testing"
	"time"

	"lingo_edu_backend/internal/config"
	"lingo_edu_backend/internal/model"
	"lingo_edu_backend/internal/repository"
	"lingo_edu_backend/internal/util"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func testCoinConfig() config.CoinConfig {
	return config.CoinConfig{
		Timezone:               "Asia/Shanghai",
		PracticeThresholdSecs:  1800,
		PracticeAward:          100,
		CheckinBaseAward:       10,
		CheckinStreakBonusStep: 2,
		CheckinStreakBonusCap:  20,
		GiftCacheTTLSecs:       300,
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// 内存库只能有一个连接，多连接会各自看到独立的空库
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Wallet{},
		&model.CoinTransaction{},
		&model.PracticeSession{},
		&model.Checkin{},
		&model.Gift{},
		&model.Redemption{},
		&model.PurchaseOrder{},
	))
	return db
}

// fixture 服务全家桶，时钟可拨动
type fixture struct {
	db         *gorm.DB
	rules      *RulesHolder
	ledger     *LedgerService
	checkin    *CheckinService
	practice   *PracticeService
	gifts      *GiftService
	redemption *RedemptionService
	giftRepo   *repository.GiftRepository
	ledgerRepo *repository.LedgerRepository
	walletRepo *repository.WalletRepository

	now time.Time
	loc *time.Location
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)
	cfg := testCoinConfig()
	rules := NewRulesHolder(cfg)
	_, loc := rules.Snapshot()
	locker := util.NewUserLocker()

	walletRepo := repository.NewWalletRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	practiceRepo := repository.NewPracticeRepository(db)
	checkinRepo := repository.NewCheckinRepository(db)
	giftRepo := repository.NewGiftRepository(db)
	redemptionRepo := repository.NewRedemptionRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)

	f := &fixture{
		db:         db,
		rules:      rules,
		giftRepo:   giftRepo,
		ledgerRepo: ledgerRepo,
		walletRepo: walletRepo,
		now:        time.Date(2026, 3, 10, 12, 0, 0, 0, loc),
		loc:        loc,
	}
	clock := func() time.Time { return f.now }

	f.ledger = NewLedgerService(walletRepo, ledgerRepo, purchaseRepo, db, locker)
	f.checkin = NewCheckinService(checkinRepo, walletRepo, f.ledger, rules, db, locker)
	f.checkin.now = clock
	f.practice = NewPracticeService(practiceRepo, walletRepo, f.ledger, rules, db, locker)
	f.practice.now = clock
	f.gifts = NewGiftService(giftRepo, nil, 0)
	f.redemption = NewRedemptionService(redemptionRepo, giftRepo, f.ledger, f.gifts, db, locker)

	return f
}

// advanceDays 把时钟往后拨 n 天
func (f *fixture) advanceDays(n int) {
	f.now = f.now.AddDate(0, 0, n)
}

// credit 给用户直接入账，用于铺垫余额
func (f *fixture) credit(t *testing.T, userID uint, coins int) {
	t.Helper()
	_, err := f.ledger.ApplyEntry(userID, coins, model.TxPurchase, "test top-up", "")
	require.NoError(t, err)
}

// seedGift 建一个可兑换的礼品
func (f *fixture) seedGift(t *testing.T, coins, stock int) *model.Gift {
	t.Helper()
	gift := &model.Gift{Name: "蓝牙耳机", Coins: coins, Stock: stock, IsActive: true}
	require.NoError(t, f.giftRepo.Create(gift))
	return gift
}

// assertReconciled 校验余额等于流水之和
func (f *fixture) assertReconciled(t *testing.T, userID uint) {
	t.Helper()
	result, err := f.ledger.Reconcile(userID)
	require.NoError(t, err)
	require.True(t, result.Consistent,
		"balance %d != ledger sum %d", result.Balance, result.LedgerSum)
}
