package service

import (
	"errors"
	"fmt"

	"lingo_edu_backend/internal/model"
	"lingo_edu_backend/internal/repository"
	"lingo_edu_backend/internal/util"
	"lingo_edu_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// LedgerService 余额与流水的唯一写入口。
// 余额变更和流水追加在同一个数据库事务里提交，
// 不存在"钱动了账没记"的中间状态。
type LedgerService struct {
	WalletRepo   *repository.WalletRepository
	LedgerRepo   *repository.LedgerRepository
	PurchaseRepo *repository.PurchaseRepository
	DB           *gorm.DB
	Locker       *util.UserLocker
}

func NewLedgerService(walletRepo *repository.WalletRepository, ledgerRepo *repository.LedgerRepository, purchaseRepo *repository.PurchaseRepository, db *gorm.DB, locker *util.UserLocker) *LedgerService {
	return &LedgerService{
		WalletRepo:   walletRepo,
		LedgerRepo:   ledgerRepo,
		PurchaseRepo: purchaseRepo,
		DB:           db,
		Locker:       locker,
	}
}

// applyEntryTx 在既有事务内记一笔账：检查余额、更新余额、追加流水。
// 扣减时余额不足返回 InsufficientCoinsError 且不产生任何写入。
// 调用方必须持有该用户的 Locker 锁。
func (s *LedgerService) applyEntryTx(tx *gorm.DB, userID uint, amount int, kind model.CoinTxKind, description, referenceID string) (*model.CoinTransaction, error) {
	wallet, err := s.WalletRepo.GetOrCreate(tx, userID)
	if err != nil {
		return nil, err
	}

	if amount < 0 && wallet.Balance+amount < 0 {
		return nil, &util.InsufficientCoinsError{Need: -amount, Balance: wallet.Balance}
	}

	ok, err := s.WalletRepo.AddBalance(tx, userID, amount)
	if err != nil {
		return nil, err
	}
	if !ok {
		// 持锁状态下不应出现，条件更新守卫兜底
		return nil, &util.InsufficientCoinsError{Need: -amount, Balance: wallet.Balance}
	}

	entry := &model.CoinTransaction{
		UserID:       userID,
		Amount:       amount,
		Kind:         kind,
		Description:  description,
		ReferenceID:  referenceID,
		BalanceAfter: wallet.Balance + amount,
	}
	if err := s.LedgerRepo.Create(tx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ApplyEntry 独立记一笔账（自带事务与用户锁）
func (s *LedgerService) ApplyEntry(userID uint, amount int, kind model.CoinTxKind, description, referenceID string) (*model.CoinTransaction, error) {
	unlock := s.Locker.Lock(userID)
	defer unlock()

	var entry *model.CoinTransaction
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		entry, txErr = s.applyEntryTx(tx, userID, amount, kind, description, referenceID)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	monitoring.RecordCoinFlow(string(kind), amount)
	return entry, nil
}

// GetBalance 无历史的用户视为余额0
func (s *LedgerService) GetBalance(userID uint) (int, error) {
	wallet, err := s.WalletRepo.Find(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return wallet.Balance, nil
}

func (s *LedgerService) GetHistory(userID uint, page, limit int) ([]model.CoinTransaction, int64, error) {
	return s.LedgerRepo.History(userID, page, limit)
}

// ReconcileResult 对账结果：余额必须等于流水之和
type ReconcileResult struct {
	UserID     uint  `json:"userId"`
	Balance    int   `json:"balance"`
	LedgerSum  int64 `json:"ledgerSum"`
	Consistent bool  `json:"consistent"`
}

// Reconcile 校验单个用户的对账不变量，供管理端排查
func (s *LedgerService) Reconcile(userID uint) (*ReconcileResult, error) {
	balance, err := s.GetBalance(userID)
	if err != nil {
		return nil, err
	}
	sum, err := s.LedgerRepo.SumByUser(userID)
	if err != nil {
		return nil, err
	}
	return &ReconcileResult{
		UserID:     userID,
		Balance:    balance,
		LedgerSum:  sum,
		Consistent: int64(balance) == sum,
	}, nil
}

// CreditPurchase 充值回调入账。orderNo 的唯一索引保证
// 网关重放同一笔回调不会重复加币。
func (s *LedgerService) CreditPurchase(userID uint, coins int, orderNo string) (*model.CoinTransaction, error) {
	if coins <= 0 {
		return nil, fmt.Errorf("invalid purchase amount: %d", coins)
	}

	unlock := s.Locker.Lock(userID)
	defer unlock()

	var entry *model.CoinTransaction
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order := &model.PurchaseOrder{OrderNo: orderNo, UserID: userID, Coins: coins}
		if err := s.PurchaseRepo.Create(tx, order); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return util.ErrOrderProcessed
			}
			return err
		}

		var txErr error
		entry, txErr = s.applyEntryTx(tx, userID, coins, model.TxPurchase,
			fmt.Sprintf("充值%d金币", coins), orderNo)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	monitoring.RecordCoinFlow(string(model.TxPurchase), coins)
	return entry, nil
}
