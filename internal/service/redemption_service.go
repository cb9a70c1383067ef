package service

import (
	"errors"
	"fmt"

	"lingo_edu_backend/internal/model"
	"lingo_edu_backend/internal/repository"
	"lingo_edu_backend/internal/util"
	"lingo_edu_backend/pkg/monitoring"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RedemptionService 礼品兑换。扣币、扣库存、建单三步在同一个
// 事务里提交，其他读者只会看到兑换前或兑换后的状态。
type RedemptionService struct {
	RedemptionRepo *repository.RedemptionRepository
	GiftRepo       *repository.GiftRepository
	Ledger         *LedgerService
	Gifts          *GiftService
	DB             *gorm.DB
	Locker         *util.UserLocker
}

func NewRedemptionService(redemptionRepo *repository.RedemptionRepository, giftRepo *repository.GiftRepository, ledger *LedgerService, gifts *GiftService, db *gorm.DB, locker *util.UserLocker) *RedemptionService {
	return &RedemptionService{
		RedemptionRepo: redemptionRepo,
		GiftRepo:       giftRepo,
		Ledger:         ledger,
		Gifts:          gifts,
		DB:             db,
		Locker:         locker,
	}
}

// RedeemRequest 兑换请求
// swagger:model RedeemRequest
type RedeemRequest struct {
	GiftID        uint   `json:"giftId" binding:"required"`
	ReceiverName  string `json:"receiverName" binding:"required"`
	ReceiverPhone string `json:"receiverPhone" binding:"required"`
	Address       string `json:"address" binding:"required"`
}

// Redeem 兑换礼品，成功返回 pending 状态的订单
func (s *RedemptionService) Redeem(userID uint, req RedeemRequest) (*model.Redemption, error) {
	unlock := s.Locker.Lock(userID)
	defer unlock()

	var redemption *model.Redemption
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		gift, err := s.GiftRepo.FindByIDTx(tx, req.GiftID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrGiftNotFound
		}
		if err != nil {
			return err
		}
		if !gift.IsActive {
			return util.ErrGiftInactive
		}
		if gift.Stock <= 0 {
			return util.ErrGiftOutOfStock
		}

		ok, err := s.GiftRepo.DecrementStock(tx, gift.ID)
		if err != nil {
			return err
		}
		if !ok {
			return util.ErrGiftOutOfStock
		}

		orderNo := uuid.New().String()
		desc := fmt.Sprintf("兑换礼品：%s", gift.Name)
		if _, err := s.Ledger.applyEntryTx(tx, userID, -gift.Coins, model.TxSpendRedeem, desc, orderNo); err != nil {
			return err
		}

		redemption = &model.Redemption{
			OrderNo:       orderNo,
			UserID:        userID,
			GiftID:        gift.ID,
			GiftName:      gift.Name,
			CoinsSpent:    gift.Coins,
			Status:        model.RedemptionPending,
			ReceiverName:  req.ReceiverName,
			ReceiverPhone: req.ReceiverPhone,
			Address:       req.Address,
		}
		return s.RedemptionRepo.Create(tx, redemption)
	})
	if err != nil {
		return nil, err
	}

	s.Gifts.InvalidateCache()
	monitoring.RecordCoinFlow(string(model.TxSpendRedeem), -redemption.CoinsSpent)
	monitoring.RecordRedemption(string(model.RedemptionPending))
	return redemption, nil
}

// Cancel 用户取消兑换：仅限 pending 订单，退款并回补库存
func (s *RedemptionService) Cancel(userID uint, redemptionID uint) (*model.Redemption, error) {
	unlock := s.Locker.Lock(userID)
	defer unlock()

	var redemption *model.Redemption
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		red, err := s.RedemptionRepo.FindByID(tx, redemptionID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrRedemptionNotFound
		}
		if err != nil {
			return err
		}
		// 不暴露他人订单的存在
		if red.UserID != userID {
			return util.ErrRedemptionNotFound
		}

		ok, err := s.RedemptionRepo.UpdateStatusFrom(tx, red.ID, model.RedemptionPending, model.RedemptionCancelled)
		if err != nil {
			return err
		}
		if !ok {
			return util.ErrNotCancellable
		}

		if err := s.refundTx(tx, red); err != nil {
			return err
		}

		red.Status = model.RedemptionCancelled
		redemption = red
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Gifts.InvalidateCache()
	monitoring.RecordCoinFlow(string(model.TxRefundCancel), redemption.CoinsSpent)
	monitoring.RecordRedemption(string(model.RedemptionCancelled))
	return redemption, nil
}

// refundTx 退款 + 回补库存，兑换的逆操作
func (s *RedemptionService) refundTx(tx *gorm.DB, red *model.Redemption) error {
	desc := fmt.Sprintf("取消兑换退款：%s", red.GiftName)
	if _, err := s.Ledger.applyEntryTx(tx, red.UserID, red.CoinsSpent, model.TxRefundCancel, desc, red.OrderNo); err != nil {
		return err
	}
	return s.GiftRepo.IncrementStock(tx, red.GiftID)
}

// SetStatus 管理端订单流转。转入 cancelled 时同样退款回补——
// 参考实现只在用户侧取消退款，管理员取消吞币应属缺陷，这里统一。
func (s *RedemptionService) SetStatus(redemptionID uint, to model.RedemptionStatus) (*model.Redemption, error) {
	red, err := s.RedemptionRepo.FindByID(s.DB, redemptionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrRedemptionNotFound
	}
	if err != nil {
		return nil, err
	}

	if !red.Status.CanTransition(to) {
		return nil, util.ErrInvalidTransition
	}

	// 退款路径会动用户余额，需要持该用户的锁
	unlock := s.Locker.Lock(red.UserID)
	defer unlock()

	from := red.Status
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.RedemptionRepo.UpdateStatusFrom(tx, red.ID, from, to)
		if err != nil {
			return err
		}
		if !ok {
			return util.ErrInvalidTransition
		}

		if to == model.RedemptionCancelled {
			return s.refundTx(tx, red)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	red.Status = to
	if to == model.RedemptionCancelled {
		s.Gifts.InvalidateCache()
		monitoring.RecordCoinFlow(string(model.TxRefundCancel), red.CoinsSpent)
	}
	monitoring.RecordRedemption(string(to))
	return red, nil
}

func (s *RedemptionService) ListByUser(userID uint, page, limit int) ([]model.Redemption, int64, error) {
	return s.RedemptionRepo.ListByUser(userID, page, limit)
}

func (s *RedemptionService) ListAll(page, limit int, status string) ([]model.Redemption, int64, error) {
	return s.RedemptionRepo.ListAll(page, limit, status)
}
