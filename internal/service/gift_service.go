package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"lingo_edu_backend/internal/model"
	"lingo_edu_backend/internal/repository"
	"lingo_edu_backend/internal/util"
	"lingo_edu_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const giftCacheKey = "gifts:active"

// GiftService 礼品目录。商城列表读多写少，用 Redis 缓存，
// 管理端任何写操作以及兑换引起的库存变化都会失效缓存。
type GiftService struct {
	GiftRepo *repository.GiftRepository
	Redis    *redis.Client
	CacheTTL time.Duration
}

func NewGiftService(giftRepo *repository.GiftRepository, rdb *redis.Client, cacheTTL time.Duration) *GiftService {
	return &GiftService{
		GiftRepo: giftRepo,
		Redis:    rdb,
		CacheTTL: cacheTTL,
	}
}

// ListActive 商城礼品列表，缓存未命中时回源数据库
func (s *GiftService) ListActive(ctx context.Context) ([]model.Gift, error) {
	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, giftCacheKey).Result()
		if err == nil {
			var gifts []model.Gift
			if jsonErr := json.Unmarshal([]byte(val), &gifts); jsonErr == nil {
				return gifts, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("gift cache read failed", zap.Error(err))
		}
	}

	gifts, err := s.GiftRepo.ListActive()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(gifts); err == nil {
			if err := s.Redis.Set(ctx, giftCacheKey, data, s.CacheTTL).Err(); err != nil {
				logger.Log.Warn("gift cache write failed", zap.Error(err))
			}
		}
	}
	return gifts, nil
}

// InvalidateCache 库存或上架状态变化后调用
func (s *GiftService) InvalidateCache() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), giftCacheKey).Err(); err != nil {
		logger.Log.Warn("gift cache invalidate failed", zap.Error(err))
	}
}

func (s *GiftService) Get(id uint) (*model.Gift, error) {
	gift, err := s.GiftRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrGiftNotFound
	}
	return gift, err
}

// GiftRequest 管理端创建/更新礼品
// swagger:model GiftRequest
type GiftRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Coins       int    `json:"coins" binding:"required,gt=0"`
	Stock       int    `json:"stock" binding:"gte=0"`
	IsActive    *bool  `json:"isActive"`
}

func (s *GiftService) Create(req GiftRequest) (*model.Gift, error) {
	gift := &model.Gift{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Coins:       req.Coins,
		Stock:       req.Stock,
		IsActive:    true,
	}
	if req.IsActive != nil {
		gift.IsActive = *req.IsActive
	}
	if err := s.GiftRepo.Create(gift); err != nil {
		return nil, err
	}
	s.InvalidateCache()
	return gift, nil
}

func (s *GiftService) Update(id uint, req GiftRequest) (*model.Gift, error) {
	gift, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	gift.Name = req.Name
	gift.Description = req.Description
	gift.ImageURL = req.ImageURL
	gift.Coins = req.Coins
	gift.Stock = req.Stock
	if req.IsActive != nil {
		gift.IsActive = *req.IsActive
	}

	if err := s.GiftRepo.Update(gift); err != nil {
		return nil, err
	}
	s.InvalidateCache()
	return gift, nil
}

func (s *GiftService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.GiftRepo.Delete(id); err != nil {
		return err
	}
	s.InvalidateCache()
	return nil
}

func (s *GiftService) ListAll(page, limit int) ([]model.Gift, int64, error) {
	return s.GiftRepo.ListAll(page, limit)
}
