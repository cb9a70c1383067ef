package service

import (
	"lingo_edu_backend/internal/model"
	"lingo_edu_backend/internal/repository"

	"gorm.io/gorm"
)

// StatsService 管理端看板的只读聚合，不参与核心一致性
type StatsService struct {
	LedgerRepo     *repository.LedgerRepository
	RedemptionRepo *repository.RedemptionRepository
	DB             *gorm.DB
}

func NewStatsService(ledgerRepo *repository.LedgerRepository, redemptionRepo *repository.RedemptionRepository, db *gorm.DB) *StatsService {
	return &StatsService{
		LedgerRepo:     ledgerRepo,
		RedemptionRepo: redemptionRepo,
		DB:             db,
	}
}

type AdminStats struct {
	TotalUsers       int64                            `json:"totalUsers"`
	TotalCheckins    int64                            `json:"totalCheckins"`
	CoinsIssued      int64                            `json:"coinsIssued"`
	CoinsSpent       int64                            `json:"coinsSpent"`
	RedemptionCounts map[model.RedemptionStatus]int64 `json:"redemptionCounts"`
}

func (s *StatsService) Overview() (*AdminStats, error) {
	stats := &AdminStats{}

	if err := s.DB.Model(&model.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&model.Checkin{}).Count(&stats.TotalCheckins).Error; err != nil {
		return nil, err
	}

	issued, spent, err := s.LedgerRepo.SumByDirection()
	if err != nil {
		return nil, err
	}
	stats.CoinsIssued = issued
	stats.CoinsSpent = spent

	counts, err := s.RedemptionRepo.CountByStatus()
	if err != nil {
		return nil, err
	}
	stats.RedemptionCounts = counts

	return stats, nil
}
