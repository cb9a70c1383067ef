package service

import (
	"errors"

	"lingo_edu_backend/internal/model"
	"lingo_edu_backend/internal/repository"
	"lingo_edu_backend/internal/util"

	"gorm.io/gorm"
)

// UserService 用户资料与管理端用户管理
type UserService struct {
	UserRepo   *repository.UserRepository
	WalletRepo *repository.WalletRepository
}

func NewUserService(userRepo *repository.UserRepository, walletRepo *repository.WalletRepository) *UserService {
	return &UserService{
		UserRepo:   userRepo,
		WalletRepo: walletRepo,
	}
}

func (s *UserService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

// ProfileUpdate 用户可自行修改的字段
type ProfileUpdate struct {
	Name     string `json:"name"`
	Language string `json:"language"`
	Avatar   string `json:"avatar"`
}

func (s *UserService) UpdateProfile(userID uint, update ProfileUpdate) (*model.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Language != "" {
		user.Language = update.Language
	}
	if update.Avatar != "" {
		user.Avatar = update.Avatar
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UserWithWallet 管理端用户列表行：用户信息带钱包余额
type UserWithWallet struct {
	model.User
	Balance    int `json:"balance"`
	StreakDays int `json:"streakDays"`
}

// ListWithWallets 管理端用户列表，附带每个用户的金币余额
func (s *UserService) ListWithWallets(page, limit int, search string) ([]UserWithWallet, int64, error) {
	users, total, err := s.UserRepo.List(page, limit, search)
	if err != nil {
		return nil, 0, err
	}

	rows := make([]UserWithWallet, 0, len(users))
	for _, u := range users {
		row := UserWithWallet{User: u}
		wallet, err := s.WalletRepo.Find(u.ID)
		if err == nil {
			row.Balance = wallet.Balance
			row.StreakDays = wallet.StreakDays
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, err
		}
		rows = append(rows, row)
	}
	return rows, total, nil
}

func (s *UserService) SetDisabled(userID uint, disabled bool) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	user.Disabled = disabled
	return s.UserRepo.Update(user)
}
