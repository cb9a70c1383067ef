package database

import (
	"fmt"
	"log"

	"lingo_edu_backend/internal/config"
	"lingo_edu_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// 唯一索引冲突要转成 gorm.ErrDuplicatedKey，
		// 签到防重和充值去重都依赖它
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")
	return db, nil
}

// Migrate 建表与种子数据
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Wallet{},
		&model.CoinTransaction{},
		&model.PracticeSession{},
		&model.Checkin{},
		&model.Gift{},
		&model.Redemption{},
		&model.PurchaseOrder{},
	)
	if err != nil {
		return err
	}

	// 默认礼品（空库时写入，方便联调）
	var count int64
	db.Model(&model.Gift{}).Count(&count)
	if count == 0 {
		defaultGifts := []model.Gift{
			{Name: "定制笔记本", Description: "学习打卡专用笔记本", Coins: 300, Stock: 50, IsActive: true},
			{Name: "单词卡片套装", Description: "高频词汇记忆卡片", Coins: 500, Stock: 30, IsActive: true},
			{Name: "蓝牙耳机", Description: "听力练习好帮手", Coins: 2000, Stock: 10, IsActive: true},
		}
		for _, g := range defaultGifts {
			db.Create(&g)
		}
	}

	return nil
}
