// 手动触发全量对账脚本
//
// 逐个用户校验钱包余额是否等于金币流水之和，发现不一致的用户
// 打印出来供排查。日常单用户排查走管理端接口即可，此脚本用于
// 定期巡检或数据迁移后的全量核对。
//
// 用法: go run scripts/reconcile_audit.go

package main

import (
	"log"
	"os"

	"lingo_edu_backend/internal/config"
	"lingo_edu_backend/internal/repository"
	"lingo_edu_backend/internal/service"
	"lingo_edu_backend/internal/util"
	"lingo_edu_backend/pkg/database"
	"lingo_edu_backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	ledger := service.NewLedgerService(walletRepo, ledgerRepo, purchaseRepo, db, util.NewUserLocker())

	const pageSize = 500
	checked, broken := 0, 0
	for page := 1; ; page++ {
		users, _, err := userRepo.List(page, pageSize, "")
		if err != nil {
			log.Fatalf("读取用户列表失败: %v", err)
		}
		if len(users) == 0 {
			break
		}

		for _, u := range users {
			result, err := ledger.Reconcile(u.ID)
			if err != nil {
				log.Printf("用户 %d 对账失败: %v", u.ID, err)
				continue
			}
			checked++
			if !result.Consistent {
				broken++
				log.Printf("不一致: 用户 %d 余额=%d 流水合计=%d", u.ID, result.Balance, result.LedgerSum)
			}
		}

		if len(users) < pageSize {
			break
		}
	}

	log.Printf("对账完成: 检查 %d 个用户, 发现 %d 个不一致", checked, broken)
	if broken > 0 {
		os.Exit(1)
	}
}
