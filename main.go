// @title LingoEdu 后端 API
// @version 1.0
// @description LingoEdu语言学习平台的金币与商城后端服务。

// @contact.name API支持
// @contact.email support@lingoedu.dev

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"log"

	"lingo_edu_backend/internal/app"
	"lingo_edu_backend/internal/config"
	"lingo_edu_backend/pkg/configwatcher"
	"lingo_edu_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 金币规则支持热更新，改配置不用重启
	go configwatcher.WatchConfig("configs/config.yaml", application.ReloadRules)

	application.Run()
}
