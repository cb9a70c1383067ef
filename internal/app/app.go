package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lingo_edu_backend/internal/config"
	"lingo_edu_backend/internal/controller"
	"lingo_edu_backend/internal/repository"
	"lingo_edu_backend/internal/service"
	"lingo_edu_backend/internal/util"
	"lingo_edu_backend/pkg/database"
	"lingo_edu_backend/pkg/logger"
	"lingo_edu_backend/pkg/monitoring"
	"lingo_edu_backend/pkg/security"
	"lingo_edu_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	rules *service.RulesHolder
}

type repositories struct {
	user       *repository.UserRepository
	wallet     *repository.WalletRepository
	ledger     *repository.LedgerRepository
	practice   *repository.PracticeRepository
	checkin    *repository.CheckinRepository
	gift       *repository.GiftRepository
	redemption *repository.RedemptionRepository
	purchase   *repository.PurchaseRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	ledger     *service.LedgerService
	checkin    *service.CheckinService
	practice   *service.PracticeService
	gift       *service.GiftService
	redemption *service.RedemptionService
	storage    *service.StorageService
	ai         *service.AIService
	stats      *service.StatsService
}

type controllers struct {
	auth       *controller.AuthController
	wallet     *controller.WalletController
	checkin    *controller.CheckinController
	practice   *controller.PracticeController
	gift       *controller.GiftController
	redemption *controller.RedemptionController
	dictionary *controller.DictionaryController
	admin      *controller.AdminController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		wallet:     repository.NewWalletRepository(db),
		ledger:     repository.NewLedgerRepository(db),
		practice:   repository.NewPracticeRepository(db),
		checkin:    repository.NewCheckinRepository(db),
		gift:       repository.NewGiftRepository(db),
		redemption: repository.NewRedemptionRepository(db),
		purchase:   repository.NewPurchaseRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*services, error) {
	locker := util.NewUserLocker()
	a.rules = service.NewRulesHolder(cfg.Coin)

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	s := &services{storage: storage}
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, repos.wallet)
	s.ledger = service.NewLedgerService(repos.wallet, repos.ledger, repos.purchase, db, locker)
	s.checkin = service.NewCheckinService(repos.checkin, repos.wallet, s.ledger, a.rules, db, locker)
	s.practice = service.NewPracticeService(repos.practice, repos.wallet, s.ledger, a.rules, db, locker)
	s.gift = service.NewGiftService(repos.gift, rdb, time.Duration(cfg.Coin.GiftCacheTTLSecs)*time.Second)
	s.redemption = service.NewRedemptionService(repos.redemption, repos.gift, s.ledger, s.gift, db, locker)
	s.ai = service.NewAIService(cfg.AI)
	s.stats = service.NewStatsService(repos.ledger, repos.redemption, db)
	return s, nil
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, s.user),
		wallet:     controller.NewWalletController(s.ledger, s.practice),
		checkin:    controller.NewCheckinController(s.checkin),
		practice:   controller.NewPracticeController(s.practice),
		gift:       controller.NewGiftController(s.gift, s.storage),
		redemption: controller.NewRedemptionController(s.redemption),
		dictionary: controller.NewDictionaryController(s.ai),
		admin:      controller.NewAdminController(s.stats, s.user, s.ledger, repos.ledger),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// ReloadRules 配置热更新回调：只有金币规则支持运行时调整
func (a *App) ReloadRules(cfg *config.Config) {
	a.rules.Update(cfg.Coin)
	logger.Log.Info("coin rules reloaded",
		zap.Int("practiceAward", cfg.Coin.PracticeAward),
		zap.Int("checkinBaseAward", cfg.Coin.CheckinBaseAward))
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 缓存不可用时降级为直连数据库
		logger.Log.Warn("Redis unavailable, gift cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, repos, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("lingo-edu", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type != "minio" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Info("Server exiting")
}
