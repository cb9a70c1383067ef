package app

import (
	"lingo_edu_backend/docs"
	"lingo_edu_backend/internal/config"
	"lingo_edu_backend/internal/middleware"
	"lingo_edu_backend/internal/model"
	"lingo_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Health)

	// 公共路由（无需登录）
	public := router.Group("/api")
	{
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		// 支付网关服务端回调，不走用户JWT
		public.POST("/wallet/purchase/callback", c.wallet.PurchaseCallback)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.PUT("/user/profile", c.auth.UpdateProfile)

		// 钱包
		authGroup.GET("/wallet", c.wallet.GetWallet)
		authGroup.GET("/wallet/transactions", c.wallet.GetHistory)

		// 签到
		authGroup.POST("/checkin", c.checkin.CheckIn)
		authGroup.GET("/checkin/status", c.checkin.Status)

		// 练习
		authGroup.POST("/practice/sessions", c.practice.ReportSession)

		// 礼品商城与兑换
		authGroup.GET("/gifts", c.gift.ListActive)
		authGroup.GET("/gifts/:id", c.gift.Get)
		authGroup.POST("/redemptions", c.redemption.Redeem)
		authGroup.GET("/redemptions", c.redemption.ListMine)
		authGroup.POST("/redemptions/:id/cancel", c.redemption.Cancel)

		// 词典与对话练习
		authGroup.POST("/dictionary/lookup", c.dictionary.Lookup)
		authGroup.POST("/dictionary/chat", c.dictionary.Chat)
	}

	// 管理员路由
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.GET("/stats", c.admin.Stats)

		admin.GET("/users", c.admin.ListUsers)
		admin.PUT("/users/:id/disabled", c.admin.SetUserDisabled)
		admin.GET("/users/:id/reconcile", c.admin.Reconcile)

		admin.GET("/transactions", c.admin.ListTransactions)

		admin.GET("/gifts", c.gift.AdminList)
		admin.POST("/gifts", c.gift.Create)
		admin.POST("/gifts/image", c.gift.UploadImage)
		admin.PUT("/gifts/:id", c.gift.Update)
		admin.DELETE("/gifts/:id", c.gift.Delete)

		admin.GET("/redemptions", c.redemption.AdminList)
		admin.PUT("/redemptions/:id/status", c.redemption.SetStatus)
	}
}
