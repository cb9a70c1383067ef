package controller

import (
	"errors"
	"strconv"

	"lingo_edu_backend/internal/service"
	"lingo_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type WalletController struct {
	Ledger   *service.LedgerService
	Practice *service.PracticeService
}

func NewWalletController(ledger *service.LedgerService, practice *service.PracticeService) *WalletController {
	return &WalletController{
		Ledger:   ledger,
		Practice: practice,
	}
}

// GetWallet godoc
// @Summary 查询金币余额和今日练习进度
// @Tags 钱包
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/wallet [get]
func (c *WalletController) GetWallet(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	balance, err := c.Ledger.GetBalance(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	progress, err := c.Practice.TodayProgress(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"balance":       balance,
		"todayPractice": progress,
	})
}

// GetHistory godoc
// @Summary 金币流水，新的在前
// @Tags 钱包
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/wallet/transactions [get]
func (c *WalletController) GetHistory(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := pagination(ctx)

	entries, total, err := c.Ledger.GetHistory(user.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  entries,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// PurchaseCallbackRequest 支付网关回调，orderNo 用于去重
type PurchaseCallbackRequest struct {
	UserID  uint   `json:"userId" binding:"required"`
	Coins   int    `json:"coins" binding:"required,gt=0"`
	OrderNo string `json:"orderNo" binding:"required"`
}

// PurchaseCallback godoc
// @Summary 充值到账回调
// @Description 支付网关回调入账，同一orderNo重放不会重复加币
// @Tags 钱包
// @Accept json
// @Produce json
// @Param body body PurchaseCallbackRequest true "回调信息"
// @Success 200 {object} util.Response
// @Router /api/wallet/purchase/callback [post]
func (c *WalletController) PurchaseCallback(ctx *gin.Context) {
	var req PurchaseCallbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entry, err := c.Ledger.CreditPurchase(req.UserID, req.Coins, req.OrderNo)
	if err != nil {
		if errors.Is(err, util.ErrOrderProcessed) {
			// 重放回调按成功处理，网关不再重试
			util.Success(ctx, gin.H{"duplicate": true})
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entry)
}

// pagination 解析分页参数，缺省 page=1 limit=20
func pagination(ctx *gin.Context) (int, int) {
	page := 1
	limit := 20
	if p, err := strconv.Atoi(ctx.DefaultQuery("page", "1")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(ctx.DefaultQuery("limit", "20")); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	return page, limit
}
