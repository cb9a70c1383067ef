package controller

import (
	"errors"
	"strconv"

	"lingo_edu_backend/internal/repository"
	"lingo_edu_backend/internal/service"
	"lingo_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	StatsService *service.StatsService
	UserService  *service.UserService
	Ledger       *service.LedgerService
	LedgerRepo   *repository.LedgerRepository
}

func NewAdminController(statsService *service.StatsService, userService *service.UserService, ledger *service.LedgerService, ledgerRepo *repository.LedgerRepository) *AdminController {
	return &AdminController{
		StatsService: statsService,
		UserService:  userService,
		Ledger:       ledger,
		LedgerRepo:   ledgerRepo,
	}
}

// Stats godoc
// @Summary 运营数据总览
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.AdminStats}
// @Router /api/admin/stats [get]
func (c *AdminController) Stats(ctx *gin.Context) {
	stats, err := c.StatsService.Overview()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// ListUsers godoc
// @Summary 用户列表（含余额）
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param search query string false "按姓名或邮箱搜索"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	page, limit := pagination(ctx)
	search := ctx.Query("search")

	users, total, err := c.UserService.ListWithWallets(page, limit, search)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}

// SetDisabledRequest 启用/禁用用户
type SetDisabledRequest struct {
	Disabled *bool `json:"disabled" binding:"required"`
}

// SetUserDisabled godoc
// @Summary 启用或禁用用户
// @Tags 管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "用户ID"
// @Param body body SetDisabledRequest true "禁用标志"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id}/disabled [put]
func (c *AdminController) SetUserDisabled(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	var req SetDisabledRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.SetDisabled(uint(id), *req.Disabled); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListTransactions godoc
// @Summary 全站金币流水
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param kind query string false "按流水类型过滤"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/transactions [get]
func (c *AdminController) ListTransactions(ctx *gin.Context) {
	page, limit := pagination(ctx)
	kind := ctx.Query("kind")

	entries, total, err := c.LedgerRepo.ListAll(page, limit, kind)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: entries, Total: total, Page: page, Limit: limit})
}

// Reconcile godoc
// @Summary 单用户对账
// @Description 校验余额与流水之和是否一致
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "用户ID"
// @Success 200 {object} util.Response{data=service.ReconcileResult}
// @Router /api/admin/users/{id}/reconcile [get]
func (c *AdminController) Reconcile(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	result, err := c.Ledger.Reconcile(uint(id))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
