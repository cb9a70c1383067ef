package controller

import (
	"errors"
	"strconv"

	"lingo_edu_backend/internal/model"
	"lingo_edu_backend/internal/service"
	"lingo_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RedemptionController struct {
	RedemptionService *service.RedemptionService
}

func NewRedemptionController(redemptionService *service.RedemptionService) *RedemptionController {
	return &RedemptionController{RedemptionService: redemptionService}
}

// Redeem godoc
// @Summary 兑换礼品
// @Description 扣金币、扣库存、生成订单，三者要么都成功要么都不发生
// @Tags 兑换
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.RedeemRequest true "兑换信息"
// @Success 201 {object} util.Response{data=model.Redemption}
// @Failure 400 {object} util.Response "金币不足/礼品不可兑换"
// @Failure 404 {object} util.Response "礼品不存在"
// @Router /api/redemptions [post]
func (c *RedemptionController) Redeem(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.RedeemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	redemption, err := c.RedemptionService.Redeem(user.UserID, req)
	if err != nil {
		var insufficient *util.InsufficientCoinsError
		switch {
		case errors.As(err, &insufficient):
			util.BadRequest(ctx, insufficient.Error())
		case errors.Is(err, util.ErrGiftNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrGiftInactive), errors.Is(err, util.ErrGiftOutOfStock):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, redemption)
}

// ListMine godoc
// @Summary 我的兑换订单
// @Tags 兑换
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/redemptions [get]
func (c *RedemptionController) ListMine(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := pagination(ctx)
	redemptions, total, err := c.RedemptionService.ListByUser(user.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: redemptions, Total: total, Page: page, Limit: limit})
}

// Cancel godoc
// @Summary 取消兑换订单
// @Description 仅待发货订单可取消，取消后退还金币并回补库存
// @Tags 兑换
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "订单ID"
// @Success 200 {object} util.Response{data=model.Redemption}
// @Failure 404 {object} util.Response "订单不存在"
// @Failure 409 {object} util.Response "订单状态不允许取消"
// @Router /api/redemptions/{id}/cancel [post]
func (c *RedemptionController) Cancel(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid redemption id")
		return
	}

	redemption, err := c.RedemptionService.Cancel(user.UserID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrRedemptionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrNotCancellable):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, redemption)
}

// AdminList godoc
// @Summary 管理端兑换订单列表
// @Tags 兑换管理
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param status query string false "按状态过滤"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/redemptions [get]
func (c *RedemptionController) AdminList(ctx *gin.Context) {
	page, limit := pagination(ctx)
	status := ctx.Query("status")
	if status != "" && !model.ValidStatus(status) {
		util.BadRequest(ctx, "invalid status")
		return
	}

	redemptions, total, err := c.RedemptionService.ListAll(page, limit, status)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: redemptions, Total: total, Page: page, Limit: limit})
}

// SetStatusRequest 订单状态变更
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetStatus godoc
// @Summary 变更兑换订单状态
// @Description pending→processing→completed；转入cancelled时退款回补库存
// @Tags 兑换管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "订单ID"
// @Param body body SetStatusRequest true "目标状态"
// @Success 200 {object} util.Response{data=model.Redemption}
// @Failure 400 {object} util.Response "非法状态流转"
// @Router /api/admin/redemptions/{id}/status [put]
func (c *RedemptionController) SetStatus(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid redemption id")
		return
	}

	var req SetStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if !model.ValidStatus(req.Status) {
		util.BadRequest(ctx, "invalid status")
		return
	}

	redemption, err := c.RedemptionService.SetStatus(uint(id), model.RedemptionStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrRedemptionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidTransition):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, redemption)
}
