package controller

import (
	"errors"

	"lingo_edu_backend/internal/service"
	"lingo_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CheckinController struct {
	CheckinService *service.CheckinService
}

func NewCheckinController(checkinService *service.CheckinService) *CheckinController {
	return &CheckinController{CheckinService: checkinService}
}

// CheckIn godoc
// @Summary 每日签到
// @Description 签到得金币，连续签到有加成；同一天重复签到返回409
// @Tags 签到
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.CheckinResult}
// @Failure 409 {object} util.Response "今天已签到"
// @Router /api/checkin [post]
func (c *CheckinController) CheckIn(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.CheckinService.CheckIn(user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrAlreadyCheckedIn) {
			util.Conflict(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// Status godoc
// @Summary 签到状态与最近记录
// @Tags 签到
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.CheckinStatus}
// @Router /api/checkin/status [get]
func (c *CheckinController) Status(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	status, err := c.CheckinService.Status(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, status)
}
