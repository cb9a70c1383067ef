package controller

import (
	"errors"

	"lingo_edu_backend/internal/service"
	"lingo_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PracticeController struct {
	PracticeService *service.PracticeService
}

func NewPracticeController(practiceService *service.PracticeService) *PracticeController {
	return &PracticeController{PracticeService: practiceService}
}

// ReportSessionRequest 练习时段上报
// swagger:model ReportSessionRequest
type ReportSessionRequest struct {
	Seconds int `json:"seconds" binding:"required"`
}

// ReportSession godoc
// @Summary 上报练习时长
// @Description 每次练习结束调用一次；当日累计满30分钟奖励金币（每天至多一次）
// @Tags 练习
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ReportSessionRequest true "时长（秒）"
// @Success 200 {object} util.Response{data=service.PracticeReport}
// @Router /api/practice/sessions [post]
func (c *PracticeController) ReportSession(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ReportSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	report, err := c.PracticeService.ReportSession(user.UserID, req.Seconds)
	if err != nil {
		if errors.Is(err, util.ErrInvalidSeconds) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, report)
}
