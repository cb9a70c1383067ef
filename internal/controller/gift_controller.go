package controller

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"lingo_edu_backend/internal/service"
	"lingo_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GiftController struct {
	GiftService    *service.GiftService
	StorageService *service.StorageService
}

func NewGiftController(giftService *service.GiftService, storageService *service.StorageService) *GiftController {
	return &GiftController{
		GiftService:    giftService,
		StorageService: storageService,
	}
}

// ListActive godoc
// @Summary 礼品商城列表
// @Tags 礼品
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/gifts [get]
func (c *GiftController) ListActive(ctx *gin.Context) {
	gifts, err := c.GiftService.ListActive(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gifts)
}

// Get godoc
// @Summary 礼品详情
// @Tags 礼品
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "礼品ID"
// @Success 200 {object} util.Response{data=model.Gift}
// @Failure 404 {object} util.Response
// @Router /api/gifts/{id} [get]
func (c *GiftController) Get(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid gift id")
		return
	}

	gift, err := c.GiftService.Get(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrGiftNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gift)
}

// AdminList godoc
// @Summary 管理端礼品列表（含下架）
// @Tags 礼品管理
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/gifts [get]
func (c *GiftController) AdminList(ctx *gin.Context) {
	page, limit := pagination(ctx)
	gifts, total, err := c.GiftService.ListAll(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: gifts, Total: total, Page: page, Limit: limit})
}

// Create godoc
// @Summary 创建礼品
// @Tags 礼品管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.GiftRequest true "礼品信息"
// @Success 201 {object} util.Response{data=model.Gift}
// @Router /api/admin/gifts [post]
func (c *GiftController) Create(ctx *gin.Context) {
	var req service.GiftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	gift, err := c.GiftService.Create(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, gift)
}

// Update godoc
// @Summary 更新礼品
// @Tags 礼品管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "礼品ID"
// @Param body body service.GiftRequest true "礼品信息"
// @Success 200 {object} util.Response{data=model.Gift}
// @Router /api/admin/gifts/{id} [put]
func (c *GiftController) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid gift id")
		return
	}

	var req service.GiftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	gift, err := c.GiftService.Update(uint(id), req)
	if err != nil {
		if errors.Is(err, util.ErrGiftNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gift)
}

// Delete godoc
// @Summary 删除礼品
// @Tags 礼品管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "礼品ID"
// @Success 200 {object} util.Response
// @Router /api/admin/gifts/{id} [delete]
func (c *GiftController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid gift id")
		return
	}

	if err := c.GiftService.Delete(uint(id)); err != nil {
		if errors.Is(err, util.ErrGiftNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadImage godoc
// @Summary 上传礼品图片
// @Tags 礼品管理
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "图片文件"
// @Success 200 {object} util.Response{data=object}
// @Router /api/admin/gifts/image [post]
func (c *GiftController) UploadImage(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	filename := fmt.Sprintf("gifts/%d%s", time.Now().UnixNano(), filepath.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")

	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, src, file.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"url": url})
}
