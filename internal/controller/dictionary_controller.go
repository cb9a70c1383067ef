package controller

import (
	"lingo_edu_backend/internal/service"
	"lingo_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DictionaryController struct {
	AIService *service.AIService
}

func NewDictionaryController(aiService *service.AIService) *DictionaryController {
	return &DictionaryController{AIService: aiService}
}

// LookupRequest 词典查询
type LookupRequest struct {
	Word     string `json:"word" binding:"required"`
	Language string `json:"language"`
}

// Lookup godoc
// @Summary 词典查询
// @Tags 词典
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body LookupRequest true "查询词条"
// @Success 200 {object} util.Response{data=object}
// @Router /api/dictionary/lookup [post]
func (c *DictionaryController) Lookup(ctx *gin.Context) {
	var req LookupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Language == "" {
		req.Language = "英语"
	}

	result, err := c.AIService.LookupWord(req.Word, req.Language)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"word": req.Word, "result": result})
}

// ChatRequest 对话练习请求
type ChatRequest struct {
	Prompt  string                  `json:"prompt" binding:"required"`
	History []service.AIChatMessage `json:"history"`
}

// Chat godoc
// @Summary 对话练习
// @Tags 词典
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ChatRequest true "对话内容"
// @Success 200 {object} util.Response{data=object}
// @Router /api/dictionary/chat [post]
func (c *DictionaryController) Chat(ctx *gin.Context) {
	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reply, err := c.AIService.Chat(req.Prompt, req.History)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"reply": reply})
}
