package controller

import (
	"errors"
	"matchquiz_backend/internal/service"
	"matchquiz_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

func parseUintParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(v), true
}

// viewerID 当前用户ID，游客为 nil
func viewerID(ctx *gin.Context) *uint {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		return nil
	}
	id := claims.UserID
	return &id
}

// CreateQuiz godoc
// @Summary 创建测验
// @Description 创建配对测验，题干和配对一并保存
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.QuizSaveRequest true "测验内容"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuizSaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.CreateQuiz(claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrQuizNoPairs) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": quiz.ID})
}

// UpdateQuiz godoc
// @Summary 编辑测验
// @Description 仅限所有者，配对整体替换
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "测验ID"
// @Param   body body service.QuizSaveRequest true "测验内容"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 403 {object} util.Response "无权限"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quizzes/{id} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}

	var req service.QuizSaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.UpdateQuiz(claims.UserID, quizID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrQuizNoPairs):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"id": quiz.ID})
}

// DeleteQuiz godoc
// @Summary 删除测验
// @Description 仅限所有者，级联删除题目、配对及全部答题记录
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response "成功"
// @Failure 403 {object} util.Response "无权限"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.QuizService.DeleteQuiz(claims.UserID, quizID); err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

// GetQuiz godoc
// @Summary 查看测验
// @Description 查看模式：配对按保存顺序返回，不打乱；私有测验仅所有者可见
// @Tags 测验
// @Accept  json
// @Produce  json
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response{data=service.QuizDetail} "成功"
// @Failure 403 {object} util.Response "无权访问"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	quizID, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}

	detail, err := c.QuizService.GetQuiz(quizID, viewerID(ctx))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrQuizNotAccessible):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, detail)
}

// ListMine godoc
// @Summary 我的测验列表
// @Description 当前用户创建的全部测验，含配对数
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]repository.QuizSummary} "成功"
// @Router /api/quizzes/mine [get]
func (c *QuizController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizzes, err := c.QuizService.ListMine(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, quizzes)
}

// ListPublic godoc
// @Summary 公开测验列表
// @Description 所有公开分享的测验，游客可见
// @Tags 测验
// @Accept  json
// @Produce  json
// @Success 200 {object} util.Response{data=[]repository.QuizSummary} "成功"
// @Router /api/quizzes/public [get]
func (c *QuizController) ListPublic(ctx *gin.Context) {
	quizzes, err := c.QuizService.ListPublic()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, quizzes)
}
