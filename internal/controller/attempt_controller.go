package controller

import (
	"errors"
	"matchquiz_backend/internal/service"
	"matchquiz_backend/internal/util"
	"matchquiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	TakeService *service.TakeService
}

func NewAttemptController(takeService *service.TakeService) *AttemptController {
	return &AttemptController{TakeService: takeService}
}

// StartTake godoc
// @Summary 开始答题
// @Description 创建答题会话并返回两列：左列按保存顺序，右列每次重新打乱
// @Tags 答题
// @Accept  json
// @Produce  json
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response{data=service.TakeView} "成功"
// @Failure 403 {object} util.Response "无权访问"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quizzes/{id}/take [post]
func (c *AttemptController) StartTake(ctx *gin.Context) {
	quizID, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}

	view, err := c.TakeService.StartTake(quizID, viewerID(ctx))
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

	util.Success(ctx, view)
}

// SelectRequest 选择某一列中的一项
type SelectRequest struct {
	PairID uint `json:"pairId" binding:"required"`
}

func (c *AttemptController) selectItem(ctx *gin.Context, apply func(sessionID string, pairID uint) (*service.MatchSnapshot, error)) {
	sessionID := ctx.Param("sessionId")

	var req SelectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	snap, err := apply(sessionID, req.PairID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrUnknownPair):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrNoLeftSelected):
			// 会话状态未变
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, snap)
}

// SelectLeft godoc
// @Summary 选择左项
// @Description 把某个左项设为当前锚点，可覆盖先前未完成的选择
// @Tags 答题
// @Accept  json
// @Produce  json
// @Param   sessionId path string true "会话ID"
// @Param   body body SelectRequest true "所选配对ID"
// @Success 200 {object} util.Response{data=service.MatchSnapshot} "成功"
// @Failure 404 {object} util.Response "会话不存在或已过期"
// @Router /api/take/{sessionId}/select-left [post]
func (c *AttemptController) SelectLeft(ctx *gin.Context) {
	c.selectItem(ctx, c.TakeService.SelectLeft)
}

// SelectRight godoc
// @Summary 选择右项
// @Description 有锚点时提交一条配对；未先选左项则拒绝且状态不变
// @Tags 答题
// @Accept  json
// @Produce  json
// @Param   sessionId path string true "会话ID"
// @Param   body body SelectRequest true "所选配对ID"
// @Success 200 {object} util.Response{data=service.MatchSnapshot} "成功"
// @Failure 400 {object} util.Response "请先选择左侧项"
// @Failure 404 {object} util.Response "会话不存在或已过期"
// @Router /api/take/{sessionId}/select-right [post]
func (c *AttemptController) SelectRight(ctx *gin.Context) {
	c.selectItem(ctx, c.TakeService.SelectRight)
}

// SubmitSessionRequest 提交会话；不完整时需带 confirm=true 再次提交
type SubmitSessionRequest struct {
	Confirm bool `json:"confirm"`
}

// SubmitSession godoc
// @Summary 提交答题会话
// @Description 空提交直接拒绝；不完整且未确认时返回409待确认；成功后会话销毁
// @Tags 答题
// @Accept  json
// @Produce  json
// @Param   sessionId path string true "会话ID"
// @Param   body body SubmitSessionRequest false "确认标记"
// @Success 200 {object} util.Response{data=service.SubmitResult} "成功"
// @Failure 400 {object} util.Response "没有任何配对"
// @Failure 404 {object} util.Response "会话不存在或已过期"
// @Failure 409 {object} util.Response{data=service.SubmitResult} "存在未配对项，需确认"
// @Router /api/take/{sessionId}/submit [post]
func (c *AttemptController) SubmitSession(ctx *gin.Context) {
	sessionID := ctx.Param("sessionId")

	var req SubmitSessionRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	result, err := c.TakeService.SubmitSession(sessionID, viewerID(ctx), req.Confirm)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrEmptySubmission):
			util.BadRequest(ctx, err.Error())
		default:
			monitoring.AttemptCounter.WithLabelValues("failed").Inc()
			util.LogInternalError(ctx, err)
		}
		return
	}

	if result.RequiresConfirmation {
		util.Conflict(ctx, "incomplete matches, confirm to submit", result)
		return
	}

	monitoring.AttemptCounter.WithLabelValues("ok").Inc()
	util.Success(ctx, result)
}

// SubmitMatchesRequest 直接提交整份配对（不经会话）
type SubmitMatchesRequest struct {
	Matches map[uint]uint `json:"matches" binding:"required"`
}

// SubmitMatches godoc
// @Summary 直接提交配对
// @Description 不经会话直接评分落库，matches 为 左项ID->所选右项ID
// @Tags 答题
// @Accept  json
// @Produce  json
// @Param   id path int true "测验ID"
// @Param   body body SubmitMatchesRequest true "配对映射"
// @Success 200 {object} util.Response{data=service.SubmitResult} "成功"
// @Failure 400 {object} util.Response "没有任何配对"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quizzes/{id}/attempts [post]
func (c *AttemptController) SubmitMatches(ctx *gin.Context) {
	quizID, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}

	var req SubmitMatchesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.TakeService.SubmitMatches(viewerID(ctx), quizID, req.Matches)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrEmptySubmission):
			util.BadRequest(ctx, err.Error())
		default:
			monitoring.AttemptCounter.WithLabelValues("failed").Inc()
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.AttemptCounter.WithLabelValues("ok").Inc()
	util.Success(ctx, result)
}

// Review godoc
// @Summary 回看答题记录
// @Description 两列按保存顺序返回，附每个左项的对错与正确答案
// @Tags 答题
// @Accept  json
// @Produce  json
// @Param   id path int true "答题记录ID"
// @Success 200 {object} util.Response{data=service.ReviewView} "成功"
// @Failure 403 {object} util.Response "无权查看"
// @Failure 404 {object} util.Response "记录不存在"
// @Router /api/attempts/{id}/review [get]
func (c *AttemptController) Review(ctx *gin.Context) {
	attemptID, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}

	view, err := c.TakeService.Review(attemptID, viewerID(ctx))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound), errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, view)
}

// History godoc
// @Summary 我的答题历史
// @Description 当前用户的全部答题记录，按时间倒序
// @Tags 答题
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]repository.AttemptSummary} "成功"
// @Router /api/attempts [get]
func (c *AttemptController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	attempts, err := c.TakeService.History(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, attempts)
}
