package service

import (
	"errors"
	"matchquiz_backend/internal/model"
	"matchquiz_backend/internal/repository"
	"matchquiz_backend/internal/util"
	"math/rand"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// TakeService 答题流程：出题（右列打乱）、配对选择、评分落库、历史回看
type TakeService struct {
	QuizRepo    *repository.QuizRepository
	AttemptRepo *repository.AttemptRepository
	SessionRepo *repository.TakeSessionRepository
}

func NewTakeService(quizRepo *repository.QuizRepository, attemptRepo *repository.AttemptRepository, sessionRepo *repository.TakeSessionRepository) *TakeService {
	return &TakeService{
		QuizRepo:    quizRepo,
		AttemptRepo: attemptRepo,
		SessionRepo: sessionRepo,
	}
}

// PairItem 展示列中的一项，答题和回看共用
type PairItem struct {
	PairID uint   `json:"pairId"`
	Text   string `json:"text"`
}

// TakeView 答题视图：左列按保存顺序，右列每次进入重新打乱
type TakeView struct {
	SessionID   string     `json:"sessionId"`
	QuizID      uint       `json:"quizId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	UserPrompt  string     `json:"userPrompt"`
	LeftItems   []PairItem `json:"leftItems"`
	RightItems  []PairItem `json:"rightItems"`
	TotalPairs  int        `json:"totalPairs"`
}

// MatchSnapshot 每次选择后的会话状态，前端据此重绘连线
type MatchSnapshot struct {
	CurrentLeft *uint         `json:"currentLeft,omitempty"`
	Matches     map[uint]uint `json:"matches"`
	Matched     int           `json:"matched"`
	TotalPairs  int           `json:"totalPairs"`
}

type SubmitResult struct {
	AttemptID            uint           `json:"attemptId,omitempty"`
	Score                int            `json:"score"`
	Total                int            `json:"total"`
	Results              []AnswerResult `json:"results,omitempty"`
	RequiresConfirmation bool           `json:"requiresConfirmation,omitempty"`
	Matched              int            `json:"matched,omitempty"`
}

// ReviewItem 回看时每个左项的状态
type ReviewItem struct {
	PairID        uint   `json:"pairId"`
	LeftText      string `json:"leftText"`
	ChosenText    string `json:"chosenText,omitempty"`
	MatchedPairID uint   `json:"matchedPairId,omitempty"`
	IsCorrect     bool   `json:"isCorrect"`
	CorrectText   string `json:"correctText,omitempty"`
}

// ReviewView 与 TakeView 结构一致，左右两列都按保存顺序（不打乱），
// Matches 供前端复用答题模式的连线渲染
type ReviewView struct {
	AttemptID  uint          `json:"attemptId"`
	QuizID     uint          `json:"quizId"`
	Title      string        `json:"title"`
	UserPrompt string        `json:"userPrompt"`
	LeftItems  []PairItem    `json:"leftItems"`
	RightItems []PairItem    `json:"rightItems"`
	Matches    map[uint]uint `json:"matches"`
	Items      []ReviewItem  `json:"items"`
	Score      int           `json:"score"`
	Total      int           `json:"total"`
}

func leftItems(pairs []model.MatchingPair) []PairItem {
	items := make([]PairItem, len(pairs))
	for i, p := range pairs {
		items[i] = PairItem{PairID: p.ID, Text: p.LeftText}
	}
	return items
}

func rightItems(pairs []model.MatchingPair) []PairItem {
	items := make([]PairItem, len(pairs))
	for i, p := range pairs {
		items[i] = PairItem{PairID: p.ID, Text: p.RightText}
	}
	return items
}

// ShuffleRight Fisher-Yates 打乱右列展示顺序。
// 每项保留自己的 pair_id，打乱只影响显示位置，不改变配对关系。
func ShuffleRight(pairs []model.MatchingPair) []PairItem {
	items := rightItems(pairs)
	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	return items
}

func (s *TakeService) loadAccessibleQuiz(quizID uint, viewerID *uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	} else if err != nil {
		return nil, err
	}
	if !quiz.IsPublic && (viewerID == nil || *viewerID != quiz.UserID) {
		return nil, util.ErrQuizNotAccessible
	}
	return quiz, nil
}

// StartTake 开始一次答题会话：右列重新打乱，会话状态写入 Redis
func (s *TakeService) StartTake(quizID uint, viewerID *uint) (*TakeView, error) {
	quiz, err := s.loadAccessibleQuiz(quizID, viewerID)
	if err != nil {
		return nil, err
	}

	question, err := s.QuizRepo.FindQuestion(quizID)
	if err != nil {
		return nil, err
	}
	pairs, err := s.QuizRepo.FindPairs(question.ID)
	if err != nil {
		return nil, err
	}

	session := model.NewTakeSession(quizID, pairs)
	if err := s.SessionRepo.Save(session); err != nil {
		return nil, err
	}

	return &TakeView{
		SessionID:   session.ID,
		QuizID:      quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		UserPrompt:  question.UserPrompt,
		LeftItems:   leftItems(pairs),
		RightItems:  ShuffleRight(pairs),
		TotalPairs:  len(pairs),
	}, nil
}

func (s *TakeService) getSession(sessionID string) (*model.TakeSession, error) {
	session, err := s.SessionRepo.Get(sessionID)
	if errors.Is(err, redis.Nil) {
		return nil, util.ErrSessionNotFound
	} else if err != nil {
		return nil, err
	}
	return session, nil
}

func snapshot(session *model.TakeSession) *MatchSnapshot {
	return &MatchSnapshot{
		CurrentLeft: session.CurrentLeft,
		Matches:     session.Matches,
		Matched:     len(session.Matches),
		TotalPairs:  session.TotalPairs,
	}
}

// SelectLeft 把某个左项设为锚点，覆盖先前未完成的选择
func (s *TakeService) SelectLeft(sessionID string, pairID uint) (*MatchSnapshot, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	if !session.HasPair(pairID) {
		return nil, util.ErrUnknownPair
	}
	session.SelectLeft(pairID)
	if err := s.SessionRepo.Save(session); err != nil {
		return nil, err
	}
	return snapshot(session), nil
}

// SelectRight 在有锚点时提交一条配对；空闲态下选右项直接拒绝，
// 会话原样保留（Matches 不变）。
func (s *TakeService) SelectRight(sessionID string, pairID uint) (*MatchSnapshot, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	if !session.HasPair(pairID) {
		return nil, util.ErrUnknownPair
	}
	if !session.SelectRight(pairID) {
		return snapshot(session), util.ErrNoLeftSelected
	}
	if err := s.SessionRepo.Save(session); err != nil {
		return nil, err
	}
	return snapshot(session), nil
}

// SubmitMatches 评分并原子落库；matches 为空直接拒绝，不写任何记录
func (s *TakeService) SubmitMatches(userID *uint, quizID uint, matches map[uint]uint) (*SubmitResult, error) {
	if len(matches) == 0 {
		return nil, util.ErrEmptySubmission
	}

	pairs, err := s.QuizRepo.FindPairsByQuizID(quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	} else if err != nil {
		return nil, err
	}

	score, total, results := ScoreMatches(pairs, matches)

	attempt := &model.Attempt{
		UserID: userID,
		QuizID: quizID,
		Score:  score,
		Total:  total,
	}
	answers := make([]model.AttemptAnswer, 0, len(results))
	for _, res := range results {
		answers = append(answers, model.AttemptAnswer{
			PairID:     res.PairID,
			ChosenText: res.ChosenText,
			IsCorrect:  res.IsCorrect,
		})
	}

	if err := s.AttemptRepo.CreateWithAnswers(attempt, answers); err != nil {
		return nil, err
	}

	return &SubmitResult{
		AttemptID: attempt.ID,
		Score:     score,
		Total:     total,
		Results:   results,
	}, nil
}

// SubmitSession 完成度检查后提交会话：
// 空提交硬拒绝；不完整且未确认时返回 RequiresConfirmation 而不落库；
// 成功后删除会话。
func (s *TakeService) SubmitSession(sessionID string, userID *uint, confirm bool) (*SubmitResult, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	switch session.Completion() {
	case model.CompletionEmpty:
		return nil, util.ErrEmptySubmission
	case model.CompletionIncomplete:
		if !confirm {
			return &SubmitResult{
				RequiresConfirmation: true,
				Matched:              len(session.Matches),
				Total:                session.TotalPairs,
			}, nil
		}
	}

	result, err := s.SubmitMatches(userID, session.QuizID, session.Matches)
	if err != nil {
		return nil, err
	}

	s.SessionRepo.Delete(sessionID)

	return result, nil
}

// Review 回看历史答题：两列都按保存顺序（不重新打乱），
// 配对映射从冗余文本反推，供答题模式的连线渲染复用。
func (s *TakeService) Review(attemptID uint, viewerID *uint) (*ReviewView, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAttemptNotFound
	} else if err != nil {
		return nil, err
	}

	quiz, err := s.QuizRepo.FindByID(attempt.QuizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	} else if err != nil {
		return nil, err
	}

	// 游客的答题记录凭ID即可回看；登录用户的记录仅本人或测验所有者可见
	if attempt.UserID != nil {
		allowed := viewerID != nil && (*viewerID == *attempt.UserID || *viewerID == quiz.UserID)
		if !allowed {
			return nil, util.ErrPermissionDenied
		}
	}

	question, err := s.QuizRepo.FindQuestion(attempt.QuizID)
	if err != nil {
		return nil, err
	}
	pairs, err := s.QuizRepo.FindPairs(question.ID)
	if err != nil {
		return nil, err
	}
	answers, err := s.AttemptRepo.GetAnswers(attemptID)
	if err != nil {
		return nil, err
	}

	matches := ReconstructMatches(pairs, answers)

	chosenText := make(map[uint]string, len(answers))
	for _, a := range answers {
		chosenText[a.PairID] = a.ChosenText
	}

	items := make([]ReviewItem, 0, len(pairs))
	for _, p := range pairs {
		matchedID, matched := matches[p.ID]
		correct := matched && matchedID == p.ID
		item := ReviewItem{
			PairID:        p.ID,
			LeftText:      p.LeftText,
			ChosenText:    chosenText[p.ID],
			MatchedPairID: matchedID,
			IsCorrect:     correct,
		}
		if !correct {
			item.CorrectText = p.RightText
		}
		items = append(items, item)
	}

	return &ReviewView{
		AttemptID:  attempt.ID,
		QuizID:     quiz.ID,
		Title:      quiz.Title,
		UserPrompt: question.UserPrompt,
		LeftItems:  leftItems(pairs),
		RightItems: rightItems(pairs),
		Matches:    matches,
		Items:      items,
		Score:      attempt.Score,
		Total:      attempt.Total,
	}, nil
}

// History 当前用户的答题历史（侧边栏）
func (s *TakeService) History(userID uint) ([]repository.AttemptSummary, error) {
	return s.AttemptRepo.ListByUser(userID)
}
