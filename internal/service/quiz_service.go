package service

import (
	"errors"
	"matchquiz_backend/internal/model"
	"matchquiz_backend/internal/repository"
	"matchquiz_backend/internal/util"
	"strings"

	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo *repository.QuizRepository
}

func NewQuizService(quizRepo *repository.QuizRepository) *QuizService {
	return &QuizService{QuizRepo: quizRepo}
}

type PairInput struct {
	LeftText  string `json:"leftText"`
	RightText string `json:"rightText"`
}

type QuizSaveRequest struct {
	Title       string      `json:"title" binding:"required,max=50"`
	Description string      `json:"description" binding:"max=1000"`
	UserPrompt  string      `json:"userPrompt" binding:"max=100"`
	IsPublic    bool        `json:"isPublic"`
	Pairs       []PairInput `json:"pairs" binding:"required"`
}

// QuizDetail 查看/编辑模式下的完整测验，配对按保存顺序
type QuizDetail struct {
	Quiz       *model.Quiz          `json:"quiz"`
	UserPrompt string               `json:"userPrompt"`
	Pairs      []model.MatchingPair `json:"pairs"`
}

// buildPairs 过滤左右都为空的行，按输入顺序编号
func buildPairs(inputs []PairInput) []model.MatchingPair {
	var pairs []model.MatchingPair
	pos := 1
	for _, in := range inputs {
		left := strings.TrimSpace(in.LeftText)
		right := strings.TrimSpace(in.RightText)
		if left == "" && right == "" {
			continue
		}
		pairs = append(pairs, model.MatchingPair{
			LeftText:  left,
			RightText: right,
			Position:  pos,
		})
		pos++
	}
	return pairs
}

func (s *QuizService) CreateQuiz(ownerID uint, req QuizSaveRequest) (*model.Quiz, error) {
	pairs := buildPairs(req.Pairs)
	if len(pairs) == 0 {
		return nil, util.ErrQuizNoPairs
	}

	quiz := &model.Quiz{
		UserID:      ownerID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		IsPublic:    req.IsPublic,
	}
	question := &model.Question{UserPrompt: strings.TrimSpace(req.UserPrompt)}

	if err := s.QuizRepo.CreateWithPairs(quiz, question, pairs); err != nil {
		return nil, err
	}
	return quiz, nil
}

// UpdateQuiz 仅限所有者，配对整体替换（编辑后 pair_id 不保留）
func (s *QuizService) UpdateQuiz(editorID, quizID uint, req QuizSaveRequest) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	} else if err != nil {
		return nil, err
	}
	if quiz.UserID != editorID {
		return nil, util.ErrPermissionDenied
	}

	pairs := buildPairs(req.Pairs)
	if len(pairs) == 0 {
		return nil, util.ErrQuizNoPairs
	}

	question, err := s.QuizRepo.FindQuestion(quizID)
	if err != nil {
		return nil, err
	}

	quiz.Title = strings.TrimSpace(req.Title)
	quiz.Description = strings.TrimSpace(req.Description)
	quiz.IsPublic = req.IsPublic
	question.UserPrompt = strings.TrimSpace(req.UserPrompt)

	if err := s.QuizRepo.UpdateWithPairs(quiz, question, pairs); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) DeleteQuiz(editorID, quizID uint) error {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrQuizNotFound
	} else if err != nil {
		return err
	}
	if quiz.UserID != editorID {
		return util.ErrPermissionDenied
	}
	return s.QuizRepo.DeleteCascade(quizID)
}

// GetQuiz 查看模式：配对按保存顺序，不打乱。
// 私有测验仅所有者可见。
func (s *QuizService) GetQuiz(quizID uint, viewerID *uint) (*QuizDetail, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	} else if err != nil {
		return nil, err
	}
	if !quiz.IsPublic && (viewerID == nil || *viewerID != quiz.UserID) {
		return nil, util.ErrQuizNotAccessible
	}

	question, err := s.QuizRepo.FindQuestion(quizID)
	if err != nil {
		return nil, err
	}
	pairs, err := s.QuizRepo.FindPairs(question.ID)
	if err != nil {
		return nil, err
	}

	return &QuizDetail{
		Quiz:       quiz,
		UserPrompt: question.UserPrompt,
		Pairs:      pairs,
	}, nil
}

func (s *QuizService) ListMine(userID uint) ([]repository.QuizSummary, error) {
	return s.QuizRepo.ListByOwner(userID)
}

func (s *QuizService) ListPublic() ([]repository.QuizSummary, error) {
	return s.QuizRepo.ListPublic()
}
