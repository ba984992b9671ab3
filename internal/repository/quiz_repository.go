package repository

import (
	"matchquiz_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

// QuizSummary 侧边栏列表项，附带配对数量
type QuizSummary struct {
	QuizID      uint   `json:"quizId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsPublic    bool   `json:"isPublic"`
	NumPairs    int64  `json:"numPairs"`
}

// CreateWithPairs 在一个事务中创建测验、题干和全部配对
func (r *QuizRepository) CreateWithPairs(quiz *model.Quiz, question *model.Question, pairs []model.MatchingPair) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}
		question.QuizID = quiz.ID
		if err := tx.Create(question).Error; err != nil {
			return err
		}
		for i := range pairs {
			pairs[i].QuestionID = question.ID
		}
		if len(pairs) > 0 {
			if err := tx.Create(&pairs).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateWithPairs 编辑保存：更新测验字段与题干，旧配对整体删除后重建
func (r *QuizRepository) UpdateWithPairs(quiz *model.Quiz, question *model.Question, pairs []model.MatchingPair) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Quiz{}).Where("id = ?", quiz.ID).
			Updates(map[string]interface{}{
				"title":       quiz.Title,
				"description": quiz.Description,
				"is_public":   quiz.IsPublic,
			}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Question{}).Where("id = ?", question.ID).
			Update("user_prompt", question.UserPrompt).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&model.MatchingPair{}).Error; err != nil {
			return err
		}
		for i := range pairs {
			pairs[i].ID = 0
			pairs[i].QuestionID = question.ID
		}
		if len(pairs) > 0 {
			if err := tx.Create(&pairs).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteCascade 删除测验及其题干、配对、答题记录和答案，整体一个事务
func (r *QuizRepository) DeleteCascade(quizID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var attemptIDs []uint
		if err := tx.Model(&model.Attempt{}).Where("quiz_id = ?", quizID).
			Pluck("id", &attemptIDs).Error; err != nil {
			return err
		}
		if len(attemptIDs) > 0 {
			if err := tx.Where("attempt_id IN ?", attemptIDs).Delete(&model.AttemptAnswer{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("quiz_id = ?", quizID).Delete(&model.Attempt{}).Error; err != nil {
			return err
		}

		var questionIDs []uint
		if err := tx.Model(&model.Question{}).Where("quiz_id = ?", quizID).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.MatchingPair{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id = ?", quizID).Delete(&model.Question{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Quiz{}, quizID).Error
	})
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.DB.First(&quiz, id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) FindQuestion(quizID uint) (*model.Question, error) {
	var question model.Question
	if err := r.DB.Where("quiz_id = ?", quizID).First(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// FindPairs 按保存顺序返回某题干的全部配对
func (r *QuizRepository) FindPairs(questionID uint) ([]model.MatchingPair, error) {
	var pairs []model.MatchingPair
	err := r.DB.Where("question_id = ?", questionID).Order("position ASC").Find(&pairs).Error
	return pairs, err
}

// FindPairsByQuizID 通过测验ID直接取配对（答题和评分用）
func (r *QuizRepository) FindPairsByQuizID(quizID uint) ([]model.MatchingPair, error) {
	question, err := r.FindQuestion(quizID)
	if err != nil {
		return nil, err
	}
	return r.FindPairs(question.ID)
}

func (r *QuizRepository) ListByOwner(userID uint) ([]QuizSummary, error) {
	return r.listSummaries(r.DB.Where("quizzes.user_id = ?", userID))
}

func (r *QuizRepository) ListPublic() ([]QuizSummary, error) {
	return r.listSummaries(r.DB.Where("quizzes.is_public = ?", true))
}

func (r *QuizRepository) listSummaries(q *gorm.DB) ([]QuizSummary, error) {
	var summaries []QuizSummary
	err := q.Model(&model.Quiz{}).
		Select(`quizzes.id AS quiz_id, quizzes.title, quizzes.description, quizzes.is_public,
			(SELECT COUNT(*) FROM matching_pairs mp
			 JOIN questions qu ON qu.id = mp.question_id
			 WHERE qu.quiz_id = quizzes.id AND mp.deleted_at IS NULL AND qu.deleted_at IS NULL) AS num_pairs`).
		Order("quizzes.created_at DESC").
		Scan(&summaries).Error
	return summaries, err
}
