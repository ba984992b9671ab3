package repository

import (
	"matchquiz_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// CreateWithAnswers 原子地写入一次答题记录及其全部答案。
// 任一步失败则整体回滚，不会留下没有答案的答题记录。
func (r *AttemptRepository) CreateWithAnswers(attempt *model.Attempt, answers []model.AttemptAnswer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}
		for i := range answers {
			answers[i].AttemptID = attempt.ID
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *AttemptRepository) FindByID(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.DB.First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *AttemptRepository) GetAnswers(attemptID uint) ([]model.AttemptAnswer, error) {
	var answers []model.AttemptAnswer
	err := r.DB.Where("attempt_id = ?", attemptID).Order("pair_id ASC").Find(&answers).Error
	return answers, err
}

// AttemptSummary 答题历史列表项
type AttemptSummary struct {
	AttemptID uint   `json:"attemptId"`
	QuizID    uint   `json:"quizId"`
	QuizTitle string `json:"quizTitle"`
	Score     int    `json:"score"`
	Total     int    `json:"total"`
}

func (r *AttemptRepository) ListByUser(userID uint) ([]AttemptSummary, error) {
	var summaries []AttemptSummary
	err := r.DB.Model(&model.Attempt{}).
		Select("attempts.id AS attempt_id, attempts.quiz_id, quizzes.title AS quiz_title, attempts.score, attempts.total").
		Joins("JOIN quizzes ON quizzes.id = attempts.quiz_id").
		Where("attempts.user_id = ?", userID).
		Order("attempts.created_at DESC").
		Scan(&summaries).Error
	return summaries, err
}

func (r *AttemptRepository) CountByQuiz(quizID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Attempt{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}
