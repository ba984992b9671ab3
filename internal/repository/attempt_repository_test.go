package repository

import (
	"matchquiz_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateWithAnswersPersistsBoth(t *testing.T) {
	db := newTestDB(t)
	quizRepo := NewQuizRepository(db)
	repo := NewAttemptRepository(db)

	quiz := seedQuiz(t, quizRepo, 1, true, [2]string{"法国", "巴黎"}, [2]string{"日本", "东京"})
	pairs, err := quizRepo.FindPairsByQuizID(quiz.ID)
	require.NoError(t, err)

	userID := uint(1)
	attempt := &model.Attempt{UserID: &userID, QuizID: quiz.ID, Score: 2, Total: 2}
	answers := []model.AttemptAnswer{
		{PairID: pairs[0].ID, ChosenText: pairs[0].RightText, IsCorrect: true},
		{PairID: pairs[1].ID, ChosenText: pairs[1].RightText, IsCorrect: true},
	}
	require.NoError(t, repo.CreateWithAnswers(attempt, answers))
	require.NotZero(t, attempt.ID)

	got, err := repo.GetAnswers(attempt.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, a := range got {
		require.Equal(t, attempt.ID, a.AttemptID)
	}
}

func TestCreateWithAnswersRollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	quizRepo := NewQuizRepository(db)
	repo := NewAttemptRepository(db)

	quiz := seedQuiz(t, quizRepo, 1, true, [2]string{"法国", "巴黎"})
	pairs, err := quizRepo.FindPairsByQuizID(quiz.ID)
	require.NoError(t, err)

	// 让答案写入必然失败，验证答题记录不会孤立存在
	require.NoError(t, db.Migrator().DropTable(&model.AttemptAnswer{}))

	attempt := &model.Attempt{QuizID: quiz.ID, Score: 1, Total: 1}
	err = repo.CreateWithAnswers(attempt, []model.AttemptAnswer{
		{PairID: pairs[0].ID, ChosenText: pairs[0].RightText, IsCorrect: true},
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&model.Attempt{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestListByUserNewestFirst(t *testing.T) {
	db := newTestDB(t)
	quizRepo := NewQuizRepository(db)
	repo := NewAttemptRepository(db)

	quiz := seedQuiz(t, quizRepo, 1, true, [2]string{"法国", "巴黎"})
	pairs, err := quizRepo.FindPairsByQuizID(quiz.ID)
	require.NoError(t, err)

	userID := uint(7)
	otherID := uint(8)
	for _, uid := range []*uint{&userID, &userID, &otherID, nil} {
		attempt := &model.Attempt{UserID: uid, QuizID: quiz.ID, Score: 1, Total: 1}
		require.NoError(t, repo.CreateWithAnswers(attempt, []model.AttemptAnswer{
			{PairID: pairs[0].ID, ChosenText: pairs[0].RightText, IsCorrect: true},
		}))
	}

	summaries, err := repo.ListByUser(userID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	for _, s := range summaries {
		require.Equal(t, quiz.ID, s.QuizID)
		require.Equal(t, "国家与首都", s.QuizTitle)
	}

	count, err := repo.CountByQuiz(quiz.ID)
	require.NoError(t, err)
	require.Equal(t, int64(4), count)
}
