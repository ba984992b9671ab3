package repository

import (
	"matchquiz_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateWithPairsLinksRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuizRepository(db)

	quiz := seedQuiz(t, repo, 1, true, [2]string{"法国", "巴黎"}, [2]string{"日本", "东京"})
	require.NotZero(t, quiz.ID)

	question, err := repo.FindQuestion(quiz.ID)
	require.NoError(t, err)
	require.Equal(t, quiz.ID, question.QuizID)

	pairs, err := repo.FindPairs(question.ID)
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	require.Equal(t, "法国", pairs[0].LeftText)
	require.Equal(t, 1, pairs[0].Position)
	require.Equal(t, "日本", pairs[1].LeftText)
	require.Equal(t, 2, pairs[1].Position)
}

func TestUpdateWithPairsReplacesWholesale(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuizRepository(db)

	quiz := seedQuiz(t, repo, 1, false, [2]string{"法国", "巴黎"}, [2]string{"日本", "东京"})
	question, err := repo.FindQuestion(quiz.ID)
	require.NoError(t, err)

	oldPairs, err := repo.FindPairs(question.ID)
	require.NoError(t, err)

	quiz.Title = "首都测验（修订版）"
	question.UserPrompt = "连线配对"
	newPairs := []model.MatchingPair{
		{LeftText: "德国", RightText: "柏林", Position: 1},
		{LeftText: "西班牙", RightText: "马德里", Position: 2},
		{LeftText: "意大利", RightText: "罗马", Position: 3},
	}
	require.NoError(t, repo.UpdateWithPairs(quiz, question, newPairs))

	got, err := repo.FindByID(quiz.ID)
	require.NoError(t, err)
	require.Equal(t, "首都测验（修订版）", got.Title)

	pairs, err := repo.FindPairs(question.ID)
	require.NoError(t, err)
	require.Len(t, pairs, 3)

	// 旧配对ID不会复用
	oldIDs := map[uint]bool{}
	for _, p := range oldPairs {
		oldIDs[p.ID] = true
	}
	for _, p := range pairs {
		require.False(t, oldIDs[p.ID])
	}
}

func TestDeleteCascadeRemovesEverything(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuizRepository(db)
	attemptRepo := NewAttemptRepository(db)

	quiz := seedQuiz(t, repo, 1, true, [2]string{"法国", "巴黎"}, [2]string{"日本", "东京"})
	pairs, err := repo.FindPairsByQuizID(quiz.ID)
	require.NoError(t, err)

	attempt := &model.Attempt{QuizID: quiz.ID, Score: 1, Total: 2}
	require.NoError(t, attemptRepo.CreateWithAnswers(attempt, []model.AttemptAnswer{
		{PairID: pairs[0].ID, ChosenText: pairs[0].RightText, IsCorrect: true},
	}))

	require.NoError(t, repo.DeleteCascade(quiz.ID))

	_, err = repo.FindByID(quiz.ID)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&model.Attempt{}).Where("quiz_id = ?", quiz.ID).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, db.Model(&model.AttemptAnswer{}).Where("attempt_id = ?", attempt.ID).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, db.Model(&model.MatchingPair{}).Where("question_id = ?", pairs[0].QuestionID).Count(&count).Error)
	require.Zero(t, count)
}

func TestListSummariesCountsPairs(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuizRepository(db)

	seedQuiz(t, repo, 1, true, [2]string{"法国", "巴黎"}, [2]string{"日本", "东京"})
	seedQuiz(t, repo, 2, false, [2]string{"德国", "柏林"})

	public, err := repo.ListPublic()
	require.NoError(t, err)
	require.Len(t, public, 1)
	require.Equal(t, int64(2), public[0].NumPairs)
	require.True(t, public[0].IsPublic)

	mine, err := repo.ListByOwner(2)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, int64(1), mine[0].NumPairs)
}
