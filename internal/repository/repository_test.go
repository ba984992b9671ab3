package repository

import (
	"matchquiz_backend/internal/model"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Quiz{},
		&model.Question{},
		&model.MatchingPair{},
		&model.Attempt{},
		&model.AttemptAnswer{},
	))
	return db
}

func seedQuiz(t *testing.T, repo *QuizRepository, ownerID uint, public bool, pairs ...[2]string) *model.Quiz {
	t.Helper()

	quiz := &model.Quiz{
		UserID:   ownerID,
		Title:    "国家与首都",
		IsPublic: public,
	}
	question := &model.Question{UserPrompt: "把国家和它的首都连起来"}

	rows := make([]model.MatchingPair, 0, len(pairs))
	for i, p := range pairs {
		rows = append(rows, model.MatchingPair{
			LeftText:  p[0],
			RightText: p[1],
			Position:  i + 1,
		})
	}

	require.NoError(t, repo.CreateWithPairs(quiz, question, rows))
	return quiz
}
