package repository

import (
	"errors"
	"matchquiz_backend/internal/model"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

func newSessionRepo(t *testing.T) (*TakeSessionRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewTakeSessionRepository(rdb, 30*time.Minute), mr
}

func TestTakeSessionRoundTrip(t *testing.T) {
	repo, _ := newSessionRepo(t)

	pairs := []model.MatchingPair{
		{BaseModel: model.BaseModel{ID: 1}, LeftText: "法国", RightText: "巴黎"},
		{BaseModel: model.BaseModel{ID: 2}, LeftText: "日本", RightText: "东京"},
	}
	session := model.NewTakeSession(42, pairs)
	session.SelectLeft(1)
	session.SelectRight(2)

	require.NoError(t, repo.Save(session))

	got, err := repo.Get(session.ID)
	require.NoError(t, err)
	require.Equal(t, uint(42), got.QuizID)
	require.Equal(t, 2, got.TotalPairs)
	require.Equal(t, map[uint]uint{1: 2}, got.Matches)
	require.Nil(t, got.CurrentLeft)
	require.True(t, got.HasPair(2))
	require.False(t, got.HasPair(99))
}

func TestTakeSessionExpires(t *testing.T) {
	repo, mr := newSessionRepo(t)

	session := model.NewTakeSession(1, nil)
	require.NoError(t, repo.Save(session))

	mr.FastForward(31 * time.Minute)

	_, err := repo.Get(session.ID)
	require.True(t, errors.Is(err, redis.Nil))
}

func TestTakeSessionDelete(t *testing.T) {
	repo, _ := newSessionRepo(t)

	session := model.NewTakeSession(1, nil)
	require.NoError(t, repo.Save(session))
	require.NoError(t, repo.Delete(session.ID))

	_, err := repo.Get(session.ID)
	require.True(t, errors.Is(err, redis.Nil))
}
