package service

import (
	"errors"
	"matchquiz_backend/internal/model"
	"matchquiz_backend/internal/repository"
	"matchquiz_backend/internal/util"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type takeFixture struct {
	take    *TakeService
	quiz    *QuizService
	db      *gorm.DB
	session *repository.TakeSessionRepository
}

func newTakeFixture(t *testing.T) *takeFixture {
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

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	quizRepo := repository.NewQuizRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	sessionRepo := repository.NewTakeSessionRepository(rdb, 30*time.Minute)

	return &takeFixture{
		take:    NewTakeService(quizRepo, attemptRepo, sessionRepo),
		quiz:    NewQuizService(quizRepo),
		db:      db,
		session: sessionRepo,
	}
}

func (f *takeFixture) createQuiz(t *testing.T, ownerID uint, public bool, pairs ...[2]string) *model.Quiz {
	t.Helper()

	req := QuizSaveRequest{
		Title:      "国家与首都",
		UserPrompt: "把国家和它的首都连起来",
		IsPublic:   public,
	}
	for _, p := range pairs {
		req.Pairs = append(req.Pairs, PairInput{LeftText: p[0], RightText: p[1]})
	}

	quiz, err := f.quiz.CreateQuiz(ownerID, req)
	require.NoError(t, err)
	return quiz
}

func (f *takeFixture) attemptCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&model.Attempt{}).Count(&count).Error)
	return count
}

func TestStartTakeShufflePreservesPairSet(t *testing.T) {
	f := newTakeFixture(t)
	quiz := f.createQuiz(t, 1, true,
		[2]string{"法国", "巴黎"},
		[2]string{"日本", "东京"},
		[2]string{"德国", "柏林"},
		[2]string{"西班牙", "马德里"},
		[2]string{"意大利", "罗马"},
	)

	view, err := f.take.StartTake(quiz.ID, nil)
	require.NoError(t, err)
	require.NotEmpty(t, view.SessionID)
	require.Equal(t, 5, view.TotalPairs)
	require.Len(t, view.LeftItems, 5)
	require.Len(t, view.RightItems, 5)

	// 左列保持保存顺序
	require.Equal(t, "法国", view.LeftItems[0].Text)
	require.Equal(t, "意大利", view.LeftItems[4].Text)

	// 右列是左列配对ID的一个排列，不多不少
	leftIDs := map[uint]bool{}
	for _, item := range view.LeftItems {
		leftIDs[item.PairID] = true
	}
	rightIDs := map[uint]bool{}
	for _, item := range view.RightItems {
		rightIDs[item.PairID] = true
	}
	require.Equal(t, leftIDs, rightIDs)
}

func TestShuffleRightEmptyInput(t *testing.T) {
	require.Empty(t, ShuffleRight(nil))
}

func TestStartTakePrivateQuizGuestForbidden(t *testing.T) {
	f := newTakeFixture(t)
	quiz := f.createQuiz(t, 1, false, [2]string{"法国", "巴黎"})

	_, err := f.take.StartTake(quiz.ID, nil)
	require.ErrorIs(t, err, util.ErrQuizNotAccessible)

	stranger := uint(2)
	_, err = f.take.StartTake(quiz.ID, &stranger)
	require.ErrorIs(t, err, util.ErrQuizNotAccessible)

	owner := uint(1)
	_, err = f.take.StartTake(quiz.ID, &owner)
	require.NoError(t, err)
}

func TestSelectRightWithoutLeftRejected(t *testing.T) {
	f := newTakeFixture(t)
	quiz := f.createQuiz(t, 1, true, [2]string{"法国", "巴黎"}, [2]string{"日本", "东京"})

	view, err := f.take.StartTake(quiz.ID, nil)
	require.NoError(t, err)

	snap, err := f.take.SelectRight(view.SessionID, view.RightItems[0].PairID)
	require.ErrorIs(t, err, util.ErrNoLeftSelected)
	require.Empty(t, snap.Matches)

	// 拒绝后会话保持原样
	got, err := f.session.Get(view.SessionID)
	require.NoError(t, err)
	require.Empty(t, got.Matches)
	require.Nil(t, got.CurrentLeft)
}

func TestSelectFlowBuildsMatches(t *testing.T) {
	f := newTakeFixture(t)
	quiz := f.createQuiz(t, 1, true, [2]string{"法国", "巴黎"}, [2]string{"日本", "东京"})

	view, err := f.take.StartTake(quiz.ID, nil)
	require.NoError(t, err)
	left0 := view.LeftItems[0].PairID
	left1 := view.LeftItems[1].PairID

	// 换锚点：先点第一个左项又改点第二个，只有后者生效
	_, err = f.take.SelectLeft(view.SessionID, left0)
	require.NoError(t, err)
	_, err = f.take.SelectLeft(view.SessionID, left1)
	require.NoError(t, err)
	snap, err := f.take.SelectRight(view.SessionID, left0)
	require.NoError(t, err)

	require.Equal(t, map[uint]uint{left1: left0}, snap.Matches)
	require.Equal(t, 1, snap.Matched)
	require.Nil(t, snap.CurrentLeft)
}

func TestSelectUnknownPairRejected(t *testing.T) {
	f := newTakeFixture(t)
	quiz := f.createQuiz(t, 1, true, [2]string{"法国", "巴黎"})

	view, err := f.take.StartTake(quiz.ID, nil)
	require.NoError(t, err)

	_, err = f.take.SelectLeft(view.SessionID, 9999)
	require.ErrorIs(t, err, util.ErrUnknownPair)

	_, err = f.take.SelectLeft("no-such-session", view.LeftItems[0].PairID)
	require.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestSubmitSessionEmptyRejected(t *testing.T) {
	f := newTakeFixture(t)
	quiz := f.createQuiz(t, 1, true, [2]string{"法国", "巴黎"})

	view, err := f.take.StartTake(quiz.ID, nil)
	require.NoError(t, err)

	_, err = f.take.SubmitSession(view.SessionID, nil, false)
	require.ErrorIs(t, err, util.ErrEmptySubmission)

	// 确认标记也救不了空提交
	_, err = f.take.SubmitSession(view.SessionID, nil, true)
	require.ErrorIs(t, err, util.ErrEmptySubmission)

	require.Zero(t, f.attemptCount(t))
}

func TestSubmitSessionIncompleteNeedsConfirmation(t *testing.T) {
	f := newTakeFixture(t)
	quiz := f.createQuiz(t, 1, true, [2]string{"法国", "巴黎"}, [2]string{"日本", "东京"})

	view, err := f.take.StartTake(quiz.ID, nil)
	require.NoError(t, err)
	left0 := view.LeftItems[0].PairID

	_, err = f.take.SelectLeft(view.SessionID, left0)
	require.NoError(t, err)
	_, err = f.take.SelectRight(view.SessionID, left0)
	require.NoError(t, err)

	result, err := f.take.SubmitSession(view.SessionID, nil, false)
	require.NoError(t, err)
	require.True(t, result.RequiresConfirmation)
	require.Equal(t, 1, result.Matched)
	require.Equal(t, 2, result.Total)
	require.Zero(t, f.attemptCount(t))

	// 确认后落库，未配对的左项只计入分母
	result, err = f.take.SubmitSession(view.SessionID, nil, true)
	require.NoError(t, err)
	require.False(t, result.RequiresConfirmation)
	require.Equal(t, 1, result.Score)
	require.Equal(t, 2, result.Total)
	require.Equal(t, int64(1), f.attemptCount(t))

	// 提交成功后会话销毁
	_, err = f.take.SubmitSession(view.SessionID, nil, true)
	require.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestSubmitMatchesAndReview(t *testing.T) {
	f := newTakeFixture(t)
	quiz := f.createQuiz(t, 1, true, [2]string{"法国", "巴黎"}, [2]string{"日本", "东京"})

	pairs, err := f.quiz.QuizRepo.FindPairsByQuizID(quiz.ID)
	require.NoError(t, err)

	// 第一题答对，第二题答错
	matches := map[uint]uint{
		pairs[0].ID: pairs[0].ID,
		pairs[1].ID: pairs[0].ID,
	}
	userID := uint(5)
	result, err := f.take.SubmitMatches(&userID, quiz.ID, matches)
	require.NoError(t, err)
	require.Equal(t, 1, result.Score)
	require.Equal(t, 2, result.Total)
	require.NotZero(t, result.AttemptID)

	review, err := f.take.Review(result.AttemptID, &userID)
	require.NoError(t, err)
	require.Equal(t, 1, review.Score)
	require.Equal(t, 2, review.Total)
	require.Equal(t, matches, review.Matches)
	require.Len(t, review.Items, 2)

	require.True(t, review.Items[0].IsCorrect)
	require.Empty(t, review.Items[0].CorrectText)

	require.False(t, review.Items[1].IsCorrect)
	require.Equal(t, "巴黎", review.Items[1].ChosenText)
	require.Equal(t, "东京", review.Items[1].CorrectText)
}

func TestReviewAccessControl(t *testing.T) {
	f := newTakeFixture(t)
	ownerID := uint(1)
	takerID := uint(2)
	strangerID := uint(3)
	quiz := f.createQuiz(t, ownerID, true, [2]string{"法国", "巴黎"})

	pairs, err := f.quiz.QuizRepo.FindPairsByQuizID(quiz.ID)
	require.NoError(t, err)
	result, err := f.take.SubmitMatches(&takerID, quiz.ID, map[uint]uint{pairs[0].ID: pairs[0].ID})
	require.NoError(t, err)

	// 答题者本人和测验所有者可看，其他人不行
	_, err = f.take.Review(result.AttemptID, &takerID)
	require.NoError(t, err)
	_, err = f.take.Review(result.AttemptID, &ownerID)
	require.NoError(t, err)
	_, err = f.take.Review(result.AttemptID, &strangerID)
	require.ErrorIs(t, err, util.ErrPermissionDenied)
	_, err = f.take.Review(result.AttemptID, nil)
	require.ErrorIs(t, err, util.ErrPermissionDenied)

	// 游客的答题记录凭ID即可回看
	guestResult, err := f.take.SubmitMatches(nil, quiz.ID, map[uint]uint{pairs[0].ID: pairs[0].ID})
	require.NoError(t, err)
	_, err = f.take.Review(guestResult.AttemptID, nil)
	require.NoError(t, err)
}

func TestReviewAfterQuizEditDegradesGracefully(t *testing.T) {
	f := newTakeFixture(t)
	ownerID := uint(1)
	quiz := f.createQuiz(t, ownerID, true, [2]string{"法国", "巴黎"}, [2]string{"日本", "东京"})

	pairs, err := f.quiz.QuizRepo.FindPairsByQuizID(quiz.ID)
	require.NoError(t, err)
	result, err := f.take.SubmitMatches(&ownerID, quiz.ID, map[uint]uint{
		pairs[0].ID: pairs[0].ID,
		pairs[1].ID: pairs[1].ID,
	})
	require.NoError(t, err)

	// 编辑后配对全部换新，历史答案的文本已无法对应
	_, err = f.quiz.UpdateQuiz(ownerID, quiz.ID, QuizSaveRequest{
		Title:    "改版",
		IsPublic: true,
		Pairs: []PairInput{
			{LeftText: "德国", RightText: "柏林"},
		},
	})
	require.NoError(t, err)

	review, err := f.take.Review(result.AttemptID, &ownerID)
	require.NoError(t, err)
	require.Empty(t, review.Matches)
	require.Len(t, review.Items, 1)
	require.False(t, review.Items[0].IsCorrect)
	require.Empty(t, review.Items[0].ChosenText)

	// 历史分数保持提交时的快照
	require.Equal(t, 2, review.Score)
	require.Equal(t, 2, review.Total)
}

func TestSubmitMatchesQuizMissing(t *testing.T) {
	f := newTakeFixture(t)

	_, err := f.take.SubmitMatches(nil, 999, map[uint]uint{1: 1})
	require.True(t, errors.Is(err, util.ErrQuizNotFound))
}
