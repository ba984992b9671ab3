package service

import (
	"matchquiz_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/require"
)

func scoringPair(id uint, left, right string, pos int) model.MatchingPair {
	return model.MatchingPair{
		BaseModel: model.BaseModel{ID: id},
		LeftText:  left,
		RightText: right,
		Position:  pos,
	}
}

func capitalPairs() []model.MatchingPair {
	return []model.MatchingPair{
		scoringPair(1, "法国", "巴黎", 1),
		scoringPair(2, "日本", "东京", 2),
	}
}

func TestScoreMatchesAllCorrect(t *testing.T) {
	score, total, results := ScoreMatches(capitalPairs(), map[uint]uint{1: 1, 2: 2})

	require.Equal(t, 2, score)
	require.Equal(t, 2, total)
	require.Len(t, results, 2)
	for _, r := range results {
		require.True(t, r.IsCorrect)
	}
}

func TestScoreMatchesAllSwapped(t *testing.T) {
	score, total, results := ScoreMatches(capitalPairs(), map[uint]uint{1: 2, 2: 1})

	require.Zero(t, score)
	require.Equal(t, 2, total)
	require.Len(t, results, 2)
	for _, r := range results {
		require.False(t, r.IsCorrect)
	}
}

func TestScoreMatchesPartialSubmission(t *testing.T) {
	score, total, results := ScoreMatches(capitalPairs(), map[uint]uint{1: 1})

	require.Equal(t, 1, score)
	require.Equal(t, 2, total)
	require.Len(t, results, 1)
	require.Equal(t, uint(1), results[0].PairID)
	require.Equal(t, "巴黎", results[0].ChosenText)
}

func TestScoreMatchesDuplicateRightTextInterchangeable(t *testing.T) {
	pairs := []model.MatchingPair{
		scoringPair(1, "狗", "动物", 1),
		scoringPair(2, "猫", "动物", 2),
	}

	// 两个右项文本相同，互换选择仍然全对
	score, total, _ := ScoreMatches(pairs, map[uint]uint{1: 2, 2: 1})
	require.Equal(t, 2, score)
	require.Equal(t, 2, total)
}

func TestScoreMatchesUnknownChosenIDIncorrect(t *testing.T) {
	score, _, results := ScoreMatches(capitalPairs(), map[uint]uint{1: 999})

	require.Zero(t, score)
	require.Len(t, results, 1)
	require.False(t, results[0].IsCorrect)
	require.Empty(t, results[0].ChosenText)
}

func TestScoreMatchesDeterministic(t *testing.T) {
	matches := map[uint]uint{1: 2, 2: 2}

	s1, t1, r1 := ScoreMatches(capitalPairs(), matches)
	s2, t2, r2 := ScoreMatches(capitalPairs(), matches)

	require.Equal(t, s1, s2)
	require.Equal(t, t1, t2)
	require.Equal(t, r1, r2)
}

func TestReconstructMatchesRoundTrip(t *testing.T) {
	pairs := capitalPairs()
	original := map[uint]uint{1: 2, 2: 1}

	_, _, results := ScoreMatches(pairs, original)
	answers := make([]model.AttemptAnswer, 0, len(results))
	for _, r := range results {
		answers = append(answers, model.AttemptAnswer{
			PairID:     r.PairID,
			ChosenText: r.ChosenText,
			IsCorrect:  r.IsCorrect,
		})
	}

	require.Equal(t, original, ReconstructMatches(pairs, answers))
}

func TestReconstructMatchesDuplicateTextFirstWins(t *testing.T) {
	pairs := []model.MatchingPair{
		scoringPair(1, "狗", "动物", 1),
		scoringPair(2, "猫", "动物", 2),
	}
	answers := []model.AttemptAnswer{
		{PairID: 2, ChosenText: "动物", IsCorrect: true},
	}

	// 文本重复时取保存顺序中第一个命中的右项
	require.Equal(t, map[uint]uint{2: 1}, ReconstructMatches(pairs, answers))
}

func TestReconstructMatchesUnresolvableTextDropped(t *testing.T) {
	answers := []model.AttemptAnswer{
		{PairID: 1, ChosenText: "已被编辑掉的文本"},
		{PairID: 2, ChosenText: "东京"},
	}

	matches := ReconstructMatches(capitalPairs(), answers)
	require.Equal(t, map[uint]uint{2: 2}, matches)
}
