package service

import "matchquiz_backend/internal/model"

// AnswerResult 单个左项的评分结果
type AnswerResult struct {
	PairID        uint   `json:"pairId"`
	ChosenRightID uint   `json:"chosenRightId"`
	ChosenText    string `json:"chosenText"`
	IsCorrect     bool   `json:"isCorrect"`
}

// ScoreMatches 对提交的配对评分。
// 判定按解析后的文本比较：左项正确当且仅当所选右项的文本等于该左项
// 自身配对的右文本，因此右文本相同的两条配对互相可替换。
// total 是题目配对总数而非提交数，未配对的左项只计入分母。
// 纯函数：相同输入恒得相同输出。
func ScoreMatches(pairs []model.MatchingPair, matches map[uint]uint) (score, total int, results []AnswerResult) {
	total = len(pairs)

	rightText := make(map[uint]string, len(pairs))
	for _, p := range pairs {
		rightText[p.ID] = p.RightText
	}

	for _, p := range pairs {
		chosenID, matched := matches[p.ID]
		if !matched {
			continue
		}
		chosenText, known := rightText[chosenID]
		correct := known && chosenText == p.RightText
		if correct {
			score++
		}
		results = append(results, AnswerResult{
			PairID:        p.ID,
			ChosenRightID: chosenID,
			ChosenText:    chosenText,
			IsCorrect:     correct,
		})
	}
	return score, total, results
}

// ReconstructMatches 从历史答案反推配对映射：冗余保存的 chosen_text
// 按文本匹配回当前配对的右项（取保存顺序中第一个命中的）。
// 测验编辑后文本对不上的左项留空，回看时降级为未配对，绝不报错。
func ReconstructMatches(pairs []model.MatchingPair, answers []model.AttemptAnswer) map[uint]uint {
	byText := make(map[string]uint, len(pairs))
	for _, p := range pairs {
		if _, ok := byText[p.RightText]; !ok {
			byText[p.RightText] = p.ID
		}
	}

	matches := make(map[uint]uint, len(answers))
	for _, a := range answers {
		if rightID, ok := byText[a.ChosenText]; ok {
			matches[a.PairID] = rightID
		}
	}
	return matches
}
