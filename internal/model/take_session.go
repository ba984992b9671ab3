package model

import "time"

// CompletionStatus 提交前的完成度检查结果
type CompletionStatus int

const (
	CompletionEmpty      CompletionStatus = iota // 一个都没配，禁止提交
	CompletionIncomplete                         // 配了一部分，需要用户确认
	CompletionComplete
)

// TakeSession 一次答题会话的显式状态（存 Redis，不用全局变量，
// 多标签页/多用户并发答题互不串扰）。Matches 为左配对ID到所选右配对ID的映射。
type TakeSession struct {
	ID          string        `json:"id"`
	QuizID      uint          `json:"quizId"`
	TotalPairs  int           `json:"totalPairs"`
	PairIDs     map[uint]bool `json:"pairIds"`
	CurrentLeft *uint         `json:"currentLeft,omitempty"`
	Matches     map[uint]uint `json:"matches"`
	StartedAt   time.Time     `json:"startedAt"`
}

func NewTakeSession(quizID uint, pairs []MatchingPair) *TakeSession {
	ids := make(map[uint]bool, len(pairs))
	for _, p := range pairs {
		ids[p.ID] = true
	}
	return &TakeSession{
		ID:         GenerateUUID(),
		QuizID:     quizID,
		TotalPairs: len(pairs),
		PairIDs:    ids,
		Matches:    make(map[uint]uint),
		StartedAt:  time.Now(),
	}
}

func (s *TakeSession) HasPair(pairID uint) bool {
	return s.PairIDs[pairID]
}

// SelectLeft 将某个左项设为待配对锚点，覆盖之前未完成的选择
func (s *TakeSession) SelectLeft(pairID uint) {
	id := pairID
	s.CurrentLeft = &id
}

// SelectRight 在有锚点时提交一条配对（允许覆盖该左项早先的配对）并回到空闲态；
// 没有锚点时拒绝，Matches 不变，返回 false。
func (s *TakeSession) SelectRight(pairID uint) bool {
	if s.CurrentLeft == nil {
		return false
	}
	if s.Matches == nil {
		s.Matches = make(map[uint]uint)
	}
	s.Matches[*s.CurrentLeft] = pairID
	s.CurrentLeft = nil
	return true
}

func (s *TakeSession) Completion() CompletionStatus {
	switch {
	case len(s.Matches) == 0:
		return CompletionEmpty
	case len(s.Matches) < s.TotalPairs:
		return CompletionIncomplete
	default:
		return CompletionComplete
	}
}
