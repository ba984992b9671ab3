package model

// Attempt 一次完整的答题记录，游客答题时 user_id 为空
// swagger:model Attempt
type Attempt struct {
	BaseModel
	UserID *uint `gorm:"index;type:bigint unsigned" json:"userId,omitempty"`
	QuizID uint  `gorm:"index;type:bigint unsigned" json:"quizId"`
	Score  int   `gorm:"not null" json:"score"`
	Total  int   `gorm:"not null" json:"total"`
}

func (Attempt) TableName() string {
	return "attempts"
}
