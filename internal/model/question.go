package model

// Question 测验的题干（每个测验恰好一条，编辑时整体替换）
// swagger:model Question
type Question struct {
	BaseModel
	QuizID     uint   `gorm:"uniqueIndex;type:bigint unsigned" json:"quizId"`
	UserPrompt string `gorm:"size:100" json:"userPrompt"`
}

func (Question) TableName() string {
	return "questions"
}
