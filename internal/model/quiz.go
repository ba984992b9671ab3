package model

// Quiz 配对测验，一个测验只有一道配对题（见 Question）
// swagger:model Quiz
type Quiz struct {
	BaseModel
	UserID      uint   `gorm:"index;type:bigint unsigned" json:"userId"`
	Title       string `gorm:"size:50;not null" json:"title"`
	Description string `gorm:"size:1000" json:"description"`
	IsPublic    bool   `gorm:"default:false" json:"isPublic"`
}

func (Quiz) TableName() string {
	return "quizzes"
}
