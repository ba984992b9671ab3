package model

// AttemptAnswer 存储一次答题中每个左项的选择（用于回看）。
// ChosenText 冗余保存所选右项文本而非外键，测验被编辑后回看按文本匹配降级处理。
type AttemptAnswer struct {
	BaseModel
	AttemptID  uint   `gorm:"index;type:bigint unsigned" json:"attemptId"`
	PairID     uint   `gorm:"index;type:bigint unsigned" json:"pairId"`
	ChosenText string `gorm:"size:100" json:"chosenText"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (AttemptAnswer) TableName() string {
	return "attempt_answers"
}
