package model

// MatchingPair 配对单元：同一条记录的左右文本即为正确配对。
// 编辑测验时旧配对全部删除后重建，pair_id 不跨版本保留。
// swagger:model MatchingPair
type MatchingPair struct {
	BaseModel
	QuestionID uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	LeftText   string `gorm:"size:100;not null" json:"leftText"`
	RightText  string `gorm:"size:100;not null" json:"rightText"`
	Position   int    `gorm:"not null" json:"position"`
}

func (MatchingPair) TableName() string {
	return "matching_pairs"
}
