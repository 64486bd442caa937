package model

// swagger:model Module
type Module struct {
	BaseModel
	CourseID    uint   `gorm:"index;not null" json:"courseId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	OrderNum    int    `gorm:"default:0" json:"orderNum"`
}

func (Module) TableName() string {
	return "modules"
}
