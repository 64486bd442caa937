package model

type LessonContentType string

const (
	LessonVideo      LessonContentType = "video"
	LessonText       LessonContentType = "text"
	LessonQuiz       LessonContentType = "quiz"
	LessonAssignment LessonContentType = "assignment"
)

// swagger:model Lesson
type Lesson struct {
	BaseModel
	ModuleID    uint              `gorm:"index;not null" json:"moduleId"`
	Title       string            `gorm:"size:255;not null" json:"title"`
	Content     string            `gorm:"type:text" json:"content"`
	ContentType LessonContentType `gorm:"size:20;default:'text'" json:"contentType"`
	ContentURL  string            `gorm:"size:255" json:"contentUrl"`
	Duration    int               `gorm:"default:0" json:"duration"`
	OrderNum    int               `gorm:"default:0" json:"orderNum"`
}

func (Lesson) TableName() string {
	return "lessons"
}
