package model

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	ShortAnswer    QuestionType = "short_answer"
)

// Quiz belongs to exactly one lesson. MaxAttempts nil means unlimited;
// MaxAttempts == 1 enables overwrite-in-place retakes.
// swagger:model Quiz
type Quiz struct {
	BaseModel
	LessonID     uint           `gorm:"index;not null" json:"lessonId"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	PassingScore int            `gorm:"default:50" json:"passingScore"`
	TimeLimit    *int           `json:"timeLimit,omitempty"`
	MaxAttempts  *int           `json:"maxAttempts,omitempty"`
	Questions    []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel
	QuizID       uint         `gorm:"index;not null" json:"quizId"`
	QuestionText string       `gorm:"type:text;not null" json:"questionText"`
	QuestionType QuestionType `gorm:"size:20;not null" json:"questionType"`
	Points       int          `gorm:"default:1" json:"points"`
	OrderNum     int          `gorm:"default:0" json:"orderNum"`
	Options      []QuizOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// swagger:model QuizOption
type QuizOption struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	OptionText string `gorm:"type:text;not null" json:"optionText"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
	OrderNum   int    `gorm:"default:0" json:"orderNum"`
}

func (QuizOption) TableName() string {
	return "quiz_options"
}

// QuizSummary is the per-lesson listing projection.
type QuizSummary struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	PassingScore  int    `json:"passingScore"`
	TimeLimit     *int   `json:"timeLimit,omitempty"`
	MaxAttempts   *int   `json:"maxAttempts,omitempty"`
	LessonTitle   string `json:"lessonTitle"`
	CourseTitle   string `json:"courseTitle"`
	QuestionCount int64  `json:"questionCount"`
}
