package model

import "time"

// LessonCompletion is a (user, lesson) fact with no lifecycle beyond
// presence or absence. The pair is unique; marking an already completed
// lesson is a no-op rather than a timestamp refresh.
type LessonCompletion struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"uniqueIndex:idx_user_lesson;not null" json:"userId"`
	LessonID    uint      `gorm:"uniqueIndex:idx_user_lesson;not null" json:"lessonId"`
	CompletedAt time.Time `gorm:"autoCreateTime" json:"completedAt"`
}

func (LessonCompletion) TableName() string {
	return "lesson_completions"
}

// CompletedLesson is the display projection joined with lesson, module and
// course titles.
type CompletedLesson struct {
	UserID      uint      `json:"userId,omitempty"`
	LessonID    uint      `json:"lessonId"`
	CompletedAt time.Time `json:"completedAt"`
	Title       string    `json:"title"`
	ModuleTitle string    `json:"moduleTitle"`
	CourseTitle string    `json:"courseTitle,omitempty"`
}

// LessonEnrollment resolves which enrollment owns a lesson for a user.
type LessonEnrollment struct {
	EnrollmentID uint `json:"enrollmentId"`
	CourseID     uint `json:"courseId"`
	Progress     int  `json:"progress"`
}
