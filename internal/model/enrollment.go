package model

import "time"

// Enrollment records one student's registration in one course. Progress is
// recomputed from lesson completions on every triggering event; CompletedAt
// is set once progress first reaches 100 and is never cleared afterwards,
// even if completions are later unmarked.
type Enrollment struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint       `gorm:"uniqueIndex:idx_user_course;not null" json:"userId"`
	CourseID    uint       `gorm:"uniqueIndex:idx_user_course;not null" json:"courseId"`
	Progress    int        `gorm:"default:0" json:"progress"`
	EnrolledAt  time.Time  `gorm:"autoCreateTime" json:"enrolledAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// EnrollmentWithCourse is the student-facing list projection.
type EnrollmentWithCourse struct {
	Enrollment
	CourseTitle    string `json:"courseTitle"`
	ThumbnailURL   string `json:"thumbnailUrl"`
	InstructorName string `json:"instructorName"`
}

// EnrollmentWithUser is the instructor/admin-facing list projection.
type EnrollmentWithUser struct {
	Enrollment
	UserName    string `json:"userName"`
	UserEmail   string `json:"userEmail"`
	CourseTitle string `json:"courseTitle"`
}
