package model

import "time"

// swagger:model Assignment
type Assignment struct {
	BaseModel
	LessonID    uint       `gorm:"index;not null" json:"lessonId"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// AssignmentSubmission is one student's submission; the (assignment, user)
// pair is unique and resubmission replaces the stored URL.
type AssignmentSubmission struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	AssignmentID  uint       `gorm:"uniqueIndex:idx_assignment_user;not null" json:"assignmentId"`
	UserID        uint       `gorm:"uniqueIndex:idx_assignment_user;not null" json:"userId"`
	SubmissionURL string     `gorm:"type:text" json:"submissionUrl"`
	Content       string     `gorm:"type:text" json:"content,omitempty"`
	StoredObject  string     `gorm:"size:255" json:"-"`
	Grade         *int       `json:"grade,omitempty"`
	Feedback      string     `gorm:"type:text" json:"feedback,omitempty"`
	GradedBy      *uint      `json:"gradedBy,omitempty"`
	GradedAt      *time.Time `json:"gradedAt,omitempty"`
	SubmittedAt   time.Time  `gorm:"autoCreateTime" json:"submittedAt"`
}

func (AssignmentSubmission) TableName() string {
	return "assignment_submissions"
}

// AssignmentDetail joins an assignment with its course for access checks
// and completion triggers.
type AssignmentDetail struct {
	Assignment
	CourseID    uint   `json:"courseId"`
	LessonTitle string `json:"lessonTitle"`
}

// SubmissionWithUser is the instructor-facing submission listing.
type SubmissionWithUser struct {
	AssignmentSubmission
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}
