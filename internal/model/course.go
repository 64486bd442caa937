package model

// swagger:model Course
type Course struct {
	BaseModel
	Title        string  `gorm:"size:255;not null" json:"title"`
	Description  string  `gorm:"type:text" json:"description"`
	CategoryID   *uint   `gorm:"index" json:"categoryId"`
	InstructorID uint    `gorm:"index;not null" json:"instructorId"`
	ThumbnailURL string  `gorm:"size:255" json:"thumbnailUrl"`
	Price        float64 `gorm:"default:0" json:"price"`
	IsPublished  bool    `gorm:"default:false" json:"isPublished"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseUpdate enumerates the updatable course columns. Nil fields are
// left untouched.
type CourseUpdate struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	CategoryID   *uint    `json:"categoryId"`
	ThumbnailURL *string  `json:"thumbnailUrl"`
	Price        *float64 `json:"price"`
	IsPublished  *bool    `json:"isPublished"`
}

func (u CourseUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if u.Title != nil {
		changes["title"] = *u.Title
	}
	if u.Description != nil {
		changes["description"] = *u.Description
	}
	if u.CategoryID != nil {
		changes["category_id"] = *u.CategoryID
	}
	if u.ThumbnailURL != nil {
		changes["thumbnail_url"] = *u.ThumbnailURL
	}
	if u.Price != nil {
		changes["price"] = *u.Price
	}
	if u.IsPublished != nil {
		changes["is_published"] = *u.IsPublished
	}
	return changes
}

// CourseDetail is the list/detail projection joined with category and
// instructor names.
type CourseDetail struct {
	Course
	CategoryName   string `json:"categoryName"`
	InstructorName string `json:"instructorName"`
	LessonCount    int64  `json:"lessonCount"`
}
