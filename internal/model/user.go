package model

import "time"

type UserRole string

const (
	Student    UserRole = "student"
	Instructor UserRole = "instructor"
	Admin      UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"size:20;default:'student'" json:"role"`
	AvatarURL string    `gorm:"size:255" json:"avatarUrl"`
	Bio       string    `gorm:"type:text" json:"bio"`
	LastSeen  time.Time `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// UserUpdate is the set of fields an update request may change. Nil fields
// are left untouched.
type UserUpdate struct {
	Name      *string   `json:"name"`
	Email     *string   `json:"email"`
	Role      *UserRole `json:"role"`
	AvatarURL *string   `json:"avatarUrl"`
	Bio       *string   `json:"bio"`
	Password  *string   `json:"-"`
}

// Changes returns the column assignments for the fields that are set.
func (u UserUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if u.Name != nil {
		changes["name"] = *u.Name
	}
	if u.Email != nil {
		changes["email"] = *u.Email
	}
	if u.Role != nil {
		changes["role"] = *u.Role
	}
	if u.AvatarURL != nil {
		changes["avatar_url"] = *u.AvatarURL
	}
	if u.Bio != nil {
		changes["bio"] = *u.Bio
	}
	if u.Password != nil {
		changes["password"] = *u.Password
	}
	return changes
}
