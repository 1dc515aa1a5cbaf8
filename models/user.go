package models

import "time"

// DefaultProfilePhoto is used until the user uploads their own.
const DefaultProfilePhoto = "https://icon-library.com/images/default-profile-icon/default-profile-icon-16.jpg"

type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:255;unique;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialized
	UserPhoto string    `gorm:"size:500" json:"user_photo"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Forms []Form `gorm:"foreignKey:OwnerID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
