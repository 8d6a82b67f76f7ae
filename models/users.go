package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:256;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:512;not null" json:"-"`
	Name         *string   `gorm:"size:150" json:"name"`
	Location     *string   `gorm:"size:200" json:"location"`
	Bio          *string   `gorm:"type:text" json:"bio"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries partial updates: only non-nil fields are
// written, so an absent key leaves the stored value alone.
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Bio      *string `json:"bio"`
}

type AuthResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}
