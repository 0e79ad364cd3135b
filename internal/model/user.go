package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account that owns categories and events.
type User struct {
	ID           uuid.UUID `json:"_id" gorm:"type:char(36);primaryKey"`
	DisplayName  string    `json:"displayName" gorm:"size:255;not null"`
	TimeZone     string    `json:"timeZone" gorm:"size:64;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Verified     bool      `json:"verified" gorm:"default:false"`
	Code         int       `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserInfo is the public projection of a User carried in session tokens and responses.
type UserInfo struct {
	ID          uuid.UUID `json:"_id"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
}

// Info returns the public projection of u.
func (u *User) Info() UserInfo {
	return UserInfo{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
	}
}
