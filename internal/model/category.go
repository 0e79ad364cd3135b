package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a user-defined activity type. A start category opens an activity
// window, the others close one. Names are not unique.
type Category struct {
	ID        uuid.UUID `json:"_id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"-" gorm:"type:char(36);not null;index"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Start     bool      `json:"start" gorm:"not null;default:false"`
	Code      string    `json:"code,omitempty" gorm:"size:255"`
	Context   string    `json:"context,omitempty" gorm:"size:1024"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
