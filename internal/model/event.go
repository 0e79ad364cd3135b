package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event is a recorded occurrence of a category. Consecutive submissions of the
// same category are folded into one Event by incrementing Count.
type Event struct {
	ID         uuid.UUID `json:"_id" gorm:"type:char(36);primaryKey"`
	UserID     uuid.UUID `json:"-" gorm:"type:char(36);not null;index:idx_events_user_updated,priority:1"`
	CategoryID uuid.UUID `json:"category" gorm:"type:char(36);not null;index"`
	Count      int       `json:"count" gorm:"not null;default:1"`
	CreatedAt  time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt  time.Time `json:"updatedAt" gorm:"index:idx_events_user_updated,priority:2"`
}

// BeforeCreate sets UUID before creating the record.
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Count < 1 {
		e.Count = 1
	}
	return nil
}

// EventFilter selects a user's events. Nil bounds and an empty category set impose no restriction.
type EventFilter struct {
	Begin      *time.Time
	End        *time.Time
	IDs        []uuid.UUID
	Categories []uuid.UUID
}

// Page is an offset/limit window over a result set.
type Page struct {
	Offset int
	Limit  int
}
