package catalog

import (
	"time"

	"github.com/google/uuid"
)

// ClassProgress is the external engagement signal consumed by the progress
// engine. Existence of a row for (class, user) counts as "engaged" regardless
// of completion depth.
type ClassProgress struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClassID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_class_user" json:"class_id"`
	UserID  string    `gorm:"column:user_id;not null;uniqueIndex:uniq_class_user" json:"user_id"`

	WatchedSeconds int  `gorm:"column:watched_seconds;not null;default:0" json:"watched_seconds"`
	Completed      bool `gorm:"column:completed;not null;default:false" json:"completed"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ClassProgress) TableName() string { return "class_progress" }
