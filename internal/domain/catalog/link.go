package catalog

import (
	"time"

	"github.com/google/uuid"
)

// CourseClassLink is the join row between a course and a class. Priority
// orders classes inside a course (lower = shown first). At most one link may
// exist per (course, class) pair; the composite unique index is the source of
// truth for that invariant.
type CourseClassLink struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_course_class;index" json:"course_id"`
	ClassID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_course_class" json:"class_id"`

	Priority int       `gorm:"column:priority;not null" json:"priority"`
	IsActive bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	AddedAt  time.Time `gorm:"column:added_at;not null;default:now()" json:"added_at"`

	Course *Course `gorm:"foreignKey:CourseID;references:ID" json:"course,omitempty"`
	Class  *Class  `gorm:"foreignKey:ClassID;references:ID" json:"class,omitempty"`
}

func (CourseClassLink) TableName() string { return "course_class_link" }
