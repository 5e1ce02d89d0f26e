package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ClassStatusActive   = "active"
	ClassStatusInactive = "inactive"
	ClassStatusDraft    = "draft"
)

type Class struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	MainCategoryID uuid.UUID  `gorm:"type:uuid;not null;index" json:"main_category_id"`
	CategoryID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"category_id"`
	SectionID      *uuid.UUID `gorm:"type:uuid;index" json:"section_id,omitempty"`
	TopicID        *uuid.UUID `gorm:"type:uuid;index" json:"topic_id,omitempty"`

	Title       string `gorm:"column:title;not null" json:"title"`
	TeacherName string `gorm:"column:teacher_name" json:"teacher_name"`
	Image       string `gorm:"column:image" json:"image"`
	Status      string `gorm:"column:status;not null;default:'draft';index" json:"status"`

	Metadata datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Class) TableName() string { return "class" }
