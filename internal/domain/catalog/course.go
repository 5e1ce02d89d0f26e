package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Course struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	MainCategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"main_category_id"`
	CategoryID     uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	Title          string    `gorm:"column:title;not null" json:"title"`
	Description    string    `gorm:"column:description;type:text" json:"description"`
	Image          string    `gorm:"column:image" json:"image"`

	Metadata datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Course) TableName() string { return "course" }
