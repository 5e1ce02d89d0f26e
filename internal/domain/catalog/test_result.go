package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TestResult is one attempt of one series by one user inside a course.
// Multiple rows per (user, course) are expected, one per series; course-level
// accuracy is the mean over all of them.
type TestResult struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SeriesID uuid.UUID `gorm:"type:uuid;not null;index" json:"series_id"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	// UserID comes from the external identity service and is opaque here.
	UserID string `gorm:"column:user_id;not null;index" json:"user_id"`

	Accuracy     float64 `gorm:"column:accuracy;not null" json:"accuracy"`
	Score        float64 `gorm:"column:score;not null" json:"score"`
	TimeTakenSec int     `gorm:"column:time_taken_sec" json:"time_taken_sec"`

	Details datatypes.JSON `gorm:"column:details;type:jsonb" json:"details"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (TestResult) TableName() string { return "test_result" }
