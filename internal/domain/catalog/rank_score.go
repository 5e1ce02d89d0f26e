package catalog

import (
	"time"

	"github.com/google/uuid"
)

const (
	LevelBeginner = "Beginner"
	LevelMedium   = "Medium"
	LevelAdvanced = "Advanced"
	LevelPro      = "Pro"
)

// RankScore is an append-only log. Rows are never updated in place; the
// "current" rank for a (user, course) pair is the maximum rank_score over the
// log, not the latest row.
type RankScore struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;index:idx_rank_user_course" json:"course_id"`
	UserID   string    `gorm:"column:user_id;not null;index:idx_rank_user_course" json:"user_id"`

	RankScore  float64 `gorm:"column:rank_score;not null" json:"rank_score"`
	LevelScore float64 `gorm:"column:level_score;not null" json:"level_score"`
	Level      string  `gorm:"column:level;not null" json:"level"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (RankScore) TableName() string { return "rank_score" }
