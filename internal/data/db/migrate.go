package db

import (
	types "github.com/nivedu/courselink-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Taxonomy
		&types.MainCategory{},
		&types.Category{},
		&types.Section{},
		&types.Topic{},

		// Catalog
		&types.Course{},
		&types.Class{},
		&types.CourseClassLink{},

		// Results + analytics
		&types.TestResult{},
		&types.RankScore{},
		&types.ClassProgress{},
	)
}
