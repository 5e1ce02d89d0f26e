package repos

import (
	"gorm.io/gorm"

	"github.com/nivedu/courselink-backend/internal/data/repos/catalog"
	"github.com/nivedu/courselink-backend/internal/platform/logger"
)

type CourseRepo = catalog.CourseRepo
type ClassRepo = catalog.ClassRepo
type CourseClassLinkRepo = catalog.CourseClassLinkRepo
type CourseClassReadRepo = catalog.CourseClassReadRepo
type TestResultRepo = catalog.TestResultRepo
type RankScoreRepo = catalog.RankScoreRepo
type ClassProgressRepo = catalog.ClassProgressRepo

type CourseClassRow = catalog.CourseClassRow
type CategoryPair = catalog.CategoryPair

func NewCourseRepo(db *gorm.DB, log *logger.Logger) CourseRepo {
	return catalog.NewCourseRepo(db, log)
}
func NewClassRepo(db *gorm.DB, log *logger.Logger) ClassRepo {
	return catalog.NewClassRepo(db, log)
}
func NewCourseClassLinkRepo(db *gorm.DB, log *logger.Logger) CourseClassLinkRepo {
	return catalog.NewCourseClassLinkRepo(db, log)
}
func NewCourseClassReadRepo(db *gorm.DB, log *logger.Logger) CourseClassReadRepo {
	return catalog.NewCourseClassReadRepo(db, log)
}
func NewTestResultRepo(db *gorm.DB, log *logger.Logger) TestResultRepo {
	return catalog.NewTestResultRepo(db, log)
}
func NewRankScoreRepo(db *gorm.DB, log *logger.Logger) RankScoreRepo {
	return catalog.NewRankScoreRepo(db, log)
}
func NewClassProgressRepo(db *gorm.DB, log *logger.Logger) ClassProgressRepo {
	return catalog.NewClassProgressRepo(db, log)
}
