package app

import (
	"gorm.io/gorm"

	"github.com/nivedu/courselink-backend/internal/data/repos"
	"github.com/nivedu/courselink-backend/internal/platform/logger"
)

type Repos struct {
	Course          repos.CourseRepo
	Class           repos.ClassRepo
	CourseClassLink repos.CourseClassLinkRepo
	CourseClassRead repos.CourseClassReadRepo
	TestResult      repos.TestResultRepo
	RankScore       repos.RankScoreRepo
	ClassProgress   repos.ClassProgressRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Course:          repos.NewCourseRepo(db, log),
		Class:           repos.NewClassRepo(db, log),
		CourseClassLink: repos.NewCourseClassLinkRepo(db, log),
		CourseClassRead: repos.NewCourseClassReadRepo(db, log),
		TestResult:      repos.NewTestResultRepo(db, log),
		RankScore:       repos.NewRankScoreRepo(db, log),
		ClassProgress:   repos.NewClassProgressRepo(db, log),
	}
}
