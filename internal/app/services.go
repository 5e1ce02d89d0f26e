package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/nivedu/courselink-backend/internal/data/cache"
	"github.com/nivedu/courselink-backend/internal/platform/logger"
	"github.com/nivedu/courselink-backend/internal/services"
)

type Services struct {
	Validator     services.ReferenceValidator
	CourseClasses services.CourseClassesService
	Assignment    services.AssignmentService
	Progress      services.ProgressService

	Cache cache.CourseClassCache
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	courseCache, err := cache.New(log, cfg.RedisAddr, cfg.CacheTTL)
	if err != nil {
		return Services{}, fmt.Errorf("init course-class cache: %w", err)
	}

	validator := services.NewReferenceValidator(log, reposet.Course, reposet.Class)
	courseClasses := services.NewCourseClassesService(log, reposet.Course, reposet.CourseClassLink, reposet.CourseClassRead, courseCache)
	assignment := services.NewAssignmentService(db, log, validator, reposet.CourseClassLink, courseClasses, courseCache)
	progress := services.NewProgressService(log, reposet.Course, reposet.Class, reposet.ClassProgress, reposet.TestResult, reposet.RankScore)

	return Services{
		Validator:     validator,
		CourseClasses: courseClasses,
		Assignment:    assignment,
		Progress:      progress,
		Cache:         courseCache,
	}, nil
}
