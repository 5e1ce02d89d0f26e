package domain

import (
	"github.com/nivedu/courselink-backend/internal/domain/catalog"
)

type MainCategory = catalog.MainCategory
type Category = catalog.Category
type Section = catalog.Section
type Topic = catalog.Topic

type Course = catalog.Course
type Class = catalog.Class
type CourseClassLink = catalog.CourseClassLink

type TestResult = catalog.TestResult
type RankScore = catalog.RankScore
type ClassProgress = catalog.ClassProgress

const (
	ClassStatusActive   = catalog.ClassStatusActive
	ClassStatusInactive = catalog.ClassStatusInactive
	ClassStatusDraft    = catalog.ClassStatusDraft

	LevelBeginner = catalog.LevelBeginner
	LevelMedium   = catalog.LevelMedium
	LevelAdvanced = catalog.LevelAdvanced
	LevelPro      = catalog.LevelPro
)
