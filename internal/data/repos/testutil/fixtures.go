package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/nivedu/courselink-backend/internal/domain"
)

// Taxonomy bundles one row of each taxonomy level, wired together so a
// class seeded from it resolves names at every level.
type Taxonomy struct {
	MainCategory *types.MainCategory
	Category     *types.Category
	Section      *types.Section
	Topic        *types.Topic
}

func SeedTaxonomy(tb testing.TB, ctx context.Context, tx *gorm.DB, topicName string) Taxonomy {
	tb.Helper()
	mc := &types.MainCategory{ID: uuid.New(), Name: "Science"}
	if err := tx.WithContext(ctx).Create(mc).Error; err != nil {
		tb.Fatalf("seed main category: %v", err)
	}
	cat := &types.Category{ID: uuid.New(), MainCategoryID: mc.ID, Name: "Physics"}
	if err := tx.WithContext(ctx).Create(cat).Error; err != nil {
		tb.Fatalf("seed category: %v", err)
	}
	sec := &types.Section{ID: uuid.New(), CategoryID: cat.ID, Name: "Mechanics"}
	if err := tx.WithContext(ctx).Create(sec).Error; err != nil {
		tb.Fatalf("seed section: %v", err)
	}
	top := &types.Topic{ID: uuid.New(), SectionID: sec.ID, Name: topicName}
	if err := tx.WithContext(ctx).Create(top).Error; err != nil {
		tb.Fatalf("seed topic: %v", err)
	}
	return Taxonomy{MainCategory: mc, Category: cat, Section: sec, Topic: top}
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, tax Taxonomy, title string) *types.Course {
	tb.Helper()
	c := &types.Course{
		ID:             uuid.New(),
		MainCategoryID: tax.MainCategory.ID,
		CategoryID:     tax.Category.ID,
		Title:          title,
		Metadata:       datatypes.JSON([]byte("{}")),
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedClass(tb testing.TB, ctx context.Context, tx *gorm.DB, tax Taxonomy, title, status string) *types.Class {
	tb.Helper()
	cl := &types.Class{
		ID:             uuid.New(),
		MainCategoryID: tax.MainCategory.ID,
		CategoryID:     tax.Category.ID,
		SectionID:      PtrUUID(tax.Section.ID),
		TopicID:        PtrUUID(tax.Topic.ID),
		Title:          title,
		TeacherName:    "T. Teacher",
		Status:         status,
		Metadata:       datatypes.JSON([]byte("{}")),
	}
	if err := tx.WithContext(ctx).Create(cl).Error; err != nil {
		tb.Fatalf("seed class: %v", err)
	}
	return cl
}

func SeedLink(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID, classID uuid.UUID, priority int) *types.CourseClassLink {
	tb.Helper()
	l := &types.CourseClassLink{
		ID:       uuid.New(),
		CourseID: courseID,
		ClassID:  classID,
		Priority: priority,
		IsActive: true,
		AddedAt:  time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed link: %v", err)
	}
	return l
}

func SeedTestResult(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID uuid.UUID, userID string, accuracy float64) *types.TestResult {
	tb.Helper()
	r := &types.TestResult{
		ID:       uuid.New(),
		SeriesID: uuid.New(),
		CourseID: courseID,
		UserID:   userID,
		Accuracy: accuracy,
		Score:    accuracy,
		Details:  datatypes.JSON([]byte("{}")),
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed test result: %v", err)
	}
	return r
}

func SeedClassProgress(tb testing.TB, ctx context.Context, tx *gorm.DB, classID uuid.UUID, userID string) *types.ClassProgress {
	tb.Helper()
	p := &types.ClassProgress{
		ID:             uuid.New(),
		ClassID:        classID,
		UserID:         userID,
		WatchedSeconds: 60,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed class progress: %v", err)
	}
	return p
}

func SeedRankScore(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID uuid.UUID, userID string, rank float64) *types.RankScore {
	tb.Helper()
	r := &types.RankScore{
		ID:        uuid.New(),
		CourseID:  courseID,
		UserID:    userID,
		RankScore: rank,
		Level:     types.LevelBeginner,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed rank score: %v", err)
	}
	return r
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }

func PtrInt(v int) *int { return &v }
