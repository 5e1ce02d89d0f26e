package services_test

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/nivedu/courselink-backend/internal/data/repos"
	"github.com/nivedu/courselink-backend/internal/data/repos/testutil"
	types "github.com/nivedu/courselink-backend/internal/domain"
	platformErrors "github.com/nivedu/courselink-backend/internal/platform/errors"
	"github.com/nivedu/courselink-backend/internal/services"
)

func newProgressService(t *testing.T, tx *gorm.DB) (services.ProgressService, repos.RankScoreRepo) {
	t.Helper()
	log := testutil.Logger(t)

	courseRepo := repos.NewCourseRepo(tx, log)
	classRepo := repos.NewClassRepo(tx, log)
	progressRepo := repos.NewClassProgressRepo(tx, log)
	resultRepo := repos.NewTestResultRepo(tx, log)
	rankRepo := repos.NewRankScoreRepo(tx, log)

	return services.NewProgressService(log, courseRepo, classRepo, progressRepo, resultRepo, rankRepo), rankRepo
}

func TestComputeProgress(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc, rankRepo := newProgressService(t, tx)

	tax := testutil.SeedTaxonomy(t, ctx, tx, "Kinematics")
	course := testutil.SeedCourse(t, ctx, tx, tax, "Physics 101")
	userID := "user-ext-1"

	// 4 active matching classes, 1 draft that must not count
	c1 := testutil.SeedClass(t, ctx, tx, tax, "A", types.ClassStatusActive)
	c2 := testutil.SeedClass(t, ctx, tx, tax, "B", types.ClassStatusActive)
	testutil.SeedClass(t, ctx, tx, tax, "C", types.ClassStatusActive)
	testutil.SeedClass(t, ctx, tx, tax, "D", types.ClassStatusActive)
	testutil.SeedClass(t, ctx, tx, tax, "Draft", types.ClassStatusDraft)

	testutil.SeedClassProgress(t, ctx, tx, c1.ID, userID)
	testutil.SeedClassProgress(t, ctx, tx, c2.ID, userID)

	testutil.SeedTestResult(t, ctx, tx, course.ID, userID, 80)
	testutil.SeedTestResult(t, ctx, tx, course.ID, userID, 90)

	result, err := svc.ComputeProgress(ctx, course.ID.String(), userID)
	if err != nil {
		t.Fatalf("compute progress: %v", err)
	}

	if result.ProgressPercentage != 50 {
		t.Fatalf("expected progress 50, got %v", result.ProgressPercentage)
	}
	if result.Accuracy != 85 {
		t.Fatalf("expected accuracy 85, got %v", result.Accuracy)
	}
	// rank = 0.7*85 + 0.3*50 = 74.5; level = 0.9*85 + 0.1*50 = 81.5 → Advanced
	if result.BatchRank != 74.5 {
		t.Fatalf("expected batch rank 74.5, got %v", result.BatchRank)
	}
	if result.Level != types.LevelAdvanced {
		t.Fatalf("expected level Advanced, got %q", result.Level)
	}
	if result.CourseTitle != "Physics 101" {
		t.Fatalf("expected course title, got %q", result.CourseTitle)
	}

	// the computation appended one log row
	rows, err := rankRepo.ListByUserAndCourse(ctx, tx, userID, course.ID)
	if err != nil {
		t.Fatalf("list rank scores: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 appended rank row, got %d", len(rows))
	}
	if rows[0].RankScore != 74.5 {
		t.Fatalf("expected appended rank 74.5, got %v", rows[0].RankScore)
	}
}

func TestComputeProgressBatchRankIsRunningMax(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc, _ := newProgressService(t, tx)

	tax := testutil.SeedTaxonomy(t, ctx, tx, "Kinematics")
	course := testutil.SeedCourse(t, ctx, tx, tax, "Physics 101")
	userID := "user-ext-1"

	testutil.SeedClass(t, ctx, tx, tax, "A", types.ClassStatusActive)

	// an older, higher rank dominates the freshly computed one
	testutil.SeedRankScore(t, ctx, tx, course.ID, userID, 95)

	result, err := svc.ComputeProgress(ctx, course.ID.String(), userID)
	if err != nil {
		t.Fatalf("compute progress: %v", err)
	}
	if result.BatchRank != 95 {
		t.Fatalf("expected running max 95, got %v", result.BatchRank)
	}
}

func TestComputeProgressNoClassesNoResults(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc, _ := newProgressService(t, tx)

	tax := testutil.SeedTaxonomy(t, ctx, tx, "Kinematics")
	course := testutil.SeedCourse(t, ctx, tx, tax, "Physics 101")

	result, err := svc.ComputeProgress(ctx, course.ID.String(), "user-ext-1")
	if err != nil {
		t.Fatalf("compute progress: %v", err)
	}
	if result.ProgressPercentage != 0 || result.Accuracy != 0 {
		t.Fatalf("expected zeros, got %+v", result)
	}
	if result.Level != types.LevelBeginner {
		t.Fatalf("expected Beginner, got %q", result.Level)
	}
}

func TestComputeProgressValidation(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc, _ := newProgressService(t, tx)

	tax := testutil.SeedTaxonomy(t, ctx, tx, "Kinematics")
	course := testutil.SeedCourse(t, ctx, tx, tax, "Physics 101")

	if _, err := svc.ComputeProgress(ctx, course.ID.String(), ""); !errors.Is(err, platformErrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for missing user, got %v", err)
	}
	if _, err := svc.ComputeProgress(ctx, "nope", "user-ext-1"); !errors.Is(err, platformErrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for malformed course id, got %v", err)
	}
}

func TestComputeProgressMany(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc, _ := newProgressService(t, tx)

	userID := "user-ext-1"

	taxA := testutil.SeedTaxonomy(t, ctx, tx, "Kinematics")
	courseA := testutil.SeedCourse(t, ctx, tx, taxA, "Physics 101")
	a1 := testutil.SeedClass(t, ctx, tx, taxA, "A1", types.ClassStatusActive)
	testutil.SeedClass(t, ctx, tx, taxA, "A2", types.ClassStatusActive)

	taxB := testutil.SeedTaxonomy(t, ctx, tx, "Algebra")
	courseB := testutil.SeedCourse(t, ctx, tx, taxB, "Math 101")
	b1 := testutil.SeedClass(t, ctx, tx, taxB, "B1", types.ClassStatusActive)

	testutil.SeedClassProgress(t, ctx, tx, a1.ID, userID)
	testutil.SeedClassProgress(t, ctx, tx, b1.ID, userID)

	results, err := svc.ComputeProgressMany(ctx, []string{courseA.ID.String(), courseB.ID.String()}, userID)
	if err != nil {
		t.Fatalf("compute progress many: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	byCourse := map[string]float64{}
	for _, r := range results {
		byCourse[r.CourseID.String()] = r.ProgressPercentage
	}
	if byCourse[courseA.ID.String()] != 50 {
		t.Fatalf("expected 50 for course A, got %v", byCourse[courseA.ID.String()])
	}
	if byCourse[courseB.ID.String()] != 100 {
		t.Fatalf("expected 100 for course B, got %v", byCourse[courseB.ID.String()])
	}
}

func TestComputeProgressManyValidation(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc, _ := newProgressService(t, tx)

	if _, err := svc.ComputeProgressMany(ctx, nil, "user-ext-1"); !errors.Is(err, platformErrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for empty batch, got %v", err)
	}
	if _, err := svc.ComputeProgressMany(ctx, []string{"nope"}, "user-ext-1"); !errors.Is(err, platformErrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for malformed id, got %v", err)
	}
}
