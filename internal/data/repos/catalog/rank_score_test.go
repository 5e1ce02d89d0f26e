package catalog_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/nivedu/courselink-backend/internal/data/repos/catalog"
	"github.com/nivedu/courselink-backend/internal/data/repos/testutil"
)

func TestRankScoreRepoRunningMax(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := catalog.NewRankScoreRepo(db, testutil.Logger(t))

	tax := testutil.SeedTaxonomy(t, ctx, tx, "Kinematics")
	course := testutil.SeedCourse(t, ctx, tx, tax, "Physics 101")
	userID := "user-ext-1"

	_, found, err := repo.MaxRankScore(ctx, tx, userID, course.ID)
	if err != nil {
		t.Fatalf("max on empty log: %v", err)
	}
	if found {
		t.Fatal("expected no rank rows yet")
	}

	testutil.SeedRankScore(t, ctx, tx, course.ID, userID, 55.5)
	testutil.SeedRankScore(t, ctx, tx, course.ID, userID, 72.25)
	testutil.SeedRankScore(t, ctx, tx, course.ID, userID, 61)

	max, found, err := repo.MaxRankScore(ctx, tx, userID, course.ID)
	if err != nil {
		t.Fatalf("max rank score: %v", err)
	}
	if !found {
		t.Fatal("expected rank rows")
	}
	if max != 72.25 {
		t.Fatalf("expected running max 72.25, got %v", max)
	}

	// other users and courses stay isolated
	testutil.SeedRankScore(t, ctx, tx, course.ID, "someone-else", 99)
	max, _, err = repo.MaxRankScore(ctx, tx, userID, course.ID)
	if err != nil {
		t.Fatalf("max rank score: %v", err)
	}
	if max != 72.25 {
		t.Fatalf("expected 72.25 after other user's row, got %v", max)
	}

	rows, err := repo.ListByUserAndCourse(ctx, tx, userID, course.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 log rows, got %d", len(rows))
	}

	_, found, err = repo.MaxRankScore(ctx, tx, userID, uuid.New())
	if err != nil {
		t.Fatalf("max for unknown course: %v", err)
	}
	if found {
		t.Fatal("expected no rows for unknown course")
	}
}
