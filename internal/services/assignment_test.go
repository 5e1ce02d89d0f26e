package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nivedu/courselink-backend/internal/data/cache"
	"github.com/nivedu/courselink-backend/internal/data/repos"
	"github.com/nivedu/courselink-backend/internal/data/repos/testutil"
	types "github.com/nivedu/courselink-backend/internal/domain"
	platformErrors "github.com/nivedu/courselink-backend/internal/platform/errors"
	"github.com/nivedu/courselink-backend/internal/services"
)

func newAssignmentService(t *testing.T, tx *gorm.DB) (services.AssignmentService, services.CourseClassesService) {
	t.Helper()
	log := testutil.Logger(t)

	courseRepo := repos.NewCourseRepo(tx, log)
	classRepo := repos.NewClassRepo(tx, log)
	linkRepo := repos.NewCourseClassLinkRepo(tx, log)
	readRepo := repos.NewCourseClassReadRepo(tx, log)

	noop, err := cache.New(log, "", time.Minute)
	if err != nil {
		t.Fatalf("init noop cache: %v", err)
	}

	validator := services.NewReferenceValidator(log, courseRepo, classRepo)
	readSvc := services.NewCourseClassesService(log, courseRepo, linkRepo, readRepo, noop)
	return services.NewAssignmentService(tx, log, validator, linkRepo, readSvc, noop), readSvc
}

func TestAssignDefaultPriority(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc, _ := newAssignmentService(t, tx)

	tax := testutil.SeedTaxonomy(t, ctx, tx, "Kinematics")
	course := testutil.SeedCourse(t, ctx, tx, tax, "Physics 101")
	c1 := testutil.SeedClass(t, ctx, tx, tax, "A", types.ClassStatusActive)
	c2 := testutil.SeedClass(t, ctx, tx, tax, "B", types.ClassStatusActive)

	first, err := svc.Assign(ctx, course.ID.String(), c1.ID.String(), nil)
	if err != nil {
		t.Fatalf("assign first: %v", err)
	}
	if first.Priority != 1 {
		t.Fatalf("expected first link priority 1, got %d", first.Priority)
	}
	if !first.IsActive {
		t.Fatal("expected new link to be active")
	}

	second, err := svc.Assign(ctx, course.ID.String(), c2.ID.String(), nil)
	if err != nil {
		t.Fatalf("assign second: %v", err)
	}
	if second.Priority != 2 {
		t.Fatalf("expected second link priority 2, got %d", second.Priority)
	}
}

func TestAssignDuplicateConflict(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc, _ := newAssignmentService(t, tx)

	tax := testutil.SeedTaxonomy(t, ctx, tx, "Kinematics")
	course := testutil.SeedCourse(t, ctx, tx, tax, "Physics 101")
	class := testutil.SeedClass(t, ctx, tx, tax, "A", types.ClassStatusActive)

	if _, err := svc.Assign(ctx, course.ID.String(), class.ID.String(), nil); err != nil {
		t.Fatalf("assign: %v", err)
	}
	_, err := svc.Assign(ctx, course.ID.String(), class.ID.String(), nil)
	if !errors.Is(err, platformErrors.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestAssignPriorityCollisionBumps(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc, _ := newAssignmentService(t, tx)

	tax := testutil.SeedTaxonomy(t, ctx, tx, "Kinematics")
	course := testutil.SeedCourse(t, ctx, tx, tax, "Physics 101")
	c1 := testutil.SeedClass(t, ctx, tx, tax, "A", types.ClassStatusActive)
	c2 := testutil.SeedClass(t, ctx, tx, tax, "B", types.ClassStatusActive)
	c3 := testutil.SeedClass(t, ctx, tx, tax, "C", types.ClassStatusActive)

	if _, err := svc.Assign(ctx, course.ID.String(), c1.ID.String(), testutil.PtrInt(1)); err != nil {
		t.Fatalf("assign c1: %v", err)
	}
	if _, err := svc.Assign(ctx, course.ID.String(), c2.ID.String(), testutil.PtrInt(5)); err != nil {
		t.Fatalf("assign c2: %v", err)
	}

	// priority 1 is taken by an active link, so the new link lands at max+1
	bumped, err := svc.Assign(ctx, course.ID.String(), c3.ID.String(), testutil.PtrInt(1))
	if err != nil {
		t.Fatalf("assign c3: %v", err)
	}
	if bumped.Priority != 6 {
		t.Fatalf("expected bumped priority 6, got %d", bumped.Priority)
	}

	// the original holder keeps its slot
	link, err := repos.NewCourseClassLinkRepo(tx, testutil.Logger(t)).GetByCourseAndClass(ctx, tx, course.ID, c1.ID)
	if err != nil {
		t.Fatalf("get holder link: %v", err)
	}
	if link.Priority != 1 {
		t.Fatalf("expected holder to keep priority 1, got %d", link.Priority)
	}
}

func TestAssignValidation(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc, _ := newAssignmentService(t, tx)

	tax := testutil.SeedTaxonomy(t, ctx, tx, "Kinematics")
	course := testutil.SeedCourse(t, ctx, tx, tax, "Physics 101")
	class := testutil.SeedClass(t, ctx, tx, tax, "A", types.ClassStatusActive)

	if _, err := svc.Assign(ctx, "not-a-uuid", class.ID.String(), nil); !errors.Is(err, platformErrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for malformed course id, got %v", err)
	}
	if _, err := svc.Assign(ctx, uuid.NewString(), class.ID.String(), nil); !errors.Is(err, platformErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown course, got %v", err)
	}
	if _, err := svc.Assign(ctx, course.ID.String(), uuid.NewString(), nil); !errors.Is(err, platformErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown class, got %v", err)
	}
	if _, err := svc.Assign(ctx, course.ID.String(), class.ID.String(), testutil.PtrInt(0)); !errors.Is(err, platformErrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for priority 0, got %v", err)
	}
}

func TestUpdatePriorityNotAssigned(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc, _ := newAssignmentService(t, tx)

	tax := testutil.SeedTaxonomy(t, ctx, tx, "Kinematics")
	course := testutil.SeedCourse(t, ctx, tx, tax, "Physics 101")
	class := testutil.SeedClass(t, ctx, tx, tax, "A", types.ClassStatusActive)

	_, err := svc.UpdatePriority(ctx, course.ID.String(), class.ID.String(), 3)
	if !errors.Is(err, platformErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestToggleActive(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc, _ := newAssignmentService(t, tx)

	tax := testutil.SeedTaxonomy(t, ctx, tx, "Kinematics")
	course := testutil.SeedCourse(t, ctx, tx, tax, "Physics 101")
	class := testutil.SeedClass(t, ctx, tx, tax, "A", types.ClassStatusActive)
	testutil.SeedLink(t, ctx, tx, course.ID, class.ID, 1)

	link, err := svc.ToggleActive(ctx, course.ID.String(), class.ID.String())
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if link.IsActive {
		t.Fatal("expected link to become inactive")
	}

	link, err = svc.ToggleActive(ctx, course.ID.String(), class.ID.String())
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if !link.IsActive {
		t.Fatal("expected link to become active again")
	}
}

func TestUnassign(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc, _ := newAssignmentService(t, tx)

	tax := testutil.SeedTaxonomy(t, ctx, tx, "Kinematics")
	course := testutil.SeedCourse(t, ctx, tx, tax, "Physics 101")
	class := testutil.SeedClass(t, ctx, tx, tax, "A", types.ClassStatusActive)
	testutil.SeedLink(t, ctx, tx, course.ID, class.ID, 4)

	removed, err := svc.Unassign(ctx, course.ID.String(), class.ID.String())
	if err != nil {
		t.Fatalf("unassign: %v", err)
	}
	if removed.Priority != 4 {
		t.Fatalf("expected removed link to carry priority 4, got %d", removed.Priority)
	}

	_, err = svc.Unassign(ctx, course.ID.String(), class.ID.String())
	if !errors.Is(err, platformErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second unassign, got %v", err)
	}
}

func TestReorderAppliesBatch(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc, _ := newAssignmentService(t, tx)

	tax := testutil.SeedTaxonomy(t, ctx, tx, "Kinematics")
	course := testutil.SeedCourse(t, ctx, tx, tax, "Physics 101")
	c1 := testutil.SeedClass(t, ctx, tx, tax, "A", types.ClassStatusActive)
	c2 := testutil.SeedClass(t, ctx, tx, tax, "B", types.ClassStatusActive)
	testutil.SeedLink(t, ctx, tx, course.ID, c1.ID, 1)
	testutil.SeedLink(t, ctx, tx, course.ID, c2.ID, 2)

	view, err := svc.Reorder(ctx, course.ID.String(), []services.ReorderEntry{
		{ClassID: c1.ID.String(), Priority: 2},
		{ClassID: c2.ID.String(), Priority: 1},
	})
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if view == nil || view.Course == nil || view.Course.ID != course.ID {
		t.Fatalf("expected refreshed view for course %s", course.ID)
	}

	linkRepo := repos.NewCourseClassLinkRepo(tx, testutil.Logger(t))
	l1, _ := linkRepo.GetByCourseAndClass(ctx, tx, course.ID, c1.ID)
	l2, _ := linkRepo.GetByCourseAndClass(ctx, tx, course.ID, c2.ID)
	if l1.Priority != 2 || l2.Priority != 1 {
		t.Fatalf("expected swapped priorities, got %d and %d", l1.Priority, l2.Priority)
	}
}

func TestReorderRollsBackOnUnknownClass(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc, _ := newAssignmentService(t, tx)

	tax := testutil.SeedTaxonomy(t, ctx, tx, "Kinematics")
	course := testutil.SeedCourse(t, ctx, tx, tax, "Physics 101")
	c1 := testutil.SeedClass(t, ctx, tx, tax, "A", types.ClassStatusActive)
	testutil.SeedLink(t, ctx, tx, course.ID, c1.ID, 1)

	_, err := svc.Reorder(ctx, course.ID.String(), []services.ReorderEntry{
		{ClassID: c1.ID.String(), Priority: 5},
		{ClassID: uuid.NewString(), Priority: 6},
	})
	if !errors.Is(err, platformErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// the valid entry must not have been applied
	link, err := repos.NewCourseClassLinkRepo(tx, testutil.Logger(t)).GetByCourseAndClass(ctx, tx, course.ID, c1.ID)
	if err != nil {
		t.Fatalf("get link: %v", err)
	}
	if link.Priority != 1 {
		t.Fatalf("expected priority untouched at 1, got %d", link.Priority)
	}
}

func TestReorderRejectsEmptyBatch(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc, _ := newAssignmentService(t, tx)

	tax := testutil.SeedTaxonomy(t, ctx, tx, "Kinematics")
	course := testutil.SeedCourse(t, ctx, tx, tax, "Physics 101")

	_, err := svc.Reorder(ctx, course.ID.String(), nil)
	if !errors.Is(err, platformErrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
