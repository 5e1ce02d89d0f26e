package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nivedu/courselink-backend/internal/data/cache"
	"github.com/nivedu/courselink-backend/internal/data/repos"
	types "github.com/nivedu/courselink-backend/internal/domain"
	platformErrors "github.com/nivedu/courselink-backend/internal/platform/errors"
	"github.com/nivedu/courselink-backend/internal/platform/logger"
)

type ReorderEntry struct {
	ClassID  string `json:"class_id" binding:"required"`
	Priority int    `json:"priority" binding:"required"`
}

type AssignmentService interface {
	// Assign links a class to a course. With no explicit priority the link
	// gets max(existing)+1. An explicit priority colliding with another
	// active link of the course is replaced by max(existing)+1 for the new
	// link (the existing one keeps its slot).
	Assign(ctx context.Context, courseIDRaw, classIDRaw string, priority *int) (*types.CourseClassLink, error)
	// UpdatePriority overwrites one link's priority in place. No collision
	// resolution is reapplied; a temporary duplicate is allowed until the
	// next reorder.
	UpdatePriority(ctx context.Context, courseIDRaw, classIDRaw string, priority int) (*types.CourseClassLink, error)
	Unassign(ctx context.Context, courseIDRaw, classIDRaw string) (*types.CourseClassLink, error)
	ToggleActive(ctx context.Context, courseIDRaw, classIDRaw string) (*types.CourseClassLink, error)
	// Reorder rewrites the priorities of a batch of links inside a single
	// transaction. Any failing entry aborts the whole batch; on success the
	// refreshed grouped read is returned.
	Reorder(ctx context.Context, courseIDRaw string, entries []ReorderEntry) (*CourseClassesView, error)
}

type assignmentService struct {
	db        *gorm.DB
	log       *logger.Logger
	validator ReferenceValidator
	linkRepo  repos.CourseClassLinkRepo
	readSvc   CourseClassesService
	cache     cache.CourseClassCache
}

func NewAssignmentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	validator ReferenceValidator,
	linkRepo repos.CourseClassLinkRepo,
	readSvc CourseClassesService,
	courseCache cache.CourseClassCache,
) AssignmentService {
	return &assignmentService{
		db:        db,
		log:       baseLog.With("service", "AssignmentService"),
		validator: validator,
		linkRepo:  linkRepo,
		readSvc:   readSvc,
		cache:     courseCache,
	}
}

func (s *assignmentService) Assign(ctx context.Context, courseIDRaw, classIDRaw string, priority *int) (*types.CourseClassLink, error) {
	courseID, err := s.validator.Validate(ctx, nil, CollectionCourse, courseIDRaw)
	if err != nil {
		return nil, err
	}
	classID, err := s.validator.Validate(ctx, nil, CollectionClass, classIDRaw)
	if err != nil {
		return nil, err
	}
	if priority != nil && *priority < 1 {
		return nil, fmt.Errorf("priority must be >= 1: %w", platformErrors.ErrInvalidArgument)
	}

	existing, err := s.linkRepo.GetByCourseAndClass(ctx, nil, courseID, classID)
	if err != nil {
		return nil, fmt.Errorf("check existing link: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("class already assigned to this course: %w", platformErrors.ErrConflict)
	}

	maxPriority, err := s.linkRepo.MaxPriority(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("resolve max priority: %w", err)
	}

	// Read-then-write without a lock: two concurrent assigns to the same
	// course can both observe the same max and pick the same bumped value.
	// Accepted as best-effort; the next reorder repairs it.
	resolved := maxPriority + 1
	if priority != nil {
		resolved = *priority
		taken, err := s.linkRepo.ActivePriorityTaken(ctx, nil, courseID, resolved, uuid.Nil)
		if err != nil {
			return nil, fmt.Errorf("check priority collision: %w", err)
		}
		if taken {
			s.log.Info("priority collision on assign, bumping past max",
				"course_id", courseID, "class_id", classID,
				"requested", resolved, "resolved", maxPriority+1)
			resolved = maxPriority + 1
		}
	}

	link := &types.CourseClassLink{
		ID:       uuid.New(),
		CourseID: courseID,
		ClassID:  classID,
		Priority: resolved,
		IsActive: true,
		AddedAt:  time.Now(),
	}
	if _, err := s.linkRepo.Create(ctx, nil, link); err != nil {
		return nil, fmt.Errorf("create link: %w", err)
	}

	s.cache.Invalidate(ctx, courseID)
	return link, nil
}

func (s *assignmentService) UpdatePriority(ctx context.Context, courseIDRaw, classIDRaw string, priority int) (*types.CourseClassLink, error) {
	courseID, classID, err := parseLinkIDs(courseIDRaw, classIDRaw)
	if err != nil {
		return nil, err
	}
	if priority < 1 {
		return nil, fmt.Errorf("priority must be >= 1: %w", platformErrors.ErrInvalidArgument)
	}

	found, err := s.linkRepo.SetPriority(ctx, nil, courseID, classID, priority)
	if err != nil {
		return nil, fmt.Errorf("set priority: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("class is not assigned to this course: %w", platformErrors.ErrNotFound)
	}

	s.cache.Invalidate(ctx, courseID)
	return s.linkRepo.GetByCourseAndClass(ctx, nil, courseID, classID)
}

func (s *assignmentService) Unassign(ctx context.Context, courseIDRaw, classIDRaw string) (*types.CourseClassLink, error) {
	courseID, classID, err := parseLinkIDs(courseIDRaw, classIDRaw)
	if err != nil {
		return nil, err
	}

	link, err := s.linkRepo.GetByCourseAndClass(ctx, nil, courseID, classID)
	if err != nil {
		return nil, fmt.Errorf("load link: %w", err)
	}
	if link == nil {
		return nil, fmt.Errorf("class is not assigned to this course: %w", platformErrors.ErrNotFound)
	}

	if _, err := s.linkRepo.Delete(ctx, nil, courseID, classID); err != nil {
		return nil, fmt.Errorf("delete link: %w", err)
	}

	s.cache.Invalidate(ctx, courseID)
	return link, nil
}

func (s *assignmentService) ToggleActive(ctx context.Context, courseIDRaw, classIDRaw string) (*types.CourseClassLink, error) {
	courseID, classID, err := parseLinkIDs(courseIDRaw, classIDRaw)
	if err != nil {
		return nil, err
	}

	link, err := s.linkRepo.GetByCourseAndClass(ctx, nil, courseID, classID)
	if err != nil {
		return nil, fmt.Errorf("load link: %w", err)
	}
	if link == nil {
		return nil, fmt.Errorf("class is not assigned to this course: %w", platformErrors.ErrNotFound)
	}

	if _, err := s.linkRepo.SetActive(ctx, nil, courseID, classID, !link.IsActive); err != nil {
		return nil, fmt.Errorf("toggle link: %w", err)
	}
	link.IsActive = !link.IsActive

	s.cache.Invalidate(ctx, courseID)
	return link, nil
}

func (s *assignmentService) Reorder(ctx context.Context, courseIDRaw string, entries []ReorderEntry) (*CourseClassesView, error) {
	courseID, err := s.validator.Validate(ctx, nil, CollectionCourse, courseIDRaw)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("at least one reorder entry is required: %w", platformErrors.ErrInvalidArgument)
	}

	type parsedEntry struct {
		classID  uuid.UUID
		priority int
	}
	parsed := make([]parsedEntry, 0, len(entries))
	for _, e := range entries {
		classID, err := uuid.Parse(e.ClassID)
		if err != nil {
			return nil, fmt.Errorf("malformed class id %q: %w", e.ClassID, platformErrors.ErrInvalidArgument)
		}
		if e.Priority < 1 {
			return nil, fmt.Errorf("priority must be >= 1 for class %s: %w", e.ClassID, platformErrors.ErrInvalidArgument)
		}
		parsed = append(parsed, parsedEntry{classID: classID, priority: e.Priority})
	}

	// All-or-nothing: a reader must never observe a half-applied batch, and
	// a failure must leave every priority exactly as it was.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range parsed {
			found, err := s.linkRepo.SetPriority(ctx, tx, courseID, e.classID, e.priority)
			if err != nil {
				return fmt.Errorf("set priority for class %s: %w", e.classID, err)
			}
			if !found {
				return fmt.Errorf("class %s is not assigned to this course: %w", e.classID, platformErrors.ErrNotFound)
			}
		}
		return nil
	})
	if err != nil {
		s.log.Warn("reorder aborted, batch rolled back", "course_id", courseID, "error", err)
		return nil, err
	}

	s.cache.Invalidate(ctx, courseID)
	return s.readSvc.ClassesForCourse(ctx, courseIDRaw)
}

func parseLinkIDs(courseIDRaw, classIDRaw string) (uuid.UUID, uuid.UUID, error) {
	courseID, err := uuid.Parse(courseIDRaw)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("malformed course id %q: %w", courseIDRaw, platformErrors.ErrInvalidArgument)
	}
	classID, err := uuid.Parse(classIDRaw)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("malformed class id %q: %w", classIDRaw, platformErrors.ErrInvalidArgument)
	}
	return courseID, classID, nil
}
