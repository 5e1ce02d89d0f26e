package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nivedu/courselink-backend/internal/data/repos"
	platformErrors "github.com/nivedu/courselink-backend/internal/platform/errors"
	"github.com/nivedu/courselink-backend/internal/platform/logger"
)

type Collection string

const (
	CollectionCourse Collection = "course"
	CollectionClass  Collection = "class"
)

// ReferenceValidator confirms that an id is well-formed and that the
// referenced entity exists. It fails closed: a malformed id reports
// ErrInvalidArgument, a well-formed but unknown id reports ErrNotFound, so
// callers can short-circuit with 400 or 404 respectively before any mutation.
type ReferenceValidator interface {
	Validate(ctx context.Context, tx *gorm.DB, collection Collection, rawID string) (uuid.UUID, error)
}

type referenceValidator struct {
	log        *logger.Logger
	courseRepo repos.CourseRepo
	classRepo  repos.ClassRepo
}

func NewReferenceValidator(baseLog *logger.Logger, courseRepo repos.CourseRepo, classRepo repos.ClassRepo) ReferenceValidator {
	return &referenceValidator{
		log:        baseLog.With("service", "ReferenceValidator"),
		courseRepo: courseRepo,
		classRepo:  classRepo,
	}
}

func (v *referenceValidator) Validate(ctx context.Context, tx *gorm.DB, collection Collection, rawID string) (uuid.UUID, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed %s id %q: %w", collection, rawID, platformErrors.ErrInvalidArgument)
	}

	var exists bool
	switch collection {
	case CollectionCourse:
		exists, err = v.courseRepo.Exists(ctx, tx, id)
	case CollectionClass:
		exists, err = v.classRepo.Exists(ctx, tx, id)
	default:
		return uuid.Nil, fmt.Errorf("unknown collection %q: %w", collection, platformErrors.ErrInvalidArgument)
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("check %s %s: %w", collection, id, err)
	}
	if !exists {
		return uuid.Nil, fmt.Errorf("%s %s: %w", collection, id, platformErrors.ErrNotFound)
	}
	return id, nil
}
