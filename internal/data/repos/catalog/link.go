package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/nivedu/courselink-backend/internal/domain"
	"github.com/nivedu/courselink-backend/internal/platform/logger"
)

type CourseClassLinkRepo interface {
	Create(ctx context.Context, tx *gorm.DB, link *types.CourseClassLink) (*types.CourseClassLink, error)
	GetByCourseAndClass(ctx context.Context, tx *gorm.DB, courseID, classID uuid.UUID) (*types.CourseClassLink, error)
	ListByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.CourseClassLink, error)
	ListClassIDsByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]uuid.UUID, error)
	// MaxPriority returns the highest priority among the course's links, or 0
	// when the course has none.
	MaxPriority(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (int, error)
	// ActivePriorityTaken reports whether another active link of the course
	// already holds the given priority.
	ActivePriorityTaken(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, priority int, excludeClassID uuid.UUID) (bool, error)
	// SetPriority overwrites the priority of the (course, class) link and
	// reports whether such a link existed.
	SetPriority(ctx context.Context, tx *gorm.DB, courseID, classID uuid.UUID, priority int) (bool, error)
	SetActive(ctx context.Context, tx *gorm.DB, courseID, classID uuid.UUID, active bool) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, courseID, classID uuid.UUID) (bool, error)
	CountByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (int64, error)
}

type courseClassLinkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseClassLinkRepo(db *gorm.DB, baseLog *logger.Logger) CourseClassLinkRepo {
	repoLog := baseLog.With("repo", "CourseClassLinkRepo")
	return &courseClassLinkRepo{db: db, log: repoLog}
}

func (r *courseClassLinkRepo) Create(ctx context.Context, tx *gorm.DB, link *types.CourseClassLink) (*types.CourseClassLink, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

func (r *courseClassLinkRepo) GetByCourseAndClass(ctx context.Context, tx *gorm.DB, courseID, classID uuid.UUID) (*types.CourseClassLink, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var link types.CourseClassLink
	if err := transaction.WithContext(ctx).
		Where("course_id = ? AND class_id = ?", courseID, classID).
		First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (r *courseClassLinkRepo) ListByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.CourseClassLink, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CourseClassLink
	if err := transaction.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("priority ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseClassLinkRepo) ListClassIDsByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.CourseClassLink{}).
		Where("course_id = ?", courseID).
		Pluck("class_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *courseClassLinkRepo) MaxPriority(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var max *int
	if err := transaction.WithContext(ctx).
		Model(&types.CourseClassLink{}).
		Where("course_id = ?", courseID).
		Select("MAX(priority)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *courseClassLinkRepo) ActivePriorityTaken(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, priority int, excludeClassID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).
		Model(&types.CourseClassLink{}).
		Where("course_id = ? AND priority = ? AND is_active = ?", courseID, priority, true)
	if excludeClassID != uuid.Nil {
		q = q.Where("class_id <> ?", excludeClassID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *courseClassLinkRepo) SetPriority(ctx context.Context, tx *gorm.DB, courseID, classID uuid.UUID, priority int) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.CourseClassLink{}).
		Where("course_id = ? AND class_id = ?", courseID, classID).
		Update("priority", priority)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *courseClassLinkRepo) SetActive(ctx context.Context, tx *gorm.DB, courseID, classID uuid.UUID, active bool) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.CourseClassLink{}).
		Where("course_id = ? AND class_id = ?", courseID, classID).
		Update("is_active", active)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *courseClassLinkRepo) Delete(ctx context.Context, tx *gorm.DB, courseID, classID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Where("course_id = ? AND class_id = ?", courseID, classID).
		Delete(&types.CourseClassLink{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *courseClassLinkRepo) CountByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.CourseClassLink{}).
		Where("course_id = ?", courseID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
