package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/nivedu/courselink-backend/internal/domain"
	"github.com/nivedu/courselink-backend/internal/platform/logger"
)

// CourseClassRow is one flattened row of the link ⋈ class ⋈ taxonomy join.
// Taxonomy names are pointers: a missing side of a left join stays nil instead
// of dropping the class.
type CourseClassRow struct {
	LinkID   uuid.UUID `gorm:"column:link_id"`
	CourseID uuid.UUID `gorm:"column:course_id"`
	ClassID  uuid.UUID `gorm:"column:class_id"`
	Priority int       `gorm:"column:priority"`
	IsActive bool      `gorm:"column:is_active"`
	AddedAt  time.Time `gorm:"column:added_at"`

	ClassTitle     string    `gorm:"column:class_title"`
	TeacherName    string    `gorm:"column:teacher_name"`
	Image          string    `gorm:"column:image"`
	Status         string    `gorm:"column:status"`
	ClassCreatedAt time.Time `gorm:"column:class_created_at"`

	MainCategoryName *string `gorm:"column:main_category_name"`
	CategoryName     *string `gorm:"column:category_name"`
	SectionName      *string `gorm:"column:section_name"`
	TopicName        *string `gorm:"column:topic_name"`
}

const classRowSelect = `
	c.id AS class_id,
	c.title AS class_title,
	c.teacher_name,
	c.image,
	c.status,
	c.created_at AS class_created_at,
	mc.name AS main_category_name,
	cat.name AS category_name,
	s.name AS section_name,
	t.name AS topic_name`

type CourseClassReadRepo interface {
	// ListLinkedRows joins the course's links to classes and taxonomy. The
	// inner join to class silently drops links whose class no longer exists.
	ListLinkedRows(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]CourseClassRow, error)
	// ListAvailableRows returns classes not linked to the course, in the same
	// flattened shape (link fields zero-valued). activeOnly restricts to
	// status = 'active'.
	ListAvailableRows(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, activeOnly bool) ([]CourseClassRow, error)
}

type courseClassReadRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseClassReadRepo(db *gorm.DB, baseLog *logger.Logger) CourseClassReadRepo {
	repoLog := baseLog.With("repo", "CourseClassReadRepo")
	return &courseClassReadRepo{db: db, log: repoLog}
}

func (r *courseClassReadRepo) ListLinkedRows(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]CourseClassRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var rows []CourseClassRow
	if err := transaction.WithContext(ctx).
		Table("course_class_link AS l").
		Select(`l.id AS link_id, l.course_id, l.priority, l.is_active, l.added_at,`+classRowSelect).
		Joins("JOIN class c ON c.id = l.class_id").
		Joins("LEFT JOIN main_category mc ON mc.id = c.main_category_id").
		Joins("LEFT JOIN category cat ON cat.id = c.category_id").
		Joins("LEFT JOIN section s ON s.id = c.section_id").
		Joins("LEFT JOIN topic t ON t.id = c.topic_id").
		Where("l.course_id = ?", courseID).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *courseClassReadRepo) ListAvailableRows(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, activeOnly bool) ([]CourseClassRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	linked := transaction.WithContext(ctx).
		Model(&types.CourseClassLink{}).
		Select("class_id").
		Where("course_id = ?", courseID)

	q := transaction.WithContext(ctx).
		Table("class AS c").
		Select(classRowSelect).
		Joins("LEFT JOIN main_category mc ON mc.id = c.main_category_id").
		Joins("LEFT JOIN category cat ON cat.id = c.category_id").
		Joins("LEFT JOIN section s ON s.id = c.section_id").
		Joins("LEFT JOIN topic t ON t.id = c.topic_id").
		Where("c.id NOT IN (?)", linked)
	if activeOnly {
		q = q.Where("c.status = ?", types.ClassStatusActive)
	}

	var rows []CourseClassRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
