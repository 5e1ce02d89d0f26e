package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/nivedu/courselink-backend/internal/domain"
	"github.com/nivedu/courselink-backend/internal/platform/logger"
)

type TestResultRepo interface {
	Create(ctx context.Context, tx *gorm.DB, results []*types.TestResult) ([]*types.TestResult, error)
	ListByUserAndCourse(ctx context.Context, tx *gorm.DB, userID string, courseID uuid.UUID) ([]*types.TestResult, error)
}

type testResultRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTestResultRepo(db *gorm.DB, baseLog *logger.Logger) TestResultRepo {
	repoLog := baseLog.With("repo", "TestResultRepo")
	return &testResultRepo{db: db, log: repoLog}
}

func (r *testResultRepo) Create(ctx context.Context, tx *gorm.DB, results []*types.TestResult) ([]*types.TestResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(results) == 0 {
		return []*types.TestResult{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *testResultRepo) ListByUserAndCourse(ctx context.Context, tx *gorm.DB, userID string, courseID uuid.UUID) ([]*types.TestResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.TestResult
	if userID == "" {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
