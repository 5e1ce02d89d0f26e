package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/nivedu/courselink-backend/internal/domain"
	"github.com/nivedu/courselink-backend/internal/platform/logger"
)

type ClassRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, classID uuid.UUID) (*types.Class, error)
	Exists(ctx context.Context, tx *gorm.DB, classID uuid.UUID) (bool, error)
	// ListActiveByCategory returns active classes matching both the main
	// category and the category exactly. The progress engine derives course
	// membership from this match, not from the link table.
	ListActiveByCategory(ctx context.Context, tx *gorm.DB, mainCategoryID, categoryID uuid.UUID) ([]*types.Class, error)
	// ListActiveByCategoryPairs is the batch form: active classes matching
	// any of the given (main category, category) pairs, in one query.
	ListActiveByCategoryPairs(ctx context.Context, tx *gorm.DB, pairs []CategoryPair) ([]*types.Class, error)
	CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
}

type CategoryPair struct {
	MainCategoryID uuid.UUID
	CategoryID     uuid.UUID
}

type classRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClassRepo(db *gorm.DB, baseLog *logger.Logger) ClassRepo {
	repoLog := baseLog.With("repo", "ClassRepo")
	return &classRepo{db: db, log: repoLog}
}

func (r *classRepo) GetByID(ctx context.Context, tx *gorm.DB, classID uuid.UUID) (*types.Class, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var class types.Class
	if err := transaction.WithContext(ctx).
		Where("id = ?", classID).
		First(&class).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &class, nil
}

func (r *classRepo) Exists(ctx context.Context, tx *gorm.DB, classID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Class{}).
		Where("id = ?", classID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *classRepo) ListActiveByCategory(ctx context.Context, tx *gorm.DB, mainCategoryID, categoryID uuid.UUID) ([]*types.Class, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Class
	if err := transaction.WithContext(ctx).
		Where("main_category_id = ? AND category_id = ? AND status = ?", mainCategoryID, categoryID, types.ClassStatusActive).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *classRepo) ListActiveByCategoryPairs(ctx context.Context, tx *gorm.DB, pairs []CategoryPair) ([]*types.Class, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Class
	if len(pairs) == 0 {
		return results, nil
	}

	cond := transaction.Where("main_category_id = ? AND category_id = ?", pairs[0].MainCategoryID, pairs[0].CategoryID)
	for _, p := range pairs[1:] {
		cond = cond.Or("main_category_id = ? AND category_id = ?", p.MainCategoryID, p.CategoryID)
	}

	if err := transaction.WithContext(ctx).
		Where("status = ?", types.ClassStatusActive).
		Where(cond).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *classRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Class{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
