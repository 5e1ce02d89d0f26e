package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/nivedu/courselink-backend/internal/domain"
	"github.com/nivedu/courselink-backend/internal/platform/logger"
)

type ClassProgressRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, progress *types.ClassProgress) (*types.ClassProgress, error)
	// EngagedClassIDs returns the subset of classIDs for which the user has
	// any progress row at all.
	EngagedClassIDs(ctx context.Context, tx *gorm.DB, userID string, classIDs []uuid.UUID) ([]uuid.UUID, error)
}

type classProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClassProgressRepo(db *gorm.DB, baseLog *logger.Logger) ClassProgressRepo {
	repoLog := baseLog.With("repo", "ClassProgressRepo")
	return &classProgressRepo{db: db, log: repoLog}
}

func (r *classProgressRepo) Upsert(ctx context.Context, tx *gorm.DB, progress *types.ClassProgress) (*types.ClassProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	existing := &types.ClassProgress{}
	err := transaction.WithContext(ctx).
		Where("class_id = ? AND user_id = ?", progress.ClassID, progress.UserID).
		First(existing).Error
	if err == nil {
		updates := map[string]interface{}{
			"watched_seconds": progress.WatchedSeconds,
			"completed":       progress.Completed,
		}
		if err := transaction.WithContext(ctx).
			Model(existing).
			Updates(updates).Error; err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := transaction.WithContext(ctx).Create(progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

func (r *classProgressRepo) EngagedClassIDs(ctx context.Context, tx *gorm.DB, userID string, classIDs []uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []uuid.UUID
	if userID == "" || len(classIDs) == 0 {
		return ids, nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.ClassProgress{}).
		Where("user_id = ? AND class_id IN ?", userID, classIDs).
		Pluck("class_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
