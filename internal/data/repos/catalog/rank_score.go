package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/nivedu/courselink-backend/internal/domain"
	"github.com/nivedu/courselink-backend/internal/platform/logger"
)

type RankScoreRepo interface {
	// Append inserts a new log row. RankScore rows are never updated in place.
	Append(ctx context.Context, tx *gorm.DB, score *types.RankScore) (*types.RankScore, error)
	// MaxRankScore returns the historical maximum rank_score for the pair and
	// whether any row exists.
	MaxRankScore(ctx context.Context, tx *gorm.DB, userID string, courseID uuid.UUID) (float64, bool, error)
	ListByUserAndCourse(ctx context.Context, tx *gorm.DB, userID string, courseID uuid.UUID) ([]*types.RankScore, error)
}

type rankScoreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRankScoreRepo(db *gorm.DB, baseLog *logger.Logger) RankScoreRepo {
	repoLog := baseLog.With("repo", "RankScoreRepo")
	return &rankScoreRepo{db: db, log: repoLog}
}

func (r *rankScoreRepo) Append(ctx context.Context, tx *gorm.DB, score *types.RankScore) (*types.RankScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(score).Error; err != nil {
		return nil, err
	}
	return score, nil
}

func (r *rankScoreRepo) MaxRankScore(ctx context.Context, tx *gorm.DB, userID string, courseID uuid.UUID) (float64, bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var max *float64
	if err := transaction.WithContext(ctx).
		Model(&types.RankScore{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Select("MAX(rank_score)").
		Scan(&max).Error; err != nil {
		return 0, false, err
	}
	if max == nil {
		return 0, false, nil
	}
	return *max, true, nil
}

func (r *rankScoreRepo) ListByUserAndCourse(ctx context.Context, tx *gorm.DB, userID string, courseID uuid.UUID) ([]*types.RankScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.RankScore
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
