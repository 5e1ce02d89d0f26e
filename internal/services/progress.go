package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nivedu/courselink-backend/internal/data/repos"
	types "github.com/nivedu/courselink-backend/internal/domain"
	platformErrors "github.com/nivedu/courselink-backend/internal/platform/errors"
	"github.com/nivedu/courselink-backend/internal/platform/logger"
)

type ProgressResult struct {
	CourseID           uuid.UUID `json:"course_id"`
	CourseTitle        string    `json:"course_title"`
	ProgressPercentage float64   `json:"progress_percentage"`
	Accuracy           float64   `json:"accuracy"`
	BatchRank          float64   `json:"batch_rank"`
	Level              string    `json:"level"`
}

type CourseProgress struct {
	CourseID           uuid.UUID `json:"course_id"`
	ProgressPercentage float64   `json:"progress_percentage"`
}

type ProgressService interface {
	// ComputeProgress derives course membership by exact (main category,
	// category) match against active classes, independent of the link table.
	// It blends engagement share with historical quiz accuracy into a rank
	// score and level tier. Each computation appends a RankScore row; the
	// returned batch rank is the running maximum over the log. Rank
	// persistence and the max lookup are best-effort.
	ComputeProgress(ctx context.Context, courseIDRaw, userID string) (*ProgressResult, error)
	// ComputeProgressMany runs the membership/engagement part across many
	// courses in one pass, returning progress only.
	ComputeProgressMany(ctx context.Context, courseIDRaws []string, userID string) ([]CourseProgress, error)
}

type progressService struct {
	log          *logger.Logger
	courseRepo   repos.CourseRepo
	classRepo    repos.ClassRepo
	progressRepo repos.ClassProgressRepo
	resultRepo   repos.TestResultRepo
	rankRepo     repos.RankScoreRepo
}

func NewProgressService(
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	classRepo repos.ClassRepo,
	progressRepo repos.ClassProgressRepo,
	resultRepo repos.TestResultRepo,
	rankRepo repos.RankScoreRepo,
) ProgressService {
	return &progressService{
		log:          baseLog.With("service", "ProgressService"),
		courseRepo:   courseRepo,
		classRepo:    classRepo,
		progressRepo: progressRepo,
		resultRepo:   resultRepo,
		rankRepo:     rankRepo,
	}
}

func (s *progressService) ComputeProgress(ctx context.Context, courseIDRaw, userID string) (*ProgressResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required: %w", platformErrors.ErrInvalidArgument)
	}
	courseID, err := uuid.Parse(courseIDRaw)
	if err != nil {
		return nil, fmt.Errorf("malformed course id %q: %w", courseIDRaw, platformErrors.ErrInvalidArgument)
	}

	course, err := s.courseRepo.GetByID(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if course == nil {
		return nil, fmt.Errorf("course %s: %w", courseID, platformErrors.ErrNotFound)
	}

	classes, err := s.classRepo.ListActiveByCategory(ctx, nil, course.MainCategoryID, course.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("load category classes: %w", err)
	}

	classIDs := make([]uuid.UUID, 0, len(classes))
	for _, class := range classes {
		classIDs = append(classIDs, class.ID)
	}
	engaged, err := s.progressRepo.EngagedClassIDs(ctx, nil, userID, classIDs)
	if err != nil {
		return nil, fmt.Errorf("load engagement: %w", err)
	}
	progress := progressPercentage(len(engaged), len(classes))

	results, err := s.resultRepo.ListByUserAndCourse(ctx, nil, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("load test results: %w", err)
	}
	accuracy := meanAccuracy(results)

	rank := rankScore(accuracy, progress)
	level := levelScore(accuracy, progress)

	// Append-only analytics side effect. Failures here must not block the
	// response; the computed value is still returned.
	if _, err := s.rankRepo.Append(ctx, nil, &types.RankScore{
		ID:         uuid.New(),
		CourseID:   courseID,
		UserID:     userID,
		RankScore:  rank,
		LevelScore: level,
		Level:      levelForScore(level),
	}); err != nil {
		s.log.Error("rank score append failed, continuing", "course_id", courseID, "user_id", userID, "error", err)
	}

	batchRank := rank
	historicalMax, found, err := s.rankRepo.MaxRankScore(ctx, nil, userID, courseID)
	if err != nil {
		s.log.Error("historical max lookup failed, using computed rank", "course_id", courseID, "user_id", userID, "error", err)
	} else if found && historicalMax > batchRank {
		batchRank = historicalMax
	}

	return &ProgressResult{
		CourseID:           courseID,
		CourseTitle:        course.Title,
		ProgressPercentage: progress,
		Accuracy:           accuracy,
		BatchRank:          round2(batchRank),
		Level:              levelForScore(level),
	}, nil
}

func (s *progressService) ComputeProgressMany(ctx context.Context, courseIDRaws []string, userID string) ([]CourseProgress, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required: %w", platformErrors.ErrInvalidArgument)
	}
	if len(courseIDRaws) == 0 {
		return nil, fmt.Errorf("at least one course id is required: %w", platformErrors.ErrInvalidArgument)
	}

	courseIDs := make([]uuid.UUID, 0, len(courseIDRaws))
	for _, raw := range courseIDRaws {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("malformed course id %q: %w", raw, platformErrors.ErrInvalidArgument)
		}
		courseIDs = append(courseIDs, id)
	}

	courses, err := s.courseRepo.GetByIDs(ctx, nil, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("load courses: %w", err)
	}

	pairs := make([]repos.CategoryPair, 0, len(courses))
	for _, course := range courses {
		pairs = append(pairs, repos.CategoryPair{
			MainCategoryID: course.MainCategoryID,
			CategoryID:     course.CategoryID,
		})
	}
	classes, err := s.classRepo.ListActiveByCategoryPairs(ctx, nil, pairs)
	if err != nil {
		return nil, fmt.Errorf("load category classes: %w", err)
	}

	allClassIDs := make([]uuid.UUID, 0, len(classes))
	for _, class := range classes {
		allClassIDs = append(allClassIDs, class.ID)
	}
	engaged, err := s.progressRepo.EngagedClassIDs(ctx, nil, userID, allClassIDs)
	if err != nil {
		return nil, fmt.Errorf("load engagement: %w", err)
	}
	engagedSet := make(map[uuid.UUID]struct{}, len(engaged))
	for _, id := range engaged {
		engagedSet[id] = struct{}{}
	}

	out := make([]CourseProgress, 0, len(courses))
	for _, course := range courses {
		total, hit := 0, 0
		for _, class := range classes {
			if class.MainCategoryID != course.MainCategoryID || class.CategoryID != course.CategoryID {
				continue
			}
			total++
			if _, ok := engagedSet[class.ID]; ok {
				hit++
			}
		}
		out = append(out, CourseProgress{
			CourseID:           course.ID,
			ProgressPercentage: progressPercentage(hit, total),
		})
	}
	return out, nil
}
