package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/nivedu/courselink-backend/internal/data/cache"
	"github.com/nivedu/courselink-backend/internal/data/repos"
	types "github.com/nivedu/courselink-backend/internal/domain"
	platformErrors "github.com/nivedu/courselink-backend/internal/platform/errors"
	"github.com/nivedu/courselink-backend/internal/platform/logger"
)

// UncategorizedTopic is the group name for classes without a resolvable topic.
const UncategorizedTopic = "Uncategorized"

const (
	SortByTitle    = "title"
	SortByRecency  = "recency"
	SortByPriority = "priority"
)

// ClassSummary is one flattened class entry carrying both link metadata and
// class display fields. Taxonomy names are nil when the referenced entity is
// missing.
type ClassSummary struct {
	LinkID   uuid.UUID `json:"link_id,omitempty"`
	ClassID  uuid.UUID `json:"class_id"`
	Priority int       `json:"priority"`
	IsActive bool      `json:"is_active"`
	AddedAt  time.Time `json:"added_at"`

	Title       string    `json:"title"`
	TeacherName string    `json:"teacher_name"`
	Image       string    `json:"image"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`

	MainCategory *string `json:"main_category"`
	Category     *string `json:"category"`
	Section      *string `json:"section"`
	Topic        *string `json:"topic"`
}

// TopicGroup is the presentation grouping of the course-classes read model.
// Groups come back sorted alphabetically by topic name; the map shape of the
// old API is replaced by an ordered slice so the ordering survives JSON.
type TopicGroup struct {
	Topic   string         `json:"topic"`
	Classes []ClassSummary `json:"classes"`
}

type CourseClassesView struct {
	Course  *types.Course `json:"course"`
	Classes []TopicGroup  `json:"classes"`
}

type AssignmentSummary struct {
	Assigned  int `json:"assigned"`
	Available int `json:"available"`
	Total     int `json:"total"`
}

type AvailableClassesView struct {
	AvailableClasses []ClassSummary    `json:"available_classes"`
	Summary          AssignmentSummary `json:"summary"`
}

type CourseClassesService interface {
	ClassesForCourse(ctx context.Context, courseIDRaw string) (*CourseClassesView, error)
	// AvailableClasses lists classes not linked to the course. includeInactive
	// lifts the default status='active' filter entirely (active and inactive
	// both become eligible). sortKey is one of title, recency, priority.
	AvailableClasses(ctx context.Context, courseIDRaw string, includeInactive bool, sortKey string) (*AvailableClassesView, error)
}

type courseClassesService struct {
	log        *logger.Logger
	courseRepo repos.CourseRepo
	linkRepo   repos.CourseClassLinkRepo
	readRepo   repos.CourseClassReadRepo
	cache      cache.CourseClassCache
}

func NewCourseClassesService(
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	linkRepo repos.CourseClassLinkRepo,
	readRepo repos.CourseClassReadRepo,
	courseCache cache.CourseClassCache,
) CourseClassesService {
	return &courseClassesService{
		log:        baseLog.With("service", "CourseClassesService"),
		courseRepo: courseRepo,
		linkRepo:   linkRepo,
		readRepo:   readRepo,
		cache:      courseCache,
	}
}

func (s *courseClassesService) ClassesForCourse(ctx context.Context, courseIDRaw string) (*CourseClassesView, error) {
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

	var cached CourseClassesView
	if s.cache.Get(ctx, courseID, &cached) {
		return &cached, nil
	}

	rows, err := s.readRepo.ListLinkedRows(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("load course classes: %w", err)
	}

	summaries := summariesFromRows(rows)
	sortByPriorityThenRecency(summaries)

	view := &CourseClassesView{
		Course:  course,
		Classes: groupByTopic(summaries),
	}
	s.cache.Set(ctx, courseID, view)
	return view, nil
}

func (s *courseClassesService) AvailableClasses(ctx context.Context, courseIDRaw string, includeInactive bool, sortKey string) (*AvailableClassesView, error) {
	switch sortKey {
	case "", SortByTitle, SortByRecency, SortByPriority:
	default:
		return nil, fmt.Errorf("unknown sort %q: %w", sortKey, platformErrors.ErrInvalidArgument)
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

	rows, err := s.readRepo.ListAvailableRows(ctx, nil, courseID, !includeInactive)
	if err != nil {
		return nil, fmt.Errorf("load available classes: %w", err)
	}

	summaries := summariesFromRows(rows)
	sortSummaries(summaries, sortKey)

	assigned, err := s.linkRepo.CountByCourse(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("count assigned classes: %w", err)
	}

	return &AvailableClassesView{
		AvailableClasses: summaries,
		Summary: AssignmentSummary{
			Assigned:  int(assigned),
			Available: len(summaries),
			Total:     int(assigned) + len(summaries),
		},
	}, nil
}

func summariesFromRows(rows []repos.CourseClassRow) []ClassSummary {
	summaries := make([]ClassSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, ClassSummary{
			LinkID:       row.LinkID,
			ClassID:      row.ClassID,
			Priority:     row.Priority,
			IsActive:     row.IsActive,
			AddedAt:      row.AddedAt,
			Title:        row.ClassTitle,
			TeacherName:  row.TeacherName,
			Image:        row.Image,
			Status:       row.Status,
			CreatedAt:    row.ClassCreatedAt,
			MainCategory: row.MainCategoryName,
			Category:     row.CategoryName,
			Section:      row.SectionName,
			Topic:        row.TopicName,
		})
	}
	return summaries
}

// sortByPriorityThenRecency orders by priority ascending, ties broken by
// class creation time descending (newest first).
func sortByPriorityThenRecency(summaries []ClassSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Priority != summaries[j].Priority {
			return summaries[i].Priority < summaries[j].Priority
		}
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
}

func sortSummaries(summaries []ClassSummary, sortKey string) {
	switch sortKey {
	case SortByTitle:
		sort.SliceStable(summaries, func(i, j int) bool {
			return summaries[i].Title < summaries[j].Title
		})
	case SortByRecency:
		sort.SliceStable(summaries, func(i, j int) bool {
			return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
		})
	default:
		sortByPriorityThenRecency(summaries)
	}
}

// groupByTopic buckets pre-sorted summaries by topic name, "Uncategorized"
// when the topic is missing, and returns the groups alphabetically.
func groupByTopic(summaries []ClassSummary) []TopicGroup {
	buckets := make(map[string][]ClassSummary)
	for _, s := range summaries {
		topic := UncategorizedTopic
		if s.Topic != nil && *s.Topic != "" {
			topic = *s.Topic
		}
		buckets[topic] = append(buckets[topic], s)
	}

	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]TopicGroup, 0, len(names))
	for _, name := range names {
		groups = append(groups, TopicGroup{Topic: name, Classes: buckets[name]})
	}
	return groups
}
