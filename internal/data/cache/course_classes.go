package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/nivedu/courselink-backend/internal/platform/logger"
)

// CourseClassCache holds the denormalized grouped view per course id. Every
// link mutation must invalidate the course's entry. All operations are
// best-effort: a cache failure is logged and the caller proceeds against the
// database.
type CourseClassCache interface {
	Get(ctx context.Context, courseID uuid.UUID, out any) bool
	Set(ctx context.Context, courseID uuid.UUID, val any)
	Invalidate(ctx context.Context, courseID uuid.UUID)
	Close() error
}

type courseClassCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// New connects to Redis at addr. An empty addr yields a no-op cache so the
// service runs without Redis in development.
func New(log *logger.Logger, addr string, ttl time.Duration) (CourseClassCache, error) {
	if strings.TrimSpace(addr) == "" {
		log.Info("REDIS_ADDR not set, course-class cache disabled")
		return noopCache{}, nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &courseClassCache{
		log: log.With("service", "CourseClassCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func cacheKey(courseID uuid.UUID) string {
	return "course_classes:" + courseID.String()
}

func (c *courseClassCache) Get(ctx context.Context, courseID uuid.UUID, out any) bool {
	raw, err := c.rdb.Get(ctx, cacheKey(courseID)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("cache get failed", "course_id", courseID, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.log.Warn("cache entry unmarshal failed, dropping", "course_id", courseID, "error", err)
		_ = c.rdb.Del(ctx, cacheKey(courseID)).Err()
		return false
	}
	return true
}

func (c *courseClassCache) Set(ctx context.Context, courseID uuid.UUID, val any) {
	raw, err := json.Marshal(val)
	if err != nil {
		c.log.Warn("cache marshal failed", "course_id", courseID, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(courseID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("cache set failed", "course_id", courseID, "error", err)
	}
}

func (c *courseClassCache) Invalidate(ctx context.Context, courseID uuid.UUID) {
	if err := c.rdb.Del(ctx, cacheKey(courseID)).Err(); err != nil {
		c.log.Warn("cache invalidate failed", "course_id", courseID, "error", err)
	}
}

func (c *courseClassCache) Close() error { return c.rdb.Close() }

type noopCache struct{}

func (noopCache) Get(ctx context.Context, courseID uuid.UUID, out any) bool { return false }
func (noopCache) Set(ctx context.Context, courseID uuid.UUID, val any)      {}
func (noopCache) Invalidate(ctx context.Context, courseID uuid.UUID)        {}
func (noopCache) Close() error                                              { return nil }
