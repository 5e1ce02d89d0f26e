package app

import (
	"strings"
	"time"

	"github.com/nivedu/courselink-backend/internal/platform/env"
	"github.com/nivedu/courselink-backend/internal/platform/logger"
)

type Config struct {
	Port             string
	CORSAllowOrigins []string
	RedisAddr        string
	CacheTTL         time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	port := env.Get("PORT", "8080", log)
	redisAddr := env.Get("REDIS_ADDR", "", log)
	cacheTTLSeconds := env.GetInt("COURSE_CLASS_CACHE_TTL", 300, log)

	var origins []string
	if raw := env.Get("CORS_ALLOW_ORIGINS", "", log); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Config{
		Port:             port,
		CORSAllowOrigins: origins,
		RedisAddr:        redisAddr,
		CacheTTL:         time.Duration(cacheTTLSeconds) * time.Second,
	}
}
