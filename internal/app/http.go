package app

import (
	"github.com/gin-gonic/gin"

	"github.com/nivedu/courselink-backend/internal/http"
	httpH "github.com/nivedu/courselink-backend/internal/http/handlers"
	"github.com/nivedu/courselink-backend/internal/platform/logger"
)

type Handlers struct {
	Health      *httpH.HealthHandler
	CourseClass *httpH.CourseClassHandler
	Progress    *httpH.ProgressHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      httpH.NewHealthHandler(),
		CourseClass: httpH.NewCourseClassHandler(log, services.Assignment, services.CourseClasses),
		Progress:    httpH.NewProgressHandler(log, services.Progress),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:                log,
		CORSAllowOrigins:   cfg.CORSAllowOrigins,
		HealthHandler:      handlers.Health,
		CourseClassHandler: handlers.CourseClass,
		ProgressHandler:    handlers.Progress,
	})
}
