package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/nivedu/courselink-backend/internal/http/handlers"
	httpMW "github.com/nivedu/courselink-backend/internal/http/middleware"
	"github.com/nivedu/courselink-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	CORSAllowOrigins []string

	HealthHandler      *httpH.HealthHandler
	CourseClassHandler *httpH.CourseClassHandler
	ProgressHandler    *httpH.ProgressHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestID())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSAllowOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Course-class assignment + read models
		if cfg.CourseClassHandler != nil {
			api.POST("/courses/:courseId/classes", cfg.CourseClassHandler.Assign)
			api.GET("/courses/:courseId/classes", cfg.CourseClassHandler.ListClasses)
			api.GET("/courses/:courseId/available-classes", cfg.CourseClassHandler.ListAvailableClasses)
			api.PUT("/courses/:courseId/classes/reorder", cfg.CourseClassHandler.Reorder)
			api.PUT("/courses/:courseId/classes/:classId/priority", cfg.CourseClassHandler.UpdatePriority)
			api.DELETE("/courses/:courseId/classes/:classId", cfg.CourseClassHandler.Unassign)
			api.PATCH("/courses/:courseId/classes/:classId/toggle", cfg.CourseClassHandler.ToggleActive)
		}

		// Progress + ranking
		if cfg.ProgressHandler != nil {
			api.POST("/course-progress", cfg.ProgressHandler.ComputeProgress)
			api.POST("/course-progress/batch", cfg.ProgressHandler.ComputeProgressMany)
		}
	}

	return r
}
