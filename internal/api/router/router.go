package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"boiler-ai/backend/config"
	"boiler-ai/backend/internal/api/handler"
	"boiler-ai/backend/internal/api/middleware"
	"boiler-ai/backend/internal/dto"
	"boiler-ai/backend/internal/model"
	"boiler-ai/backend/pkg/jwt"
	"boiler-ai/backend/pkg/metrics"
	"boiler-ai/backend/pkg/redis"
	"boiler-ai/backend/pkg/response"
)

// Setup builds the gin engine. rdb may be nil; token revocation is then disabled and
// rate limiting stays in-process.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, fmt.Errorf("unexpected binding validator %T", binding.Validator.Engine())
	}
	if err := dto.RegisterValidators(v); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	// keep interface values nil when Redis is absent
	var (
		tokens  middleware.TokenChecker
		limiter middleware.RateChecker
	)
	if rdb != nil {
		tokens = rdb
		limiter = rdb
	}

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	r.Use(middleware.RateLimit(limiter, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger))

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, response.CodeRouteNotFound, "Route not found")
	})

	// ── platform ──
	r.GET("/health", h.Health.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// public
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		courses := v1.Group("/courses")
		{
			courses.GET("", h.Course.ListCourses)
			courses.GET("/majors", h.Course.ListMajors)
			courses.GET("/major/:major", h.Course.ListByMajor)
			courses.GET("/:id", h.Course.GetCourse)
			courses.GET("/:id/prerequisites", h.Course.GetPrerequisites)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, tokens))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/profile", h.Auth.GetProfile)
			authorized.GET("/auth/me", h.Auth.GetProfile)
			authorized.PUT("/auth/profile", h.Auth.UpdateProfile)

			// catalog maintenance
			adminCourses := authorized.Group("/courses", middleware.RoleAuth(model.RoleAdmin))
			{
				adminCourses.POST("", h.Course.CreateCourse)
				adminCourses.PUT("/:id", h.Course.UpdateCourse)
				adminCourses.DELETE("/:id", h.Course.DeleteCourse)
			}

			// ownership is checked in the service layer (owner or admin)
			schedules := authorized.Group("/schedules")
			{
				schedules.POST("", h.Schedule.CreateSchedule)
				schedules.GET("/user/:userId", h.Schedule.ListUserSchedules)
				schedules.GET("/:id", h.Schedule.GetSchedule)
				schedules.DELETE("/:id", h.Schedule.DeleteSchedule)
				schedules.POST("/:id/courses", h.Schedule.AddCourse)
				schedules.DELETE("/:id/courses/:courseId", h.Schedule.RemoveCourse)
				schedules.GET("/:id/export.xlsx", h.Export.ScheduleXLSX)
				schedules.GET("/:id/export.ics", h.Export.ScheduleICS)
			}

			transcripts := authorized.Group("/transcripts")
			{
				transcripts.POST("/upload", h.Transcript.Upload)
				transcripts.GET("/user/:userId", h.Transcript.ListUserTranscripts)
				transcripts.POST("/:id/analyze", h.Transcript.Analyze)
				transcripts.GET("/:id/analysis", h.Transcript.GetAnalysis)
			}

			gpa := authorized.Group("/gpa")
			{
				gpa.POST("/calculate", h.GPA.Calculate)
				gpa.POST("/save", h.GPA.Save)
				gpa.POST("/predict", h.GPA.Predict)
				gpa.GET("/history/:userId", h.GPA.History)
				gpa.GET("/history/:userId/export.xlsx", h.Export.GPAHistoryXLSX)
				gpa.GET("/records/:id", h.GPA.GetRecord)
			}

			ai := authorized.Group("/ai")
			{
				ai.POST("/chat", h.Advisor.Chat)
				ai.POST("/recommendations", h.Advisor.Recommendations)
				ai.GET("/chat-history/:userId", h.Advisor.ChatHistory)
			}
		}
	}

	return r, nil
}
