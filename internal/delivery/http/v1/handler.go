package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/focusflow/internal/services"
)

type Handler interface {
	HandleLogin(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)
	HandleRequestLogger(c *gin.Context)

	HandleGetTimer(c *gin.Context)
	HandlePauseTimer(c *gin.Context)
	HandleResumeTimer(c *gin.Context)
	HandleStopTimer(c *gin.Context)
	HandleResetTimer(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleGetTasks(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
	HandleStartTask(c *gin.Context)
	HandleCompleteTask(c *gin.Context)
	HandleGetActiveTask(c *gin.Context)
	HandleGetTags(c *gin.Context)
	HandleGetDailyReport(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	auth   services.AuthService
	timer  services.TimerService
	tasks  services.TaskService
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	timerService services.TimerService,
	taskService services.TaskService,
) Handler {
	return &handlerImpl{
		logger: logger,
		auth:   authService,
		timer:  timerService,
		tasks:  taskService,
	}
}

func RegisterRoutes(router gin.IRouter, h Handler) {
	router.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router = router.Group("/api/v1", h.HandleRequestLogger)

	authRouter := router.Group("/auth")
	authRouter.POST("/login", h.HandleLogin)

	timerRouter := router.Group("/timer", h.HandleAuthMiddleware)
	timerRouter.GET("", h.HandleGetTimer)
	timerRouter.POST("/pause", h.HandlePauseTimer)
	timerRouter.POST("/resume", h.HandleResumeTimer)
	timerRouter.POST("/stop", h.HandleStopTimer)
	timerRouter.POST("/reset", h.HandleResetTimer)

	tasksRouter := router.Group("/tasks", h.HandleAuthMiddleware)
	tasksRouter.GET("", h.HandleGetTasks)
	tasksRouter.POST("", h.HandleCreateTask)
	tasksRouter.GET("/active", h.HandleGetActiveTask)
	tasksRouter.GET("/:id", h.HandleGetTask)
	tasksRouter.PATCH("/:id", h.HandleUpdateTask)
	tasksRouter.DELETE("/:id", h.HandleDeleteTask)
	tasksRouter.POST("/:id/start", h.HandleStartTask)
	tasksRouter.POST("/:id/complete", h.HandleCompleteTask)

	router.GET("/tags", h.HandleAuthMiddleware, h.HandleGetTags)

	reportsRouter := router.Group("/reports", h.HandleAuthMiddleware)
	reportsRouter.GET("/daily", h.HandleGetDailyReport)
}
