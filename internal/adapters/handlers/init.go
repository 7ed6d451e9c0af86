package handlers

import (
	"net/http"

	"github.com/iwtcode/googolAdapter/internal/config"
	"github.com/iwtcode/googolAdapter/internal/interfaces"
	"github.com/iwtcode/googolAdapter/internal/middleware/logging"

	"github.com/gin-gonic/gin"
)

// Handler - структура для обработчиков HTTP-запросов
type Handler struct {
	usecase interfaces.Usecases
	logger  *logging.Logger
}

// NewHandler создает новый экземпляр Handler
func NewHandler(usecase interfaces.Usecases, logger *logging.Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger.WithPrefix("HANDLER"),
	}
}

// ProvideRouter настраивает и возвращает HTTP-роутер
func ProvideRouter(h *Handler, cfg *config.AppConfig) http.Handler {
	gin.SetMode(cfg.GinMode)

	router := gin.Default()

	// Logger Middleware
	router.Use(LoggingMiddleware(h.logger))

	// Группа API v1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/controller", h.GetController)
		v1.POST("/stop", h.StopAll)
		v1.GET("/stream", h.Stream)

		axes := v1.Group("/axes/:axis")
		{
			axes.POST("/home", h.Home)
			axes.POST("/move", h.Move)
			axes.POST("/move-abs", h.MoveAbs)
			axes.POST("/servo", h.SetServo)
			axes.POST("/reset", h.ResetFault)
			axes.POST("/profile", h.SetProfile)
			axes.POST("/status", h.RefreshStatus)
		}

		operations := v1.Group("/operations")
		{
			operations.GET("", h.GetOperations)
			operations.GET("/:id", h.GetOperation)
		}

		io := v1.Group("/io")
		{
			io.GET("/do", h.ReadDigitalOutputs)
			io.GET("/do/:port", h.ReadDigitalOutput)
			io.POST("/do/:port", h.SetDigitalOutput)
			io.GET("/di", h.ReadDigitalInputs)
			io.GET("/di/:port", h.ReadDigitalInput)
			io.GET("/ai/:port", h.ReadAnalogInput)
			io.GET("/ao/:port", h.ReadAnalogOutput)
			io.POST("/ao/:port", h.SetAnalogOutput)
		}

		polling := v1.Group("/polling")
		{
			polling.POST("/start", h.StartPolling)
			polling.POST("/stop", h.StopPolling)
		}
	}

	return router
}
