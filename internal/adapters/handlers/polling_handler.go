package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/iwtcode/googolAdapter/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// StartPolling запускает периодическое обновление состояния всех осей.
// @Summary Запустить опрос
// @Description Запускает периодическую публикацию состояния всех осей с заданным интервалом.
// @Tags Polling
// @Accept json
// @Produce json
// @Param input body models.PollingRequest true "Параметры для запуска опроса"
// @Success 200 {object} models.MessageResponse "Сообщение об успешном запуске"
// @Failure 400 {object} models.ErrorResponse "Неверный формат запроса"
// @Failure 409 {object} models.ErrorResponse "Опрос уже запущен"
// @Router /polling/start [post]
func (h *Handler) StartPolling(c *gin.Context) {
	var req models.PollingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	duration := time.Duration(req.Interval) * time.Millisecond
	h.logger.Info("Attempting to start polling", "interval", duration)

	if err := h.usecase.StartPolling(duration); err != nil {
		h.Fault(c, err)
		return
	}

	h.logger.Info("Polling started successfully")
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": fmt.Sprintf("Polling started with interval %s", duration),
	})
}

// StopPolling останавливает опрос состояния осей.
// @Summary Остановить опрос
// @Tags Polling
// @Produce json
// @Success 200 {object} models.MessageResponse "Сообщение об успешной остановке"
// @Failure 409 {object} models.ErrorResponse "Опрос не запущен"
// @Router /polling/stop [post]
func (h *Handler) StopPolling(c *gin.Context) {
	h.logger.Info("Attempting to stop polling")

	if err := h.usecase.StopPolling(); err != nil {
		h.Fault(c, err)
		return
	}

	h.logger.Info("Polling stopped successfully")
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Polling stopped",
	})
}
