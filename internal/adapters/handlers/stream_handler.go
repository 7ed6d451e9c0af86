package handlers

import (
	"github.com/gin-gonic/gin"
)

// Stream подключает клиента websocket к потоку снимков состояния осей.
// @Summary Поток состояния осей
// @Description Websocket: сообщения {"type":"snapshot"|"phase", ...} для каждой публикации контроллера.
// @Tags Stream
// @Router /stream [get]
func (h *Handler) Stream(c *gin.Context) {
	if err := h.usecase.ServeStream(c.Writer, c.Request); err != nil {
		// Upgrader уже ответил клиенту.
		h.logger.Warn("Stream upgrade failed", "remote_addr", c.Request.RemoteAddr, "error", err)
	}
}
