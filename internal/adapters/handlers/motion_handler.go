package handlers

import (
	"net/http"

	"github.com/iwtcode/googolAdapter/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// Home запускает поиск нуля оси.
// @Summary Поиск нуля
// @Description Запускает поиск нуля оси по параметрам из файла параметров осей. Операция выполняется в фоне.
// @Tags Motion
// @Accept json
// @Produce json
// @Param axis path int true "Номер оси (1..8)"
// @Param input body models.HomeRequest true "Скорости поиска нуля"
// @Success 202 {object} models.OperationResponse "Операция запущена"
// @Failure 400 {object} models.ErrorResponse "Неверный формат запроса"
// @Failure 409 {object} models.ErrorResponse "Ось занята другой операцией"
// @Router /axes/{axis}/home [post]
func (h *Handler) Home(c *gin.Context) {
	axis, ok := h.intParam(c, "axis")
	if !ok {
		return
	}
	var req models.HomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	op, err := h.usecase.Home(axis, req)
	h.accepted(c, op, err)
}

// Move запускает относительное перемещение оси.
// @Summary Относительное перемещение
// @Description Перемещает ось на distance от текущей позиции энкодера. Операция выполняется в фоне.
// @Tags Motion
// @Accept json
// @Produce json
// @Param axis path int true "Номер оси (1..8)"
// @Param input body models.MoveRequest true "Скорость и расстояние"
// @Success 202 {object} models.OperationResponse "Операция запущена"
// @Failure 400 {object} models.ErrorResponse "Неверный формат запроса"
// @Failure 409 {object} models.ErrorResponse "Ось занята другой операцией"
// @Router /axes/{axis}/move [post]
func (h *Handler) Move(c *gin.Context) {
	axis, ok := h.intParam(c, "axis")
	if !ok {
		return
	}
	var req models.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	op, err := h.usecase.Move(axis, req)
	h.accepted(c, op, err)
}

// MoveAbs запускает перемещение оси в абсолютную позицию.
// @Summary Абсолютное перемещение
// @Tags Motion
// @Accept json
// @Produce json
// @Param axis path int true "Номер оси (1..8)"
// @Param input body models.MoveAbsRequest true "Скорость и целевая позиция"
// @Success 202 {object} models.OperationResponse "Операция запущена"
// @Failure 400 {object} models.ErrorResponse "Неверный формат запроса"
// @Failure 409 {object} models.ErrorResponse "Ось занята другой операцией"
// @Router /axes/{axis}/move-abs [post]
func (h *Handler) MoveAbs(c *gin.Context) {
	axis, ok := h.intParam(c, "axis")
	if !ok {
		return
	}
	var req models.MoveAbsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	op, err := h.usecase.MoveAbs(axis, req)
	h.accepted(c, op, err)
}

func (h *Handler) accepted(c *gin.Context, op *models.Operation, err error) {
	if err != nil {
		h.Fault(c, err)
		return
	}
	h.logger.Info("Operation accepted", "id", op.ID, "kind", op.Kind, "axis", op.Axis)
	c.JSON(http.StatusAccepted, models.OperationResponse{Status: "ok", Operation: op})
}

// SetServo включает или выключает привод оси.
// @Summary Привод оси
// @Tags Axis
// @Accept json
// @Produce json
// @Param axis path int true "Номер оси (1..8)"
// @Param input body models.ServoRequest true "Состояние привода"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse "Неверный формат запроса"
// @Failure 502 {object} models.ErrorResponse "Ошибка контроллера"
// @Router /axes/{axis}/servo [post]
func (h *Handler) SetServo(c *gin.Context) {
	axis, ok := h.intParam(c, "axis")
	if !ok {
		return
	}
	var req models.ServoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	if err := h.usecase.SetServo(axis, *req.On); err != nil {
		h.Fault(c, err)
		return
	}
	message := "Servo disabled"
	if *req.On {
		message = "Servo enabled"
	}
	c.JSON(http.StatusOK, models.MessageResponse{Status: "ok", Message: message})
}

// ResetFault сбрасывает флаги неисправностей оси.
// @Summary Сброс неисправностей
// @Tags Axis
// @Produce json
// @Param axis path int true "Номер оси (1..8)"
// @Success 200 {object} models.MessageResponse
// @Failure 502 {object} models.ErrorResponse "Ошибка контроллера"
// @Router /axes/{axis}/reset [post]
func (h *Handler) ResetFault(c *gin.Context) {
	axis, ok := h.intParam(c, "axis")
	if !ok {
		return
	}
	if err := h.usecase.ResetFault(axis); err != nil {
		h.Fault(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Status: "ok", Message: "Axis faults cleared"})
}

// SetProfile меняет ускорение и замедление оси.
// @Summary Профиль разгона
// @Tags Axis
// @Accept json
// @Produce json
// @Param axis path int true "Номер оси (1..8)"
// @Param input body models.ProfileRequest true "Ускорение и/или замедление"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse "Неверный формат запроса"
// @Router /axes/{axis}/profile [post]
func (h *Handler) SetProfile(c *gin.Context) {
	axis, ok := h.intParam(c, "axis")
	if !ok {
		return
	}
	var req models.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}
	if err := h.usecase.SetProfile(axis, req); err != nil {
		h.Fault(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Status: "ok", Message: "Motion profile updated"})
}

// RefreshStatus публикует текущее состояние оси.
// @Summary Обновить состояние оси
// @Description Читает слово состояния и позицию оси и публикует снимок подписчикам.
// @Tags Axis
// @Produce json
// @Param axis path int true "Номер оси (1..8)"
// @Success 200 {object} models.MessageResponse
// @Router /axes/{axis}/status [post]
func (h *Handler) RefreshStatus(c *gin.Context) {
	axis, ok := h.intParam(c, "axis")
	if !ok {
		return
	}
	if err := h.usecase.RefreshStatus(axis); err != nil {
		h.Fault(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Status: "ok", Message: "Status published"})
}

// StopAll останавливает все оси платы.
// @Summary Остановить все оси
// @Tags Axis
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Router /stop [post]
func (h *Handler) StopAll(c *gin.Context) {
	h.logger.Warn("Stopping all axes", "remote_addr", c.Request.RemoteAddr)
	h.usecase.StopAll()
	c.JSON(http.StatusOK, models.MessageResponse{Status: "ok", Message: "Stop issued"})
}

// GetController возвращает возможности платы и состояние сервиса.
// @Summary Сведения о плате
// @Tags Controller
// @Produce json
// @Success 200 {object} models.ControllerInfoResponse
// @Router /controller [get]
func (h *Handler) GetController(c *gin.Context) {
	c.JSON(http.StatusOK, h.usecase.Info())
}
