package handlers

import (
	"net/http"

	"github.com/iwtcode/googolAdapter/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// ReadDigitalOutput возвращает состояние дискретного выхода.
// @Summary Дискретный выход
// @Tags IO
// @Produce json
// @Param port path int true "Номер выхода (0..15)"
// @Success 200 {object} models.DigitalResponse
// @Failure 400 {object} models.ErrorResponse "Канал вне диапазона"
// @Router /io/do/{port} [get]
func (h *Handler) ReadDigitalOutput(c *gin.Context) {
	port, ok := h.intParam(c, "port")
	if !ok {
		return
	}
	on, err := h.usecase.ReadDigitalOutput(port)
	if err != nil {
		h.Fault(c, err)
		return
	}
	c.JSON(http.StatusOK, models.DigitalResponse{Status: "ok", Port: port, On: on})
}

// SetDigitalOutput включает или выключает дискретный выход.
// @Summary Установить дискретный выход
// @Tags IO
// @Accept json
// @Produce json
// @Param port path int true "Номер выхода (0..15)"
// @Param input body models.DigitalOutputRequest true "Состояние выхода"
// @Success 200 {object} models.DigitalResponse
// @Failure 400 {object} models.ErrorResponse "Неверный формат запроса"
// @Router /io/do/{port} [post]
func (h *Handler) SetDigitalOutput(c *gin.Context) {
	port, ok := h.intParam(c, "port")
	if !ok {
		return
	}
	var req models.DigitalOutputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}
	if err := h.usecase.SetDigitalOutput(port, *req.On); err != nil {
		h.Fault(c, err)
		return
	}
	c.JSON(http.StatusOK, models.DigitalResponse{Status: "ok", Port: port, On: *req.On})
}

// ReadDigitalOutputs возвращает состояние всех дискретных выходов.
// @Summary Все дискретные выходы
// @Tags IO
// @Produce json
// @Success 200 {object} models.DigitalBankResponse
// @Router /io/do [get]
func (h *Handler) ReadDigitalOutputs(c *gin.Context) {
	ports, err := h.usecase.ReadDigitalOutputs()
	h.bank(c, ports, err)
}

// ReadDigitalInput возвращает состояние дискретного входа.
// @Summary Дискретный вход
// @Tags IO
// @Produce json
// @Param port path int true "Номер входа (0..15)"
// @Success 200 {object} models.DigitalResponse
// @Router /io/di/{port} [get]
func (h *Handler) ReadDigitalInput(c *gin.Context) {
	port, ok := h.intParam(c, "port")
	if !ok {
		return
	}
	on, err := h.usecase.ReadDigitalInput(port)
	if err != nil {
		h.Fault(c, err)
		return
	}
	c.JSON(http.StatusOK, models.DigitalResponse{Status: "ok", Port: port, On: on})
}

// ReadDigitalInputs возвращает состояние всех дискретных входов.
// @Summary Все дискретные входы
// @Tags IO
// @Produce json
// @Success 200 {object} models.DigitalBankResponse
// @Router /io/di [get]
func (h *Handler) ReadDigitalInputs(c *gin.Context) {
	ports, err := h.usecase.ReadDigitalInputs()
	h.bank(c, ports, err)
}

func (h *Handler) bank(c *gin.Context, ports []bool, err error) {
	if err != nil {
		h.Fault(c, err)
		return
	}
	c.JSON(http.StatusOK, models.DigitalBankResponse{Status: "ok", Ports: ports})
}

// ReadAnalogInput возвращает значение АЦП.
// @Summary Аналоговый вход
// @Tags IO
// @Produce json
// @Param port path int true "Номер входа (0..7)"
// @Success 200 {object} models.AnalogResponse
// @Router /io/ai/{port} [get]
func (h *Handler) ReadAnalogInput(c *gin.Context) {
	port, ok := h.intParam(c, "port")
	if !ok {
		return
	}
	v, err := h.usecase.ReadAnalogInput(port)
	h.analog(c, port, v, err)
}

// ReadAnalogOutput возвращает значение ЦАП.
// @Summary Аналоговый выход
// @Tags IO
// @Produce json
// @Param port path int true "Номер выхода (0)"
// @Success 200 {object} models.AnalogResponse
// @Router /io/ao/{port} [get]
func (h *Handler) ReadAnalogOutput(c *gin.Context) {
	port, ok := h.intParam(c, "port")
	if !ok {
		return
	}
	v, err := h.usecase.ReadAnalogOutput(port)
	h.analog(c, port, v, err)
}

// SetAnalogOutput задает значение ЦАП. Значение усекается до целого.
// @Summary Установить аналоговый выход
// @Tags IO
// @Accept json
// @Produce json
// @Param port path int true "Номер выхода (0)"
// @Param input body models.AnalogOutputRequest true "Значение"
// @Success 200 {object} models.AnalogResponse
// @Router /io/ao/{port} [post]
func (h *Handler) SetAnalogOutput(c *gin.Context) {
	port, ok := h.intParam(c, "port")
	if !ok {
		return
	}
	var req models.AnalogOutputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}
	if err := h.usecase.SetAnalogOutput(port, *req.Value); err != nil {
		h.Fault(c, err)
		return
	}
	v, err := h.usecase.ReadAnalogOutput(port)
	h.analog(c, port, v, err)
}

func (h *Handler) analog(c *gin.Context, port int, v float64, err error) {
	if err != nil {
		h.Fault(c, err)
		return
	}
	c.JSON(http.StatusOK, models.AnalogResponse{Status: "ok", Port: port, Value: v})
}
