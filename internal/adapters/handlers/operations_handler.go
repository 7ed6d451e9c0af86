package handlers

import (
	"net/http"

	"github.com/iwtcode/googolAdapter/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GetOperations возвращает все известные операции движения.
// @Summary Список операций
// @Tags Operations
// @Produce json
// @Success 200 {object} models.OperationsResponse
// @Router /operations [get]
func (h *Handler) GetOperations(c *gin.Context) {
	ops := h.usecase.GetAllOperations()
	c.JSON(http.StatusOK, models.OperationsResponse{Status: "ok", Count: len(ops), Operations: ops})
}

// GetOperation возвращает операцию по ID.
// @Summary Состояние операции
// @Tags Operations
// @Produce json
// @Param id path string true "ID операции"
// @Success 200 {object} models.OperationResponse
// @Failure 404 {object} models.ErrorResponse "Операция не найдена"
// @Router /operations/{id} [get]
func (h *Handler) GetOperation(c *gin.Context) {
	op, err := h.usecase.GetOperation(c.Param("id"))
	if err != nil {
		h.Fault(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OperationResponse{Status: "ok", Operation: op})
}
