package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// intParam разбирает числовой параметр пути и отвечает 400, если он не число.
func (h *Handler) intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		h.BadRequest(c, err, "Invalid "+name)
		return 0, false
	}
	return v, true
}
