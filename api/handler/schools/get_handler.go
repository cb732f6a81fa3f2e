package schools

import (
	"net/http"
	"strconv"

	"github.com/iamsahilydv/reno-test/api/common"
	"github.com/gin-gonic/gin"
)

// parseID 解析路径中的记录 ID
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid school id")
		return 0, false
	}
	return uint(id), true
}

// GetSchool 获取单个学校记录
func (h *Handler) GetSchool(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.toResponse(found))
}
