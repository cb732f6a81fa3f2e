package schools

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DeleteSchool 删除学校记录及其关联图片
func (h *Handler) DeleteSchool(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "School deleted successfully",
	})
}
