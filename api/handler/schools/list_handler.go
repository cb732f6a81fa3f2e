package schools

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListSchools 获取全部学校记录
func (h *Handler) ListSchools(c *gin.Context) {
	schoolList, err := h.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]schoolResponse, 0, len(schoolList))
	for i := range schoolList {
		responses = append(responses, h.toResponse(&schoolList[i]))
	}

	c.JSON(http.StatusOK, responses)
}
