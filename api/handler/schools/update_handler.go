package schools

import (
	"net/http"

	"github.com/iamsahilydv/reno-test/api/common"
	"github.com/gin-gonic/gin"
)

// UpdateSchool 更新学校记录，可选的新图片会替换旧图片
func (h *Handler) UpdateSchool(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var form schoolForm
	if err := c.ShouldBind(&form); err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid form data")
		return
	}

	file, err := formFile(c)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid image upload")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, form.toInput(), file)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "School updated successfully",
		"image":   h.imageURL(updated),
	})
}
