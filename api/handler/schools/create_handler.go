package schools

import (
	"net/http"

	"github.com/iamsahilydv/reno-test/api/common"
	"github.com/gin-gonic/gin"
)

// CreateSchool 新增学校记录
func (h *Handler) CreateSchool(c *gin.Context) {
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

	created, err := h.service.Create(c.Request.Context(), form.toInput(), file)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "School added successfully",
		"id":      created.ID,
		"image":   h.imageURL(created),
	})
}
